package repository

import (
	"time"

	"tutorboard_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, "id = ?", id).Error
	return &assignment, err
}

func (r *AssignmentRepository) FindWithLesson(id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.Preload("Lesson.Class").First(&assignment, "id = ?", id).Error
	return &assignment, err
}

func (r *AssignmentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Assignment{}, "id = ?", id).Error
}

func (r *AssignmentRepository) FindByClassIDs(classIDs []string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if len(classIDs) == 0 {
		return assignments, nil
	}
	err := r.DB.
		Preload("Lesson.Class").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_assignments.lesson_id").
		Where("tb_lesson_plans.class_id IN ?", classIDs).
		Order("tb_assignments.due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) FindUpcomingByClassIDs(classIDs []string, from time.Time, limit int) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if len(classIDs) == 0 {
		return assignments, nil
	}
	err := r.DB.
		Preload("Lesson.Class").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_assignments.lesson_id").
		Where("tb_lesson_plans.class_id IN ? AND tb_assignments.due_date >= ?", classIDs, from).
		Order("tb_assignments.due_date ASC").
		Limit(limit).
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) CreateSubmissions(tx *gorm.DB, submissions []model.AssignmentSubmission) error {
	if len(submissions) == 0 {
		return nil
	}
	return tx.Create(&submissions).Error
}

func (r *AssignmentRepository) FindSubmissionByID(id string) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	err := r.DB.Preload("Assignment.Lesson.Class").Preload("Student").First(&submission, "id = ?", id).Error
	return &submission, err
}

func (r *AssignmentRepository) FindSubmission(assignmentID, studentID string) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).First(&submission).Error
	return &submission, err
}

// UpsertSubmission marks the student's submission for the assignment as
// submitted, creating the row when the pending one is missing.
func (r *AssignmentRepository) UpsertSubmission(assignmentID, studentID, fileURL string) (*model.AssignmentSubmission, error) {
	now := time.Now()
	submission := model.AssignmentSubmission{
		AssignmentID:      assignmentID,
		StudentID:         studentID,
		Status:            model.SubmissionSubmitted,
		SubmissionFileURL: fileURL,
		SubmittedAt:       &now,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":              model.SubmissionSubmitted,
			"submission_file_url": fileURL,
			"submitted_at":        now,
		}),
	}).Create(&submission).Error
	if err != nil {
		return nil, err
	}
	return r.FindSubmission(assignmentID, studentID)
}

func (r *AssignmentRepository) UpdateSubmission(id string, updates map[string]interface{}) error {
	return r.DB.Model(&model.AssignmentSubmission{}).Where("id = ?", id).Updates(updates).Error
}

func (r *AssignmentRepository) FindSubmissionsByAssignment(assignmentID string) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.DB.
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *AssignmentRepository) FindSubmissionsByStudent(studentID string, assignmentIDs []string) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	if len(assignmentIDs) == 0 {
		return submissions, nil
	}
	err := r.DB.
		Where("student_id = ? AND assignment_id IN ?", studentID, assignmentIDs).
		Find(&submissions).Error
	return submissions, err
}

// FindSubmittedAssignmentIDs returns the ids of assignments the student
// has already handed in (submitted or graded).
func (r *AssignmentRepository) FindSubmittedAssignmentIDs(studentID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.AssignmentSubmission{}).
		Where("student_id = ? AND status <> ?", studentID, model.SubmissionPending).
		Pluck("assignment_id", &ids).Error
	return ids, err
}

// FindUngradedByTeacher lists submitted-but-ungraded work across every
// class the teacher owns.
func (r *AssignmentRepository) FindUngradedByTeacher(teacherID string) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.DB.
		Preload("Student").
		Preload("Assignment.Lesson.Class").
		Joins("JOIN tb_assignments ON tb_assignments.id = tb_assignment_submissions.assignment_id").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_assignments.lesson_id").
		Joins("JOIN tb_classes ON tb_classes.id = tb_lesson_plans.class_id").
		Where("tb_classes.teacher_id = ? AND tb_assignment_submissions.status = ?", teacherID, model.SubmissionSubmitted).
		Order("tb_assignment_submissions.submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *AssignmentRepository) FindRecentSubmissions(studentID string, classIDs []string, limit int) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	if len(classIDs) == 0 {
		return submissions, nil
	}
	err := r.DB.
		Preload("Assignment.Lesson.Class").
		Joins("JOIN tb_assignments ON tb_assignments.id = tb_assignment_submissions.assignment_id").
		Joins("JOIN tb_lesson_plans ON tb_lesson_plans.id = tb_assignments.lesson_id").
		Where("tb_assignment_submissions.student_id = ? AND tb_lesson_plans.class_id IN ? AND tb_assignment_submissions.status <> ?",
			studentID, classIDs, model.SubmissionPending).
		Order("tb_assignment_submissions.submitted_at DESC").
		Limit(limit).
		Find(&submissions).Error
	return submissions, err
}
