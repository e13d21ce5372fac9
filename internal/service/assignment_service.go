package service

import (
	"errors"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/util"

	"gorm.io/gorm"
)

// AssignmentService is the student-facing view over assignments and
// submissions.
type AssignmentService struct {
	classRepo      *repository.ClassRepository
	assignmentRepo *repository.AssignmentRepository
}

func NewAssignmentService(classRepo *repository.ClassRepository, assignmentRepo *repository.AssignmentRepository) *AssignmentService {
	return &AssignmentService{classRepo: classRepo, assignmentRepo: assignmentRepo}
}

// StudentAssignment decorates an assignment with the caller's submission
// state.
type StudentAssignment struct {
	model.Assignment
	ClassName  string                      `json:"className"`
	Submission *model.AssignmentSubmission `json:"submission,omitempty"`
	IsOverdue  bool                        `json:"isOverdue"`
}

// IsOverdue: the due date has passed and the student has not handed in.
// A submitted or graded submission suppresses the flag permanently.
func isOverdue(assignment *model.Assignment, submission *model.AssignmentSubmission, now time.Time) bool {
	if assignment.DueDate == nil || !assignment.DueDate.Before(now) {
		return false
	}
	return submission == nil || submission.Status == model.SubmissionPending
}

// MyAssignments lists every assignment across the student's classes, with
// submission state and overdue flag.
func (s *AssignmentService) MyAssignments(studentID string) ([]StudentAssignment, error) {
	enrollments, err := s.classRepo.FindEnrollmentsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]string, 0, len(enrollments))
	for i := range enrollments {
		classIDs = append(classIDs, enrollments[i].ClassID)
	}

	assignments, err := s.assignmentRepo.FindByClassIDs(classIDs)
	if err != nil {
		return nil, err
	}
	assignmentIDs := make([]string, 0, len(assignments))
	for i := range assignments {
		assignmentIDs = append(assignmentIDs, assignments[i].ID)
	}
	submissions, err := s.assignmentRepo.FindSubmissionsByStudent(studentID, assignmentIDs)
	if err != nil {
		return nil, err
	}
	byAssignment := make(map[string]*model.AssignmentSubmission, len(submissions))
	for i := range submissions {
		byAssignment[submissions[i].AssignmentID] = &submissions[i]
	}

	now := time.Now()
	result := make([]StudentAssignment, 0, len(assignments))
	for i := range assignments {
		a := assignments[i]
		submission := byAssignment[a.ID]
		item := StudentAssignment{
			Assignment: a,
			Submission: submission,
			IsOverdue:  isOverdue(&a, submission, now),
		}
		if a.Lesson != nil && a.Lesson.Class != nil {
			item.ClassName = a.Lesson.Class.Name
		}
		result = append(result, item)
	}
	return result, nil
}

// GetAssignment returns the assignment detail with the caller's submission,
// gated on enrollment in the owning class.
func (s *AssignmentService) GetAssignment(studentID, assignmentID string) (*StudentAssignment, error) {
	assignment, err := s.assignmentRepo.FindWithLesson(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.Lesson == nil {
		return nil, util.ErrAssignmentNotFound
	}
	if _, err := s.classRepo.FindEnrollment(assignment.Lesson.ClassID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAccessDenied
		}
		return nil, err
	}

	var submission *model.AssignmentSubmission
	if found, err := s.assignmentRepo.FindSubmission(assignmentID, studentID); err == nil {
		submission = found
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &StudentAssignment{
		Assignment: *assignment,
		Submission: submission,
		IsOverdue:  isOverdue(assignment, submission, time.Now()),
	}
	if assignment.Lesson.Class != nil {
		item.ClassName = assignment.Lesson.Class.Name
	}
	return item, nil
}

type SubmitInput struct {
	FileURL string `json:"fileUrl"`
}

// Submit hands in (or re-submits) work; re-submission resets the timestamp
// and returns the submission to submitted even if it was already graded.
func (s *AssignmentService) Submit(studentID, assignmentID string, input *SubmitInput) (*model.AssignmentSubmission, error) {
	assignment, err := s.assignmentRepo.FindWithLesson(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.Lesson == nil {
		return nil, util.ErrAssignmentNotFound
	}
	if _, err := s.classRepo.FindEnrollment(assignment.Lesson.ClassID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAccessDenied
		}
		return nil, err
	}
	return s.assignmentRepo.UpsertSubmission(assignmentID, studentID, input.FileURL)
}
