package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/util"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// TeacherService covers every class-management operation the teaching role
// performs: lesson plans and records, attendance, tests, assignments,
// grading and private comments.
type TeacherService struct {
	db             *gorm.DB
	classRepo      *repository.ClassRepository
	lessonRepo     *repository.LessonRepository
	assignmentRepo *repository.AssignmentRepository
	testRepo       *repository.TestRepository
	attendanceRepo *repository.AttendanceRepository
	commentRepo    *repository.CommentRepository
	access         *AccessService
	notifications  *NotificationService
	schedule       *ScheduleService
}

func NewTeacherService(
	db *gorm.DB,
	classRepo *repository.ClassRepository,
	lessonRepo *repository.LessonRepository,
	assignmentRepo *repository.AssignmentRepository,
	testRepo *repository.TestRepository,
	attendanceRepo *repository.AttendanceRepository,
	commentRepo *repository.CommentRepository,
	access *AccessService,
	notifications *NotificationService,
	schedule *ScheduleService,
) *TeacherService {
	return &TeacherService{
		db:             db,
		classRepo:      classRepo,
		lessonRepo:     lessonRepo,
		assignmentRepo: assignmentRepo,
		testRepo:       testRepo,
		attendanceRepo: attendanceRepo,
		commentRepo:    commentRepo,
		access:         access,
		notifications:  notifications,
		schedule:       schedule,
	}
}

func (s *TeacherService) ClassStudents(teacherID, classID string) ([]model.ClassEnrollment, error) {
	if _, err := s.access.VerifyClassOwner(teacherID, classID); err != nil {
		return nil, err
	}
	return s.classRepo.FindEnrollmentsByClass(classID)
}

// ---- Lesson plans & records ----

type LessonPlanInput struct {
	Title         string     `json:"title" binding:"required"`
	Description   string     `json:"description"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Progress      *int       `json:"progress"`
}

func (s *TeacherService) CreateLessonPlan(teacherID, classID string, input *LessonPlanInput) (*model.LessonPlan, error) {
	if _, err := s.access.VerifyClassOwner(teacherID, classID); err != nil {
		return nil, err
	}
	plan := &model.LessonPlan{
		ClassID:       classID,
		Title:         input.Title,
		Description:   input.Description,
		ScheduledDate: input.ScheduledDate,
	}
	if input.Progress != nil {
		plan.Progress = *input.Progress
	}
	if err := s.lessonRepo.CreatePlan(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *TeacherService) ListLessonPlans(teacherID, classID string) ([]model.LessonPlan, error) {
	if _, err := s.access.VerifyClassOwner(teacherID, classID); err != nil {
		return nil, err
	}
	return s.lessonRepo.FindPlansByClass(classID)
}

// ownedPlan loads the plan and checks the caller owns its class.
func (s *TeacherService) ownedPlan(teacherID, planID string) (*model.LessonPlan, error) {
	plan, err := s.lessonRepo.FindPlanWithClass(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonPlanNotFound
		}
		return nil, err
	}
	if plan.Class == nil || plan.Class.TeacherID != teacherID {
		return nil, util.ErrAccessDenied
	}
	return plan, nil
}

func (s *TeacherService) UpdateLessonPlan(teacherID, planID string, input *LessonPlanInput) (*model.LessonPlan, error) {
	if _, err := s.ownedPlan(teacherID, planID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.ScheduledDate != nil {
		updates["scheduled_date"] = *input.ScheduledDate
	}
	if input.Progress != nil {
		updates["progress"] = *input.Progress
	}
	if len(updates) > 0 {
		if err := s.lessonRepo.UpdatePlan(planID, updates); err != nil {
			return nil, err
		}
	}
	return s.lessonRepo.FindPlanByID(planID)
}

func (s *TeacherService) DeleteLessonPlan(teacherID, planID string) error {
	if _, err := s.ownedPlan(teacherID, planID); err != nil {
		return err
	}
	return s.lessonRepo.DeletePlan(planID)
}

type LessonRecordInput struct {
	RecordDate  time.Time `json:"recordDate" binding:"required"`
	Summary     string    `json:"summary"`
	PagesFrom   *int      `json:"pagesFrom"`
	PagesTo     *int      `json:"pagesTo"`
	ConceptNote string    `json:"conceptNote"`
	FileURL     string    `json:"fileUrl"`
}

func (s *TeacherService) CreateLessonRecord(teacherID, planID string, input *LessonRecordInput) (*model.LessonRecord, error) {
	if _, err := s.ownedPlan(teacherID, planID); err != nil {
		return nil, err
	}
	record := &model.LessonRecord{
		LessonPlanID: planID,
		RecordDate:   input.RecordDate,
		Summary:      input.Summary,
		PagesFrom:    input.PagesFrom,
		PagesTo:      input.PagesTo,
		ConceptNote:  input.ConceptNote,
		FileURL:      input.FileURL,
	}
	if err := s.lessonRepo.CreateRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ---- Attendance ----

type AttendanceEntry struct {
	StudentID string                 `json:"studentId" binding:"required"`
	Status    model.AttendanceStatus `json:"status" binding:"required,oneof=present late absent"`
	Note      string                 `json:"note"`
}

type BulkAttendanceInput struct {
	Date    time.Time         `json:"date" binding:"required"`
	Entries []AttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// RecordAttendance saves a day's register in one transaction, then emits
// one notification per linked parent. Notification outcomes never affect
// the committed register.
func (s *TeacherService) RecordAttendance(teacherID, classID string, input *BulkAttendanceInput) error {
	class, err := s.access.VerifyClassOwner(teacherID, classID)
	if err != nil {
		return err
	}

	day := time.Date(input.Date.Year(), input.Date.Month(), input.Date.Day(), 0, 0, 0, 0, time.UTC)
	records := make([]model.Attendance, 0, len(input.Entries))
	for _, entry := range input.Entries {
		records = append(records, model.Attendance{
			ClassID:   classID,
			StudentID: entry.StudentID,
			Date:      day,
			Status:    entry.Status,
			Note:      entry.Note,
		})
	}
	if err := s.attendanceRepo.BulkUpsert(records); err != nil {
		return err
	}

	enrollments, err := s.classRepo.FindEnrollmentsByClass(classID)
	if err != nil {
		return nil
	}
	parentByStudent := make(map[string]string)
	nameByStudent := make(map[string]string)
	for i := range enrollments {
		e := &enrollments[i]
		if e.ParentID != nil {
			parentByStudent[e.StudentID] = *e.ParentID
		}
		if e.Student != nil {
			nameByStudent[e.StudentID] = e.Student.Username
		}
	}

	var notifications []model.Notification
	for _, entry := range input.Entries {
		parentID, ok := parentByStudent[entry.StudentID]
		if !ok {
			continue
		}
		name := nameByStudent[entry.StudentID]
		if name == "" {
			name = "Your child"
		}
		notifications = append(notifications, model.Notification{
			UserID: parentID,
			Message: fmt.Sprintf("%s was marked %s in %s on %s",
				name, entry.Status, class.Name, day.Format("2006-01-02")),
			Type:          model.NotifyAttendance,
			ReferenceID:   classID,
			ReferenceType: "class",
		})
	}
	s.notifications.NotifyBatch(notifications)
	return nil
}

func (s *TeacherService) ClassAttendance(teacherID, classID string, date *time.Time) ([]model.Attendance, error) {
	if _, err := s.access.VerifyClassOwner(teacherID, classID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.FindByClass(classID, date)
}

// ---- Tests ----

type TestInput struct {
	LessonID    string     `json:"lessonId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	TestDate    *time.Time `json:"testDate"`
	MaxScore    int        `json:"maxScore"`
}

func (s *TeacherService) CreateTest(teacherID string, input *TestInput) (*model.Test, error) {
	plan, err := s.ownedPlan(teacherID, input.LessonID)
	if err != nil {
		return nil, err
	}

	test := &model.Test{
		LessonID:    input.LessonID,
		Title:       input.Title,
		Description: input.Description,
		TestDate:    input.TestDate,
		MaxScore:    input.MaxScore,
	}
	if test.MaxScore <= 0 {
		test.MaxScore = 100
	}
	if err := s.testRepo.Create(test); err != nil {
		return nil, err
	}

	enrollments, err := s.classRepo.FindEnrollmentsByClass(plan.ClassID)
	if err == nil {
		for i := range enrollments {
			s.schedule.SyncTest(test, plan.Class, plan, enrollments[i].Student)
		}
	}
	return test, nil
}

func (s *TeacherService) ownedTest(teacherID, testID string) (*model.Test, error) {
	test, err := s.testRepo.FindWithLesson(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	if test.Lesson == nil || test.Lesson.Class == nil || test.Lesson.Class.TeacherID != teacherID {
		return nil, util.ErrAccessDenied
	}
	return test, nil
}

type TestResultEntry struct {
	StudentID string `json:"studentId" binding:"required"`
	Score     int    `json:"score" binding:"min=0"`
	Feedback  string `json:"feedback"`
}

type BulkTestResultsInput struct {
	Entries []TestResultEntry `json:"entries" binding:"required,min=1,dive"`
}

// RecordTestResults upserts a batch of scores in one transaction, then
// notifies each student and linked parent best-effort.
func (s *TeacherService) RecordTestResults(teacherID, testID string, input *BulkTestResultsInput) error {
	test, err := s.ownedTest(teacherID, testID)
	if err != nil {
		return err
	}

	results := make([]model.TestResult, 0, len(input.Entries))
	for _, entry := range input.Entries {
		results = append(results, model.TestResult{
			TestID:    testID,
			StudentID: entry.StudentID,
			Score:     entry.Score,
			Feedback:  entry.Feedback,
		})
	}
	if err := s.testRepo.BulkUpsertResults(results); err != nil {
		return err
	}

	enrollments, err := s.classRepo.FindEnrollmentsByClass(test.Lesson.ClassID)
	if err != nil {
		return nil
	}
	parentByStudent := make(map[string]string)
	for i := range enrollments {
		if enrollments[i].ParentID != nil {
			parentByStudent[enrollments[i].StudentID] = *enrollments[i].ParentID
		}
	}

	var notifications []model.Notification
	for _, entry := range input.Entries {
		message := fmt.Sprintf("Result published for %s: %d/%d", test.Title, entry.Score, test.MaxScore)
		notifications = append(notifications, model.Notification{
			UserID:        entry.StudentID,
			Message:       message,
			Type:          model.NotifyTest,
			ReferenceID:   testID,
			ReferenceType: "test",
		})
		if parentID, ok := parentByStudent[entry.StudentID]; ok {
			notifications = append(notifications, model.Notification{
				UserID:        parentID,
				Message:       message,
				Type:          model.NotifyTest,
				ReferenceID:   testID,
				ReferenceType: "test",
			})
		}
	}
	s.notifications.NotifyBatch(notifications)
	return nil
}

type TestResultsView struct {
	Test         *model.Test        `json:"test"`
	Results      []model.TestResult `json:"results"`
	ClassAverage float64            `json:"classAverage"`
}

func (s *TeacherService) TestResults(teacherID, testID string) (*TestResultsView, error) {
	test, err := s.ownedTest(teacherID, testID)
	if err != nil {
		return nil, err
	}
	results, err := s.testRepo.FindResultsByTest(testID)
	if err != nil {
		return nil, err
	}
	view := &TestResultsView{Test: test, Results: results}
	if len(results) > 0 {
		total := 0
		for i := range results {
			total += results[i].Score
		}
		view.ClassAverage = float64(total) / float64(len(results))
	}
	return view, nil
}

// DeleteTest removes the test and its synced calendar rows.
func (s *TeacherService) DeleteTest(teacherID, testID string) error {
	if _, err := s.ownedTest(teacherID, testID); err != nil {
		return err
	}
	if err := s.testRepo.Delete(testID); err != nil {
		return err
	}
	s.schedule.RemoveEvent(model.EventTest, testID)
	return nil
}

// ---- Assignments ----

type AssignmentInput struct {
	LessonID    string     `json:"lessonId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	FileURL     string     `json:"fileUrl"`
}

// CreateAssignment creates the assignment and one pending submission per
// enrolled student in a single transaction, then fans out notifications and
// shared-schedule rows best-effort.
func (s *TeacherService) CreateAssignment(teacherID string, input *AssignmentInput) (*model.Assignment, error) {
	plan, err := s.ownedPlan(teacherID, input.LessonID)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.classRepo.FindEnrollmentsByClass(plan.ClassID)
	if err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		LessonID:    input.LessonID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		FileURL:     input.FileURL,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		submissions := make([]model.AssignmentSubmission, 0, len(enrollments))
		for i := range enrollments {
			submissions = append(submissions, model.AssignmentSubmission{
				AssignmentID: assignment.ID,
				StudentID:    enrollments[i].StudentID,
				Status:       model.SubmissionPending,
			})
		}
		return s.assignmentRepo.CreateSubmissions(tx, submissions)
	})
	if err != nil {
		return nil, err
	}

	var notifications []model.Notification
	for i := range enrollments {
		notifications = append(notifications, model.Notification{
			UserID:        enrollments[i].StudentID,
			Message:       fmt.Sprintf("New assignment in %s: %s", plan.Class.Name, assignment.Title),
			Type:          model.NotifyAssignment,
			ReferenceID:   assignment.ID,
			ReferenceType: "assignment",
		})
	}
	s.notifications.NotifyBatch(notifications)

	for i := range enrollments {
		s.schedule.SyncAssignment(assignment, plan.Class, plan, enrollments[i].Student)
	}
	return assignment, nil
}

func (s *TeacherService) ownedAssignment(teacherID, assignmentID string) (*model.Assignment, error) {
	assignment, err := s.assignmentRepo.FindWithLesson(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.Lesson == nil || assignment.Lesson.Class == nil || assignment.Lesson.Class.TeacherID != teacherID {
		return nil, util.ErrAccessDenied
	}
	return assignment, nil
}

func (s *TeacherService) AssignmentSubmissions(teacherID, assignmentID string) ([]model.AssignmentSubmission, error) {
	if _, err := s.ownedAssignment(teacherID, assignmentID); err != nil {
		return nil, err
	}
	return s.assignmentRepo.FindSubmissionsByAssignment(assignmentID)
}

type GradeInput struct {
	Grade    int    `json:"grade" binding:"min=0"`
	Feedback string `json:"feedback"`
}

func (s *TeacherService) GradeSubmission(teacherID, submissionID string, input *GradeInput) (*model.AssignmentSubmission, error) {
	submission, err := s.assignmentRepo.FindSubmissionByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	assignment := submission.Assignment
	if assignment == nil || assignment.Lesson == nil || assignment.Lesson.Class == nil ||
		assignment.Lesson.Class.TeacherID != teacherID {
		return nil, util.ErrAccessDenied
	}

	err = s.assignmentRepo.UpdateSubmission(submissionID, map[string]interface{}{
		"grade":    input.Grade,
		"feedback": input.Feedback,
		"status":   model.SubmissionGraded,
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(submission.StudentID,
		fmt.Sprintf("Your submission for %s was graded: %d", assignment.Title, input.Grade),
		model.NotifyAssignment, assignment.ID, "assignment")

	return s.assignmentRepo.FindSubmissionByID(submissionID)
}

// DeleteAssignment removes the assignment and its synced calendar rows.
func (s *TeacherService) DeleteAssignment(teacherID, assignmentID string) error {
	if _, err := s.ownedAssignment(teacherID, assignmentID); err != nil {
		return err
	}
	if err := s.assignmentRepo.Delete(assignmentID); err != nil {
		return err
	}
	s.schedule.RemoveEvent(model.EventAssignment, assignmentID)
	return nil
}

// ---- Private comments ----

type CommentInput struct {
	TargetID    string `json:"targetId" binding:"required"`
	StudentID   string `json:"studentId"`
	Content     string `json:"content" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	ContextType string `json:"contextType"`
	ContextID   string `json:"contextId"`
}

func (s *TeacherService) CreateComment(authorID string, input *CommentInput) (*model.PrivateComment, error) {
	comment := &model.PrivateComment{
		AuthorID:    authorID,
		TargetID:    input.TargetID,
		StudentID:   input.StudentID,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
		ContextType: input.ContextType,
		ContextID:   input.ContextID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	s.notifications.Notify(input.TargetID, "You have a new private comment",
		model.NotifyComment, comment.ID, "comment")
	return comment, nil
}

// StudentComments lists the comments about one student the teacher took
// part in, either side of the conversation.
func (s *TeacherService) StudentComments(teacherID, studentID string) ([]model.PrivateComment, error) {
	comments, err := s.commentRepo.FindForStudent(studentID)
	if err != nil {
		return nil, err
	}
	mine := make([]model.PrivateComment, 0, len(comments))
	for i := range comments {
		if comments[i].AuthorID == teacherID || comments[i].TargetID == teacherID {
			mine = append(mine, comments[i])
		}
	}
	return mine, nil
}

// ---- Dashboard ----

type TeacherDashboard struct {
	ClassCount          int                          `json:"classCount"`
	StudentCount        int                          `json:"studentCount"`
	TodayLessons        []model.LessonPlan           `json:"todayLessons"`
	UngradedSubmissions []model.AssignmentSubmission `json:"ungradedSubmissions"`
	TodayAttendance     map[string]int               `json:"todayAttendance"`
}

// Dashboard aggregates the teacher's day with independent concurrent
// queries.
func (s *TeacherService) Dashboard(ctx context.Context, teacherID string) (*TeacherDashboard, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	dashboard := &TeacherDashboard{TodayAttendance: map[string]int{}}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		classes, err := s.classRepo.FindByTeacher(teacherID)
		if err != nil {
			return err
		}
		dashboard.ClassCount = len(classes)
		students := make(map[string]bool)
		for i := range classes {
			for j := range classes[i].Enrollments {
				students[classes[i].Enrollments[j].StudentID] = true
			}
		}
		dashboard.StudentCount = len(students)
		return nil
	})

	g.Go(func() error {
		lessons, err := s.lessonRepo.FindTodayByTeacher(teacherID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		dashboard.TodayLessons = lessons
		return nil
	})

	g.Go(func() error {
		submissions, err := s.assignmentRepo.FindUngradedByTeacher(teacherID)
		if err != nil {
			return err
		}
		dashboard.UngradedSubmissions = submissions
		return nil
	})

	g.Go(func() error {
		records, err := s.attendanceRepo.FindByTeacherOnDate(teacherID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		summary := map[string]int{}
		for i := range records {
			summary[string(records[i].Status)]++
		}
		dashboard.TodayAttendance = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
