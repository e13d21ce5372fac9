package service

import (
	"math"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/util"
)

// StudentService covers the student-facing class views: the per-class
// record table and the class comment thread with the teacher.
type StudentService struct {
	classRepo      *repository.ClassRepository
	lessonRepo     *repository.LessonRepository
	assignmentRepo *repository.AssignmentRepository
	testRepo       *repository.TestRepository
	attendanceRepo *repository.AttendanceRepository
	commentRepo    *repository.CommentRepository
	access         *AccessService
	notifications  *NotificationService
}

func NewStudentService(
	classRepo *repository.ClassRepository,
	lessonRepo *repository.LessonRepository,
	assignmentRepo *repository.AssignmentRepository,
	testRepo *repository.TestRepository,
	attendanceRepo *repository.AttendanceRepository,
	commentRepo *repository.CommentRepository,
	access *AccessService,
	notifications *NotificationService,
) *StudentService {
	return &StudentService{
		classRepo:      classRepo,
		lessonRepo:     lessonRepo,
		assignmentRepo: assignmentRepo,
		testRepo:       testRepo,
		attendanceRepo: attendanceRepo,
		commentRepo:    commentRepo,
		access:         access,
		notifications:  notifications,
	}
}

// ClassRecordRow is one line of the student's class record table: the
// lesson record joined with that day's attendance.
type ClassRecordRow struct {
	model.LessonRecord
	LessonTitle      string                 `json:"lessonTitle"`
	AttendanceStatus model.AttendanceStatus `json:"attendanceStatus,omitempty"`
}

// ClassRecordSummary is the header block above the table.
type ClassRecordSummary struct {
	TotalRecords          int `json:"totalRecords"`
	AttendanceRate        int `json:"attendanceRate"`
	AverageTestPercentage int `json:"averageTestPercentage"`
	SubmittedAssignments  int `json:"submittedAssignments"`
}

type ClassRecordsView struct {
	Summary ClassRecordSummary `json:"summary"`
	Rows    []ClassRecordRow   `json:"rows"`
}

// ClassRecords builds the per-class study history for one student:
// dated lesson records with the matching attendance status, plus overall
// attendance rate, test average and submission count.
func (s *StudentService) ClassRecords(user *model.User, classID string) (*ClassRecordsView, error) {
	if _, err := s.access.VerifyClassAccess(user, classID); err != nil {
		return nil, err
	}

	records, err := s.lessonRepo.FindRecordsByClass(classID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendanceRepo.FindByStudentInClass(classID, user.ID)
	if err != nil {
		return nil, err
	}
	attendanceByDay := make(map[string]model.AttendanceStatus, len(attendance))
	present := 0
	for i := range attendance {
		attendanceByDay[attendance[i].Date.Format("2006-01-02")] = attendance[i].Status
		if attendance[i].Status != model.AttendanceAbsent {
			present++
		}
	}

	rows := make([]ClassRecordRow, 0, len(records))
	for i := range records {
		row := ClassRecordRow{
			LessonRecord:     records[i],
			AttendanceStatus: attendanceByDay[records[i].RecordDate.Format("2006-01-02")],
		}
		if records[i].LessonPlan != nil {
			row.LessonTitle = records[i].LessonPlan.Title
		}
		rows = append(rows, row)
	}

	summary := ClassRecordSummary{TotalRecords: len(records)}
	if len(attendance) > 0 {
		summary.AttendanceRate = int(math.Round(float64(present) / float64(len(attendance)) * 100))
	}

	trend, err := s.testRepo.FindTrend(user.ID, classID)
	if err != nil {
		return nil, err
	}
	if len(trend) > 0 {
		total := 0
		for i := range trend {
			maxScore := 100
			if trend[i].Test != nil && trend[i].Test.MaxScore > 0 {
				maxScore = trend[i].Test.MaxScore
			}
			total += percentage(trend[i].Score, maxScore)
		}
		summary.AverageTestPercentage = total / len(trend)
	}

	submissions, err := s.assignmentRepo.FindRecentSubmissions(user.ID, []string{classID}, 100)
	if err != nil {
		return nil, err
	}
	summary.SubmittedAssignments = len(submissions)

	return &ClassRecordsView{Summary: summary, Rows: rows}, nil
}

// ClassComments returns the comment thread between the caller and the class
// teacher.
func (s *StudentService) ClassComments(user *model.User, classID string) ([]model.PrivateComment, error) {
	class, err := s.access.VerifyClassAccess(user, classID)
	if err != nil {
		return nil, err
	}
	return s.commentRepo.FindClassThread(classID, user.ID, class.TeacherID)
}

type ClassCommentInput struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
	TargetID string `json:"targetId"`
}

// PostClassComment adds to the class thread; the target defaults to the
// class teacher and is notified.
func (s *StudentService) PostClassComment(user *model.User, classID string, input *ClassCommentInput) (*model.PrivateComment, error) {
	class, err := s.access.VerifyClassAccess(user, classID)
	if err != nil {
		return nil, err
	}
	targetID := input.TargetID
	if targetID == "" {
		targetID = class.TeacherID
	}
	if targetID == user.ID {
		return nil, util.ErrAccessDenied
	}
	comment := &model.PrivateComment{
		AuthorID:    user.ID,
		TargetID:    targetID,
		StudentID:   user.ID,
		ContextType: "class",
		ContextID:   classID,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	s.notifications.Notify(targetID, "New comment in "+class.Name,
		model.NotifyComment, comment.ID, "comment")
	return comment, nil
}
