package service

import (
	"context"
	"sort"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// ParentService is the guardian's window into each linked child's classes.
type ParentService struct {
	classRepo        *repository.ClassRepository
	lessonRepo       *repository.LessonRepository
	assignmentRepo   *repository.AssignmentRepository
	testRepo         *repository.TestRepository
	attendanceRepo   *repository.AttendanceRepository
	commentRepo      *repository.CommentRepository
	notificationRepo *repository.NotificationRepository
	access           *AccessService
	notifications    *NotificationService
}

func NewParentService(
	classRepo *repository.ClassRepository,
	lessonRepo *repository.LessonRepository,
	assignmentRepo *repository.AssignmentRepository,
	testRepo *repository.TestRepository,
	attendanceRepo *repository.AttendanceRepository,
	commentRepo *repository.CommentRepository,
	notificationRepo *repository.NotificationRepository,
	access *AccessService,
	notifications *NotificationService,
) *ParentService {
	return &ParentService{
		classRepo:        classRepo,
		lessonRepo:       lessonRepo,
		assignmentRepo:   assignmentRepo,
		testRepo:         testRepo,
		attendanceRepo:   attendanceRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		access:           access,
		notifications:    notifications,
	}
}

// ChildSummary is one card on the parent dashboard.
type ChildSummary struct {
	Student            *model.User        `json:"student"`
	TodayAttendance    []model.Attendance `json:"todayAttendance"`
	PendingAssignments int                `json:"pendingAssignments"`
	RecentResults      []StudentResult    `json:"recentResults"`
}

type ParentDashboard struct {
	Children            []ChildSummary       `json:"children"`
	RecentNotifications []model.Notification `json:"recentNotifications"`
}

// Dashboard summarizes every linked child: today's attendance, outstanding
// work and latest results, fetched concurrently per concern.
func (s *ParentService) Dashboard(ctx context.Context, parentID string) (*ParentDashboard, error) {
	enrollments, err := s.classRepo.FindEnrollmentsByParent(parentID)
	if err != nil {
		return nil, err
	}

	children := make(map[string]*model.User)
	order := []string{}
	for i := range enrollments {
		e := &enrollments[i]
		if e.Student == nil {
			continue
		}
		if _, seen := children[e.StudentID]; !seen {
			children[e.StudentID] = e.Student
			order = append(order, e.StudentID)
		}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	dashboard := &ParentDashboard{Children: make([]ChildSummary, len(order))}
	g, _ := errgroup.WithContext(ctx)

	attendanceByStudent := make(map[string][]model.Attendance)
	g.Go(func() error {
		records, err := s.attendanceRepo.FindByStudentsOnDate(order, dayStart, dayEnd)
		if err != nil {
			return err
		}
		for i := range records {
			attendanceByStudent[records[i].StudentID] = append(attendanceByStudent[records[i].StudentID], records[i])
		}
		return nil
	})

	// indexed slices so each goroutine writes its own slot
	pendingByChild := make([]int, len(order))
	resultsByChild := make([][]StudentResult, len(order))
	for i, childID := range order {
		i, childID := i, childID
		g.Go(func() error {
			n, err := s.countPending(childID)
			if err != nil {
				return err
			}
			pendingByChild[i] = n
			return nil
		})
		g.Go(func() error {
			results, err := s.testRepo.FindRecentResultsByStudent(childID, 3)
			if err != nil {
				return err
			}
			items := make([]StudentResult, 0, len(results))
			for j := range results {
				items = append(items, toStudentResult(&results[j]))
			}
			resultsByChild[i] = items
			return nil
		})
	}

	g.Go(func() error {
		notifications, err := s.notificationRepo.FindByUser(parentID, 5)
		if err != nil {
			return err
		}
		dashboard.RecentNotifications = notifications
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, childID := range order {
		dashboard.Children[i] = ChildSummary{
			Student:            children[childID],
			TodayAttendance:    attendanceByStudent[childID],
			PendingAssignments: pendingByChild[i],
			RecentResults:      resultsByChild[i],
		}
	}
	return dashboard, nil
}

// countPending is the same set difference the student dashboard uses:
// assignments across the child's classes minus the ones already handed in.
func (s *ParentService) countPending(studentID string) (int, error) {
	enrollments, err := s.classRepo.FindEnrollmentsByStudent(studentID)
	if err != nil {
		return 0, err
	}
	classIDs := make([]string, 0, len(enrollments))
	for i := range enrollments {
		classIDs = append(classIDs, enrollments[i].ClassID)
	}
	assignments, err := s.assignmentRepo.FindByClassIDs(classIDs)
	if err != nil {
		return 0, err
	}
	submittedIDs, err := s.assignmentRepo.FindSubmittedAssignmentIDs(studentID)
	if err != nil {
		return 0, err
	}
	submitted := make(map[string]bool, len(submittedIDs))
	for _, id := range submittedIDs {
		submitted[id] = true
	}
	pending := 0
	for i := range assignments {
		if !submitted[assignments[i].ID] {
			pending++
		}
	}
	return pending, nil
}

// ChildAttendance lists the child's attendance, optionally limited to one
// month ("2006-01").
func (s *ParentService) ChildAttendance(parentID, childID, month string) ([]model.Attendance, error) {
	if err := s.access.VerifyParentOfChild(parentID, childID); err != nil {
		return nil, err
	}
	var from, to *time.Time
	if month != "" {
		start, err := time.Parse("2006-01", month)
		if err == nil {
			end := start.AddDate(0, 1, 0)
			from, to = &start, &end
		}
	}
	return s.attendanceRepo.FindByStudent(childID, from, to)
}

// TimelineItem is one entry of the child activity feed.
type TimelineItem struct {
	Kind      string      `json:"kind"`
	Date      time.Time   `json:"date"`
	ClassName string      `json:"className,omitempty"`
	Title     string      `json:"title"`
	Detail    interface{} `json:"detail,omitempty"`
}

// ChildTimeline merges lesson records, test results and submissions into
// one feed, newest first.
func (s *ParentService) ChildTimeline(parentID, childID string) ([]TimelineItem, error) {
	if err := s.access.VerifyParentOfChild(parentID, childID); err != nil {
		return nil, err
	}
	enrollments, err := s.classRepo.FindEnrollmentsByStudent(childID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]string, 0, len(enrollments))
	for i := range enrollments {
		classIDs = append(classIDs, enrollments[i].ClassID)
	}

	const perSource = 10
	var items []TimelineItem

	records, err := s.lessonRepo.FindRecentRecords(classIDs, perSource)
	if err != nil {
		return nil, err
	}
	for i := range records {
		item := TimelineItem{Kind: "lesson_record", Date: records[i].RecordDate, Detail: records[i]}
		if records[i].LessonPlan != nil {
			item.Title = records[i].LessonPlan.Title
			if records[i].LessonPlan.Class != nil {
				item.ClassName = records[i].LessonPlan.Class.Name
			}
		}
		items = append(items, item)
	}

	results, err := s.testRepo.FindRecentResultsInClasses(childID, classIDs, perSource)
	if err != nil {
		return nil, err
	}
	for i := range results {
		item := TimelineItem{Kind: "test_result", Date: results[i].TakenAt, Detail: toStudentResult(&results[i])}
		if results[i].Test != nil {
			item.Title = results[i].Test.Title
			if results[i].Test.Lesson != nil && results[i].Test.Lesson.Class != nil {
				item.ClassName = results[i].Test.Lesson.Class.Name
			}
		}
		items = append(items, item)
	}

	submissions, err := s.assignmentRepo.FindRecentSubmissions(childID, classIDs, perSource)
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		sub := &submissions[i]
		item := TimelineItem{Kind: "submission", Date: sub.CreatedAt, Detail: sub}
		if sub.SubmittedAt != nil {
			item.Date = *sub.SubmittedAt
		}
		if sub.Assignment != nil {
			item.Title = sub.Assignment.Title
			if sub.Assignment.Lesson != nil && sub.Assignment.Lesson.Class != nil {
				item.ClassName = sub.Assignment.Lesson.Class.Name
			}
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

func (s *ParentService) ChildTrend(parentID, childID, classID string) ([]TrendPoint, error) {
	if err := s.access.VerifyParentOfChild(parentID, childID); err != nil {
		return nil, err
	}
	results, err := s.testRepo.FindTrend(childID, classID)
	if err != nil {
		return nil, err
	}
	points := make([]TrendPoint, 0, len(results))
	for i := range results {
		r := &results[i]
		point := TrendPoint{TestID: r.TestID, Score: r.Score, TakenAt: r.TakenAt}
		if r.Test != nil {
			point.TestTitle = r.Test.Title
			point.MaxScore = r.Test.MaxScore
			point.Percentage = percentage(r.Score, r.Test.MaxScore)
		}
		points = append(points, point)
	}
	return points, nil
}

// ChildComments lists the comment exchanges about the child that the
// parent took part in.
func (s *ParentService) ChildComments(parentID, childID string) ([]model.PrivateComment, error) {
	if err := s.access.VerifyParentOfChild(parentID, childID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.FindForStudent(childID)
	if err != nil {
		return nil, err
	}
	mine := make([]model.PrivateComment, 0, len(comments))
	for i := range comments {
		if comments[i].AuthorID == parentID || comments[i].TargetID == parentID {
			mine = append(mine, comments[i])
		}
	}
	return mine, nil
}

type ParentCommentInput struct {
	TargetID string `json:"targetId" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// PostComment sends a private comment about the child, typically a reply to
// the teacher, and notifies the target.
func (s *ParentService) PostComment(parentID, childID string, input *ParentCommentInput) (*model.PrivateComment, error) {
	if err := s.access.VerifyParentOfChild(parentID, childID); err != nil {
		return nil, err
	}
	comment := &model.PrivateComment{
		AuthorID:  parentID,
		TargetID:  input.TargetID,
		StudentID: childID,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	s.notifications.Notify(input.TargetID, "You have a new private comment",
		model.NotifyComment, comment.ID, "comment")
	return comment, nil
}
