package service

import (
	"context"
	"math"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

// DashboardService computes the student home screen on demand; nothing is
// cached, every request reads the live rows.
type DashboardService struct {
	classRepo        *repository.ClassRepository
	lessonRepo       *repository.LessonRepository
	assignmentRepo   *repository.AssignmentRepository
	testRepo         *repository.TestRepository
	badgeRepo        *repository.BadgeRepository
	notificationRepo *repository.NotificationRepository
}

func NewDashboardService(
	classRepo *repository.ClassRepository,
	lessonRepo *repository.LessonRepository,
	assignmentRepo *repository.AssignmentRepository,
	testRepo *repository.TestRepository,
	badgeRepo *repository.BadgeRepository,
	notificationRepo *repository.NotificationRepository,
) *DashboardService {
	return &DashboardService{
		classRepo:        classRepo,
		lessonRepo:       lessonRepo,
		assignmentRepo:   assignmentRepo,
		testRepo:         testRepo,
		badgeRepo:        badgeRepo,
		notificationRepo: notificationRepo,
	}
}

// UpcomingDeadline is an assignment due on or after now, with the number of
// whole days left.
type UpcomingDeadline struct {
	AssignmentID string    `json:"assignmentId"`
	Title        string    `json:"title"`
	ClassName    string    `json:"className,omitempty"`
	DueDate      time.Time `json:"dueDate"`
	DaysLeft     int       `json:"daysLeft"`
}

type UpcomingLesson struct {
	LessonID      string    `json:"lessonId"`
	Title         string    `json:"title"`
	ClassName     string    `json:"className,omitempty"`
	TeacherName   string    `json:"teacherName,omitempty"`
	ScheduledDate time.Time `json:"scheduledDate"`
	DaysUntil     int       `json:"daysUntil"`
}

type StudentDashboard struct {
	ClassCount         int                  `json:"classCount"`
	AverageProgress    int                  `json:"averageProgress"`
	PendingAssignments int                  `json:"pendingAssignments"`
	RecentTestAverage  int                  `json:"recentTestAverage"`
	UpcomingLessons    []UpcomingLesson     `json:"upcomingLessons"`
	UpcomingDeadlines  []UpcomingDeadline   `json:"upcomingDeadlines"`
	RecentBadges       []model.StudentBadge `json:"recentBadges"`
	UnreadCount        int64                `json:"unreadCount"`
}

// upcomingWindow is how far ahead the lesson outlook reaches.
const upcomingWindow = 14 * 24 * time.Hour

// daysBetween rounds up, so a due date later today still counts as one day.
func daysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// StudentOverview runs the dashboard reductions as independent concurrent
// queries over the student's enrolled classes.
func (s *DashboardService) StudentOverview(ctx context.Context, studentID string) (*StudentDashboard, error) {
	enrollments, err := s.classRepo.FindEnrollmentsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	classIDs := make([]string, 0, len(enrollments))
	var allPlans []model.LessonPlan
	for i := range enrollments {
		classIDs = append(classIDs, enrollments[i].ClassID)
		if enrollments[i].Class != nil {
			allPlans = append(allPlans, enrollments[i].Class.LessonPlans...)
		}
	}

	now := time.Now()
	dashboard := &StudentDashboard{
		ClassCount:        len(classIDs),
		AverageProgress:   AverageProgress(allPlans),
		UpcomingLessons:   []UpcomingLesson{},
		UpcomingDeadlines: []UpcomingDeadline{},
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		assignments, err := s.assignmentRepo.FindByClassIDs(classIDs)
		if err != nil {
			return err
		}
		submittedIDs, err := s.assignmentRepo.FindSubmittedAssignmentIDs(studentID)
		if err != nil {
			return err
		}
		submitted := make(map[string]bool, len(submittedIDs))
		for _, id := range submittedIDs {
			submitted[id] = true
		}

		pending := 0
		var deadlines []UpcomingDeadline
		for i := range assignments {
			a := &assignments[i]
			if !submitted[a.ID] {
				pending++
			}
			if a.DueDate != nil && !a.DueDate.Before(now) && len(deadlines) < 5 {
				deadline := UpcomingDeadline{
					AssignmentID: a.ID,
					Title:        a.Title,
					DueDate:      *a.DueDate,
					DaysLeft:     daysBetween(now, *a.DueDate),
				}
				if a.Lesson != nil && a.Lesson.Class != nil {
					deadline.ClassName = a.Lesson.Class.Name
				}
				deadlines = append(deadlines, deadline)
			}
		}
		dashboard.PendingAssignments = pending
		if deadlines != nil {
			dashboard.UpcomingDeadlines = deadlines
		}
		return nil
	})

	g.Go(func() error {
		results, err := s.testRepo.FindRecentResultsByStudent(studentID, 5)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		total := 0
		for i := range results {
			maxScore := 100
			if results[i].Test != nil && results[i].Test.MaxScore > 0 {
				maxScore = results[i].Test.MaxScore
			}
			total += percentage(results[i].Score, maxScore)
		}
		dashboard.RecentTestAverage = int(math.Round(float64(total) / float64(len(results))))
		return nil
	})

	g.Go(func() error {
		plans, err := s.lessonRepo.FindUpcomingByClassIDs(classIDs, now, now.Add(upcomingWindow))
		if err != nil {
			return err
		}
		lessons := make([]UpcomingLesson, 0, len(plans))
		for i := range plans {
			p := &plans[i]
			if p.ScheduledDate == nil {
				continue
			}
			lesson := UpcomingLesson{
				LessonID:      p.ID,
				Title:         p.Title,
				ScheduledDate: *p.ScheduledDate,
				DaysUntil:     daysBetween(now, *p.ScheduledDate),
			}
			if p.Class != nil {
				lesson.ClassName = p.Class.Name
				if p.Class.Teacher != nil {
					lesson.TeacherName = p.Class.Teacher.Username
				}
			}
			lessons = append(lessons, lesson)
		}
		dashboard.UpcomingLessons = lessons
		return nil
	})

	g.Go(func() error {
		badges, err := s.badgeRepo.FindRecentByStudent(studentID, 3)
		if err != nil {
			return err
		}
		dashboard.RecentBadges = badges
		return nil
	})

	g.Go(func() error {
		count, err := s.notificationRepo.CountUnread(studentID)
		if err != nil {
			return err
		}
		dashboard.UnreadCount = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
