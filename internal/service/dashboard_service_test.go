package service

import (
	"context"
	"testing"
	"time"

	"tutorboard_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) dashboardService() *DashboardService {
	return NewDashboardService(e.repos.class, e.repos.lesson, e.repos.assignment,
		e.repos.test, e.repos.badge, e.repos.notification)
}

func TestStudentOverviewEmpty(t *testing.T) {
	env := newTestEnv(t)
	svc := env.dashboardService()

	student := env.createUser(t, model.Student, nil)

	dashboard, err := svc.StudentOverview(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Zero(t, dashboard.ClassCount)
	assert.Zero(t, dashboard.AverageProgress, "no plans averages to zero, not NaN")
	assert.Zero(t, dashboard.PendingAssignments)
	assert.Zero(t, dashboard.RecentTestAverage)
	assert.Empty(t, dashboard.UpcomingLessons)
	assert.Empty(t, dashboard.UpcomingDeadlines)
}

func TestStudentOverviewPendingSetDifference(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	assignmentSvc := NewAssignmentService(env.repos.class, env.repos.assignment)
	svc := env.dashboardService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)
	plan := env.createPlan(t, class.ID, 50, nil)

	a1, err := teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "One"})
	require.NoError(t, err)
	_, err = teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Two"})
	require.NoError(t, err)
	_, err = teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Three"})
	require.NoError(t, err)

	_, err = assignmentSvc.Submit(student.ID, a1.ID, &SubmitInput{})
	require.NoError(t, err)

	dashboard, err := svc.StudentOverview(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.PendingAssignments, "submitted work leaves the pending set")
	assert.Equal(t, 50, dashboard.AverageProgress)
}

func TestStudentOverviewRecentTestAverage(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := env.dashboardService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	// six tests; only the most recent five count toward the average
	scores := []int{10, 20, 30, 40, 50, 100}
	for _, score := range scores {
		test, err := teacherSvc.CreateTest(teacher.ID, &TestInput{LessonID: plan.ID, Title: "T", MaxScore: 100})
		require.NoError(t, err)
		require.NoError(t, teacherSvc.RecordTestResults(teacher.ID, test.ID, &BulkTestResultsInput{
			Entries: []TestResultEntry{{StudentID: student.ID, Score: score}},
		}))
		time.Sleep(5 * time.Millisecond)
	}

	dashboard, err := svc.StudentOverview(context.Background(), student.ID)
	require.NoError(t, err)
	// most recent five: 20 30 40 50 100 -> 48
	assert.Equal(t, 48, dashboard.RecentTestAverage)
}

func TestStudentOverviewDeadlinesAndLessons(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := env.dashboardService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)

	soon := time.Now().Add(48 * time.Hour)
	farOut := time.Now().Add(30 * 24 * time.Hour)
	env.createPlan(t, class.ID, 0, &soon)
	env.createPlan(t, class.ID, 0, &farOut) // outside the 14-day window
	plan := env.createPlan(t, class.ID, 0, nil)

	pastDue := time.Now().Add(-24 * time.Hour)
	_, err := teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Late", DueDate: &pastDue})
	require.NoError(t, err)
	_, err = teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Due", DueDate: &soon})
	require.NoError(t, err)

	dashboard, err := svc.StudentOverview(context.Background(), student.ID)
	require.NoError(t, err)

	require.Len(t, dashboard.UpcomingLessons, 1)
	assert.Equal(t, 2, dashboard.UpcomingLessons[0].DaysUntil)

	require.Len(t, dashboard.UpcomingDeadlines, 1, "past-due assignments are not upcoming")
	assert.Equal(t, "Due", dashboard.UpcomingDeadlines[0].Title)
	assert.Equal(t, 2, dashboard.UpcomingDeadlines[0].DaysLeft)
}

func TestDaysBetweenRoundsUp(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 1, daysBetween(now, now.Add(2*time.Hour)), "later today counts as one day")
	assert.Equal(t, 2, daysBetween(now, now.Add(25*time.Hour)))
	assert.Equal(t, 2, daysBetween(now, now.Add(48*time.Hour)))
}
