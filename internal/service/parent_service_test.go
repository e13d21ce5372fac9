package service

import (
	"context"
	"testing"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) parentService() *ParentService {
	return NewParentService(e.repos.class, e.repos.lesson, e.repos.assignment,
		e.repos.test, e.repos.attendance, e.repos.comment, e.repos.notification,
		e.access, e.notifications)
}

func TestParentDashboard(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := env.parentService()

	teacher := env.createUser(t, model.Teacher, nil)
	parent := env.createUser(t, model.Parent, nil)
	child := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, child.ID, &parent.ID)
	plan := env.createPlan(t, class.ID, 0, nil)

	_, err := teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Homework"})
	require.NoError(t, err)

	require.NoError(t, teacherSvc.RecordAttendance(teacher.ID, class.ID, &BulkAttendanceInput{
		Date:    time.Now(),
		Entries: []AttendanceEntry{{StudentID: child.ID, Status: model.AttendancePresent}},
	}))

	dashboard, err := svc.Dashboard(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Len(t, dashboard.Children, 1)

	summary := dashboard.Children[0]
	assert.Equal(t, child.ID, summary.Student.ID)
	assert.Equal(t, 1, summary.PendingAssignments)
	require.Len(t, summary.TodayAttendance, 1)
	assert.Equal(t, model.AttendancePresent, summary.TodayAttendance[0].Status)
	assert.NotEmpty(t, dashboard.RecentNotifications, "attendance save notified the parent")
}

func TestChildEndpointsRequireLink(t *testing.T) {
	env := newTestEnv(t)
	svc := env.parentService()

	teacher := env.createUser(t, model.Teacher, nil)
	parent := env.createUser(t, model.Parent, nil)
	stranger := env.createUser(t, model.Parent, nil)
	child := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, child.ID, &parent.ID)

	_, err := svc.ChildAttendance(stranger.ID, child.ID, "")
	assert.ErrorIs(t, err, util.ErrAccessDenied)
	_, err = svc.ChildTimeline(stranger.ID, child.ID)
	assert.ErrorIs(t, err, util.ErrAccessDenied)
	_, err = svc.ChildTrend(stranger.ID, child.ID, "")
	assert.ErrorIs(t, err, util.ErrAccessDenied)

	_, err = svc.ChildAttendance(parent.ID, child.ID, "")
	assert.NoError(t, err)
}

func TestChildTimelineMergedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := env.parentService()

	teacher := env.createUser(t, model.Teacher, nil)
	parent := env.createUser(t, model.Parent, nil)
	child := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, child.ID, &parent.ID)
	plan := env.createPlan(t, class.ID, 0, nil)

	_, err := teacherSvc.CreateLessonRecord(teacher.ID, plan.ID, &LessonRecordInput{
		RecordDate: time.Now().Add(-48 * time.Hour),
		Summary:    "older",
	})
	require.NoError(t, err)
	_, err = teacherSvc.CreateLessonRecord(teacher.ID, plan.ID, &LessonRecordInput{
		RecordDate: time.Now().Add(-1 * time.Hour),
		Summary:    "newer",
	})
	require.NoError(t, err)

	test, err := teacherSvc.CreateTest(teacher.ID, &TestInput{LessonID: plan.ID, Title: "Quiz", MaxScore: 100})
	require.NoError(t, err)
	require.NoError(t, teacherSvc.RecordTestResults(teacher.ID, test.ID, &BulkTestResultsInput{
		Entries: []TestResultEntry{{StudentID: child.ID, Score: 80}},
	}))

	items, err := svc.ChildTimeline(parent.ID, child.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(items), 3)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Date.After(items[i-1].Date), "timeline must be newest first")
	}
}

func TestParentCommentNotifiesTarget(t *testing.T) {
	env := newTestEnv(t)
	svc := env.parentService()

	teacher := env.createUser(t, model.Teacher, nil)
	parent := env.createUser(t, model.Parent, nil)
	child := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, child.ID, &parent.ID)

	comment, err := svc.PostComment(parent.ID, child.ID, &ParentCommentInput{
		TargetID: teacher.ID,
		Content:  "How is my kid doing?",
	})
	require.NoError(t, err)
	assert.Equal(t, child.ID, comment.StudentID)

	var count int64
	require.NoError(t, env.db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", teacher.ID, model.NotifyComment).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	comments, err := svc.ChildComments(parent.ID, child.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
