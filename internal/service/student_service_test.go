package service

import (
	"testing"
	"time"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) studentService() *StudentService {
	return NewStudentService(e.repos.class, e.repos.lesson, e.repos.assignment,
		e.repos.test, e.repos.attendance, e.repos.comment, e.access, e.notifications)
}

func TestClassRecords(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := env.studentService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	_, err := teacherSvc.CreateLessonRecord(teacher.ID, plan.ID, &LessonRecordInput{
		RecordDate: day,
		Summary:    "Covered chapter 4",
		PagesFrom:  intPtr(40),
		PagesTo:    intPtr(52),
	})
	require.NoError(t, err)

	require.NoError(t, teacherSvc.RecordAttendance(teacher.ID, class.ID, &BulkAttendanceInput{
		Date:    day,
		Entries: []AttendanceEntry{{StudentID: student.ID, Status: model.AttendanceLate}},
	}))

	view, err := svc.ClassRecords(student, class.ID)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Covered chapter 4", view.Rows[0].Summary)
	assert.Equal(t, model.AttendanceLate, view.Rows[0].AttendanceStatus)
	assert.Equal(t, 1, view.Summary.TotalRecords)
	assert.Equal(t, 100, view.Summary.AttendanceRate, "late still counts as attended")
}

func TestClassRecordsForbiddenForOutsider(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()

	teacher := env.createUser(t, model.Teacher, nil)
	outsider := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)

	_, err := svc.ClassRecords(outsider, class.ID)
	assert.ErrorIs(t, err, util.ErrAccessDenied)
}

func TestPostClassCommentDefaultsToTeacher(t *testing.T) {
	env := newTestEnv(t)
	svc := env.studentService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)

	comment, err := svc.PostClassComment(student, class.ID, &ClassCommentInput{Content: "Question about homework"})
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, comment.TargetID)

	// the teacher is notified
	var count int64
	require.NoError(t, env.db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", teacher.ID, model.NotifyComment).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// and the thread is visible to both parties
	thread, err := svc.ClassComments(student, class.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "Question about homework", thread[0].Content)
}

func intPtr(v int) *int { return &v }
