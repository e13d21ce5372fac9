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

func TestCreateAssignmentFanOut(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	teacher := env.createUser(t, model.Teacher, nil)
	linked := env.createUser(t, model.Student, int64Ptr(101))
	unlinked := env.createUser(t, model.Student, nil)

	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, linked.ID, nil)
	env.enroll(t, class.ID, unlinked.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	due := time.Now().Add(72 * time.Hour)
	assignment, err := svc.CreateAssignment(teacher.ID, &AssignmentInput{
		LessonID: plan.ID,
		Title:    "Worksheet 3",
		DueDate:  &due,
	})
	require.NoError(t, err)

	// one pending submission per enrolled student
	var submissions []model.AssignmentSubmission
	require.NoError(t, env.db.Where("assignment_id = ?", assignment.ID).Find(&submissions).Error)
	assert.Len(t, submissions, 2)
	for _, sub := range submissions {
		assert.Equal(t, model.SubmissionPending, sub.Status)
	}

	// one notification per enrolled student
	var notifications []model.Notification
	require.NoError(t, env.db.Where("reference_id = ?", assignment.ID).Find(&notifications).Error)
	assert.Len(t, notifications, 2)

	// schedule rows only for hub-linked students
	var events []model.SharedScheduleEvent
	require.NoError(t, env.db.Where("source_id = ?", assignment.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "101", events[0].HubUserID)
	assert.Equal(t, "[Assignment] Worksheet 3", events[0].Title)
}

func TestCreateAssignmentWithoutDueDateSkipsSync(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, int64Ptr(102))
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	assignment, err := svc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Reading"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&model.SharedScheduleEvent{}).
		Where("source_id = ?", assignment.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordAttendanceUpsertAndParentNotifications(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	teacher := env.createUser(t, model.Teacher, nil)
	parent := env.createUser(t, model.Parent, nil)
	withParent := env.createUser(t, model.Student, nil)
	noParent := env.createUser(t, model.Student, nil)

	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, withParent.ID, &parent.ID)
	env.enroll(t, class.ID, noParent.ID, nil)

	input := &BulkAttendanceInput{
		Date: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Entries: []AttendanceEntry{
			{StudentID: withParent.ID, Status: model.AttendanceAbsent},
			{StudentID: noParent.ID, Status: model.AttendancePresent},
		},
	}
	require.NoError(t, svc.RecordAttendance(teacher.ID, class.ID, input))

	// re-saving the same day replaces, never duplicates
	input.Entries[0].Status = model.AttendanceLate
	require.NoError(t, svc.RecordAttendance(teacher.ID, class.ID, input))

	var records []model.Attendance
	require.NoError(t, env.db.Where("class_id = ?", class.ID).Find(&records).Error)
	assert.Len(t, records, 2)
	for _, r := range records {
		if r.StudentID == withParent.ID {
			assert.Equal(t, model.AttendanceLate, r.Status)
		}
	}

	// only the linked parent is notified, once per save
	var count int64
	require.NoError(t, env.db.Model(&model.Notification{}).
		Where("user_id = ?", parent.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRecordAttendanceSurvivesNotificationFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	teacher := env.createUser(t, model.Teacher, nil)
	parent := env.createUser(t, model.Parent, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, &parent.ID)

	// force every notification insert to fail
	require.NoError(t, env.db.Migrator().DropTable(&model.Notification{}))

	err := svc.RecordAttendance(teacher.ID, class.ID, &BulkAttendanceInput{
		Date: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Entries: []AttendanceEntry{
			{StudentID: student.ID, Status: model.AttendanceAbsent},
		},
	})
	require.NoError(t, err, "attendance save must not depend on notification delivery")

	var records []model.Attendance
	require.NoError(t, env.db.Where("class_id = ?", class.ID).Find(&records).Error)
	assert.Len(t, records, 1)
}

func TestRecordTestResultsUpsert(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	test, err := svc.CreateTest(teacher.ID, &TestInput{LessonID: plan.ID, Title: "Quiz 1", MaxScore: 50})
	require.NoError(t, err)

	first := &BulkTestResultsInput{Entries: []TestResultEntry{{StudentID: student.ID, Score: 30}}}
	require.NoError(t, svc.RecordTestResults(teacher.ID, test.ID, first))

	second := &BulkTestResultsInput{Entries: []TestResultEntry{{StudentID: student.ID, Score: 45, Feedback: "better"}}}
	require.NoError(t, svc.RecordTestResults(teacher.ID, test.ID, second))

	var results []model.TestResult
	require.NoError(t, env.db.Where("test_id = ?", test.ID).Find(&results).Error)
	require.Len(t, results, 1, "second entry overwrites, never duplicates")
	assert.Equal(t, 45, results[0].Score)
	assert.Equal(t, "better", results[0].Feedback)
}

func TestDeleteAssignmentRemovesScheduleRows(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, int64Ptr(103))
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	due := time.Now().Add(24 * time.Hour)
	assignment, err := svc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Essay", DueDate: &due})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAssignment(teacher.ID, assignment.ID))

	var count int64
	require.NoError(t, env.db.Model(&model.SharedScheduleEvent{}).
		Where("source_id = ?", assignment.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTeacherOperationsRejectNonOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	owner := env.createUser(t, model.Teacher, nil)
	intruder := env.createUser(t, model.Teacher, nil)
	class := env.createClass(t, owner.ID)
	plan := env.createPlan(t, class.ID, 0, nil)

	_, err := svc.CreateLessonPlan(intruder.ID, class.ID, &LessonPlanInput{Title: "X"})
	assert.ErrorIs(t, err, util.ErrAccessDenied)

	_, err = svc.CreateAssignment(intruder.ID, &AssignmentInput{LessonID: plan.ID, Title: "X"})
	assert.ErrorIs(t, err, util.ErrAccessDenied)

	err = svc.RecordAttendance(intruder.ID, class.ID, &BulkAttendanceInput{
		Date:    time.Now(),
		Entries: []AttendanceEntry{{StudentID: "s", Status: model.AttendancePresent}},
	})
	assert.ErrorIs(t, err, util.ErrAccessDenied)
}

func TestTeacherDashboard(t *testing.T) {
	env := newTestEnv(t)
	svc := env.teacherService()

	teacher := env.createUser(t, model.Teacher, nil)
	s1 := env.createUser(t, model.Student, nil)
	s2 := env.createUser(t, model.Student, nil)

	c1 := env.createClass(t, teacher.ID)
	c2 := env.createClass(t, teacher.ID)
	env.enroll(t, c1.ID, s1.ID, nil)
	env.enroll(t, c1.ID, s2.ID, nil)
	env.enroll(t, c2.ID, s1.ID, nil)

	dashboard, err := svc.Dashboard(context.Background(), teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.ClassCount)
	assert.Equal(t, 2, dashboard.StudentCount, "students are distinct across classes")
}
