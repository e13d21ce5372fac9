package service

import (
	"testing"
	"time"

	"tutorboard_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	past := timePtr(now.Add(-24 * time.Hour))
	future := timePtr(now.Add(24 * time.Hour))

	pending := &model.AssignmentSubmission{Status: model.SubmissionPending}
	submitted := &model.AssignmentSubmission{Status: model.SubmissionSubmitted}
	graded := &model.AssignmentSubmission{Status: model.SubmissionGraded}

	tests := []struct {
		name       string
		dueDate    *time.Time
		submission *model.AssignmentSubmission
		want       bool
	}{
		{name: "no due date", dueDate: nil, submission: nil, want: false},
		{name: "future due date", dueDate: future, submission: nil, want: false},
		{name: "past due no submission", dueDate: past, submission: nil, want: true},
		{name: "past due pending", dueDate: past, submission: pending, want: true},
		{name: "past due submitted", dueDate: past, submission: submitted, want: false},
		{name: "past due graded", dueDate: past, submission: graded, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &model.Assignment{DueDate: tt.dueDate}
			assert.Equal(t, tt.want, isOverdue(a, tt.submission, now))
		})
	}
}

func TestSubmitAndResubmit(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := NewAssignmentService(env.repos.class, env.repos.assignment)

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	assignment, err := teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Essay"})
	require.NoError(t, err)

	first, err := svc.Submit(student.ID, assignment.ID, &SubmitInput{FileURL: "/uploads/files/a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionSubmitted, first.Status)
	require.NotNil(t, first.SubmittedAt)

	// resubmission replaces the file and resets the timestamp; the row stays
	// unique per (assignment, student)
	time.Sleep(10 * time.Millisecond)
	second, err := svc.Submit(student.ID, assignment.ID, &SubmitInput{FileURL: "/uploads/files/b.pdf"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "/uploads/files/b.pdf", second.SubmissionFileURL)
	assert.True(t, second.SubmittedAt.After(*first.SubmittedAt) || second.SubmittedAt.Equal(*first.SubmittedAt))

	var count int64
	require.NoError(t, env.db.Model(&model.AssignmentSubmission{}).
		Where("assignment_id = ? AND student_id = ?", assignment.ID, student.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMyAssignmentsScopedToEnrollment(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := NewAssignmentService(env.repos.class, env.repos.assignment)

	teacher := env.createUser(t, model.Teacher, nil)
	enrolled := env.createUser(t, model.Student, nil)
	outsider := env.createUser(t, model.Student, nil)
	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, enrolled.ID, nil)
	plan := env.createPlan(t, class.ID, 0, nil)

	assignment, err := teacherSvc.CreateAssignment(teacher.ID, &AssignmentInput{LessonID: plan.ID, Title: "Essay"})
	require.NoError(t, err)

	mine, err := svc.MyAssignments(enrolled.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, assignment.ID, mine[0].ID)

	theirs, err := svc.MyAssignments(outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = svc.GetAssignment(outsider.ID, assignment.ID)
	assert.Error(t, err)
}
