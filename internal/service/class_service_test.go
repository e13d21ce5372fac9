package service

import (
	"testing"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClassGeneratesInviteCode(t *testing.T) {
	env := newTestEnv(t)
	svc := NewClassService(env.repos.class, env.access)

	teacher := env.createUser(t, model.Teacher, nil)
	class, err := svc.CreateClass(teacher.ID, &CreateClassInput{Name: "Physics", Subject: "Science"})
	require.NoError(t, err)
	assert.Len(t, class.InviteCode, 8)
	assert.NotContains(t, class.InviteCode, "0")
	assert.NotContains(t, class.InviteCode, "O")
}

func TestJoinClass(t *testing.T) {
	env := newTestEnv(t)
	svc := NewClassService(env.repos.class, env.access)

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	class, err := svc.CreateClass(teacher.ID, &CreateClassInput{Name: "Physics"})
	require.NoError(t, err)

	enrollment, err := svc.JoinClass(student.ID, &JoinClassInput{InviteCode: class.InviteCode})
	require.NoError(t, err)
	assert.Equal(t, class.ID, enrollment.ClassID)

	// joining twice is idempotent
	again, err := svc.JoinClass(student.ID, &JoinClassInput{InviteCode: class.InviteCode})
	require.NoError(t, err)
	assert.Equal(t, enrollment.ID, again.ID)

	_, err = svc.JoinClass(student.ID, &JoinClassInput{InviteCode: "NOPE1234"})
	assert.ErrorIs(t, err, util.ErrInvalidInviteCode)
}

func TestMyClassesAverageProgress(t *testing.T) {
	env := newTestEnv(t)
	svc := NewClassService(env.repos.class, env.access)

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)

	withPlans := env.createClass(t, teacher.ID)
	env.createPlan(t, withPlans.ID, 40, nil)
	env.createPlan(t, withPlans.ID, 80, nil)
	env.enroll(t, withPlans.ID, student.ID, nil)

	empty := env.createClass(t, teacher.ID)
	env.enroll(t, empty.ID, student.ID, nil)

	summaries, err := svc.MyClasses(student)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[string]ClassSummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	assert.Equal(t, 60, byID[withPlans.ID].AverageProgress)
	assert.Equal(t, 0, byID[empty.ID].AverageProgress, "class without plans averages to zero")
}

func TestAverageProgressRounds(t *testing.T) {
	cases := []struct {
		name     string
		progress []int
		want     int
	}{
		{"empty", nil, 0},
		{"exact", []int{40, 80}, 60},
		{"rounds up", []int{50, 55}, 53},
		{"rounds down", []int{50, 54}, 52},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plans := make([]model.LessonPlan, len(tc.progress))
			for i, p := range tc.progress {
				plans[i].Progress = p
			}
			assert.Equal(t, tc.want, AverageProgress(plans))
		})
	}
}
