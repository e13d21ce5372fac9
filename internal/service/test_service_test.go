package service

import (
	"testing"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		score, max, want int
	}{
		{30, 50, 60},
		{1, 3, 33},
		{2, 3, 67},
		{100, 100, 100},
		{0, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percentage(tt.score, tt.max))
	}
}

func TestMyTrendScopedToClass(t *testing.T) {
	env := newTestEnv(t)
	teacherSvc := env.teacherService()
	svc := NewTestService(env.repos.class, env.repos.test)

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)

	mathClass := env.createClass(t, teacher.ID)
	scienceClass := env.createClass(t, teacher.ID)
	env.enroll(t, mathClass.ID, student.ID, nil)
	env.enroll(t, scienceClass.ID, student.ID, nil)
	mathPlan := env.createPlan(t, mathClass.ID, 0, nil)
	sciencePlan := env.createPlan(t, scienceClass.ID, 0, nil)

	mathTest, err := teacherSvc.CreateTest(teacher.ID, &TestInput{LessonID: mathPlan.ID, Title: "Math", MaxScore: 100})
	require.NoError(t, err)
	scienceTest, err := teacherSvc.CreateTest(teacher.ID, &TestInput{LessonID: sciencePlan.ID, Title: "Science", MaxScore: 100})
	require.NoError(t, err)

	require.NoError(t, teacherSvc.RecordTestResults(teacher.ID, mathTest.ID, &BulkTestResultsInput{
		Entries: []TestResultEntry{{StudentID: student.ID, Score: 70}},
	}))
	require.NoError(t, teacherSvc.RecordTestResults(teacher.ID, scienceTest.ID, &BulkTestResultsInput{
		Entries: []TestResultEntry{{StudentID: student.ID, Score: 90}},
	}))

	all, err := svc.MyTrend(student.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mathOnly, err := svc.MyTrend(student.ID, mathClass.ID)
	require.NoError(t, err)
	require.Len(t, mathOnly, 1)
	assert.Equal(t, 70, mathOnly[0].Score)
}

func TestMyResultMissing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTestService(env.repos.class, env.repos.test)

	student := env.createUser(t, model.Student, nil)
	_, err := svc.MyResult(student.ID, "no-such-test")
	assert.ErrorIs(t, err, util.ErrResultNotFound)
}
