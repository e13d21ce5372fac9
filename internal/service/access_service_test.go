package service

import (
	"testing"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyClassAccess(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	parent := env.createUser(t, model.Parent, nil)
	outsider := env.createUser(t, model.Student, nil)

	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, &parent.ID)

	for _, user := range []*model.User{teacher, student, parent} {
		got, err := env.access.VerifyClassAccess(user, class.ID)
		require.NoError(t, err, "role %s should have access", user.Role)
		assert.Equal(t, class.ID, got.ID)
	}

	_, err := env.access.VerifyClassAccess(outsider, class.ID)
	assert.ErrorIs(t, err, util.ErrAccessDenied)

	// A class that does not exist looks exactly like a class the user
	// cannot see.
	_, err = env.access.VerifyClassAccess(student, "missing-id")
	assert.ErrorIs(t, err, util.ErrAccessDenied)
}

func TestVerifyClassOwner(t *testing.T) {
	env := newTestEnv(t)

	owner := env.createUser(t, model.Teacher, nil)
	other := env.createUser(t, model.Teacher, nil)
	class := env.createClass(t, owner.ID)

	_, err := env.access.VerifyClassOwner(owner.ID, class.ID)
	assert.NoError(t, err)

	_, err = env.access.VerifyClassOwner(other.ID, class.ID)
	assert.ErrorIs(t, err, util.ErrAccessDenied)
}

func TestVerifyParentOfChild(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.createUser(t, model.Teacher, nil)
	student := env.createUser(t, model.Student, nil)
	parent := env.createUser(t, model.Parent, nil)
	stranger := env.createUser(t, model.Parent, nil)

	class := env.createClass(t, teacher.ID)
	env.enroll(t, class.ID, student.ID, &parent.ID)

	assert.NoError(t, env.access.VerifyParentOfChild(parent.ID, student.ID))
	assert.ErrorIs(t, env.access.VerifyParentOfChild(stranger.ID, student.ID), util.ErrAccessDenied)
}
