package service

import (
	"testing"

	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateUserProvisionsLazily(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos.user, nil, nil)

	claims := &util.Claims{
		HubUserID: 42,
		Email:     "kid@example.test",
		Username:  "kid",
		Role:      model.Student,
	}

	created, err := svc.GetOrCreateUser(claims)
	require.NoError(t, err)
	require.NotNil(t, created.HubUserID)
	assert.EqualValues(t, 42, *created.HubUserID)
	assert.Equal(t, model.Student, created.Role)

	// second sighting resolves the same row
	again, err := svc.GetOrCreateUser(claims)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateUserDefaultsRoleToStudent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos.user, nil, nil)

	user, err := svc.GetOrCreateUser(&util.Claims{HubUserID: 7, Username: "anon"})
	require.NoError(t, err)
	assert.Equal(t, model.Student, user.Role)
}

func TestGetOrCreateUserRefreshesProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos.user, nil, nil)

	first, err := svc.GetOrCreateUser(&util.Claims{HubUserID: 9, Username: "old", Email: "old@example.test"})
	require.NoError(t, err)

	updated, err := svc.GetOrCreateUser(&util.Claims{HubUserID: 9, Username: "new", Email: "new@example.test"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "new", updated.Username)
	assert.Equal(t, "new@example.test", updated.Email)
}
