package util

import (
	"encoding/base64"
	"testing"
	"time"

	"tutorboard_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigningKey(t *testing.T) {
	raw := []byte("super-secret")
	encoded := base64.StdEncoding.EncodeToString(raw)

	assert.Equal(t, raw, SigningKey(encoded), "base64 secrets are decoded")
	assert.Equal(t, []byte("not base64 !!"), SigningKey("not base64 !!"), "raw secrets pass through")
}

func TestParseJWTRoundTrip(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("hub-shared"))

	token, err := GenerateJWT(42, "kid@example.test", "kid", model.Student, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.HubUserID)
	assert.Equal(t, "kid", claims.Username)
	assert.Equal(t, model.Student, claims.Role)
}

func TestParseJWTRejectsWrongAlgorithm(t *testing.T) {
	secret := "shared"
	claims := &Claims{HubUserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	// HS256 token must fail: only HS512 is accepted
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(SigningKey(secret))
	require.NoError(t, err)

	_, err = ParseJWT(signed, secret)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	secret := "shared"
	token, err := GenerateJWT(1, "", "", model.Student, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, secret)
	assert.Error(t, err)
}

func TestNewInviteCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewInviteCode()
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.NotContains(t, "01OIil", string(r))
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 95, "codes should essentially never collide")
}
