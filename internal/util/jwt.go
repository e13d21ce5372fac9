package util

import (
	"encoding/base64"
	"time"

	"tutorboard_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are issued by the Hub identity authority; we only verify signature
// and expiry and trust the embedded fields. HubUserID shadows the registered
// "sub" claim, which the Hub emits as a numeric id.
type Claims struct {
	HubUserID int64          `json:"sub"`
	Email     string         `json:"email"`
	Username  string         `json:"username"`
	Role      model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// SigningKey decodes the shared Hub secret. The Hub distributes it base64
// encoded; a raw secret is accepted as a fallback.
func SigningKey(secret string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(secret); err == nil {
		return decoded
	}
	return []byte(secret)
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return SigningKey(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Name}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// GenerateJWT mints a Hub-compatible token. The backend never issues tokens
// in production; this exists for local development and tests.
func GenerateJWT(hubUserID int64, email, username string, role model.UserRole, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		HubUserID: hubUserID,
		Email:     email,
		Username:  username,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(SigningKey(secret))
}

func GetClaimsFromContext(c *gin.Context) *Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserFromContext returns the lazily provisioned local user set by the
// auth middleware.
func GetUserFromContext(c *gin.Context) *model.User {
	v, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}
