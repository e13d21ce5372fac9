package middleware

import (
	"strings"

	"tutorboard_backend/internal/config"
	"tutorboard_backend/internal/model"
	"tutorboard_backend/internal/service"
	"tutorboard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Hub-issued bearer token and resolves (or
// lazily provisions) the local user, storing both claims and user in the
// request context.
func AuthMiddleware(cfg *config.Config, authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(parts[1], cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := authService.GetOrCreateUser(claims)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("user", user)
		c.Next()
	}
}

// RoleMiddleware gates a route group to the given roles.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		util.Forbidden(c)
		c.Abort()
	}
}
