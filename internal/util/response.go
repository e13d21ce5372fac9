package util

import (
	"errors"
	"net/http"

	"tutorboard_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response is the uniform JSON envelope for every endpoint.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// ServiceError maps service-layer sentinel errors onto the HTTP taxonomy:
// not-found, forbidden, unauthorized, service-unavailable; anything else is a
// logged 500.
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccessDenied):
		Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrSSORejected):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrHubUnavailable):
		Error(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ErrClassNotFound),
		errors.Is(err, ErrInvalidInviteCode),
		errors.Is(err, ErrLessonPlanNotFound),
		errors.Is(err, ErrAssignmentNotFound),
		errors.Is(err, ErrTestNotFound),
		errors.Is(err, ErrSubmissionNotFound),
		errors.Is(err, ErrResultNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		Error(c, http.StatusNotFound, err.Error())
	default:
		LogInternalError(c, err)
	}
}
