package util

import "errors"

var (
	ErrAccessDenied       = errors.New("access denied")
	ErrClassNotFound      = errors.New("class not found")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrLessonPlanNotFound = errors.New("lesson plan not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrTestNotFound       = errors.New("test not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrResultNotFound     = errors.New("test result not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSSORejected        = errors.New("sso verification failed")
	ErrHubUnavailable     = errors.New("hub sso service unavailable")
)
