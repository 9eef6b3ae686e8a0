package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrBlockNotFound        = errors.New("course block not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAssignmentLocked     = errors.New("assignment is locked")
	ErrAlreadyAssigned      = errors.New("assignment already assigned to this student")
	ErrAlreadyPassed        = errors.New("assignment already passed")
	ErrNothingSubmitted     = errors.New("submission text or file required")
	ErrNotAttempted         = errors.New("assignment has not been attempted")
	ErrStudySessionNotFound = errors.New("study session not found")
)
