package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrStudentNotFound   = errors.New("student not found")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrGoalCycle         = errors.New("goal hierarchy contains a cycle")
	ErrParentNotFound    = errors.New("parent goal not found in scope")
	ErrReportNotFound    = errors.New("progress report not found")
	ErrTrialGoalMismatch = errors.New("trial result references a goal from another student")
)
