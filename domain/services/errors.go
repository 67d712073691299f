package services

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
	// ErrTaskNotFound covers both "no such task" and "owned by someone
	// else"; callers must not be able to tell the two apart.
	ErrTaskNotFound = errors.New("task not found")
)
