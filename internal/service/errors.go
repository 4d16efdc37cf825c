package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrEmptyAnswer        = errors.New("answer cannot be empty")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrUserNotFound       = errors.New("user not found")
)
