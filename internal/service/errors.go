package service

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseEmpty          = errors.New("course is empty")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrUserProgressNotFound = errors.New("user progress not found")
	ErrHeartsFull           = errors.New("hearts are already full")
	ErrNotEnoughPoints      = errors.New("not enough points")
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrConflict             = errors.New("conflict")
)
