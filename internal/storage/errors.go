// Package storage holds what every storage driver shares: the sentinel
// errors services match on and helpers that stitch flat rows into the
// course tree.
package storage

import "errors"

var (
	ErrCourseNotFound            = errors.New("course not found")
	ErrUnitNotFound              = errors.New("unit not found")
	ErrLessonNotFound            = errors.New("lesson not found")
	ErrChallengeNotFound         = errors.New("challenge not found")
	ErrChallengeOptionNotFound   = errors.New("challenge option not found")
	ErrChallengeProgressNotFound = errors.New("challenge progress not found")
	ErrUserProgressNotFound      = errors.New("user progress not found")
	ErrSubscriptionNotFound      = errors.New("subscription not found")

	// ErrMissingReference is returned when a write points at a parent row
	// that does not exist.
	ErrMissingReference = errors.New("referenced row does not exist")
	// ErrDuplicate is returned when a write collides with a unique key.
	ErrDuplicate = errors.New("duplicate key")
)
