package errorvalues

import (
	"errors"
	"fmt"
)

var (
	ErrPracticeNotFound = errors.New("practice doesn't exist")
	ErrSystemPractice   = errors.New("system practice can't be changed")
	ErrWrongOwner       = errors.New("practice belongs to another user")
	ErrPracticeExists   = errors.New("practice with such name already exists")

	ErrValidation      = errors.New("validation error")
	ErrInvalidDuration = fmt.Errorf("%w: duration must be between 1 and 1440 minutes", ErrValidation)

	// Infrastructure failures. Never abort a user-visible action.
	ErrPersistence = errors.New("remote store unavailable")
	ErrCache       = errors.New("local cache failure")

	ErrEngineClosed = errors.New("practice engine closed")
	ErrInvalidToken = errors.New("invalid token")
)
