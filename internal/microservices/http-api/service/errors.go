package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced to callers. Concrete errors wrap one of these,
// match them with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrGoalSync means the record change was saved but the owner's
	// reading goals could not be recomputed. Nothing is rolled back.
	ErrGoalSync = errors.New("goal synchronization failed")
)

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// lookupErr turns a repository miss into ErrNotFound and passes other errors through
func lookupErr(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(format, args...)
	}
	return err
}
