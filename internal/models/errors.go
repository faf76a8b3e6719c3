package models

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidTask is returned when a task field fails validation.
	ErrInvalidTask = zerr.New("invalid task")

	// ErrDuplicateTask is returned when two tasks share a name.
	ErrDuplicateTask = zerr.New("duplicate task name")

	// ErrInvalidSettings is returned when optimizer settings fail validation.
	ErrInvalidSettings = zerr.New("invalid settings")
)

// taskError builds an ErrInvalidTask carrying the offending task and field.
func taskError(name, field, reason string) error {
	err := zerr.Wrap(ErrInvalidTask, reason)
	err = zerr.With(err, "task_name", name)
	return zerr.With(err, "field", field)
}

func settingsError(field, reason string) error {
	return zerr.With(zerr.Wrap(ErrInvalidSettings, reason), "field", field)
}

var (
	// ErrUnsupportedFormat is returned for task files with an unknown extension.
	ErrUnsupportedFormat = zerr.New("unsupported task file format")

	// ErrInvalidTaskFile is returned when a task file cannot be decoded.
	ErrInvalidTaskFile = zerr.New("invalid task file")
)

// IsConfigError reports whether err stems from invalid caller input rather
// than a failure inside the optimizer.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidTask) ||
		errors.Is(err, ErrDuplicateTask) ||
		errors.Is(err, ErrInvalidSettings) ||
		errors.Is(err, ErrInvalidTaskFile) ||
		errors.Is(err, ErrUnsupportedFormat)
}
