package service

import (
	"errors"
	"fmt"
	"strings"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrSetNotFound      = errors.New("set not found")
	ErrExerciseInUse    = errors.New("exercise is used in workouts")
	ErrImportFormat     = errors.New("invalid backup format")
)

// ReferentialIntegrityError is returned when deleting an exercise that workouts still reference.
type ReferentialIntegrityError struct {
	ExerciseID string
	WorkoutIDs []string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete exercise %s: used in workouts %s", e.ExerciseID, strings.Join(e.WorkoutIDs, ", "))
}

func (e *ReferentialIntegrityError) Is(target error) bool {
	return target == ErrExerciseInUse
}

// ImportFormatError reports a malformed or incomplete backup document.
type ImportFormatError struct {
	Reason string
	Err    error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", ErrImportFormat, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrImportFormat, e.Reason)
}

func (e *ImportFormatError) Is(target error) bool {
	return target == ErrImportFormat
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}
