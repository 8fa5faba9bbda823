package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format of Workout.Date. Lexicographic order
// of strings in this layout equals chronological order.
const DateLayout = "2006-01-02"

// WeightUnit type for logged weights
type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lb"
)

func (u WeightUnit) Valid() bool {
	return u == Kilograms || u == Pounds
}

func (u *WeightUnit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !WeightUnit(s).Valid() {
		return fmt.Errorf("unknown weight unit %q", s)
	}
	*u = WeightUnit(s)
	return nil
}

// Set is one unit of performed or planned work within a WorkoutExercise.
type Set struct {
	ID         string     `json:"id"`
	Weight     float64    `json:"weight"`
	WeightUnit WeightUnit `json:"weightUnit"`
	Reps       int        `json:"reps"`
}

func (s *Set) Validate() error {
	if s.Weight < 0 {
		return NewValidationError("weight", "must not be negative")
	}
	if !s.WeightUnit.Valid() {
		return NewValidationError("weightUnit", fmt.Sprintf("unknown unit %q", s.WeightUnit))
	}
	if s.Reps < 0 {
		return NewValidationError("reps", "must not be negative")
	}
	return nil
}

// WorkoutExercise is one exercise's occurrence within one workout.
type WorkoutExercise struct {
	ExerciseID string `json:"exerciseId"`
	Sets       []Set  `json:"sets"`
	Order      int    `json:"order"`
}

func (we WorkoutExercise) Clone() WorkoutExercise {
	we.Sets = append([]Set(nil), we.Sets...)
	if we.Sets == nil {
		we.Sets = []Set{}
	}
	return we
}

// Workout is a named, dated collection of exercises with a Planned/Completed lifecycle.
// A planned workout open in a session is "in progress"; that is not a persisted state.
type Workout struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Exercises   []WorkoutExercise `json:"exercises"`
	IsCompleted bool              `json:"isCompleted"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Validate checks name, date and every nested set. Order is not checked here,
// callers normalise it with NormalizeOrder.
func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	if !ValidDate(w.Date) {
		return NewValidationError("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", w.Date))
	}
	return ValidateWorkoutExercises(w.Exercises)
}

func ValidateWorkoutExercises(list []WorkoutExercise) error {
	for i := range list {
		if list[i].ExerciseID == "" {
			return NewValidationError("exerciseId", "must not be empty")
		}
		for j := range list[i].Sets {
			if err := list[i].Sets[j].Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clone returns a deep copy; nested sets are copied too.
func (w Workout) Clone() Workout {
	exercises := make([]WorkoutExercise, len(w.Exercises))
	for i := range w.Exercises {
		exercises[i] = w.Exercises[i].Clone()
	}
	w.Exercises = exercises
	if w.CompletedAt != nil {
		at := *w.CompletedAt
		w.CompletedAt = &at
	}
	return w
}

// HasExercise reports whether any WorkoutExercise references exerciseID.
func (w *Workout) HasExercise(exerciseID string) bool {
	for i := range w.Exercises {
		if w.Exercises[i].ExerciseID == exerciseID {
			return true
		}
	}
	return false
}

// TotalSets counts sets across every exercise of the workout.
func (w *Workout) TotalSets() int {
	total := 0
	for i := range w.Exercises {
		total += len(w.Exercises[i].Sets)
	}
	return total
}

// SetCompleted moves the workout into or out of the Completed state, keeping
// CompletedAt present exactly when IsCompleted is true.
func (w *Workout) SetCompleted(completed bool, now time.Time) {
	w.IsCompleted = completed
	if completed {
		at := now
		w.CompletedAt = &at
	} else {
		w.CompletedAt = nil
	}
}

// ValidDate reports whether s is an ISO calendar date (YYYY-MM-DD).
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DateOf returns the local calendar day of t in DateLayout.
func DateOf(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// Settings holds per-installation preferences.
type Settings struct {
	DefaultWeightUnit WeightUnit `json:"defaultWeightUnit"`
}

func DefaultSettings() Settings {
	return Settings{DefaultWeightUnit: Kilograms}
}
