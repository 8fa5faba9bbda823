// internal/domain/exercise.go
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MuscleGroup is one of the fixed body-part tags an exercise can carry.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "Chest"
	MuscleBack      MuscleGroup = "Back"
	MuscleLegs      MuscleGroup = "Legs"
	MuscleShoulders MuscleGroup = "Shoulders"
	MuscleArms      MuscleGroup = "Arms"
	MuscleCore      MuscleGroup = "Core"
	MuscleFullBody  MuscleGroup = "Full Body"
)

// MuscleGroups lists every valid MuscleGroup in display order.
var MuscleGroups = []MuscleGroup{
	MuscleChest,
	MuscleBack,
	MuscleLegs,
	MuscleShoulders,
	MuscleArms,
	MuscleCore,
	MuscleFullBody,
}

// Valid reports whether g is part of the closed enumeration.
func (g MuscleGroup) Valid() bool {
	for _, known := range MuscleGroups {
		if g == known {
			return true
		}
	}
	return false
}

// UnmarshalJSON rejects muscle groups outside the enumeration.
func (g *MuscleGroup) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !MuscleGroup(s).Valid() {
		return fmt.Errorf("unknown muscle group %q", s)
	}
	*g = MuscleGroup(s)
	return nil
}

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	MuscleGroups []MuscleGroup `json:"muscleGroups"`
	Comments     string        `json:"comments,omitempty"`
	// IsCustom is false for the preloaded catalog and true for user-authored entries.
	IsCustom  bool      `json:"isCustom"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the exercise invariants: non-blank name and at least one known muscle group.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	if len(e.MuscleGroups) == 0 {
		return NewValidationError("muscleGroups", "at least one muscle group is required")
	}
	seen := make(map[MuscleGroup]bool, len(e.MuscleGroups))
	for _, g := range e.MuscleGroups {
		if !g.Valid() {
			return NewValidationError("muscleGroups", fmt.Sprintf("unknown muscle group %q", g))
		}
		if seen[g] {
			return NewValidationError("muscleGroups", fmt.Sprintf("muscle group %q listed twice", g))
		}
		seen[g] = true
	}
	return nil
}

// Clone returns a deep copy.
func (e Exercise) Clone() Exercise {
	e.MuscleGroups = append([]MuscleGroup(nil), e.MuscleGroups...)
	return e
}

// HasMuscleGroup reports whether the exercise targets group.
func (e *Exercise) HasMuscleGroup(group MuscleGroup) bool {
	for _, g := range e.MuscleGroups {
		if g == group {
			return true
		}
	}
	return false
}
