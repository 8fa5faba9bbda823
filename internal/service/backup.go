package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
)

// ExportVersion is written into every backup document.
const ExportVersion = "1.0"

// ExportDocument is the backup file format.
type ExportDocument struct {
	Version    string     `json:"version"`
	ExportDate time.Time  `json:"exportDate"`
	Data       ExportData `json:"data"`
}

type ExportData struct {
	Exercises []domain.Exercise `json:"exercises"`
	Workouts  []domain.Workout  `json:"workouts"`
	Settings  domain.Settings   `json:"settings"`
}

// PendingImport is a parsed and validated backup waiting to be applied. It is
// held by the caller between ParseBackup and ApplyImport.
type PendingImport struct {
	Version    string
	ExportDate time.Time
	Exercises  []domain.Exercise
	Workouts   []domain.Workout
	Settings   domain.Settings
}

// importDocument mirrors ExportDocument with pointers so absent members can be told apart.
type importDocument struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Data       *struct {
		Exercises *[]domain.Exercise `json:"exercises"`
		Workouts  *[]domain.Workout  `json:"workouts"`
		Settings  *domain.Settings   `json:"settings"`
	} `json:"data"`
}

// Export snapshots all three collections.
func (s *Store) Export() ExportDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ExportDocument{
		Version:    ExportVersion,
		ExportDate: s.now(),
		Data: ExportData{
			Exercises: cloneExercises(s.exercises),
			Workouts:  cloneWorkouts(s.workouts),
			Settings:  s.settings,
		},
	}
}

// ParseBackup decodes and validates a backup document without touching any
// store. data.exercises and data.workouts must both be present and every
// workout may only reference exercises of the same document; settings fall
// back to the defaults when missing.
func ParseBackup(raw []byte) (*PendingImport, error) {
	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ImportFormatError{Reason: "decode document", Err: err}
	}
	if doc.Data == nil {
		return nil, &ImportFormatError{Reason: "missing data"}
	}
	if doc.Data.Exercises == nil {
		return nil, &ImportFormatError{Reason: "missing data.exercises"}
	}
	if doc.Data.Workouts == nil {
		return nil, &ImportFormatError{Reason: "missing data.workouts"}
	}

	pending := &PendingImport{
		Version:    doc.Version,
		ExportDate: doc.ExportDate,
		Exercises:  *doc.Data.Exercises,
		Workouts:   *doc.Data.Workouts,
		Settings:   domain.DefaultSettings(),
	}
	if doc.Data.Settings != nil {
		pending.Settings = *doc.Data.Settings
		if !pending.Settings.DefaultWeightUnit.Valid() {
			pending.Settings = domain.DefaultSettings()
		}
	}

	known := make(map[string]bool, len(pending.Exercises))
	for i := range pending.Exercises {
		if err := pending.Exercises[i].Validate(); err != nil {
			return nil, &ImportFormatError{Reason: fmt.Sprintf("exercise %d", i), Err: err}
		}
		known[pending.Exercises[i].ID] = true
	}
	for i := range pending.Workouts {
		w := &pending.Workouts[i]
		if err := w.Validate(); err != nil {
			return nil, &ImportFormatError{Reason: fmt.Sprintf("workout %d", i), Err: err}
		}
		for _, we := range w.Exercises {
			if !known[we.ExerciseID] {
				return nil, &ImportFormatError{
					Reason: fmt.Sprintf("workout %d", i),
					Err:    fmt.Errorf("%w: %s", ErrExerciseNotFound, we.ExerciseID),
				}
			}
		}
		w.Exercises = domain.NormalizeOrder(w.Exercises)
		switch {
		case !w.IsCompleted:
			w.CompletedAt = nil
		case w.CompletedAt == nil:
			at := w.UpdatedAt
			w.CompletedAt = &at
		}
	}
	return pending, nil
}

// ApplyImport replaces all three collections with the pending backup and
// persists each of them.
func (s *Store) ApplyImport(ctx context.Context, pending *PendingImport) error {
	if pending == nil {
		return &ImportFormatError{Reason: "no pending import"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.exercises = cloneExercises(pending.Exercises)
	s.workouts = cloneWorkouts(pending.Workouts)
	s.settings = pending.Settings
	s.release()
	s.mutated("import")
	s.saveExercises(ctx)
	s.saveWorkouts(ctx)
	s.saveSettings(ctx)

	log.WithFields(log.Fields{
		"exercises": len(s.exercises),
		"workouts":  len(s.workouts),
		"version":   pending.Version,
	}).Info("backup imported")
	return nil
}

// Import parses raw and applies it in one step. Nothing changes on error.
func (s *Store) Import(ctx context.Context, raw []byte) error {
	pending, err := ParseBackup(raw)
	if err != nil {
		return err
	}
	return s.ApplyImport(ctx, pending)
}

// Reset removes every persisted collection and starts over from the seed
// catalog with no workouts and default settings.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.db.Clear(ctx, repository.AllKeys...)
	s.release()
	s.exercises = s.seedExercises()
	s.workouts = []domain.Workout{}
	s.rehashWorkouts()
	s.settings = domain.DefaultSettings()
	s.mutated("reset")
	s.saveExercises(ctx)

	log.Infof("store reset, seeded %d exercises", len(s.exercises))
}
