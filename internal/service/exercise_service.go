package service

import (
	"context"
	"strings"

	"alcyxob/workout-tracker/internal/domain"

	log "github.com/sirupsen/logrus"
)

// NewExercise carries the caller-supplied fields of an exercise.
type NewExercise struct {
	Name         string
	MuscleGroups []domain.MuscleGroup
	Comments     string
	IsCustom     bool
}

// ExerciseUpdate is a partial update; nil fields are left unchanged.
type ExerciseUpdate struct {
	Name         *string
	MuscleGroups []domain.MuscleGroup
	Comments     *string
	IsCustom     *bool
}

// AddExercise validates and appends a new exercise.
func (s *Store) AddExercise(ctx context.Context, in NewExercise) (*domain.Exercise, error) {
	exercise := domain.Exercise{
		Name:         strings.TrimSpace(in.Name),
		MuscleGroups: append([]domain.MuscleGroup(nil), in.MuscleGroups...),
		Comments:     strings.TrimSpace(in.Comments),
		IsCustom:     in.IsCustom,
	}
	if err := exercise.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exercise.ID = s.newID()
	exercise.CreatedAt = s.now()
	s.exercises = append(s.exercises, exercise)
	s.mutated("add_exercise")
	s.saveExercises(ctx)

	created := exercise.Clone()
	return &created, nil
}

// UpdateExercise merges the non-nil fields of upd. An unknown id is a no-op
// and yields (nil, nil).
func (s *Store) UpdateExercise(ctx context.Context, id string, upd ExerciseUpdate) (*domain.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.exerciseIndex(id)
	if i < 0 {
		log.Debugf("update exercise %s: not found", id)
		return nil, nil
	}

	merged := s.exercises[i].Clone()
	if upd.Name != nil {
		merged.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.MuscleGroups != nil {
		merged.MuscleGroups = append([]domain.MuscleGroup(nil), upd.MuscleGroups...)
	}
	if upd.Comments != nil {
		merged.Comments = strings.TrimSpace(*upd.Comments)
	}
	if upd.IsCustom != nil {
		merged.IsCustom = *upd.IsCustom
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	s.exercises[i] = merged
	s.mutated("update_exercise")
	s.saveExercises(ctx)

	updated := merged.Clone()
	return &updated, nil
}

// DeleteExercise removes an exercise unless a workout references it, in which
// case it fails with a ReferentialIntegrityError and nothing changes.
func (s *Store) DeleteExercise(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var referencedBy []string
	for i := range s.workouts {
		if s.workouts[i].HasExercise(id) {
			referencedBy = append(referencedBy, s.workouts[i].ID)
		}
	}
	if len(referencedBy) > 0 {
		return &ReferentialIntegrityError{ExerciseID: id, WorkoutIDs: referencedBy}
	}

	i := s.exerciseIndex(id)
	if i < 0 {
		return nil
	}
	s.exercises = append(s.exercises[:i:i], s.exercises[i+1:]...)
	s.mutated("delete_exercise")
	s.saveExercises(ctx)
	return nil
}
