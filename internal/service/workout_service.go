package service

import (
	"context"
	"fmt"
	"strings"

	"alcyxob/workout-tracker/internal/domain"

	log "github.com/sirupsen/logrus"
)

const copySuffix = " (Copy)"

// NewWorkout carries the caller-supplied fields of a workout.
type NewWorkout struct {
	Name        string
	Date        string
	Exercises   []domain.WorkoutExercise
	IsCompleted bool
}

// WorkoutUpdate is a partial update; nil fields are left unchanged. Completion
// only changes through ToggleWorkoutComplete and CompleteWorkout.
type WorkoutUpdate struct {
	Name      *string
	Date      *string
	Exercises []domain.WorkoutExercise
}

// AddWorkout validates and appends a new workout. Sets without an id get one
// and exercise order is rewritten from position.
func (s *Store) AddWorkout(ctx context.Context, in NewWorkout) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := s.prepareExercises(in.Exercises)
	if err != nil {
		return nil, err
	}
	now := s.now()
	workout := domain.Workout{
		Name:      strings.TrimSpace(in.Name),
		Date:      in.Date,
		Exercises: exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}
	workout.SetCompleted(in.IsCompleted, now)
	if err := workout.Validate(); err != nil {
		return nil, err
	}

	workout.ID = s.newID()
	s.workouts = append(s.workouts, workout)
	s.mutated("add_workout")
	s.saveWorkouts(ctx)

	created := workout.Clone()
	return &created, nil
}

// UpdateWorkout merges the non-nil fields of upd and refreshes UpdatedAt. An
// unknown id is a no-op and yields (nil, nil).
func (s *Store) UpdateWorkout(ctx context.Context, id string, upd WorkoutUpdate) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.workoutIndex(id)
	if i < 0 {
		log.Debugf("update workout %s: not found", id)
		return nil, nil
	}

	merged := s.workouts[i].Clone()
	if upd.Name != nil {
		merged.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Date != nil {
		merged.Date = *upd.Date
	}
	if upd.Exercises != nil {
		exercises, err := s.prepareExercises(upd.Exercises)
		if err != nil {
			return nil, err
		}
		merged.Exercises = exercises
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	return s.replaceWorkout(ctx, i, merged, "update_workout"), nil
}

// DeleteWorkout removes a workout unconditionally. An unknown id is a no-op.
func (s *Store) DeleteWorkout(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.workoutIndex(id)
	if i < 0 {
		return nil
	}
	s.workouts = append(s.workouts[:i:i], s.workouts[i+1:]...)
	s.mutated("delete_workout")
	s.saveWorkouts(ctx)
	return nil
}

// DuplicateWorkout appends a planned copy of the workout with a new id, a
// " (Copy)" name suffix and fresh set ids. Returns nil for an unknown id.
func (s *Store) DuplicateWorkout(ctx context.Context, id string) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.workoutIndex(id)
	if i < 0 {
		return nil, nil
	}

	now := s.now()
	dup := s.workouts[i].Clone()
	dup.ID = s.newID()
	dup.Name += copySuffix
	dup.SetCompleted(false, now)
	dup.CreatedAt = now
	dup.UpdatedAt = now
	for j := range dup.Exercises {
		for k := range dup.Exercises[j].Sets {
			dup.Exercises[j].Sets[k].ID = s.newID()
		}
	}
	dup.Exercises = domain.NormalizeOrder(dup.Exercises)

	s.workouts = append(s.workouts, dup)
	s.mutated("duplicate_workout")
	s.saveWorkouts(ctx)

	created := dup.Clone()
	return &created, nil
}

// ToggleWorkoutComplete flips the completion state. An unknown id yields (nil, nil).
func (s *Store) ToggleWorkoutComplete(ctx context.Context, id string) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.workoutIndex(id)
	if i < 0 {
		return nil, nil
	}
	w := s.workouts[i].Clone()
	w.SetCompleted(!w.IsCompleted, s.now())
	return s.replaceWorkout(ctx, i, w, "toggle_workout"), nil
}

// CompleteWorkout finishes a workout session. Completing an already completed
// workout keeps its original CompletedAt.
func (s *Store) CompleteWorkout(ctx context.Context, id string) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.workoutIndex(id)
	if i < 0 {
		return nil, ErrWorkoutNotFound
	}
	w := s.workouts[i].Clone()
	if w.IsCompleted {
		return &w, nil
	}
	w.SetCompleted(true, s.now())
	return s.replaceWorkout(ctx, i, w, "complete_workout"), nil
}

// replaceWorkout stores w at index i with a fresh UpdatedAt and persists.
func (s *Store) replaceWorkout(ctx context.Context, i int, w domain.Workout, op string) *domain.Workout {
	w.UpdatedAt = s.now()
	s.workouts[i] = w
	s.mutated(op)
	s.saveWorkouts(ctx)

	updated := w.Clone()
	return &updated
}

// prepareExercises deep-copies list, fills missing set ids and normalises order.
// Every non-empty exercise id must name a stored exercise; empty ids are left
// to Workout.Validate.
func (s *Store) prepareExercises(list []domain.WorkoutExercise) ([]domain.WorkoutExercise, error) {
	for i := range list {
		if id := list[i].ExerciseID; id != "" && s.exerciseIndex(id) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
		}
	}
	out := domain.NormalizeOrder(list)
	for i := range out {
		for j := range out[i].Sets {
			if out[i].Sets[j].ID == "" {
				out[i].Sets[j].ID = s.newID()
			}
		}
	}
	return out, nil
}
