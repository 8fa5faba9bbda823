package service

import (
	"context"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/stats"
)

// Session operations edit the exercise list of one workout while it is being
// performed. Each returns the updated workout and persists the collection.

// SetUpdate is a partial update of one set; nil fields are left unchanged.
type SetUpdate struct {
	Weight     *float64
	WeightUnit *domain.WeightUnit
	Reps       *int
}

// AddExerciseToWorkout appends exerciseID to the workout with sets prefilled
// from its last completed performance.
func (s *Store) AddExerciseToWorkout(ctx context.Context, workoutID, exerciseID string) (*domain.Workout, error) {
	return s.editExercises(ctx, workoutID, "add_session_exercise", func(list []domain.WorkoutExercise) ([]domain.WorkoutExercise, error) {
		we, err := s.prefilledExercise(exerciseID)
		if err != nil {
			return nil, err
		}
		return domain.AppendExercise(list, we), nil
	})
}

// ReplaceExerciseInWorkout swaps the exercise at index for exerciseID, keeping
// its position. The new entry is prefilled like AddExerciseToWorkout.
func (s *Store) ReplaceExerciseInWorkout(ctx context.Context, workoutID string, index int, exerciseID string) (*domain.Workout, error) {
	return s.editExercises(ctx, workoutID, "replace_session_exercise", func(list []domain.WorkoutExercise) ([]domain.WorkoutExercise, error) {
		we, err := s.prefilledExercise(exerciseID)
		if err != nil {
			return nil, err
		}
		return domain.ReplaceExerciseAt(list, index, we)
	})
}

func (s *Store) RemoveExerciseFromWorkout(ctx context.Context, workoutID string, index int) (*domain.Workout, error) {
	return s.editExercises(ctx, workoutID, "remove_session_exercise", func(list []domain.WorkoutExercise) ([]domain.WorkoutExercise, error) {
		return domain.RemoveExerciseAt(list, index)
	})
}

// MoveExerciseInWorkout moves the exercise at index by delta positions.
func (s *Store) MoveExerciseInWorkout(ctx context.Context, workoutID string, index, delta int) (*domain.Workout, error) {
	return s.editExercises(ctx, workoutID, "move_session_exercise", func(list []domain.WorkoutExercise) ([]domain.WorkoutExercise, error) {
		return domain.MoveExercise(list, index, delta)
	})
}

// AddSet appends a set to the exercise at index, copying weight, unit and reps
// of its last set or starting from zero in the default unit.
func (s *Store) AddSet(ctx context.Context, workoutID string, index int) (*domain.Workout, error) {
	return s.editSets(ctx, workoutID, index, "add_set", func(sets []domain.Set) ([]domain.Set, error) {
		next := domain.Set{WeightUnit: s.settings.DefaultWeightUnit}
		if len(sets) > 0 {
			next = sets[len(sets)-1]
		}
		next.ID = s.newID()
		return append(sets, next), nil
	})
}

func (s *Store) UpdateSet(ctx context.Context, workoutID string, index int, setID string, upd SetUpdate) (*domain.Workout, error) {
	return s.editSets(ctx, workoutID, index, "update_set", func(sets []domain.Set) ([]domain.Set, error) {
		i := setIndex(sets, setID)
		if i < 0 {
			return nil, ErrSetNotFound
		}
		set := sets[i]
		if upd.Weight != nil {
			set.Weight = *upd.Weight
		}
		if upd.WeightUnit != nil {
			set.WeightUnit = *upd.WeightUnit
		}
		if upd.Reps != nil {
			set.Reps = *upd.Reps
		}
		if err := set.Validate(); err != nil {
			return nil, err
		}
		sets[i] = set
		return sets, nil
	})
}

func (s *Store) RemoveSet(ctx context.Context, workoutID string, index int, setID string) (*domain.Workout, error) {
	return s.editSets(ctx, workoutID, index, "remove_set", func(sets []domain.Set) ([]domain.Set, error) {
		i := setIndex(sets, setID)
		if i < 0 {
			return nil, ErrSetNotFound
		}
		return append(sets[:i:i], sets[i+1:]...), nil
	})
}

// editExercises applies edit to a copy of the workout's exercise list and
// stores the result. Nothing changes when edit fails.
func (s *Store) editExercises(
	ctx context.Context,
	workoutID, op string,
	edit func([]domain.WorkoutExercise) ([]domain.WorkoutExercise, error),
) (*domain.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.workoutIndex(workoutID)
	if i < 0 {
		return nil, ErrWorkoutNotFound
	}
	w := s.workouts[i].Clone()
	exercises, err := edit(w.Exercises)
	if err != nil {
		return nil, err
	}
	w.Exercises = domain.NormalizeOrder(exercises)
	return s.replaceWorkout(ctx, i, w, op), nil
}

func (s *Store) editSets(
	ctx context.Context,
	workoutID string,
	index int,
	op string,
	edit func([]domain.Set) ([]domain.Set, error),
) (*domain.Workout, error) {
	return s.editExercises(ctx, workoutID, op, func(list []domain.WorkoutExercise) ([]domain.WorkoutExercise, error) {
		if err := domain.CheckIndex(list, index); err != nil {
			return nil, err
		}
		sets, err := edit(list[index].Sets)
		if err != nil {
			return nil, err
		}
		if sets == nil {
			sets = []domain.Set{}
		}
		list[index].Sets = sets
		return list, nil
	})
}

// prefilledExercise builds a WorkoutExercise for exerciseID. Caller holds the lock.
func (s *Store) prefilledExercise(exerciseID string) (domain.WorkoutExercise, error) {
	if s.exerciseIndex(exerciseID) < 0 {
		return domain.WorkoutExercise{}, ErrExerciseNotFound
	}

	we := domain.WorkoutExercise{ExerciseID: exerciseID}
	if last := stats.FindLastWorkoutExercise(exerciseID, s.workouts); last != nil && len(last.Sets) > 0 {
		for _, set := range last.Sets {
			set.ID = s.newID()
			we.Sets = append(we.Sets, set)
		}
		return we, nil
	}

	we.Sets = []domain.Set{{
		ID:         s.newID(),
		WeightUnit: s.settings.DefaultWeightUnit,
	}}
	return we, nil
}

func setIndex(sets []domain.Set, id string) int {
	for i := range sets {
		if sets[i].ID == id {
			return i
		}
	}
	return -1
}
