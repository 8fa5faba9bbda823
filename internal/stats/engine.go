// Package stats derives per-exercise performance figures from the workout
// collection. Everything here is a pure function of its inputs: results are
// recomputed from scratch on every call and only completed workouts count.
package stats

import (
	"sort"

	"alcyxob/workout-tracker/internal/domain"
)

// ComputeExerciseStats returns the performance summary of exerciseID, or nil
// when no completed workout holds a set for it.
func ComputeExerciseStats(exerciseID string, workouts []domain.Workout) *domain.ExerciseStats {
	completed := completedWorkouts(workouts)

	var sets []domain.Set
	for i := range completed {
		for _, we := range completed[i].Exercises {
			if we.ExerciseID == exerciseID {
				sets = append(sets, we.Sets...)
			}
		}
	}
	if len(sets) == 0 {
		return nil
	}

	// strictly greater, so the first of equal maxima wins
	best := sets[0]
	for _, set := range sets[1:] {
		if set.Weight > best.Weight {
			best = set
		}
	}

	result := &domain.ExerciseStats{
		ExerciseID:    exerciseID,
		MaxWeight:     best.Weight,
		MaxWeightReps: best.Reps,
		MaxWeightUnit: best.WeightUnit,
		TotalSets:     len(sets),
	}

	latest := latestContaining(exerciseID, completed)
	if latest == nil {
		return result
	}
	result.LastPerformed = latest.Date
	for _, we := range latest.Exercises {
		if we.ExerciseID != exerciseID {
			continue
		}
		if len(we.Sets) > 0 {
			first := we.Sets[0]
			result.LastWeight = &first.Weight
			result.LastWeightReps = &first.Reps
			result.LastWeightUnit = &first.WeightUnit
		}
		break
	}

	return result
}

// ComputeExerciseHistory lists every completed occurrence of exerciseID,
// most recent date first. Equal dates keep collection order.
func ComputeExerciseHistory(exerciseID string, workouts []domain.Workout) []domain.WorkoutHistory {
	history := []domain.WorkoutHistory{}
	for _, w := range completedWorkouts(workouts) {
		for _, we := range w.Exercises {
			if we.ExerciseID != exerciseID {
				continue
			}
			history = append(history, domain.WorkoutHistory{
				WorkoutID:   w.ID,
				WorkoutName: w.Name,
				Date:        w.Date,
				SetData:     append([]domain.Set{}, we.Sets...),
			})
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})
	return history
}

// FindLastWorkoutExercise returns a copy of the most recent completed
// occurrence of exerciseID, or nil.
func FindLastWorkoutExercise(exerciseID string, workouts []domain.Workout) *domain.WorkoutExercise {
	for _, w := range sortedByDateDesc(completedWorkouts(workouts)) {
		for _, we := range w.Exercises {
			if we.ExerciseID == exerciseID {
				found := we.Clone()
				return &found
			}
		}
	}
	return nil
}

// ComputeAllExerciseStats computes stats for each of exerciseIDs. Exercises
// without completed sets are left out of the map.
func ComputeAllExerciseStats(exerciseIDs []string, workouts []domain.Workout) map[string]*domain.ExerciseStats {
	result := make(map[string]*domain.ExerciseStats, len(exerciseIDs))
	for _, id := range exerciseIDs {
		if s := ComputeExerciseStats(id, workouts); s != nil {
			result[id] = s
		}
	}
	return result
}

func completedWorkouts(workouts []domain.Workout) []domain.Workout {
	completed := make([]domain.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.IsCompleted {
			completed = append(completed, w)
		}
	}
	return completed
}

func sortedByDateDesc(workouts []domain.Workout) []domain.Workout {
	sorted := append([]domain.Workout(nil), workouts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

func latestContaining(exerciseID string, completed []domain.Workout) *domain.Workout {
	for _, w := range sortedByDateDesc(completed) {
		if w.HasExercise(exerciseID) {
			return &w
		}
	}
	return nil
}
