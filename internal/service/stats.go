package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/stats"
)

// ExerciseStats summarises the completed performances of exerciseID, or nil
// when there are none.
func (s *Store) ExerciseStats(exerciseID string) *domain.ExerciseStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.statsCache != nil && s.workoutsHash != 0 {
		return s.statsCache.ExerciseStats(exerciseID, s.workoutsHash, s.workouts)
	}
	return stats.ComputeExerciseStats(exerciseID, s.workouts)
}

func (s *Store) ExerciseHistory(exerciseID string) []domain.WorkoutHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.statsCache != nil && s.workoutsHash != 0 {
		return s.statsCache.ExerciseHistory(exerciseID, s.workoutsHash, s.workouts)
	}
	return stats.ComputeExerciseHistory(exerciseID, s.workouts)
}

// AllExerciseStats maps every known exercise with completed sets to its stats.
func (s *Store) AllExerciseStats() map[string]*domain.ExerciseStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.exercises))
	for i := range s.exercises {
		ids[i] = s.exercises[i].ID
	}
	return stats.ComputeAllExerciseStats(ids, s.workouts)
}

// LastPerformance is the most recent completed occurrence of exerciseID.
func (s *Store) LastPerformance(exerciseID string) *domain.WorkoutExercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.FindLastWorkoutExercise(exerciseID, s.workouts)
}
