package service

import (
	"sort"

	"alcyxob/workout-tracker/internal/domain"
)

// Dashboard holds the headline counts of the home page.
type Dashboard struct {
	ExerciseCount      int              `json:"exerciseCount"`
	UpcomingCount      int              `json:"upcomingCount"`
	CompletedCount     int              `json:"completedCount"`
	CompletedSetsCount int              `json:"completedSetsCount"`
	NextWorkout        *domain.Workout  `json:"nextWorkout,omitempty"`
	RecentWorkouts     []domain.Workout `json:"recentWorkouts"`
}

const recentWorkoutsLimit = 3

// UpcomingWorkouts lists planned workouts, earliest date first.
func (s *Store) UpcomingWorkouts() []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return upcoming(s.workouts)
}

// CompletedWorkouts lists completed workouts, latest date first.
func (s *Store) CompletedWorkouts() []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return completed(s.workouts)
}

// NextWorkout is the first upcoming workout dated today or later. Planned
// workouts dated in the past stay upcoming but are never next.
func (s *Store) NextWorkout(today string) *domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return next(upcoming(s.workouts), today)
}

func (s *Store) Dashboard(today string) Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	planned := upcoming(s.workouts)
	done := completed(s.workouts)
	d := Dashboard{
		ExerciseCount:  len(s.exercises),
		UpcomingCount:  len(planned),
		CompletedCount: len(done),
		NextWorkout:    next(planned, today),
		RecentWorkouts: done[:min(len(done), recentWorkoutsLimit)],
	}
	for i := range done {
		d.CompletedSetsCount += done[i].TotalSets()
	}
	return d
}

// WorkoutMuscleGroups is the union of the muscle groups of the workout's
// exercises in first-seen order. Unknown exercise ids are skipped.
func (s *Store) WorkoutMuscleGroups(w domain.Workout) []domain.MuscleGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[domain.MuscleGroup]bool{}
	groups := []domain.MuscleGroup{}
	for _, we := range w.Exercises {
		i := s.exerciseIndex(we.ExerciseID)
		if i < 0 {
			continue
		}
		for _, g := range s.exercises[i].MuscleGroups {
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}
	return groups
}

func upcoming(workouts []domain.Workout) []domain.Workout {
	out := []domain.Workout{}
	for i := range workouts {
		if !workouts[i].IsCompleted {
			out = append(out, workouts[i].Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func completed(workouts []domain.Workout) []domain.Workout {
	out := []domain.Workout{}
	for i := range workouts {
		if workouts[i].IsCompleted {
			out = append(out, workouts[i].Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func next(planned []domain.Workout, today string) *domain.Workout {
	for i := range planned {
		if planned[i].Date >= today {
			w := planned[i]
			return &w
		}
	}
	return nil
}
