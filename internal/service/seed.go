package service

import "alcyxob/workout-tracker/internal/domain"

type seedExercise struct {
	name     string
	groups   []domain.MuscleGroup
	comments string
}

// seedCatalog is loaded on first start when no exercises are stored.
var seedCatalog = []seedExercise{
	// Chest
	{"Bench Press", []domain.MuscleGroup{domain.MuscleChest, domain.MuscleArms}, "Compound chest exercise, great for building upper body strength"},
	{"Push-ups", []domain.MuscleGroup{domain.MuscleChest, domain.MuscleArms, domain.MuscleCore}, "Bodyweight exercise that can be done anywhere"},
	{"Dumbbell Flyes", []domain.MuscleGroup{domain.MuscleChest}, "Isolation exercise for chest"},

	// Back
	{"Pull-ups", []domain.MuscleGroup{domain.MuscleBack, domain.MuscleArms}, "Excellent compound exercise for back and biceps"},
	{"Bent Over Rows", []domain.MuscleGroup{domain.MuscleBack}, "Great for building back thickness"},
	{"Deadlift", []domain.MuscleGroup{domain.MuscleBack, domain.MuscleLegs, domain.MuscleCore}, "The king of compound exercises, works entire posterior chain"},

	// Legs
	{"Squats", []domain.MuscleGroup{domain.MuscleLegs, domain.MuscleCore}, "Fundamental leg exercise for building overall strength"},
	{"Lunges", []domain.MuscleGroup{domain.MuscleLegs}, "Unilateral leg exercise for balance and strength"},
	{"Leg Press", []domain.MuscleGroup{domain.MuscleLegs}, "Machine-based leg exercise"},

	// Shoulders
	{"Shoulder Press", []domain.MuscleGroup{domain.MuscleShoulders, domain.MuscleArms}, "Compound shoulder exercise"},
	{"Lateral Raises", []domain.MuscleGroup{domain.MuscleShoulders}, "Isolation exercise for side delts"},

	// Arms
	{"Bicep Curls", []domain.MuscleGroup{domain.MuscleArms}, "Classic isolation exercise for biceps"},
	{"Tricep Dips", []domain.MuscleGroup{domain.MuscleArms}, "Compound exercise for triceps"},

	// Core
	{"Plank", []domain.MuscleGroup{domain.MuscleCore}, "Isometric core exercise for stability"},
	{"Russian Twists", []domain.MuscleGroup{domain.MuscleCore}, "Rotational core exercise"},
}

// seedExercises materialises the catalog with fresh identifiers. Seeded
// entries are the preloaded ones, so IsCustom is false.
func (s *Store) seedExercises() []domain.Exercise {
	now := s.now()
	exercises := make([]domain.Exercise, 0, len(seedCatalog))
	for _, seed := range seedCatalog {
		exercises = append(exercises, domain.Exercise{
			ID:           s.newID(),
			Name:         seed.name,
			MuscleGroups: append([]domain.MuscleGroup(nil), seed.groups...),
			Comments:     seed.comments,
			IsCustom:     false,
			CreatedAt:    now,
		})
	}
	return exercises
}
