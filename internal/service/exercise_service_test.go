package service

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddExercise(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()

	ex, err := s.AddExercise(ctx, NewExercise{
		Name:         "  Hip Thrust ",
		MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs},
		Comments:     " glutes ",
		IsCustom:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hip Thrust", ex.Name)
	assert.Equal(t, "glutes", ex.Comments)
	assert.True(t, ex.IsCustom)
	assert.NotEmpty(t, ex.ID)
	assert.Len(t, s.Exercises(), 16)

	_, err = s.AddExercise(ctx, NewExercise{Name: " ", MuscleGroups: []domain.MuscleGroup{domain.MuscleLegs}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = s.AddExercise(ctx, NewExercise{Name: "Nothing"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, s.Exercises(), 16)
}

func TestUpdateExercise(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	ex := mustAddExercise(t, s, "Curl", domain.MuscleArms)

	name := "Hammer Curl"
	updated, err := s.UpdateExercise(ctx, ex.ID, ExerciseUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Hammer Curl", updated.Name)
	assert.Equal(t, []domain.MuscleGroup{domain.MuscleArms}, updated.MuscleGroups)

	_, err = s.UpdateExercise(ctx, ex.ID, ExerciseUpdate{MuscleGroups: []domain.MuscleGroup{}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	got, _ := s.ExerciseByID(ex.ID)
	assert.Equal(t, "Hammer Curl", got.Name)
	assert.Len(t, got.MuscleGroups, 1)

	missing, err := s.UpdateExercise(ctx, "nope", ExerciseUpdate{Name: &name})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteExercise_ReferentialIntegrity(t *testing.T) {
	s, _ := newTestStore(t, nil)
	ctx := context.Background()
	ex := mustAddExercise(t, s, "Squat", domain.MuscleLegs)
	w1 := mustAddWorkout(t, s, NewWorkout{Name: "Legs", Date: "2024-01-10", Exercises: []domain.WorkoutExercise{{ExerciseID: ex.ID}}})
	w2 := mustAddWorkout(t, s, NewWorkout{Name: "Legs 2", Date: "2024-01-12", Exercises: []domain.WorkoutExercise{{ExerciseID: ex.ID}}, IsCompleted: true})
	before := s.Exercises()

	err := s.DeleteExercise(ctx, ex.ID)
	require.ErrorIs(t, err, ErrExerciseInUse)
	var rerr *ReferentialIntegrityError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, []string{w1.ID, w2.ID}, rerr.WorkoutIDs)
	assert.Equal(t, before, s.Exercises())

	require.NoError(t, s.DeleteWorkout(ctx, w1.ID))
	require.NoError(t, s.DeleteWorkout(ctx, w2.ID))
	require.NoError(t, s.DeleteExercise(ctx, ex.ID))
	_, ok := s.ExerciseByID(ex.ID)
	assert.False(t, ok)

	assert.NoError(t, s.DeleteExercise(ctx, "unknown"))
}
