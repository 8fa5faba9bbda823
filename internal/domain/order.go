package domain

import "fmt"

// The helpers below never modify their input; each returns a fresh slice whose
// Order fields are 0..N-1 following slice position.

// NormalizeOrder rewrites Order from slice position.
func NormalizeOrder(list []WorkoutExercise) []WorkoutExercise {
	out := make([]WorkoutExercise, len(list))
	for i := range list {
		out[i] = list[i].Clone()
		out[i].Order = i
	}
	return out
}

// AppendExercise adds we at the end of the list.
func AppendExercise(list []WorkoutExercise, we WorkoutExercise) []WorkoutExercise {
	out := append(NormalizeOrder(list), we.Clone())
	out[len(out)-1].Order = len(out) - 1
	return out
}

// RemoveExerciseAt drops the entry at index.
func RemoveExerciseAt(list []WorkoutExercise, index int) ([]WorkoutExercise, error) {
	if err := CheckIndex(list, index); err != nil {
		return nil, err
	}
	out := make([]WorkoutExercise, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return NormalizeOrder(out), nil
}

// ReplaceExerciseAt puts we in place of the entry at index, keeping its position.
func ReplaceExerciseAt(list []WorkoutExercise, index int, we WorkoutExercise) ([]WorkoutExercise, error) {
	if err := CheckIndex(list, index); err != nil {
		return nil, err
	}
	out := NormalizeOrder(list)
	out[index] = we.Clone()
	out[index].Order = index
	return out, nil
}

// MoveExercise swaps the entry at index with its neighbour delta positions away
// (-1 up, +1 down). Moving past either end leaves the list unchanged.
func MoveExercise(list []WorkoutExercise, index, delta int) ([]WorkoutExercise, error) {
	if err := CheckIndex(list, index); err != nil {
		return nil, err
	}
	out := NormalizeOrder(list)
	target := index + delta
	if target < 0 || target >= len(out) {
		return out, nil
	}
	out[index], out[target] = out[target], out[index]
	return NormalizeOrder(out), nil
}

// CheckIndex reports a ValidationError when index is outside list.
func CheckIndex(list []WorkoutExercise, index int) error {
	if index < 0 || index >= len(list) {
		return NewValidationError("index", fmt.Sprintf("%d out of range [0,%d)", index, len(list)))
	}
	return nil
}
