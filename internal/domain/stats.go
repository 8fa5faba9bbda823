package domain

// ExerciseStats summarises completed performances of one exercise.
type ExerciseStats struct {
	ExerciseID     string      `json:"exerciseId"`
	MaxWeight      float64     `json:"maxWeight"`
	MaxWeightReps  int         `json:"maxWeightReps"`
	MaxWeightUnit  WeightUnit  `json:"maxWeightUnit"`
	LastWeight     *float64    `json:"lastWeight,omitempty"`
	LastWeightReps *int        `json:"lastWeightReps,omitempty"`
	LastWeightUnit *WeightUnit `json:"lastWeightUnit,omitempty"`
	TotalSets      int         `json:"totalSets"`
	LastPerformed  string      `json:"lastPerformed,omitempty"`
}

// WorkoutHistory is one completed occurrence of an exercise.
type WorkoutHistory struct {
	WorkoutID   string `json:"workoutId"`
	WorkoutName string `json:"workoutName"`
	Date        string `json:"date"`
	SetData     []Set  `json:"setData"`
}
