package api

import (
	"context"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutService is the part of the store the workout endpoints use.
type WorkoutService interface {
	Workouts() []domain.Workout
	WorkoutByID(id string) (*domain.Workout, bool)
	AddWorkout(ctx context.Context, in service.NewWorkout) (*domain.Workout, error)
	UpdateWorkout(ctx context.Context, id string, upd service.WorkoutUpdate) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, id string) error
	DuplicateWorkout(ctx context.Context, id string) (*domain.Workout, error)
	ToggleWorkoutComplete(ctx context.Context, id string) (*domain.Workout, error)
	CompleteWorkout(ctx context.Context, id string) (*domain.Workout, error)
	WorkoutMuscleGroups(w domain.Workout) []domain.MuscleGroup
}

type WorkoutHandler struct {
	workoutService WorkoutService
}

func NewWorkoutHandler(workoutService WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type CreateWorkoutRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Date        string                   `json:"date" binding:"required"`
	Exercises   []domain.WorkoutExercise `json:"exercises"`
	IsCompleted bool                     `json:"isCompleted"`
}

type UpdateWorkoutRequest struct {
	Name      *string                  `json:"name"`
	Date      *string                  `json:"date"`
	Exercises []domain.WorkoutExercise `json:"exercises"`
}

// WorkoutResponse adds the derived muscle groups to a workout.
type WorkoutResponse struct {
	domain.Workout
	MuscleGroups []domain.MuscleGroup `json:"muscleGroups"`
}

// --- Handlers ---

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	c.JSON(http.StatusOK, h.workoutService.Workouts())
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	workout, ok := h.workoutService.WorkoutByID(c.Param("id"))
	if !ok {
		respondWithError(c, service.ErrWorkoutNotFound)
		return
	}
	c.JSON(http.StatusOK, WorkoutResponse{
		Workout:      *workout,
		MuscleGroups: h.workoutService.WorkoutMuscleGroups(*workout),
	})
}

func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.AddWorkout(c.Request.Context(), service.NewWorkout{
		Name:        req.Name,
		Date:        req.Date,
		Exercises:   req.Exercises,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), c.Param("id"), service.WorkoutUpdate{
		Name:      req.Name,
		Date:      req.Date,
		Exercises: req.Exercises,
	})
	h.respondWorkout(c, workout, err)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	if err := h.workoutService.DeleteWorkout(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) DuplicateWorkout(c *gin.Context) {
	workout, err := h.workoutService.DuplicateWorkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if workout == nil {
		respondWithError(c, service.ErrWorkoutNotFound)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) ToggleComplete(c *gin.Context) {
	workout, err := h.workoutService.ToggleWorkoutComplete(c.Request.Context(), c.Param("id"))
	h.respondWorkout(c, workout, err)
}

func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	workout, err := h.workoutService.CompleteWorkout(c.Request.Context(), c.Param("id"))
	h.respondWorkout(c, workout, err)
}

// respondWorkout writes 200 with the workout; a nil workout without error is
// the store's no-op for an unknown id and maps to 404.
func (h *WorkoutHandler) respondWorkout(c *gin.Context, workout *domain.Workout, err error) {
	if err != nil {
		respondWithError(c, err)
		return
	}
	if workout == nil {
		respondWithError(c, service.ErrWorkoutNotFound)
		return
	}
	c.JSON(http.StatusOK, workout)
}
