package api

import (
	"context"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseService is the part of the store the exercise endpoints use.
type ExerciseService interface {
	Exercises() []domain.Exercise
	ExerciseByID(id string) (*domain.Exercise, bool)
	AddExercise(ctx context.Context, in service.NewExercise) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, id string, upd service.ExerciseUpdate) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
	ExerciseStats(exerciseID string) *domain.ExerciseStats
	ExerciseHistory(exerciseID string) []domain.WorkoutHistory
	AllExerciseStats() map[string]*domain.ExerciseStats
	LastPerformance(exerciseID string) *domain.WorkoutExercise
}

type ExerciseHandler struct {
	exerciseService ExerciseService
}

func NewExerciseHandler(exerciseService ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

type CreateExerciseRequest struct {
	Name         string               `json:"name" binding:"required"`
	MuscleGroups []domain.MuscleGroup `json:"muscleGroups" binding:"required,min=1"`
	Comments     string               `json:"comments"`
	// IsCustom defaults to true: exercises created through the API are user-made.
	IsCustom *bool `json:"isCustom"`
}

type UpdateExerciseRequest struct {
	Name         *string              `json:"name"`
	MuscleGroups []domain.MuscleGroup `json:"muscleGroups"`
	Comments     *string              `json:"comments"`
	IsCustom     *bool                `json:"isCustom"`
}

// --- Handlers ---

// ListExercises returns the catalog, optionally filtered by ?muscleGroup=.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises := h.exerciseService.Exercises()

	if filter := c.Query("muscleGroup"); filter != "" {
		group := domain.MuscleGroup(filter)
		if !group.Valid() {
			abortWithError(c, http.StatusBadRequest, "unknown muscle group "+filter)
			return
		}
		filtered := make([]domain.Exercise, 0, len(exercises))
		for _, ex := range exercises {
			if ex.HasMuscleGroup(group) {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}

	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, ok := h.exerciseService.ExerciseByID(c.Param("id"))
	if !ok {
		respondWithError(c, service.ErrExerciseNotFound)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	isCustom := true
	if req.IsCustom != nil {
		isCustom = *req.IsCustom
	}
	exercise, err := h.exerciseService.AddExercise(c.Request.Context(), service.NewExercise{
		Name:         req.Name,
		MuscleGroups: req.MuscleGroups,
		Comments:     req.Comments,
		IsCustom:     isCustom,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), c.Param("id"), service.ExerciseUpdate{
		Name:         req.Name,
		MuscleGroups: req.MuscleGroups,
		Comments:     req.Comments,
		IsCustom:     req.IsCustom,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	if exercise == nil {
		respondWithError(c, service.ErrExerciseNotFound)
		return
	}

	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetExerciseStats responds with the stats object, or null when the exercise
// has no completed sets.
func (h *ExerciseHandler) GetExerciseStats(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.exerciseService.ExerciseByID(id); !ok {
		respondWithError(c, service.ErrExerciseNotFound)
		return
	}
	c.JSON(http.StatusOK, h.exerciseService.ExerciseStats(id))
}

func (h *ExerciseHandler) GetExerciseHistory(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.exerciseService.ExerciseByID(id); !ok {
		respondWithError(c, service.ErrExerciseNotFound)
		return
	}
	c.JSON(http.StatusOK, h.exerciseService.ExerciseHistory(id))
}

// GetLastPerformance responds with the most recent completed occurrence, or null.
func (h *ExerciseHandler) GetLastPerformance(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.exerciseService.ExerciseByID(id); !ok {
		respondWithError(c, service.ErrExerciseNotFound)
		return
	}
	c.JSON(http.StatusOK, h.exerciseService.LastPerformance(id))
}

func (h *ExerciseHandler) GetAllExerciseStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.exerciseService.AllExerciseStats())
}
