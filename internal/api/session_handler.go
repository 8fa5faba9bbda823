package api

import (
	"context"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionService edits the exercise list of a workout being performed.
type SessionService interface {
	AddExerciseToWorkout(ctx context.Context, workoutID, exerciseID string) (*domain.Workout, error)
	ReplaceExerciseInWorkout(ctx context.Context, workoutID string, index int, exerciseID string) (*domain.Workout, error)
	RemoveExerciseFromWorkout(ctx context.Context, workoutID string, index int) (*domain.Workout, error)
	MoveExerciseInWorkout(ctx context.Context, workoutID string, index, delta int) (*domain.Workout, error)
	AddSet(ctx context.Context, workoutID string, index int) (*domain.Workout, error)
	UpdateSet(ctx context.Context, workoutID string, index int, setID string, upd service.SetUpdate) (*domain.Workout, error)
	RemoveSet(ctx context.Context, workoutID string, index int, setID string) (*domain.Workout, error)
}

type SessionHandler struct {
	sessionService SessionService
}

func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

type SessionExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
}

type MoveExerciseRequest struct {
	Delta int `json:"delta" binding:"required,oneof=-1 1"`
}

type UpdateSetRequest struct {
	Weight     *float64           `json:"weight"`
	WeightUnit *domain.WeightUnit `json:"weightUnit"`
	Reps       *int               `json:"reps"`
}

func (h *SessionHandler) AddExercise(c *gin.Context) {
	var req SessionExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := h.sessionService.AddExerciseToWorkout(c.Request.Context(), c.Param("id"), req.ExerciseID)
	respondSession(c, workout, err)
}

func (h *SessionHandler) ReplaceExercise(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req SessionExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := h.sessionService.ReplaceExerciseInWorkout(c.Request.Context(), c.Param("id"), index, req.ExerciseID)
	respondSession(c, workout, err)
}

func (h *SessionHandler) RemoveExercise(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	workout, err := h.sessionService.RemoveExerciseFromWorkout(c.Request.Context(), c.Param("id"), index)
	respondSession(c, workout, err)
}

func (h *SessionHandler) MoveExercise(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req MoveExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := h.sessionService.MoveExerciseInWorkout(c.Request.Context(), c.Param("id"), index, req.Delta)
	respondSession(c, workout, err)
}

func (h *SessionHandler) AddSet(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	workout, err := h.sessionService.AddSet(c.Request.Context(), c.Param("id"), index)
	respondSession(c, workout, err)
}

func (h *SessionHandler) UpdateSet(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	workout, err := h.sessionService.UpdateSet(c.Request.Context(), c.Param("id"), index, c.Param("setId"), service.SetUpdate{
		Weight:     req.Weight,
		WeightUnit: req.WeightUnit,
		Reps:       req.Reps,
	})
	respondSession(c, workout, err)
}

func (h *SessionHandler) RemoveSet(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	workout, err := h.sessionService.RemoveSet(c.Request.Context(), c.Param("id"), index, c.Param("setId"))
	respondSession(c, workout, err)
}

func respondSession(c *gin.Context, workout *domain.Workout, err error) {
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}
