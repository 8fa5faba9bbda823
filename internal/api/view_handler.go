package api

import (
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ViewService computes the read-only workout listings.
type ViewService interface {
	Today() string
	UpcomingWorkouts() []domain.Workout
	CompletedWorkouts() []domain.Workout
	NextWorkout(today string) *domain.Workout
	Dashboard(today string) service.Dashboard
}

type ViewHandler struct {
	viewService ViewService
}

func NewViewHandler(viewService ViewService) *ViewHandler {
	return &ViewHandler{viewService: viewService}
}

func (h *ViewHandler) Upcoming(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewService.UpcomingWorkouts())
}

func (h *ViewHandler) Completed(c *gin.Context) {
	c.JSON(http.StatusOK, h.viewService.CompletedWorkouts())
}

// Next responds with the next workout or null. ?today=YYYY-MM-DD overrides the
// server's local day.
func (h *ViewHandler) Next(c *gin.Context) {
	today, ok := h.today(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.viewService.NextWorkout(today))
}

func (h *ViewHandler) Dashboard(c *gin.Context) {
	today, ok := h.today(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.viewService.Dashboard(today))
}

func (h *ViewHandler) today(c *gin.Context) (string, bool) {
	today := c.Query("today")
	if today == "" {
		return h.viewService.Today(), true
	}
	if !domain.ValidDate(today) {
		abortWithError(c, http.StatusBadRequest, "today must be a YYYY-MM-DD date")
		return "", false
	}
	return today, true
}
