package api

import (
	"context"
	"net/http"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsService interface {
	Settings() domain.Settings
	UpdateSettings(ctx context.Context, upd service.SettingsUpdate) (domain.Settings, error)
}

type SettingsHandler struct {
	settingsService SettingsService
}

func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type UpdateSettingsRequest struct {
	DefaultWeightUnit *domain.WeightUnit `json:"defaultWeightUnit"`
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.Settings())
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), service.SettingsUpdate{
		DefaultWeightUnit: req.DefaultWeightUnit,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
