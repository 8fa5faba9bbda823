package service

import (
	"context"
	"fmt"

	"alcyxob/workout-tracker/internal/domain"
)

// SettingsUpdate is a partial settings change; nil fields are left unchanged.
type SettingsUpdate struct {
	DefaultWeightUnit *domain.WeightUnit
}

func (s *Store) UpdateSettings(ctx context.Context, upd SettingsUpdate) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.settings
	if upd.DefaultWeightUnit != nil {
		merged.DefaultWeightUnit = *upd.DefaultWeightUnit
	}
	if !merged.DefaultWeightUnit.Valid() {
		return s.settings, domain.NewValidationError("defaultWeightUnit", fmt.Sprintf("unknown unit %q", merged.DefaultWeightUnit))
	}

	s.settings = merged
	s.mutated("update_settings")
	s.saveSettings(ctx)
	return s.settings, nil
}
