package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gestipresence/presence-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// GetSettings returns the saved profile, or the default one before the first save.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	profile, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.NewSettingsResponse(settings.DefaultProfile()), nil
	}
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings.NewSettingsResponse(profile), nil
}

func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	saved, err := s.settingsRepo.Save(ctx, req.ToProfile())
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}

	slog.Info("Company settings updated", "name", saved.Name)
	return settings.NewSettingsResponse(saved), nil
}
