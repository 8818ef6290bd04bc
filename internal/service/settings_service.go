package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/model"
	"github.com/NGOKrooz/SPIN-sub000/internal/repository"
)

var ErrThresholdOrder = errors.New("high patient threshold must exceed the medium threshold")

// SettingsService manages the singleton rotation settings row.
type SettingsService interface {
	Get(ctx context.Context) (*dto.RotationSettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateRotationSettingsRequest) (*dto.RotationSettingsResponse, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService creates the settings service.
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) Get(ctx context.Context) (*dto.RotationSettingsResponse, error) {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation settings: %w", err)
	}
	return toSettingsResponse(settings), nil
}

func (s *settingsService) Update(ctx context.Context, req *dto.UpdateRotationSettingsRequest) (*dto.RotationSettingsResponse, error) {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation settings: %w", err)
	}

	if req.MediumPatientThreshold != nil {
		settings.MediumPatientThreshold = *req.MediumPatientThreshold
	}
	if req.HighPatientThreshold != nil {
		settings.HighPatientThreshold = *req.HighPatientThreshold
	}
	if settings.HighPatientThreshold <= settings.MediumPatientThreshold {
		return nil, ErrThresholdOrder
	}
	if req.MinInternsHigh != nil {
		settings.MinInternsHigh = *req.MinInternsHigh
	}
	if req.MinInternsMedium != nil {
		settings.MinInternsMedium = *req.MinInternsMedium
	}
	if req.MinInternsLow != nil {
		settings.MinInternsLow = *req.MinInternsLow
	}
	if req.AllowManualOverlap != nil {
		settings.AllowManualOverlap = *req.AllowManualOverlap
	}

	if err := s.repo.Settings.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("update rotation settings: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivitySettingsUpdated, nil, nil,
		"Rotation settings updated")

	return toSettingsResponse(settings), nil
}

func toSettingsResponse(settings *model.RotationSettings) *dto.RotationSettingsResponse {
	return &dto.RotationSettingsResponse{
		MediumPatientThreshold: settings.MediumPatientThreshold,
		HighPatientThreshold:   settings.HighPatientThreshold,
		MinInternsHigh:         settings.MinInternsHigh,
		MinInternsMedium:       settings.MinInternsMedium,
		MinInternsLow:          settings.MinInternsLow,
		AllowManualOverlap:     settings.AllowManualOverlap,
		UpdatedAt:              settings.UpdatedAt.Format(time.RFC3339),
	}
}
