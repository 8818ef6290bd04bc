package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/NGOKrooz/SPIN-sub000/config"
	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/model"
	"github.com/NGOKrooz/SPIN-sub000/internal/repository"
	"github.com/NGOKrooz/SPIN-sub000/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Intern    InternService
	Unit      UnitService
	Rotation  RotationService
	Extension ExtensionService
	Activity  ActivityService
	Settings  SettingsService

	// Loc is the reference zone every calendar date is anchored to;
	// handlers use it to derive "today" once per request.
	Loc *time.Location
}

// NewService wires the services. rdb may be nil; the advance path then
// runs without its serializing lease.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	loc, err := time.LoadLocation(cfg.Internship.Timezone)
	if err != nil {
		// config.Validate has already vetted the zone name
		loc = time.UTC
	}

	rotationSvc := NewRotationService(repo, rdb, logger, loc, cfg.Internship.BaseDays, cfg.Internship.AdvanceLockTTL)

	return &Service{
		Intern:    NewInternService(repo, logger, loc, cfg.Internship.BaseDays),
		Unit:      NewUnitService(repo, logger, loc),
		Rotation:  rotationSvc,
		Extension: NewExtensionService(repo, logger, loc, cfg.Internship.BaseDays),
		Activity:  NewActivityService(repo, logger),
		Settings:  NewSettingsService(repo, logger),
		Loc:       loc,
	}
}

// recordActivity appends an audit trail entry. The trail is best-effort:
// a failed write is logged and never fails the operation it describes.
func recordActivity(ctx context.Context, repo repository.ActivityLogRepository, logger *zap.Logger, activityType string, internID, unitID *string, description string) {
	entry := &model.ActivityLog{
		ActivityType: activityType,
		InternID:     internID,
		UnitID:       unitID,
		Description:  description,
	}
	if err := repo.Create(ctx, entry); err != nil {
		logger.Warn("record activity failed",
			zap.String("activity_type", activityType),
			zap.Error(err))
	}
}

// deriveStatus computes the canonical intern status: an intern is done
// once their elapsed days reach base length plus granted extensions,
// regardless of what the stored status column says.
func deriveStatus(intern *model.Intern, baseDays int, today calendar.Date, loc *time.Location) string {
	start := calendar.FromTime(intern.StartDate, loc)
	elapsed := calendar.SpanDays(start, today)
	if elapsed > 0 && elapsed >= baseDays+intern.ExtensionDays {
		return model.InternStatusCompleted
	}
	if intern.ExtensionDays > 0 {
		return model.InternStatusExtended
	}
	return model.InternStatusActive
}
