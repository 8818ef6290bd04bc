package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/model"
	"github.com/NGOKrooz/SPIN-sub000/internal/repository"
	"github.com/NGOKrooz/SPIN-sub000/internal/schedule"
)

var (
	ErrUnitNotFound      = errors.New("unit not found")
	ErrUnitNameExists    = errors.New("unit name already exists")
	ErrUnitHasRotations  = errors.New("unit has current or future rotations and cannot be deleted")
	ErrReorderIncomplete = errors.New("reorder must list every unit id exactly once")
)

// UnitService manages the ordered unit catalog.
type UnitService interface {
	Create(ctx context.Context, req *dto.CreateUnitRequest) (*dto.UnitResponse, error)
	GetByID(ctx context.Context, id string, today calendar.Date) (*dto.UnitResponse, error)
	// List returns the catalog in rotation order with workload and
	// coverage attached.
	List(ctx context.Context, today calendar.Date) ([]dto.UnitResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUnitRequest) (*dto.UnitResponse, error)
	Delete(ctx context.Context, id string, today calendar.Date) error
	Reorder(ctx context.Context, req *dto.ReorderUnitsRequest) ([]dto.UnitResponse, error)
}

type unitService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
}

// NewUnitService creates the unit service.
func NewUnitService(repo *repository.Repository, logger *zap.Logger, loc *time.Location) UnitService {
	return &unitService{repo: repo, logger: logger, loc: loc}
}

func (s *unitService) Create(ctx context.Context, req *dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	existing, err := s.repo.Unit.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check unit name: %w", err)
	}
	if existing != nil {
		return nil, ErrUnitNameExists
	}

	maxPos, err := s.repo.Unit.MaxPosition(ctx)
	if err != nil {
		return nil, fmt.Errorf("next unit position: %w", err)
	}

	unit := &model.Unit{
		Name:         req.Name,
		DurationDays: req.DurationDays,
		PatientCount: req.PatientCount,
		Position:     maxPos + 1,
	}
	if err := s.repo.Unit.Create(ctx, unit); err != nil {
		return nil, fmt.Errorf("create unit: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityUnitCreated, nil, &unit.UnitID,
		fmt.Sprintf("Unit %q created at position %d (%d days)", unit.Name, unit.Position, unit.DurationDays))

	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation settings: %w", err)
	}
	resp := s.toResponse(unit, settings, nil)
	return &resp, nil
}

func (s *unitService) GetByID(ctx context.Context, id string, today calendar.Date) (*dto.UnitResponse, error) {
	unit, err := s.repo.Unit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}

	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation settings: %w", err)
	}
	coverage, err := s.coverage(ctx, unit, settings, today)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(unit, settings, coverage)
	return &resp, nil
}

func (s *unitService) List(ctx context.Context, today calendar.Date) ([]dto.UnitResponse, error) {
	units, err := s.repo.Unit.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation settings: %w", err)
	}

	resps := make([]dto.UnitResponse, 0, len(units))
	for i := range units {
		coverage, err := s.coverage(ctx, &units[i], settings, today)
		if err != nil {
			return nil, err
		}
		resps = append(resps, s.toResponse(&units[i], settings, coverage))
	}
	return resps, nil
}

func (s *unitService) Update(ctx context.Context, id string, req *dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	unit, err := s.repo.Unit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}

	if req.Name != nil && *req.Name != unit.Name {
		existing, err := s.repo.Unit.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check unit name: %w", err)
		}
		if existing != nil {
			return nil, ErrUnitNameExists
		}
		unit.Name = *req.Name
	}
	if req.DurationDays != nil {
		// existing rotations keep their dates; only future assignments
		// pick up the new duration
		unit.DurationDays = *req.DurationDays
	}
	if req.PatientCount != nil {
		unit.PatientCount = *req.PatientCount
	}

	if err := s.repo.Unit.Update(ctx, unit); err != nil {
		return nil, fmt.Errorf("update unit: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityUnitUpdated, nil, &unit.UnitID,
		fmt.Sprintf("Unit %q updated", unit.Name))

	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation settings: %w", err)
	}
	resp := s.toResponse(unit, settings, nil)
	return &resp, nil
}

func (s *unitService) Delete(ctx context.Context, id string, today calendar.Date) error {
	unit, err := s.repo.Unit.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		return fmt.Errorf("get unit: %w", err)
	}

	open, err := s.repo.Rotation.CountOpenByUnit(ctx, id, today.Time())
	if err != nil {
		return fmt.Errorf("count open rotations: %w", err)
	}
	if open > 0 {
		return ErrUnitHasRotations
	}

	// the rotations FK cascades, so the unit's history goes with it;
	// any row that slips through still renders as a deleted-unit
	// placeholder in schedule reads
	if err := s.repo.Unit.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityUnitDeleted, nil, &id,
		fmt.Sprintf("Unit %q deleted", unit.Name))
	return nil
}

func (s *unitService) Reorder(ctx context.Context, req *dto.ReorderUnitsRequest) ([]dto.UnitResponse, error) {
	units, err := s.repo.Unit.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	if len(req.UnitIDs) != len(units) {
		return nil, ErrReorderIncomplete
	}
	known := make(map[string]bool, len(units))
	for i := range units {
		known[units[i].UnitID] = true
	}
	seen := make(map[string]bool, len(req.UnitIDs))
	for _, id := range req.UnitIDs {
		if !known[id] || seen[id] {
			return nil, ErrReorderIncomplete
		}
		seen[id] = true
	}

	if err := s.repo.Unit.ReorderPositions(ctx, req.UnitIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReorderIncomplete
		}
		return nil, fmt.Errorf("reorder units: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityUnitsReordered, nil, nil,
		fmt.Sprintf("Unit catalog reordered (%d units)", len(req.UnitIDs)))

	reordered, err := s.repo.Unit.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rotation settings: %w", err)
	}
	resps := make([]dto.UnitResponse, 0, len(reordered))
	for i := range reordered {
		resps = append(resps, s.toResponse(&reordered[i], settings, nil))
	}
	return resps, nil
}

func (s *unitService) coverage(ctx context.Context, unit *model.Unit, settings *model.RotationSettings, today calendar.Date) (*dto.CoverageResponse, error) {
	count, err := s.repo.Rotation.CountActiveByUnit(ctx, unit.UnitID, today.Time())
	if err != nil {
		return nil, fmt.Errorf("count active rotations: %w", err)
	}
	status := schedule.ClassifyCoverage(
		int(count),
		unit.Workload(settings.MediumPatientThreshold, settings.HighPatientThreshold),
		schedule.CoverageThresholds{
			MinHigh:   settings.MinInternsHigh,
			MinMedium: settings.MinInternsMedium,
			MinLow:    settings.MinInternsLow,
		},
	)
	return &dto.CoverageResponse{CurrentInterns: int(count), Status: status}, nil
}

func (s *unitService) toResponse(unit *model.Unit, settings *model.RotationSettings, coverage *dto.CoverageResponse) dto.UnitResponse {
	return dto.UnitResponse{
		ID:           unit.UnitID,
		Name:         unit.Name,
		DurationDays: unit.DurationDays,
		PatientCount: unit.PatientCount,
		Position:     unit.Position,
		Workload:     unit.Workload(settings.MediumPatientThreshold, settings.HighPatientThreshold),
		Coverage:     coverage,
		CreatedAt:    unit.CreatedAt.Format(time.RFC3339),
	}
}

