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
)

var (
	ErrInternNotFound    = errors.New("intern not found")
	ErrInvalidStartDate  = errors.New("start date must be a valid YYYY-MM-DD date")
	ErrNoUnitsConfigured = errors.New("no units configured; create units before registering interns")
)

// InternService manages intern records and their derived status.
type InternService interface {
	// Register creates the intern and seeds their first rotation in the
	// first unit of the catalog.
	Register(ctx context.Context, req *dto.RegisterInternRequest, today calendar.Date) (*dto.InternResponse, error)
	GetByID(ctx context.Context, id string, today calendar.Date) (*dto.InternResponse, error)
	List(ctx context.Context, req *dto.InternListRequest, today calendar.Date) ([]dto.InternResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateInternRequest) (*dto.InternResponse, error)
	Delete(ctx context.Context, id string) error
}

type internService struct {
	repo     *repository.Repository
	logger   *zap.Logger
	loc      *time.Location
	baseDays int
}

// NewInternService creates the intern service.
func NewInternService(repo *repository.Repository, logger *zap.Logger, loc *time.Location, baseDays int) InternService {
	return &internService{repo: repo, logger: logger, loc: loc, baseDays: baseDays}
}

func (s *internService) Register(ctx context.Context, req *dto.RegisterInternRequest, today calendar.Date) (*dto.InternResponse, error) {
	start := calendar.Parse(req.StartDate, s.loc)
	if !start.IsValid() {
		return nil, ErrInvalidStartDate
	}

	units, err := s.repo.Unit.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	if len(units) == 0 {
		return nil, ErrNoUnitsConfigured
	}

	intern := &model.Intern{
		Name:      req.Name,
		Gender:    req.Gender,
		Batch:     req.Batch,
		StartDate: start.Time(),
		Phone:     req.Phone,
		Status:    model.InternStatusActive,
	}
	if err := s.repo.Intern.Create(ctx, intern); err != nil {
		return nil, fmt.Errorf("create intern: %w", err)
	}

	first := units[0]
	rotation := &model.Rotation{
		InternID:  intern.InternID,
		UnitID:    first.UnitID,
		StartDate: start.Time(),
		EndDate:   start.AddDays(first.DurationDays - 1).Time(),
	}
	if err := s.repo.Rotation.Create(ctx, rotation); err != nil {
		return nil, fmt.Errorf("seed first rotation: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityInternRegistered, &intern.InternID, &first.UnitID,
		fmt.Sprintf("Intern %s registered (batch %s), starting in %q on %s", intern.Name, intern.Batch, first.Name, start))

	resp := s.toResponse(intern)
	return &resp, nil
}

func (s *internService) GetByID(ctx context.Context, id string, today calendar.Date) (*dto.InternResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		return nil, fmt.Errorf("get intern: %w", err)
	}

	if err := s.syncStatus(ctx, intern, today); err != nil {
		return nil, err
	}

	resp := s.toResponse(intern)
	return &resp, nil
}

func (s *internService) List(ctx context.Context, req *dto.InternListRequest, today calendar.Date) ([]dto.InternResponse, int64, error) {
	interns, total, err := s.repo.Intern.List(ctx, req.Batch, req.Status, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, fmt.Errorf("list interns: %w", err)
	}

	resps := make([]dto.InternResponse, 0, len(interns))
	for i := range interns {
		if err := s.syncStatus(ctx, &interns[i], today); err != nil {
			return nil, 0, err
		}
		resps = append(resps, s.toResponse(&interns[i]))
	}
	return resps, total, nil
}

func (s *internService) Update(ctx context.Context, id string, req *dto.UpdateInternRequest) (*dto.InternResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		return nil, fmt.Errorf("get intern: %w", err)
	}

	if req.Name != nil {
		intern.Name = *req.Name
	}
	if req.Batch != nil {
		intern.Batch = *req.Batch
	}
	if req.Phone != nil {
		intern.Phone = *req.Phone
	}

	if err := s.repo.Intern.Update(ctx, intern); err != nil {
		return nil, fmt.Errorf("update intern: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityInternUpdated, &intern.InternID, nil,
		fmt.Sprintf("Intern %s updated", intern.Name))

	resp := s.toResponse(intern)
	return &resp, nil
}

func (s *internService) Delete(ctx context.Context, id string) error {
	intern, err := s.repo.Intern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInternNotFound
		}
		return fmt.Errorf("get intern: %w", err)
	}

	if err := s.repo.Intern.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete intern: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityInternDeleted, nil, nil,
		fmt.Sprintf("Intern %s deleted with all rotations", intern.Name))
	return nil
}

// syncStatus reconciles the stored status with the derived one and
// persists on change, so reads converge the column without a batch job.
func (s *internService) syncStatus(ctx context.Context, intern *model.Intern, today calendar.Date) error {
	derived := deriveStatus(intern, s.baseDays, today, s.loc)
	if derived == intern.Status {
		return nil
	}
	previous := intern.Status
	intern.Status = derived
	if err := s.repo.Intern.Update(ctx, intern); err != nil {
		return fmt.Errorf("sync intern status: %w", err)
	}
	if derived == model.InternStatusCompleted {
		recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityInternCompleted, &intern.InternID, nil,
			fmt.Sprintf("Intern %s completed their internship (was %s)", intern.Name, previous))
	}
	return nil
}

func (s *internService) toResponse(intern *model.Intern) dto.InternResponse {
	return dto.InternResponse{
		ID:            intern.InternID,
		Name:          intern.Name,
		Gender:        intern.Gender,
		Batch:         intern.Batch,
		StartDate:     calendar.FromTime(intern.StartDate, s.loc).String(),
		Phone:         intern.Phone,
		Status:        intern.Status,
		ExtensionDays: intern.ExtensionDays,
		CreatedAt:     intern.CreatedAt.Format(time.RFC3339),
	}
}
