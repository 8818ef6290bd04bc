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

// MaxExtensionDays bounds the cumulative extension an intern can carry.
const MaxExtensionDays = 365

var ErrExtensionOutOfRange = errors.New("cumulative extension must stay between 0 and 365 days")

// ExtensionService grants and audits internship extensions.
type ExtensionService interface {
	// Extend applies req.Days as a signed adjustment to the intern's
	// cumulative extension (the first grant sets the total outright) and
	// pushes the affected rotation's end date by the same amount. Every
	// accepted request leaves an audit row, even when no rotation moved.
	Extend(ctx context.Context, internID string, req *dto.ExtendInternshipRequest, today calendar.Date) (*dto.ExtendInternshipResponse, error)
	ListByIntern(ctx context.Context, internID string) ([]dto.ExtensionReasonResponse, error)
}

type extensionService struct {
	repo     *repository.Repository
	logger   *zap.Logger
	loc      *time.Location
	baseDays int
}

// NewExtensionService creates the extension service.
func NewExtensionService(repo *repository.Repository, logger *zap.Logger, loc *time.Location, baseDays int) ExtensionService {
	return &extensionService{repo: repo, logger: logger, loc: loc, baseDays: baseDays}
}

func (s *extensionService) Extend(ctx context.Context, internID string, req *dto.ExtendInternshipRequest, today calendar.Date) (*dto.ExtendInternshipResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		return nil, fmt.Errorf("get intern: %w", err)
	}

	total := intern.ExtensionDays + req.Days
	if total < 0 || total > MaxExtensionDays {
		// rejected before any write; no audit row either
		return nil, ErrExtensionOutOfRange
	}

	intern.ExtensionDays = total
	intern.Status = deriveStatus(intern, s.baseDays, today, s.loc)
	if err := s.repo.Intern.Update(ctx, intern); err != nil {
		return nil, fmt.Errorf("update intern: %w", err)
	}

	adjusted, err := s.adjustRotation(ctx, intern, req, today)
	if err != nil {
		return nil, err
	}

	reason := &model.ExtensionReason{
		InternID:   intern.InternID,
		Days:       req.Days,
		ReasonCode: req.ReasonCode,
		Note:       req.Note,
	}
	if err := s.repo.ExtensionReason.Create(ctx, reason); err != nil {
		return nil, fmt.Errorf("record extension reason: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityInternExtended, &intern.InternID, req.UnitID,
		fmt.Sprintf("Intern %s extension adjusted by %+d days to %d total (%s)", intern.Name, req.Days, total, req.ReasonCode))

	resp := &dto.ExtendInternshipResponse{
		Intern: dto.InternResponse{
			ID:            intern.InternID,
			Name:          intern.Name,
			Gender:        intern.Gender,
			Batch:         intern.Batch,
			StartDate:     calendar.FromTime(intern.StartDate, s.loc).String(),
			Phone:         intern.Phone,
			Status:        intern.Status,
			ExtensionDays: intern.ExtensionDays,
			CreatedAt:     intern.CreatedAt.Format(time.RFC3339),
		},
		RotationAdjusted: adjusted != nil,
	}
	if adjusted != nil {
		resp.AdjustedRotation = &dto.RotationResponse{
			ID:                 adjusted.RotationID,
			InternID:           adjusted.InternID,
			StartDate:          calendar.FromTime(adjusted.StartDate, s.loc).String(),
			EndDate:            calendar.FromTime(adjusted.EndDate, s.loc).String(),
			IsManualAssignment: adjusted.IsManualAssignment,
			CreatedAt:          adjusted.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// adjustRotation moves the end date of the rotation the extension targets:
// the one in the named unit, or the intern's current rotation, falling back
// to the most recently ended one. Returns nil when no rotation qualifies;
// the extension still stands.
func (s *extensionService) adjustRotation(ctx context.Context, intern *model.Intern, req *dto.ExtendInternshipRequest, today calendar.Date) (*model.Rotation, error) {
	if req.Days == 0 {
		return nil, nil
	}

	rotations, err := s.repo.Rotation.ListByIntern(ctx, intern.InternID)
	if err != nil {
		return nil, fmt.Errorf("list rotations: %w", err)
	}

	var target, past, any *model.Rotation
	for i := range rotations {
		r := &rotations[i]
		if req.UnitID != nil && r.UnitID != *req.UnitID {
			continue
		}
		start := calendar.FromTime(r.StartDate, s.loc)
		end := calendar.FromTime(r.EndDate, s.loc)
		if start.OnOrBefore(today) && end.OnOrAfter(today) {
			// latest start wins when several rotations cover today,
			// the same rule the builder uses to pick the current one
			target = r
			continue
		}
		if end.Before(today) {
			// rotations are ordered by start; the last past one wins
			// when nothing covers today
			past = r
		}
		any = r
	}
	if target == nil {
		target = past
	}
	if target == nil && req.UnitID != nil {
		// a named unit's rotation moves even when it is still ahead
		target = any
	}
	if target == nil {
		return nil, nil
	}

	start := calendar.FromTime(target.StartDate, s.loc)
	end := calendar.FromTime(target.EndDate, s.loc).AddDays(req.Days)
	if end.Before(start) {
		// a shrink never inverts the range
		end = start
	}
	target.EndDate = end.Time()
	if err := s.repo.Rotation.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("adjust rotation end date: %w", err)
	}
	return target, nil
}

func (s *extensionService) ListByIntern(ctx context.Context, internID string) ([]dto.ExtensionReasonResponse, error) {
	if _, err := s.repo.Intern.GetByID(ctx, internID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		return nil, fmt.Errorf("get intern: %w", err)
	}

	reasons, err := s.repo.ExtensionReason.ListByIntern(ctx, internID)
	if err != nil {
		return nil, fmt.Errorf("list extension reasons: %w", err)
	}

	resps := make([]dto.ExtensionReasonResponse, 0, len(reasons))
	for _, r := range reasons {
		resps = append(resps, dto.ExtensionReasonResponse{
			ID:         r.ExtensionReasonID,
			InternID:   r.InternID,
			Days:       r.Days,
			ReasonCode: r.ReasonCode,
			Note:       r.Note,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return resps, nil
}
