package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/model"
	"github.com/NGOKrooz/SPIN-sub000/internal/repository"
	"github.com/NGOKrooz/SPIN-sub000/internal/schedule"
	"github.com/NGOKrooz/SPIN-sub000/pkg/redis"
)

var (
	ErrRotationNotFound = errors.New("rotation not found")
	ErrRotationOverlap  = errors.New("rotation overlaps an existing assignment")
	ErrInvalidDateRange = errors.New("end date must be a valid date on or after the start date")
)

// Advance no-op reasons surfaced on schedule reads.
const (
	advanceReasonCompleted  = "internship completed"
	advanceReasonNoUnits    = "no units configured"
	advanceReasonExhausted  = "all units visited"
	advanceReasonOpen       = "current rotation still open"
	advanceReasonInProgress = "advance already in progress"
	advanceReasonFailed     = "advance failed, schedule shown as stored"
)

// RotationService owns rotation rows and the schedule views derived from
// them. Schedule reads run the lazy auto-advance first, so a stale chain
// catches up the moment anyone looks at it.
type RotationService interface {
	GetSchedule(ctx context.Context, internID string, today calendar.Date) (*dto.ScheduleResponse, error)
	// ScheduleICS renders the intern's dated rotations as an iCalendar
	// feed of all-day events.
	ScheduleICS(ctx context.Context, internID string, today calendar.Date) (string, error)
	// AvailableUnits lists the units the intern has not completed and is
	// not currently in: the valid targets for a manual assignment.
	AvailableUnits(ctx context.Context, internID string, today calendar.Date) ([]dto.UnitBrief, error)
	CreateManual(ctx context.Context, req *dto.CreateRotationRequest) (*dto.RotationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRotationRequest) (*dto.RotationResponse, error)
	Delete(ctx context.Context, id string) error
	// CheckConflicts probes a candidate date range against an intern's
	// rotations without writing anything.
	CheckConflicts(ctx context.Context, req *dto.ConflictQueryRequest) (*dto.ConflictResponse, error)
}

type rotationService struct {
	repo     *repository.Repository
	rdb      *redis.Client
	logger   *zap.Logger
	loc      *time.Location
	baseDays int
	lockTTL  time.Duration
}

// NewRotationService creates the rotation service. rdb may be nil; the
// advance then runs without cross-instance serialization.
func NewRotationService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger, loc *time.Location, baseDays int, lockTTL time.Duration) RotationService {
	return &rotationService{
		repo:     repo,
		rdb:      rdb,
		logger:   logger,
		loc:      loc,
		baseDays: baseDays,
		lockTTL:  lockTTL,
	}
}

func (s *rotationService) GetSchedule(ctx context.Context, internID string, today calendar.Date) (*dto.ScheduleResponse, error) {
	intern, sched, advance, err := s.scheduleFor(ctx, internID, today)
	if err != nil {
		return nil, err
	}

	resp := &dto.ScheduleResponse{
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
		Completed: make([]dto.ScheduleEntryResponse, 0, len(sched.Completed)),
		Upcoming:  make([]dto.ScheduleEntryResponse, 0, len(sched.Upcoming)),
		Advance:   advance,
	}
	for _, e := range sched.Completed {
		resp.Completed = append(resp.Completed, toEntryResponse(e))
	}
	if sched.Current != nil {
		cur := toEntryResponse(*sched.Current)
		resp.Current = &cur
	}
	for _, e := range sched.Upcoming {
		resp.Upcoming = append(resp.Upcoming, toEntryResponse(e))
	}
	return resp, nil
}

func (s *rotationService) ScheduleICS(ctx context.Context, internID string, today calendar.Date) (string, error) {
	intern, sched, _, err := s.scheduleFor(ctx, internID, today)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SPIN//Rotation Schedule//EN")
	cal.SetName(fmt.Sprintf("Rotations: %s", intern.Name))

	entries := make([]schedule.Entry, 0, len(sched.Completed)+1+len(sched.Upcoming))
	entries = append(entries, sched.Completed...)
	if sched.Current != nil {
		entries = append(entries, *sched.Current)
	}
	entries = append(entries, sched.Upcoming...)

	for _, e := range entries {
		if !e.StartDate.IsValid() || !e.EndDate.IsValid() {
			// synthetic upcoming entries have no dates yet
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("rotation-%s@spin", e.RotationID))
		ev.SetSummary(fmt.Sprintf("%s: %s", intern.Name, e.UnitName))
		ev.SetDtStampTime(time.Now())
		ev.SetAllDayStartAt(e.StartDate.Time())
		// DTEND is exclusive for all-day events
		ev.SetAllDayEndAt(e.EndDate.AddDays(1).Time())
	}

	return cal.Serialize(), nil
}

func (s *rotationService) AvailableUnits(ctx context.Context, internID string, today calendar.Date) ([]dto.UnitBrief, error) {
	_, sched, _, err := s.scheduleFor(ctx, internID, today)
	if err != nil {
		return nil, err
	}

	briefs := make([]dto.UnitBrief, 0, len(sched.Upcoming))
	for _, e := range sched.Upcoming {
		briefs = append(briefs, dto.UnitBrief{ID: e.UnitID, Name: e.UnitName})
	}
	return briefs, nil
}

// scheduleFor loads the intern, runs the advance machine, and builds the
// schedule view every read-side entry point shares.
func (s *rotationService) scheduleFor(ctx context.Context, internID string, today calendar.Date) (*model.Intern, schedule.Schedule, dto.AdvanceResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedule.Schedule{}, dto.AdvanceResponse{}, ErrInternNotFound
		}
		return nil, schedule.Schedule{}, dto.AdvanceResponse{}, fmt.Errorf("get intern: %w", err)
	}

	units, err := s.repo.Unit.List(ctx)
	if err != nil {
		return nil, schedule.Schedule{}, dto.AdvanceResponse{}, fmt.Errorf("list units: %w", err)
	}
	rotations, err := s.repo.Rotation.ListByIntern(ctx, internID)
	if err != nil {
		return nil, schedule.Schedule{}, dto.AdvanceResponse{}, fmt.Errorf("list rotations: %w", err)
	}

	rotations, advance := s.advance(ctx, intern, units, rotations, today)

	// the view always shows the derived status, even when the stored
	// column has not been reconciled yet
	intern.Status = deriveStatus(intern, s.baseDays, today, s.loc)

	return intern, schedule.BuildSchedule(rotations, units, today, s.loc), advance, nil
}

// advance is the lazy auto-advance machine. It appends round-robin
// successor rotations until the chain covers today or every unit has been
// visited. It never fails a read: on any error the stored chain is
// returned as-is with a no-op reason.
func (s *rotationService) advance(ctx context.Context, intern *model.Intern, units []model.Unit, rotations []model.Rotation, today calendar.Date) ([]model.Rotation, dto.AdvanceResponse) {
	if deriveStatus(intern, s.baseDays, today, s.loc) == model.InternStatusCompleted {
		return rotations, dto.AdvanceResponse{Reason: advanceReasonCompleted}
	}
	if len(units) == 0 {
		return rotations, dto.AdvanceResponse{Reason: advanceReasonNoUnits}
	}
	if len(rotations) == 0 {
		// a deleted chain restarts from the catalog front at the
		// intern's own start date
		return s.extendChain(ctx, intern, units, rotations, today)
	}

	latest := rotations[len(rotations)-1]
	if calendar.FromTime(latest.EndDate, s.loc).OnOrAfter(today) {
		return rotations, dto.AdvanceResponse{Reason: advanceReasonOpen}
	}
	if schedule.AllUnitsVisited(rotations, units) {
		return rotations, dto.AdvanceResponse{Reason: advanceReasonExhausted}
	}

	return s.extendChain(ctx, intern, units, rotations, today)
}

// extendChain performs the writes behind a per-intern lease so two
// concurrent reads cannot append the same successor twice.
func (s *rotationService) extendChain(ctx context.Context, intern *model.Intern, units []model.Unit, rotations []model.Rotation, today calendar.Date) ([]model.Rotation, dto.AdvanceResponse) {
	if s.rdb != nil {
		token, ok, err := s.rdb.AcquireAdvanceLock(ctx, intern.InternID, s.lockTTL)
		if err != nil {
			s.logger.Warn("advance lock unavailable",
				zap.String("intern_id", intern.InternID),
				zap.Error(err))
			return rotations, dto.AdvanceResponse{Reason: advanceReasonFailed}
		}
		if !ok {
			return rotations, dto.AdvanceResponse{Reason: advanceReasonInProgress}
		}
		defer func() {
			if err := s.rdb.ReleaseAdvanceLock(ctx, intern.InternID, token); err != nil {
				s.logger.Warn("advance lock release failed",
					zap.String("intern_id", intern.InternID),
					zap.Error(err))
			}
		}()

		// reload under the lock: a concurrent read may have advanced
		// the chain while we waited
		fresh, err := s.repo.Rotation.ListByIntern(ctx, intern.InternID)
		if err != nil {
			s.logger.Warn("advance reload failed",
				zap.String("intern_id", intern.InternID),
				zap.Error(err))
			return rotations, dto.AdvanceResponse{Reason: advanceReasonFailed}
		}
		rotations = fresh
	}

	appended := 0
	for {
		if schedule.AllUnitsVisited(rotations, units) && len(rotations) > 0 {
			break
		}

		var start calendar.Date
		var lastUnitID string
		if len(rotations) == 0 {
			start = calendar.FromTime(intern.StartDate, s.loc)
		} else {
			latest := rotations[len(rotations)-1]
			end := calendar.FromTime(latest.EndDate, s.loc)
			if end.OnOrAfter(today) {
				break
			}
			start = end.AddDays(1)
			lastUnitID = latest.UnitID
		}

		next, ok := schedule.NextUnit(units, lastUnitID)
		if !ok {
			break
		}

		rotation := &model.Rotation{
			InternID:  intern.InternID,
			UnitID:    next.UnitID,
			StartDate: start.Time(),
			EndDate:   start.AddDays(next.DurationDays - 1).Time(),
		}
		if err := s.repo.Rotation.Create(ctx, rotation); err != nil {
			s.logger.Warn("advance append failed",
				zap.String("intern_id", intern.InternID),
				zap.String("unit_id", next.UnitID),
				zap.Error(err))
			if appended == 0 {
				return rotations, dto.AdvanceResponse{Reason: advanceReasonFailed}
			}
			return rotations, dto.AdvanceResponse{Advanced: true}
		}

		rotations = append(rotations, *rotation)
		appended++

		recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityRotationAdvanced, &intern.InternID, &next.UnitID,
			fmt.Sprintf("Intern %s advanced to %q (%s to %s)", intern.Name, next.Name, start, start.AddDays(next.DurationDays-1)))
	}

	if appended == 0 {
		// the locked reload found nothing left to do
		if len(rotations) > 0 && calendar.FromTime(rotations[len(rotations)-1].EndDate, s.loc).OnOrAfter(today) {
			return rotations, dto.AdvanceResponse{Reason: advanceReasonOpen}
		}
		return rotations, dto.AdvanceResponse{Reason: advanceReasonExhausted}
	}
	return rotations, dto.AdvanceResponse{Advanced: true}
}

func (s *rotationService) CreateManual(ctx context.Context, req *dto.CreateRotationRequest) (*dto.RotationResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, req.InternID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		return nil, fmt.Errorf("get intern: %w", err)
	}
	unit, err := s.repo.Unit.GetByID(ctx, req.UnitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}

	start := calendar.Parse(req.StartDate, s.loc)
	if !start.IsValid() {
		return nil, ErrInvalidStartDate
	}
	end := start.AddDays(unit.DurationDays - 1)
	if req.EndDate != "" {
		end = calendar.Parse(req.EndDate, s.loc)
	}
	if !end.IsValid() || end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	if err := s.ensureNoConflict(ctx, req.InternID, start, end, ""); err != nil {
		return nil, err
	}

	rotation := &model.Rotation{
		InternID:           req.InternID,
		UnitID:             req.UnitID,
		StartDate:          start.Time(),
		EndDate:            end.Time(),
		IsManualAssignment: true,
	}
	if err := s.repo.Rotation.Create(ctx, rotation); err != nil {
		return nil, fmt.Errorf("create rotation: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityRotationManual, &intern.InternID, &unit.UnitID,
		fmt.Sprintf("Intern %s manually assigned to %q (%s to %s)", intern.Name, unit.Name, start, end))

	rotation.Intern = intern
	rotation.Unit = unit
	resp := s.toResponse(rotation)
	return &resp, nil
}

func (s *rotationService) Update(ctx context.Context, id string, req *dto.UpdateRotationRequest) (*dto.RotationResponse, error) {
	rotation, err := s.repo.Rotation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRotationNotFound
		}
		return nil, fmt.Errorf("get rotation: %w", err)
	}

	unit := rotation.Unit
	if req.UnitID != nil && *req.UnitID != rotation.UnitID {
		unit, err = s.repo.Unit.GetByID(ctx, *req.UnitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnitNotFound
			}
			return nil, fmt.Errorf("get unit: %w", err)
		}
		rotation.UnitID = unit.UnitID
	}

	start := calendar.FromTime(rotation.StartDate, s.loc)
	if req.StartDate != nil {
		start = calendar.Parse(*req.StartDate, s.loc)
		if !start.IsValid() {
			return nil, ErrInvalidStartDate
		}
	}

	end := calendar.FromTime(rotation.EndDate, s.loc)
	switch {
	case req.EndDate != nil:
		end = calendar.Parse(*req.EndDate, s.loc)
	case req.UnitID != nil || req.StartDate != nil:
		// reassignment without an explicit end takes the unit's duration
		if unit != nil {
			end = start.AddDays(unit.DurationDays - 1)
		}
	}
	if !end.IsValid() || end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	if err := s.ensureNoConflict(ctx, rotation.InternID, start, end, rotation.RotationID); err != nil {
		return nil, err
	}

	rotation.StartDate = start.Time()
	rotation.EndDate = end.Time()
	rotation.IsManualAssignment = true
	if err := s.repo.Rotation.Update(ctx, rotation); err != nil {
		return nil, fmt.Errorf("update rotation: %w", err)
	}

	unitName := schedule.DeletedUnitName
	if unit != nil {
		unitName = unit.Name
	}
	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityRotationUpdated, &rotation.InternID, &rotation.UnitID,
		fmt.Sprintf("Rotation reassigned to %q (%s to %s)", unitName, start, end))

	rotation.Unit = unit
	resp := s.toResponse(rotation)
	return &resp, nil
}

func (s *rotationService) Delete(ctx context.Context, id string) error {
	rotation, err := s.repo.Rotation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRotationNotFound
		}
		return fmt.Errorf("get rotation: %w", err)
	}

	if err := s.repo.Rotation.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rotation: %w", err)
	}

	recordActivity(ctx, s.repo.ActivityLog, s.logger, model.ActivityRotationDeleted, &rotation.InternID, &rotation.UnitID,
		"Rotation deleted")
	return nil
}

func (s *rotationService) CheckConflicts(ctx context.Context, req *dto.ConflictQueryRequest) (*dto.ConflictResponse, error) {
	start := calendar.Parse(req.StartDate, s.loc)
	end := calendar.Parse(req.EndDate, s.loc)
	if !start.IsValid() {
		return nil, ErrInvalidStartDate
	}
	if !end.IsValid() || end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.repo.Intern.GetByID(ctx, req.InternID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		return nil, fmt.Errorf("get intern: %w", err)
	}

	rotations, err := s.repo.Rotation.ListByIntern(ctx, req.InternID)
	if err != nil {
		return nil, fmt.Errorf("list rotations: %w", err)
	}

	conflicts := schedule.FindConflicts(rotations, start, end, req.ExcludeRotationID, s.loc)

	resp := &dto.ConflictResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    make([]dto.RotationResponse, 0, len(conflicts)),
	}
	units, err := s.repo.Unit.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	unitByID := make(map[string]*model.Unit, len(units))
	for i := range units {
		unitByID[units[i].UnitID] = &units[i]
	}
	for i := range conflicts {
		conflicts[i].Unit = unitByID[conflicts[i].UnitID]
		resp.Conflicts = append(resp.Conflicts, s.toResponse(&conflicts[i]))
	}
	return resp, nil
}

// ensureNoConflict rejects overlapping manual writes unless the operator
// has switched overlap protection off in settings.
func (s *rotationService) ensureNoConflict(ctx context.Context, internID string, start, end calendar.Date, excludeRotationID string) error {
	settings, err := s.repo.Settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load rotation settings: %w", err)
	}
	if settings.AllowManualOverlap {
		return nil
	}

	rotations, err := s.repo.Rotation.ListByIntern(ctx, internID)
	if err != nil {
		return fmt.Errorf("list rotations: %w", err)
	}
	if len(schedule.FindConflicts(rotations, start, end, excludeRotationID, s.loc)) > 0 {
		return ErrRotationOverlap
	}
	return nil
}

func (s *rotationService) toResponse(rotation *model.Rotation) dto.RotationResponse {
	resp := dto.RotationResponse{
		ID:                 rotation.RotationID,
		InternID:           rotation.InternID,
		StartDate:          calendar.FromTime(rotation.StartDate, s.loc).String(),
		EndDate:            calendar.FromTime(rotation.EndDate, s.loc).String(),
		IsManualAssignment: rotation.IsManualAssignment,
		CreatedAt:          rotation.CreatedAt.Format(time.RFC3339),
	}
	if rotation.Unit != nil {
		resp.Unit = &dto.UnitBrief{ID: rotation.Unit.UnitID, Name: rotation.Unit.Name}
	}
	if rotation.Intern != nil {
		resp.Intern = &dto.InternBrief{ID: rotation.Intern.InternID, Name: rotation.Intern.Name, Batch: rotation.Intern.Batch}
	}
	return resp
}

func toEntryResponse(e schedule.Entry) dto.ScheduleEntryResponse {
	resp := dto.ScheduleEntryResponse{
		RotationID:         e.RotationID,
		UnitID:             e.UnitID,
		UnitName:           e.UnitName,
		IsManualAssignment: e.IsManual,
		UnitDeleted:        e.UnitDeleted,
	}
	if e.StartDate.IsValid() {
		resp.StartDate = e.StartDate.String()
	}
	if e.EndDate.IsValid() {
		resp.EndDate = e.EndDate.String()
	}
	return resp
}
