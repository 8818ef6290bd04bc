package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/model"
	"github.com/NGOKrooz/SPIN-sub000/internal/repository"
)

func newTestExtensionService(repo *repository.Repository) ExtensionService {
	return NewExtensionService(repo, zap.NewNop(), testLoc, 365)
}

func TestExtendPushesActiveRotationEnd(t *testing.T) {
	repo, activity := newTestRepo()
	units := seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)
	seedRotation(t, repo, intern.InternID, units[0].UnitID, start, start.AddDays(13), false)

	svc := newTestExtensionService(repo)
	today := calendar.New(2026, time.March, 10, testLoc)

	resp, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       10,
		ReasonCode: model.ExtensionReasonIllness,
		Note:       "malaria admission",
	}, today)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if resp.Intern.ExtensionDays != 10 {
		t.Fatalf("extension days = %d, want 10", resp.Intern.ExtensionDays)
	}
	if resp.Intern.Status != model.InternStatusExtended {
		t.Fatalf("status = %s, want Extended", resp.Intern.Status)
	}
	if !resp.RotationAdjusted || resp.AdjustedRotation == nil {
		t.Fatal("active rotation was not adjusted")
	}
	// 2026-03-14 plus ten days
	if resp.AdjustedRotation.EndDate != "2026-03-24" {
		t.Fatalf("adjusted end = %s, want 2026-03-24", resp.AdjustedRotation.EndDate)
	}

	reasons, err := svc.ListByIntern(context.Background(), intern.InternID)
	if err != nil {
		t.Fatalf("ListByIntern: %v", err)
	}
	if len(reasons) != 1 || reasons[0].Days != 10 || reasons[0].ReasonCode != model.ExtensionReasonIllness {
		t.Fatalf("audit trail = %+v, want one illness row of 10 days", reasons)
	}
	if got := activity.byType(model.ActivityInternExtended); got != 1 {
		t.Fatalf("extension activity rows = %d, want 1", got)
	}
}

func TestExtendAccumulatesDelta(t *testing.T) {
	repo, _ := newTestRepo()
	units := seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)
	seedRotation(t, repo, intern.InternID, units[0].UnitID, start, start.AddDays(13), false)

	svc := newTestExtensionService(repo)
	today := calendar.New(2026, time.March, 10, testLoc)

	if _, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       3,
		ReasonCode: model.ExtensionReasonLeave,
	}, today); err != nil {
		t.Fatalf("first extend: %v", err)
	}
	resp, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       10,
		ReasonCode: model.ExtensionReasonPerformance,
	}, today)
	if err != nil {
		t.Fatalf("second extend: %v", err)
	}
	if resp.Intern.ExtensionDays != 13 {
		t.Fatalf("cumulative extension = %d, want 13", resp.Intern.ExtensionDays)
	}

	reasons, _ := svc.ListByIntern(context.Background(), intern.InternID)
	if len(reasons) != 2 {
		t.Fatalf("audit rows = %d, want 2", len(reasons))
	}
}

func TestExtendRejectsOutOfRange(t *testing.T) {
	repo, _ := newTestRepo()
	seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)

	svc := newTestExtensionService(repo)
	today := calendar.New(2026, time.March, 10, testLoc)

	// negative total
	if _, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       -5,
		ReasonCode: model.ExtensionReasonOther,
	}, today); err != ErrExtensionOutOfRange {
		t.Fatalf("negative total: err = %v, want ErrExtensionOutOfRange", err)
	}

	// beyond the cap
	if _, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       366,
		ReasonCode: model.ExtensionReasonOther,
	}, today); err != ErrExtensionOutOfRange {
		t.Fatalf("beyond cap: err = %v, want ErrExtensionOutOfRange", err)
	}

	// rejected requests leave no trace
	reasons, _ := svc.ListByIntern(context.Background(), intern.InternID)
	if len(reasons) != 0 {
		t.Fatalf("audit rows = %d after rejections, want 0", len(reasons))
	}
	stored, _ := repo.Intern.GetByID(context.Background(), intern.InternID)
	if stored.ExtensionDays != 0 {
		t.Fatalf("extension days = %d after rejections, want 0", stored.ExtensionDays)
	}
}

func TestExtendWithoutLiveRotationStillAudits(t *testing.T) {
	repo, _ := newTestRepo()
	seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)

	svc := newTestExtensionService(repo)
	today := calendar.New(2026, time.March, 10, testLoc)

	resp, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       7,
		ReasonCode: model.ExtensionReasonDisciplinary,
	}, today)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if resp.RotationAdjusted {
		t.Fatal("reported an adjustment with no rotations on record")
	}
	reasons, _ := svc.ListByIntern(context.Background(), intern.InternID)
	if len(reasons) != 1 {
		t.Fatalf("audit rows = %d, want 1 even without a live rotation", len(reasons))
	}
}

func TestExtendTargetsNamedUnit(t *testing.T) {
	repo, _ := newTestRepo()
	units := seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)
	seedRotation(t, repo, intern.InternID, units[0].UnitID, start, start.AddDays(13), false)
	second := seedRotation(t, repo, intern.InternID, units[1].UnitID, start.AddDays(14), start.AddDays(27), false)

	svc := newTestExtensionService(repo)
	// today falls inside the first rotation, but the request names the second unit
	today := calendar.New(2026, time.March, 10, testLoc)

	resp, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       4,
		ReasonCode: model.ExtensionReasonLeave,
		UnitID:     &units[1].UnitID,
	}, today)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if !resp.RotationAdjusted || resp.AdjustedRotation == nil {
		t.Fatal("named-unit rotation was not adjusted")
	}
	if resp.AdjustedRotation.ID != second.RotationID {
		t.Fatalf("adjusted %s, want the named unit's rotation %s", resp.AdjustedRotation.ID, second.RotationID)
	}
	// 2026-03-28 plus four days
	if resp.AdjustedRotation.EndDate != "2026-04-01" {
		t.Fatalf("adjusted end = %s, want 2026-04-01", resp.AdjustedRotation.EndDate)
	}
}

func TestExtendPicksLatestStartWhenRotationsOverlap(t *testing.T) {
	repo, _ := newTestRepo()
	units := seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)
	seedRotation(t, repo, intern.InternID, units[0].UnitID, start, start.AddDays(13), false)
	// manual double-assignment: both rotations cover today
	second := seedRotation(t, repo, intern.InternID, units[1].UnitID, start.AddDays(5), start.AddDays(18), true)

	svc := newTestExtensionService(repo)
	today := calendar.New(2026, time.March, 10, testLoc)

	resp, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       7,
		ReasonCode: model.ExtensionReasonLeave,
	}, today)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if !resp.RotationAdjusted || resp.AdjustedRotation == nil {
		t.Fatal("no rotation was adjusted")
	}
	// the builder's rule: among rotations covering today, latest start wins
	if resp.AdjustedRotation.ID != second.RotationID {
		t.Fatalf("adjusted %s, want the latest-start rotation %s", resp.AdjustedRotation.ID, second.RotationID)
	}
	// 2026-03-19 plus seven days
	if resp.AdjustedRotation.EndDate != "2026-03-26" {
		t.Fatalf("adjusted end = %s, want 2026-03-26", resp.AdjustedRotation.EndDate)
	}
}

func TestExtendShrinkClampsAtRotationStart(t *testing.T) {
	repo, _ := newTestRepo()
	units := seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)
	seedRotation(t, repo, intern.InternID, units[0].UnitID, start, start.AddDays(13), false)
	// short future rotation the shrink will land on
	short := seedRotation(t, repo, intern.InternID, units[1].UnitID, start.AddDays(19), start.AddDays(21), true)

	svc := newTestExtensionService(repo)
	today := calendar.New(2026, time.March, 10, testLoc)

	if _, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       10,
		ReasonCode: model.ExtensionReasonIllness,
	}, today); err != nil {
		t.Fatalf("grant extend: %v", err)
	}

	resp, err := svc.Extend(context.Background(), intern.InternID, &dto.ExtendInternshipRequest{
		Days:       -10,
		ReasonCode: model.ExtensionReasonPerformance,
		UnitID:     &units[1].UnitID,
	}, today)
	if err != nil {
		t.Fatalf("shrink extend: %v", err)
	}
	if resp.Intern.ExtensionDays != 0 {
		t.Fatalf("total extension = %d, want 0", resp.Intern.ExtensionDays)
	}
	if !resp.RotationAdjusted || resp.AdjustedRotation == nil {
		t.Fatal("no rotation was adjusted")
	}
	if resp.AdjustedRotation.ID != short.RotationID {
		t.Fatalf("adjusted %s, want %s", resp.AdjustedRotation.ID, short.RotationID)
	}
	// a ten-day shrink of a three-day rotation stops at its start date
	if resp.AdjustedRotation.EndDate != "2026-03-20" {
		t.Fatalf("adjusted end = %s, want 2026-03-20", resp.AdjustedRotation.EndDate)
	}
}
