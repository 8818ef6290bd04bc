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
	"github.com/NGOKrooz/SPIN-sub000/internal/schedule"
)

func newTestUnitService(repo *repository.Repository) UnitService {
	return NewUnitService(repo, zap.NewNop(), testLoc)
}

func TestCreateUnitAppendsAtEnd(t *testing.T) {
	repo, _ := newTestRepo()
	seedCatalog(t, repo)
	svc := newTestUnitService(repo)

	resp, err := svc.Create(context.Background(), &dto.CreateUnitRequest{
		Name:         "Intensive Care",
		DurationDays: 21,
		PatientCount: 60,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Position != 5 {
		t.Fatalf("position = %d, want appended at 5", resp.Position)
	}
	if resp.Workload != model.WorkloadHigh {
		t.Fatalf("workload = %s, want High for 60 patients", resp.Workload)
	}
}

func TestCreateUnitDuplicateName(t *testing.T) {
	repo, _ := newTestRepo()
	seedCatalog(t, repo)
	svc := newTestUnitService(repo)

	_, err := svc.Create(context.Background(), &dto.CreateUnitRequest{
		Name:         "Neurology",
		DurationDays: 14,
	})
	if err != ErrUnitNameExists {
		t.Fatalf("err = %v, want ErrUnitNameExists", err)
	}
}

func TestDeleteUnitGuardedByOpenRotations(t *testing.T) {
	repo, _ := newTestRepo()
	units := seedCatalog(t, repo)
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)
	seedRotation(t, repo, intern.InternID, units[0].UnitID, start, start.AddDays(13), false)

	svc := newTestUnitService(repo)
	today := calendar.New(2026, time.March, 2, testLoc)

	if err := svc.Delete(context.Background(), units[0].UnitID, today); err != ErrUnitHasRotations {
		t.Fatalf("err = %v, want ErrUnitHasRotations", err)
	}

	// once the rotation is history the unit can go
	later := calendar.New(2026, time.April, 1, testLoc)
	if err := svc.Delete(context.Background(), units[0].UnitID, later); err != nil {
		t.Fatalf("Delete after rotation ended: %v", err)
	}
}

func TestReorderValidatesCompletePermutation(t *testing.T) {
	repo, _ := newTestRepo()
	units := seedCatalog(t, repo)
	svc := newTestUnitService(repo)

	_, err := svc.Reorder(context.Background(), &dto.ReorderUnitsRequest{
		UnitIDs: []string{units[0].UnitID, units[1].UnitID},
	})
	if err != ErrReorderIncomplete {
		t.Fatalf("partial list: err = %v, want ErrReorderIncomplete", err)
	}

	_, err = svc.Reorder(context.Background(), &dto.ReorderUnitsRequest{
		UnitIDs: []string{units[0].UnitID, units[1].UnitID, units[2].UnitID, units[2].UnitID},
	})
	if err != ErrReorderIncomplete {
		t.Fatalf("duplicate id: err = %v, want ErrReorderIncomplete", err)
	}

	resps, err := svc.Reorder(context.Background(), &dto.ReorderUnitsRequest{
		UnitIDs: []string{units[3].UnitID, units[2].UnitID, units[1].UnitID, units[0].UnitID},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if resps[0].Name != "Cardiopulmonary" || resps[0].Position != 1 {
		t.Fatalf("first after reorder = %s at %d, want Cardiopulmonary at 1", resps[0].Name, resps[0].Position)
	}
}

func TestListReportsCoverage(t *testing.T) {
	repo, _ := newTestRepo()
	units := seedCatalog(t, repo)

	// make the first unit high-workload; one intern there is understaffed
	u, _ := repo.Unit.GetByID(context.Background(), units[0].UnitID)
	u.PatientCount = 80
	if err := repo.Unit.Update(context.Background(), u); err != nil {
		t.Fatalf("update unit: %v", err)
	}
	start := calendar.New(2026, time.March, 1, testLoc)
	intern := seedIntern(t, repo, start)
	seedRotation(t, repo, intern.InternID, units[0].UnitID, start, start.AddDays(13), false)

	svc := newTestUnitService(repo)
	today := calendar.New(2026, time.March, 2, testLoc)

	resps, err := svc.List(context.Background(), today)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	byName := make(map[string]dto.UnitResponse, len(resps))
	for _, r := range resps {
		byName[r.Name] = r
	}

	ortho := byName["Orthopaedics"]
	if ortho.Workload != model.WorkloadHigh {
		t.Fatalf("workload = %s, want High", ortho.Workload)
	}
	if ortho.Coverage == nil || ortho.Coverage.Status != schedule.CoverageCritical {
		t.Fatalf("coverage = %+v, want critical for understaffed High unit", ortho.Coverage)
	}
	if ortho.Coverage.CurrentInterns != 1 {
		t.Fatalf("current interns = %d, want 1", ortho.Coverage.CurrentInterns)
	}

	// an empty Low unit misses its minimum of one, but only as a warning
	neuro := byName["Neurology"]
	if neuro.Coverage == nil || neuro.Coverage.Status != schedule.CoverageWarning {
		t.Fatalf("coverage = %+v, want warning for empty Low unit", neuro.Coverage)
	}
}
