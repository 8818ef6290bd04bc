package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
	"github.com/NGOKrooz/SPIN-sub000/internal/repository"
)

// In-memory repository doubles. They mirror the GORM implementations'
// observable behavior, including gorm.ErrRecordNotFound on misses and the
// (start, id) ordering of rotation lists.

type mockInternRepo struct {
	seq     int
	interns map[string]*model.Intern
}

func newMockInternRepo() *mockInternRepo {
	return &mockInternRepo{interns: make(map[string]*model.Intern)}
}

func (m *mockInternRepo) Create(_ context.Context, intern *model.Intern) error {
	if intern.InternID == "" {
		m.seq++
		intern.InternID = fmt.Sprintf("intern-%d", m.seq)
	}
	cp := *intern
	m.interns[intern.InternID] = &cp
	return nil
}

func (m *mockInternRepo) GetByID(_ context.Context, id string) (*model.Intern, error) {
	intern, ok := m.interns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *intern
	return &cp, nil
}

func (m *mockInternRepo) List(_ context.Context, batch, status string, offset, limit int) ([]model.Intern, int64, error) {
	var all []model.Intern
	for _, intern := range m.interns {
		if batch != "" && intern.Batch != batch {
			continue
		}
		if status != "" && intern.Status != status {
			continue
		}
		all = append(all, *intern)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].InternID < all[j].InternID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockInternRepo) Update(_ context.Context, intern *model.Intern) error {
	if _, ok := m.interns[intern.InternID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *intern
	m.interns[intern.InternID] = &cp
	return nil
}

func (m *mockInternRepo) Delete(_ context.Context, id string) error {
	delete(m.interns, id)
	return nil
}

type mockUnitRepo struct {
	seq   int
	units map[string]*model.Unit
}

func newMockUnitRepo() *mockUnitRepo {
	return &mockUnitRepo{units: make(map[string]*model.Unit)}
}

func (m *mockUnitRepo) Create(_ context.Context, unit *model.Unit) error {
	if unit.UnitID == "" {
		m.seq++
		unit.UnitID = fmt.Sprintf("unit-%d", m.seq)
	}
	cp := *unit
	m.units[unit.UnitID] = &cp
	return nil
}

func (m *mockUnitRepo) GetByID(_ context.Context, id string) (*model.Unit, error) {
	unit, ok := m.units[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *unit
	return &cp, nil
}

func (m *mockUnitRepo) GetByName(_ context.Context, name string) (*model.Unit, error) {
	for _, unit := range m.units {
		if unit.Name == name {
			cp := *unit
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUnitRepo) List(_ context.Context) ([]model.Unit, error) {
	var all []model.Unit
	for _, unit := range m.units {
		all = append(all, *unit)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Position != all[j].Position {
			return all[i].Position < all[j].Position
		}
		return all[i].Name < all[j].Name
	})
	return all, nil
}

func (m *mockUnitRepo) Update(_ context.Context, unit *model.Unit) error {
	if _, ok := m.units[unit.UnitID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *unit
	m.units[unit.UnitID] = &cp
	return nil
}

func (m *mockUnitRepo) Delete(_ context.Context, id string) error {
	delete(m.units, id)
	return nil
}

func (m *mockUnitRepo) MaxPosition(_ context.Context) (int, error) {
	max := 0
	for _, unit := range m.units {
		if unit.Position > max {
			max = unit.Position
		}
	}
	return max, nil
}

func (m *mockUnitRepo) ReorderPositions(_ context.Context, ids []string) error {
	for i, id := range ids {
		unit, ok := m.units[id]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		unit.Position = i + 1
	}
	return nil
}

type mockRotationRepo struct {
	seq       int
	rotations map[string]*model.Rotation
}

func newMockRotationRepo() *mockRotationRepo {
	return &mockRotationRepo{rotations: make(map[string]*model.Rotation)}
}

func (m *mockRotationRepo) Create(_ context.Context, rotation *model.Rotation) error {
	if rotation.RotationID == "" {
		m.seq++
		rotation.RotationID = fmt.Sprintf("rot-%03d", m.seq)
	}
	cp := *rotation
	cp.Intern = nil
	cp.Unit = nil
	m.rotations[rotation.RotationID] = &cp
	return nil
}

func (m *mockRotationRepo) GetByID(_ context.Context, id string) (*model.Rotation, error) {
	rotation, ok := m.rotations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rotation
	return &cp, nil
}

func (m *mockRotationRepo) ListByIntern(_ context.Context, internID string) ([]model.Rotation, error) {
	var all []model.Rotation
	for _, rotation := range m.rotations {
		if rotation.InternID == internID {
			all = append(all, *rotation)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].StartDate.Equal(all[j].StartDate) {
			return all[i].StartDate.Before(all[j].StartDate)
		}
		return all[i].RotationID < all[j].RotationID
	})
	return all, nil
}

func (m *mockRotationRepo) GetLatestByIntern(ctx context.Context, internID string) (*model.Rotation, error) {
	all, _ := m.ListByIntern(ctx, internID)
	if len(all) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cp := all[len(all)-1]
	return &cp, nil
}

func (m *mockRotationRepo) Update(_ context.Context, rotation *model.Rotation) error {
	if _, ok := m.rotations[rotation.RotationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *rotation
	cp.Intern = nil
	cp.Unit = nil
	m.rotations[rotation.RotationID] = &cp
	return nil
}

func (m *mockRotationRepo) Delete(_ context.Context, id string) error {
	delete(m.rotations, id)
	return nil
}

func (m *mockRotationRepo) CountActiveByUnit(_ context.Context, unitID string, day time.Time) (int64, error) {
	var count int64
	for _, rotation := range m.rotations {
		if rotation.UnitID == unitID && !rotation.StartDate.After(day) && !rotation.EndDate.Before(day) {
			count++
		}
	}
	return count, nil
}

func (m *mockRotationRepo) CountOpenByUnit(_ context.Context, unitID string, day time.Time) (int64, error) {
	var count int64
	for _, rotation := range m.rotations {
		if rotation.UnitID == unitID && !rotation.EndDate.Before(day) {
			count++
		}
	}
	return count, nil
}

type mockExtensionReasonRepo struct {
	seq     int
	reasons []model.ExtensionReason
}

func (m *mockExtensionReasonRepo) Create(_ context.Context, reason *model.ExtensionReason) error {
	if reason.ExtensionReasonID == "" {
		m.seq++
		reason.ExtensionReasonID = fmt.Sprintf("ext-%d", m.seq)
	}
	m.reasons = append(m.reasons, *reason)
	return nil
}

func (m *mockExtensionReasonRepo) ListByIntern(_ context.Context, internID string) ([]model.ExtensionReason, error) {
	var out []model.ExtensionReason
	for i := len(m.reasons) - 1; i >= 0; i-- {
		if m.reasons[i].InternID == internID {
			out = append(out, m.reasons[i])
		}
	}
	return out, nil
}

type mockActivityLogRepo struct {
	seq     int
	entries []model.ActivityLog
}

func (m *mockActivityLogRepo) Create(_ context.Context, entry *model.ActivityLog) error {
	if entry.ActivityLogID == "" {
		m.seq++
		entry.ActivityLogID = fmt.Sprintf("act-%d", m.seq)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityLogRepo) List(_ context.Context, activityType, internID string, offset, limit int) ([]model.ActivityLog, int64, error) {
	var all []model.ActivityLog
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if activityType != "" && e.ActivityType != activityType {
			continue
		}
		if internID != "" && (e.InternID == nil || *e.InternID != internID) {
			continue
		}
		all = append(all, e)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// byType counts recorded entries of one activity type.
func (m *mockActivityLogRepo) byType(activityType string) int {
	n := 0
	for _, e := range m.entries {
		if e.ActivityType == activityType {
			n++
		}
	}
	return n
}

type mockSettingsRepo struct {
	settings model.RotationSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{settings: model.RotationSettings{
		Singleton:              true,
		MediumPatientThreshold: 20,
		HighPatientThreshold:   50,
		MinInternsHigh:         2,
		MinInternsMedium:       1,
		MinInternsLow:          1,
	}}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.RotationSettings, error) {
	cp := m.settings
	return &cp, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, settings *model.RotationSettings) error {
	m.settings = *settings
	m.settings.Singleton = true
	return nil
}

// newTestRepo assembles a Repository over fresh in-memory doubles.
func newTestRepo() (*repository.Repository, *mockActivityLogRepo) {
	activity := &mockActivityLogRepo{}
	return &repository.Repository{
		Intern:          newMockInternRepo(),
		Unit:            newMockUnitRepo(),
		Rotation:        newMockRotationRepo(),
		ExtensionReason: &mockExtensionReasonRepo{},
		ActivityLog:     activity,
		Settings:        newMockSettingsRepo(),
	}, activity
}
