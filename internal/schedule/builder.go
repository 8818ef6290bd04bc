// Package schedule is the pure rotation engine: it projects persisted
// rotation rows plus the current unit catalog into schedule views, picks
// round-robin successors, and classifies coverage. Nothing here touches
// storage or the wall clock; "today" is always a parameter.
package schedule

import (
	"sort"
	"time"

	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// DeletedUnitName is the placeholder shown for rotations whose unit no
// longer exists in the catalog.
const DeletedUnitName = "(deleted unit)"

// Entry is one schedule line. Upcoming entries synthesized from the
// catalog have no RotationID and invalid dates until a real rotation row
// exists for that unit.
type Entry struct {
	RotationID  string        `json:"rotation_id,omitempty"`
	UnitID      string        `json:"unit_id"`
	UnitName    string        `json:"unit_name"`
	StartDate   calendar.Date `json:"-"`
	EndDate     calendar.Date `json:"-"`
	IsManual    bool          `json:"is_manual_assignment,omitempty"`
	UnitDeleted bool          `json:"unit_deleted,omitempty"`
}

// Schedule partitions an intern's path into what is behind them, where
// they are today, and what remains.
type Schedule struct {
	Completed []Entry
	Current   *Entry
	Upcoming  []Entry
}

// BuildSchedule classifies rotations against today and derives the
// upcoming path from catalog order. It is deterministic and side-effect
// free: identical inputs always produce identical output.
//
// Upcoming is not "rotations with a future start": it is the ordered
// catalog minus units already completed and minus the current unit, so
// reordering the catalog re-sequences the remaining path without touching
// historical rows. A persisted future rotation contributes its real dates
// to its unit's upcoming entry.
func BuildSchedule(rotations []model.Rotation, orderedUnits []model.Unit, today calendar.Date, loc *time.Location) Schedule {
	rots := make([]model.Rotation, len(rotations))
	copy(rots, rotations)
	sort.Slice(rots, func(i, j int) bool {
		if !rots[i].StartDate.Equal(rots[j].StartDate) {
			return rots[i].StartDate.Before(rots[j].StartDate)
		}
		return rots[i].RotationID < rots[j].RotationID
	})

	units := make([]model.Unit, len(orderedUnits))
	copy(units, orderedUnits)
	sort.Slice(units, func(i, j int) bool {
		if units[i].Position != units[j].Position {
			return units[i].Position < units[j].Position
		}
		return units[i].Name < units[j].Name
	})

	unitByID := make(map[string]*model.Unit, len(units))
	for i := range units {
		unitByID[units[i].UnitID] = &units[i]
	}

	var sched Schedule
	completedUnits := make(map[string]bool)
	futureByUnit := make(map[string]Entry)

	var current *Entry
	for _, r := range rots {
		e := toEntry(r, unitByID, loc)

		switch {
		case e.EndDate.Before(today):
			sched.Completed = append(sched.Completed, e)
			completedUnits[e.UnitID] = true
		case e.StartDate.OnOrBefore(today) && e.EndDate.OnOrAfter(today):
			// Among overlapping qualifiers the latest start wins; rots is
			// ordered by (start, id) so a later qualifier always replaces
			// an earlier one. Resolves manual double-assignment anomalies
			// deterministically instead of failing.
			entry := e
			current = &entry
		case e.StartDate.After(today):
			// keep real dates for the matching upcoming unit
			if _, seen := futureByUnit[e.UnitID]; !seen {
				futureByUnit[e.UnitID] = e
			}
		}
	}
	sched.Current = current

	excluded := make(map[string]bool, len(completedUnits)+1)
	for id := range completedUnits {
		excluded[id] = true
	}
	if current != nil {
		excluded[current.UnitID] = true
	}

	for i := range units {
		u := &units[i]
		if excluded[u.UnitID] {
			continue
		}
		if real, ok := futureByUnit[u.UnitID]; ok {
			sched.Upcoming = append(sched.Upcoming, real)
			continue
		}
		sched.Upcoming = append(sched.Upcoming, Entry{
			UnitID:   u.UnitID,
			UnitName: u.Name,
		})
	}

	return sched
}

func toEntry(r model.Rotation, unitByID map[string]*model.Unit, loc *time.Location) Entry {
	e := Entry{
		RotationID: r.RotationID,
		UnitID:     r.UnitID,
		StartDate:  calendar.FromTime(r.StartDate, loc),
		EndDate:    calendar.FromTime(r.EndDate, loc),
		IsManual:   r.IsManualAssignment,
	}
	if u, ok := unitByID[r.UnitID]; ok {
		e.UnitName = u.Name
	} else {
		e.UnitName = DeletedUnitName
		e.UnitDeleted = true
	}
	return e
}

// NextUnit picks the round-robin successor of lastUnitID over the catalog
// ordered by position: index plus one, wrapping modulo catalog length.
// When the last unit is gone from the catalog the traversal restarts at
// the front. ok is false only for an empty catalog.
func NextUnit(orderedUnits []model.Unit, lastUnitID string) (next model.Unit, ok bool) {
	if len(orderedUnits) == 0 {
		return model.Unit{}, false
	}

	units := make([]model.Unit, len(orderedUnits))
	copy(units, orderedUnits)
	sort.Slice(units, func(i, j int) bool {
		if units[i].Position != units[j].Position {
			return units[i].Position < units[j].Position
		}
		return units[i].Name < units[j].Name
	})

	for i := range units {
		if units[i].UnitID == lastUnitID {
			return units[(i+1)%len(units)], true
		}
	}
	return units[0], true
}

// AllUnitsVisited reports whether every catalog unit already appears among
// the intern's rotations (the exhausted state of the advance machine).
func AllUnitsVisited(rotations []model.Rotation, orderedUnits []model.Unit) bool {
	visited := make(map[string]bool, len(rotations))
	for _, r := range rotations {
		visited[r.UnitID] = true
	}
	for _, u := range orderedUnits {
		if !visited[u.UnitID] {
			return false
		}
	}
	return true
}
