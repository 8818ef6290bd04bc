package schedule

import (
	"time"

	"github.com/NGOKrooz/SPIN-sub000/internal/calendar"
	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

// Overlaps reports whether two closed day intervals intersect:
// [s1,e1] and [s2,e2] overlap iff s1 <= e2 and s2 <= e1, consistent with
// the inclusive end-date semantics used everywhere else. Any invalid date
// makes the answer false.
func Overlaps(s1, e1, s2, e2 calendar.Date) bool {
	return s1.OnOrBefore(e2) && s2.OnOrBefore(e1)
}

// FindConflicts returns the rotations whose date range intersects the
// candidate range, skipping the rotation being edited. Input order is
// preserved.
func FindConflicts(rotations []model.Rotation, candidateStart, candidateEnd calendar.Date, excludeRotationID string, loc *time.Location) []model.Rotation {
	var conflicts []model.Rotation
	for _, r := range rotations {
		if r.RotationID == excludeRotationID {
			continue
		}
		s := calendar.FromTime(r.StartDate, loc)
		e := calendar.FromTime(r.EndDate, loc)
		if Overlaps(candidateStart, candidateEnd, s, e) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}
