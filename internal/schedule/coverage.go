package schedule

import "github.com/NGOKrooz/SPIN-sub000/internal/model"

// Coverage statuses.
const (
	CoverageGood     = "good"
	CoverageWarning  = "warning"
	CoverageCritical = "critical"
)

// CoverageThresholds is the per-workload minimum staffing. The values are
// data from rotation_settings, not constants of the classifier.
type CoverageThresholds struct {
	MinHigh   int
	MinMedium int
	MinLow    int
}

// ClassifyCoverage rates the staffing of one unit. Meeting the minimum for
// the unit's workload tier is good; an understaffed High-workload unit is
// critical, understaffed Medium or Low is a warning.
func ClassifyCoverage(currentInterns int, workload string, th CoverageThresholds) string {
	min := th.MinLow
	switch workload {
	case model.WorkloadHigh:
		min = th.MinHigh
	case model.WorkloadMedium:
		min = th.MinMedium
	}

	if currentInterns >= min {
		return CoverageGood
	}
	if workload == model.WorkloadHigh {
		return CoverageCritical
	}
	return CoverageWarning
}
