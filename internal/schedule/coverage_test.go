package schedule

import (
	"testing"

	"github.com/NGOKrooz/SPIN-sub000/internal/model"
)

func TestClassifyCoverage(t *testing.T) {
	th := CoverageThresholds{MinHigh: 2, MinMedium: 1, MinLow: 1}

	cases := []struct {
		name     string
		count    int
		workload string
		want     string
	}{
		{"high understaffed is critical", 1, model.WorkloadHigh, CoverageCritical},
		{"high empty is critical", 0, model.WorkloadHigh, CoverageCritical},
		{"high at minimum is good", 2, model.WorkloadHigh, CoverageGood},
		{"high above minimum is good", 5, model.WorkloadHigh, CoverageGood},
		{"medium empty is warning", 0, model.WorkloadMedium, CoverageWarning},
		{"medium at minimum is good", 1, model.WorkloadMedium, CoverageGood},
		{"low empty is warning", 0, model.WorkloadLow, CoverageWarning},
		{"low at minimum is good", 1, model.WorkloadLow, CoverageGood},
	}

	for _, tc := range cases {
		if got := ClassifyCoverage(tc.count, tc.workload, th); got != tc.want {
			t.Errorf("%s: got %s, expected %s", tc.name, got, tc.want)
		}
	}
}

func TestClassifyCoverage_ThresholdsAreData(t *testing.T) {
	// raising min_high must reclassify without code changes
	th := CoverageThresholds{MinHigh: 4, MinMedium: 2, MinLow: 1}

	if got := ClassifyCoverage(3, model.WorkloadHigh, th); got != CoverageCritical {
		t.Errorf("3 interns under min_high=4 should be critical, got %s", got)
	}
	if got := ClassifyCoverage(1, model.WorkloadMedium, th); got != CoverageWarning {
		t.Errorf("1 intern under min_medium=2 should be warning, got %s", got)
	}
}

func TestUnitWorkloadDerivation(t *testing.T) {
	cases := []struct {
		patients int
		want     string
	}{
		{0, model.WorkloadLow},
		{19, model.WorkloadLow},
		{20, model.WorkloadMedium},
		{49, model.WorkloadMedium},
		{50, model.WorkloadHigh},
		{120, model.WorkloadHigh},
	}

	for _, tc := range cases {
		u := model.Unit{PatientCount: tc.patients}
		if got := u.Workload(20, 50); got != tc.want {
			t.Errorf("patients=%d: got %s, expected %s", tc.patients, got, tc.want)
		}
	}
}
