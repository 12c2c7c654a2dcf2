package report

import (
	"fmt"

	"github.com/hpms-sim/sched-sim/sim"
)

// Assessment thresholds, in ticks.
const (
	excellentResponse  = 5.0  // average response below this is Excellent
	goodResponse       = 15.0 // average response below this is Good
	safeEmergency      = 5.0  // worst emergency response at or below this is Excellent
	tolerableEmergency = 10.0 // worst emergency response at or below this is Acceptable
)

// AssessResponse grades an average response time.
func AssessResponse(avg float64) string {
	switch {
	case avg < excellentResponse:
		return "Excellent"
	case avg < goodResponse:
		return "Good"
	default:
		return "Poor"
	}
}

// AssessEmergency grades the worst-case emergency response time.
func AssessEmergency(worst float64) string {
	switch {
	case worst <= safeEmergency:
		return "EXCELLENT"
	case worst <= tolerableEmergency:
		return "Acceptable"
	default:
		return "CRITICAL DELAY"
	}
}

// EmergencyRange formats the emergency response bounds as "N" or "MIN-MAX".
// Returns "-" when the run had no emergency processes.
func EmergencyRange(m sim.Metrics) string {
	if !m.HasEmergencies() {
		return "-"
	}
	if m.EmergencyResponseMin == m.EmergencyResponseMax {
		return fmt.Sprintf("%.0f", m.EmergencyResponseMin)
	}
	return fmt.Sprintf("%.0f-%.0f", m.EmergencyResponseMin, m.EmergencyResponseMax)
}

// PercentImprovement returns how much smaller got is than baseline, in percent.
// Returns 0 when baseline is zero.
func PercentImprovement(baseline, got float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (baseline - got) / baseline * 100
}

// PercentOverhead returns how much larger got is than baseline, in percent.
// Returns 0 when baseline is zero.
func PercentOverhead(baseline, got int) float64 {
	if baseline == 0 {
		return 0
	}
	return float64(got-baseline) / float64(baseline) * 100
}
