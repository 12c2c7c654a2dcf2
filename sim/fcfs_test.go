package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFCFS_ABC_ArrivalOrderWithIndexTieBreak(t *testing.T) {
	// GIVEN A and C arriving at 0 and B at 2
	// WHEN FCFS runs
	res := (&FCFS{}).Run(abcWorkload())

	// THEN A runs first (lower index), then C, then B
	assert.Equal(t, []Event{
		ev(0, 0, EventStart),
		ev(5, 0, EventComplete),
		ev(5, 2, EventStart),
		ev(9, 2, EventComplete),
		ev(9, 1, EventStart),
		ev(12, 1, EventComplete),
	}, res.Events)
	assert.Equal(t, 3, res.ContextSwitches)

	// AND turnaround times are 5, 9 and 10 for A, C and B
	a, _ := res.Process(0)
	b, _ := res.Process(1)
	c, _ := res.Process(2)
	assert.Equal(t, int64(5), a.TurnaroundTime())
	assert.Equal(t, int64(9), c.TurnaroundTime())
	assert.Equal(t, int64(10), b.TurnaroundTime())

	// AND the average response is (0 + 5 + 7) / 3
	m := CalculateMetrics(res)
	assert.InDelta(t, 4.0, m.AvgResponseTime, 1e-9)
	assert.InDelta(t, 8.0, m.AvgTurnaroundTime, 1e-9)
}

func TestFCFS_IdleGap_JumpsClockToArrival(t *testing.T) {
	res := (&FCFS{}).Run(gapWorkload())

	assert.Equal(t, map[int][2]int64{0: {0, 2}, 1: {5, 8}}, startsAndCompletions(res))
	assert.Equal(t, int64(8), res.TotalTime)
	assert.InDelta(t, 5.0/8.0*100, CalculateMetrics(res).CPUUtilization, 1e-9)
}

func TestFCFS_ConvoyEffect_UrgentWaitsBehindLongBurst(t *testing.T) {
	// GIVEN a long routine job followed by an emergency
	procs := []ProcessDescriptor{
		MustProcessDescriptor(0, "report", "", 5, 0, 30),
		MustProcessDescriptor(1, "emergency", "", 1, 1, 2),
	}

	// WHEN FCFS runs
	res := (&FCFS{}).Run(procs)

	// THEN the emergency waits for the whole burst
	m := CalculateMetrics(res)
	assert.Equal(t, 29.0, m.EmergencyResponseMax)
}
