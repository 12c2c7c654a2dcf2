// Derives aggregate performance statistics from a completed run:
// averages of response, turnaround and waiting time, emergency response bounds,
// CPU utilization and throughput.

package sim

// Metrics aggregates statistics about one policy run
// for final reporting and cross-policy comparison.
type Metrics struct {
	Completed int `json:"completed" yaml:"completed"` // Number of processes completed

	AvgResponseTime   float64 `json:"avg_response_time" yaml:"avg_response_time"`
	AvgTurnaroundTime float64 `json:"avg_turnaround_time" yaml:"avg_turnaround_time"`
	AvgWaitingTime    float64 `json:"avg_waiting_time" yaml:"avg_waiting_time"`

	// Response bounds over completed priority-1 processes; both 0 when there are none.
	EmergencyResponseMin float64 `json:"emergency_response_min" yaml:"emergency_response_min"`
	EmergencyResponseMax float64 `json:"emergency_response_max" yaml:"emergency_response_max"`
	EmergencyCount       int     `json:"emergency_count" yaml:"emergency_count"`

	CPUUtilization  float64 `json:"cpu_utilization" yaml:"cpu_utilization"` // percent of elapsed ticks spent executing
	Throughput      float64 `json:"throughput" yaml:"throughput"`           // completed processes per tick
	ContextSwitches int     `json:"context_switches" yaml:"context_switches"`

	TotalTime int64 `json:"total_time" yaml:"total_time"` // elapsed ticks
	BusyTime  int64 `json:"busy_time" yaml:"busy_time"`   // sum of completed bursts
	IdleTime  int64 `json:"idle_time" yaml:"idle_time"`   // TotalTime - BusyTime
}

// CalculateMetrics derives Metrics from a finished run.
// Only completed processes contribute to averages. Degenerate inputs (nil
// result, no completed processes, zero elapsed time) yield zero values rather
// than errors. The result is never modified.
func CalculateMetrics(res *Result) Metrics {
	var m Metrics
	if res == nil {
		return m
	}
	m.TotalTime = res.TotalTime
	m.ContextSwitches = res.ContextSwitches

	var responses, turnarounds, waits, emergency []int64
	for i := range res.Processes {
		p := &res.Processes[i]
		if !p.Completed() {
			continue
		}
		responses = append(responses, p.ResponseTime())
		turnarounds = append(turnarounds, p.TurnaroundTime())
		waits = append(waits, p.WaitingTime())
		m.BusyTime += p.BurstTime
		if p.IsEmergency() {
			emergency = append(emergency, p.ResponseTime())
		}
	}

	m.Completed = len(responses)
	m.AvgResponseTime = CalculateMean(responses)
	m.AvgTurnaroundTime = CalculateMean(turnarounds)
	m.AvgWaitingTime = CalculateMean(waits)

	m.EmergencyCount = len(emergency)
	if len(emergency) > 0 {
		lo, hi := MinMax(emergency)
		m.EmergencyResponseMin = float64(lo)
		m.EmergencyResponseMax = float64(hi)
	}

	if m.TotalTime > 0 {
		m.CPUUtilization = float64(m.BusyTime) / float64(m.TotalTime) * 100
		m.Throughput = float64(m.Completed) / float64(m.TotalTime)
		m.IdleTime = m.TotalTime - m.BusyTime
	}
	return m
}

// HasEmergencies reports whether any completed priority-1 process contributed
// to the emergency response bounds.
func (m Metrics) HasEmergencies() bool {
	return m.EmergencyCount > 0
}
