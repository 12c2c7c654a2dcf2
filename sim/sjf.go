package sim

// SJF (non-preemptive shortest job first) picks, whenever the CPU is free, the
// arrived process with the smallest burst time; ties go to the lowest workload
// index. A started process always runs to completion.
//
// Warning: SJF selects by duration, not urgency, and can starve long jobs under
// sustained arrivals of short ones.
type SJF struct{}

// Name returns the policy name.
func (s *SJF) Name() string { return PolicySJF }

// Run simulates the workload.
func (s *SJF) Run(procs []ProcessDescriptor) *Result {
	r := newRun(PolicySJF, procs)

	for !r.done() {
		next := r.shortestReady()
		if next == -1 {
			r.idle()
			continue
		}
		r.dispatch(next)
		r.execute(next, r.procs[next].RemainingTime)
	}
	return r.result()
}

// shortestReady returns the index of the ready process with the smallest burst
// time, preferring the lowest index on ties. Returns -1 if none is ready.
func (r *run) shortestReady() int {
	next := -1
	for i := range r.procs {
		if !r.procs[i].Ready(r.clock) {
			continue
		}
		if next == -1 || r.procs[i].BurstTime < r.procs[next].BurstTime {
			next = i
		}
	}
	return next
}
