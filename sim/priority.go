package sim

// PriorityPreemptive re-evaluates the ready set at every tick and runs the
// process with the numerically smallest priority. Ties go to the process that
// appears first in the workload. A newly arrived, more urgent process displaces
// the running one at its arrival tick.
//
// Warning: there is no aging. Low-priority processes can starve under a steady
// stream of more urgent arrivals.
type PriorityPreemptive struct{}

// Name returns the policy name.
func (p *PriorityPreemptive) Name() string { return PolicyPriority }

// Run simulates the workload tick by tick.
func (p *PriorityPreemptive) Run(procs []ProcessDescriptor) *Result {
	r := newRun(PolicyPriority, procs)
	running := -1

	for !r.done() {
		next := r.mostUrgent()
		if next == -1 {
			r.idle()
			continue
		}

		if next != running {
			if running != -1 && r.procs[running].RemainingTime > 0 {
				r.preempt(running)
			}
			r.dispatch(next)
			running = next
		}

		if r.execute(next, 1) {
			running = -1
		}
	}
	return r.result()
}

// mostUrgent returns the index of the ready process with the smallest priority
// value, preferring the lowest index on ties. Returns -1 if none is ready.
func (r *run) mostUrgent() int {
	next := -1
	for i := range r.procs {
		if !r.procs[i].Ready(r.clock) {
			continue
		}
		if next == -1 || r.procs[i].Priority < r.procs[next].Priority {
			next = i
		}
	}
	return next
}
