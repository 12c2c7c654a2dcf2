package sim

import "sort"

// FCFS runs processes to completion in order of arrival.
// Processes arriving at the same tick keep their workload order.
// Short or urgent work queued behind a long burst waits for it (convoy effect).
type FCFS struct{}

// Name returns the policy name.
func (f *FCFS) Name() string { return PolicyFCFS }

// Run simulates the workload. The CPU jumps directly over idle gaps.
func (f *FCFS) Run(procs []ProcessDescriptor) *Result {
	r := newRun(PolicyFCFS, procs)

	for _, idx := range r.arrivalOrder() {
		p := &r.procs[idx]
		if r.clock < p.ArrivalTime {
			r.clock = p.ArrivalTime
		}
		r.dispatch(idx)
		r.execute(idx, p.RemainingTime)
	}
	return r.result()
}

// arrivalOrder returns process indices sorted by arrival time, then by index.
func (r *run) arrivalOrder() []int {
	order := make([]int, len(r.procs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return r.procs[order[i]].ArrivalTime < r.procs[order[j]].ArrivalTime
	})
	return order
}
