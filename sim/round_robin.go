package sim

import "github.com/sirupsen/logrus"

// RoundRobin shares the CPU in fixed time slices through a FIFO ready queue.
// A dispatched process runs for min(remaining, Quantum) ticks. Processes that
// arrived during the slice are enqueued before the preempted process returns
// to the tail of the queue.
type RoundRobin struct {
	Quantum int64 // slice length in ticks; non-positive means DefaultQuantum
}

// Name returns the policy name.
func (rr *RoundRobin) Name() string { return PolicyRoundRobin }

// quantum returns the effective slice length.
func (rr *RoundRobin) quantum() int64 {
	if rr.Quantum <= 0 {
		return DefaultQuantum
	}
	return rr.Quantum
}

// Run simulates the workload.
func (rr *RoundRobin) Run(procs []ProcessDescriptor) *Result {
	r := newRun(PolicyRoundRobin, procs)
	q := rr.quantum()
	ready := NewReadyQueue()
	order := r.arrivalOrder()
	admitted := 0

	// admit enqueues every not-yet-admitted process that has arrived by now,
	// in arrival order.
	admit := func() {
		for admitted < len(order) && r.procs[order[admitted]].ArrivalTime <= r.clock {
			ready.Enqueue(order[admitted])
			admitted++
		}
	}

	admit()
	for !r.done() {
		idx, ok := ready.Dequeue()
		if !ok {
			r.idle()
			admit()
			continue
		}

		r.dispatch(idx)
		slice := min(q, r.procs[idx].RemainingTime)
		finished := r.execute(idx, slice)
		admit()
		if !finished {
			r.preempt(idx)
			ready.Enqueue(idx)
		}
		logrus.Tracef("[%s][tick %04d] ready queue %s (%d waiting)", r.policy, r.clock, ready, ready.Len())
	}
	res := r.result()
	res.Quantum = q
	return res
}
