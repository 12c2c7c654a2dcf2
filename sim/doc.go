// Package sim provides the discrete-time CPU scheduling engine for sched-sim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: ProcessDescriptor (immutable input) and ProcessState (per-run mutable state)
//   - event.go: Start / Preempt / Complete events appended during a run
//   - scheduler.go: the Policy interface, the policy registry and the shared run state
//
// # Policies
//
// Each policy is a pure function from a workload to a Result:
//   - priority.go: preemptive priority, re-evaluated every tick
//   - fcfs.go: first-come-first-served in arrival order
//   - sjf.go: non-preemptive shortest-job-first
//   - round_robin.go: FIFO ready queue with a fixed time quantum
//
// Every run copies its input into fresh ProcessState values, so runs never share
// mutable state and may be executed concurrently by a driver (see sim/compare).
//
// metrics.go derives aggregate statistics from a Result; timeline.go derives
// Gantt-style execution segments from the event log.
//
// # Known limitation
//
// Neither SJF nor preemptive priority ages waiting processes. Under a continuous
// stream of shorter (SJF) or more urgent (priority) arrivals, long or low-priority
// processes can be postponed indefinitely.
package sim
