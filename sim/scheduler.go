package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Policy simulates one scheduling discipline over a workload.
// Run must not mutate procs and must return a Result that shares no mutable
// state with any other run, so that policies can be executed concurrently.
// Run panics on a non-empty workload that fails ValidateWorkload.
type Policy interface {
	Name() string
	Run(procs []ProcessDescriptor) *Result
}

// Result is the complete, immutable outcome of one policy run.
// Processes are reported in the same order as the input workload.
type Result struct {
	Policy          string         `json:"policy" yaml:"policy"`
	Processes       []ProcessState `json:"processes" yaml:"processes"`
	Events          []Event        `json:"events" yaml:"events"`
	TotalTime       int64          `json:"total_time" yaml:"total_time"` // final clock value (ticks)
	ContextSwitches int            `json:"context_switches" yaml:"context_switches"`
	Quantum         int64          `json:"quantum,omitempty" yaml:"quantum,omitempty"` // round-robin slice length; 0 for other policies
}

// Process returns the final state of the process with the given ID.
func (r *Result) Process(id int) (ProcessState, bool) {
	for _, p := range r.Processes {
		if p.ID == id {
			return p, true
		}
	}
	return ProcessState{}, false
}

// Policy names accepted by NewPolicy.
const (
	PolicyPriority   = "priority"
	PolicyFCFS       = "fcfs"
	PolicySJF        = "sjf"
	PolicyRoundRobin = "round-robin"
)

// DefaultQuantum is the round-robin time slice (ticks) used when none is configured.
const DefaultQuantum int64 = 4

// policyOrder fixes the order in which policies are listed and compared.
var policyOrder = []string{PolicyPriority, PolicyFCFS, PolicySJF, PolicyRoundRobin}

// validPolicies is the set of recognized policy names.
var validPolicies = map[string]bool{
	PolicyPriority:   true,
	PolicyFCFS:       true,
	PolicySJF:        true,
	PolicyRoundRobin: true,
}

// IsValidPolicy returns true if name is a recognized policy name.
func IsValidPolicy(name string) bool {
	return validPolicies[name]
}

// PolicyNames returns all policy names in comparison order.
func PolicyNames() []string {
	out := make([]string, len(policyOrder))
	copy(out, policyOrder)
	return out
}

// NewPolicy creates a Policy by name.
// Valid names: "priority", "fcfs", "sjf", "round-robin".
// quantum is used by round-robin only; a non-positive value selects DefaultQuantum.
// Panics on unrecognized names.
func NewPolicy(name string, quantum int64) Policy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown policy %q", name))
	}
	switch name {
	case PolicyPriority:
		return &PriorityPreemptive{}
	case PolicyFCFS:
		return &FCFS{}
	case PolicySJF:
		return &SJF{}
	case PolicyRoundRobin:
		return &RoundRobin{Quantum: quantum}
	default:
		panic(fmt.Sprintf("unhandled policy %q", name))
	}
}

// AllPolicies returns one instance of every policy in comparison order.
func AllPolicies(quantum int64) []Policy {
	policies := make([]Policy, 0, len(policyOrder))
	for _, name := range policyOrder {
		policies = append(policies, NewPolicy(name, quantum))
	}
	return policies
}

// run holds the mutable state of a single policy run: the virtual clock,
// an independent copy of every process and the event log.
type run struct {
	policy    string
	clock     int64
	procs     []ProcessState
	log       EventLog
	switches  int
	completed int
}

func newRun(policy string, procs []ProcessDescriptor) *run {
	if len(procs) > 0 {
		if err := ValidateWorkload(procs); err != nil {
			panic(fmt.Sprintf("%s: invalid workload: %v", policy, err))
		}
	}
	logrus.Debugf("[%s] starting run with %d processes", policy, len(procs))
	return &run{
		policy: policy,
		procs:  newProcessStates(procs),
	}
}

// done reports whether every process has completed.
func (r *run) done() bool {
	return r.completed == len(r.procs)
}

// idle advances the clock by one tick without executing anything.
func (r *run) idle() {
	logrus.Tracef("[%s][tick %04d] idle", r.policy, r.clock)
	r.clock++
}

// dispatch gives the CPU to procs[idx] at the current tick. Counts as a context switch.
func (r *run) dispatch(idx int) {
	p := &r.procs[idx]
	p.start(r.clock)
	r.log.Record(r.clock, p.ID, EventStart)
	r.switches++
}

// preempt takes the CPU away from procs[idx], which still has work remaining.
func (r *run) preempt(idx int) {
	r.log.Record(r.clock, r.procs[idx].ID, EventPreempt)
}

// execute runs procs[idx] for the given number of ticks and advances the clock.
// Records completion when the process's remaining time reaches zero.
// Returns true if the process completed.
func (r *run) execute(idx int, ticks int64) bool {
	p := &r.procs[idx]
	p.run(ticks)
	r.clock += ticks
	if p.RemainingTime > 0 {
		return false
	}
	p.complete(r.clock)
	r.log.Record(r.clock, p.ID, EventComplete)
	r.completed++
	return true
}

// result freezes the run into a Result.
func (r *run) result() *Result {
	logrus.Debugf("[%s] run finished at tick %d with %d context switches", r.policy, r.clock, r.switches)
	procs := make([]ProcessState, len(r.procs))
	copy(procs, r.procs)
	return &Result{
		Policy:          r.policy,
		Processes:       procs,
		Events:          r.log.Events(),
		TotalTime:       r.clock,
		ContextSwitches: r.switches,
	}
}
