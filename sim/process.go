// Defines the ProcessDescriptor (workload input) and ProcessState (per-run progress)
// types. Tracks remaining time plus start and completion ticks for response,
// turnaround and waiting time.

package sim

import (
	"fmt"
)

// Unset marks a StartTime or CompletionTime that has not been assigned yet.
const Unset int64 = -1

// MaxTime bounds arrival and burst times, keeping every clock value and
// completion tick well inside int64 and idle stretches short.
const MaxTime int64 = 100_000_000

// EmergencyPriority is the most urgent priority class.
// Emergency response bounds in Metrics are computed over processes of this class.
const EmergencyPriority = 1

// ProcessDescriptor describes one unit of work in a workload.
// Lower Priority values are more urgent; 1 is the most urgent.
// Descriptors are immutable once created and are shared read-only across runs.
type ProcessDescriptor struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Class       string `json:"class" yaml:"class"` // free-text classification, e.g. "Critical - Trauma"
	Priority    int    `json:"priority" yaml:"priority"`
	ArrivalTime int64  `json:"arrival" yaml:"arrival"` // tick at which the process becomes eligible
	BurstTime   int64  `json:"burst" yaml:"burst"`     // total execution ticks required
}

// NewProcessDescriptor creates a validated ProcessDescriptor.
// Returns an error for a non-positive burst, a negative arrival, a time above
// MaxTime or a priority below 1.
func NewProcessDescriptor(id int, name, class string, priority int, arrival, burst int64) (ProcessDescriptor, error) {
	pd := ProcessDescriptor{
		ID:          id,
		Name:        name,
		Class:       class,
		Priority:    priority,
		ArrivalTime: arrival,
		BurstTime:   burst,
	}
	if err := pd.Validate(); err != nil {
		return ProcessDescriptor{}, err
	}
	return pd, nil
}

// MustProcessDescriptor is like NewProcessDescriptor but panics on invalid input.
// Intended for literal, built-in workload data where an invalid value is a programming error.
func MustProcessDescriptor(id int, name, class string, priority int, arrival, burst int64) ProcessDescriptor {
	pd, err := NewProcessDescriptor(id, name, class, priority, arrival, burst)
	if err != nil {
		panic(err)
	}
	return pd
}

// Validate checks the descriptor's timing and priority fields.
func (pd ProcessDescriptor) Validate() error {
	if pd.BurstTime <= 0 {
		return fmt.Errorf("process %d (%s): burst time must be positive, got %d", pd.ID, pd.Name, pd.BurstTime)
	}
	if pd.BurstTime > MaxTime {
		return fmt.Errorf("process %d (%s): burst time %d exceeds limit %d", pd.ID, pd.Name, pd.BurstTime, MaxTime)
	}
	if pd.ArrivalTime < 0 {
		return fmt.Errorf("process %d (%s): arrival time must be non-negative, got %d", pd.ID, pd.Name, pd.ArrivalTime)
	}
	if pd.ArrivalTime > MaxTime {
		return fmt.Errorf("process %d (%s): arrival time %d exceeds limit %d", pd.ID, pd.Name, pd.ArrivalTime, MaxTime)
	}
	if pd.Priority < 1 {
		return fmt.Errorf("process %d (%s): priority must be >= 1, got %d", pd.ID, pd.Name, pd.Priority)
	}
	return nil
}

// IsEmergency reports whether the process belongs to the most urgent priority class.
func (pd ProcessDescriptor) IsEmergency() bool {
	return pd.Priority == EmergencyPriority
}

// ValidateWorkload checks a complete workload: it must be non-empty, every
// descriptor must be valid and IDs must be unique.
func ValidateWorkload(procs []ProcessDescriptor) error {
	if len(procs) == 0 {
		return fmt.Errorf("workload must contain at least one process")
	}
	seen := make(map[int]bool, len(procs))
	for _, p := range procs {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate process id %d", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// ProcessState is a descriptor's progress within a single policy run.
// A fresh ProcessState is created for every run; it is mutated only by the
// engine while the run is in progress and is read-only afterwards.
type ProcessState struct {
	ProcessDescriptor `yaml:",inline"`

	RemainingTime  int64 `json:"remaining" yaml:"remaining"`   // never negative, never increases
	StartTime      int64 `json:"start" yaml:"start"`           // tick of first execution, Unset until dispatched
	CompletionTime int64 `json:"completion" yaml:"completion"` // tick at which RemainingTime reached zero, Unset until then
}

// NewProcessState creates the initial state for a descriptor.
func NewProcessState(pd ProcessDescriptor) ProcessState {
	return ProcessState{
		ProcessDescriptor: pd,
		RemainingTime:     pd.BurstTime,
		StartTime:         Unset,
		CompletionTime:    Unset,
	}
}

// newProcessStates copies a workload into fresh, independently owned states.
func newProcessStates(procs []ProcessDescriptor) []ProcessState {
	states := make([]ProcessState, len(procs))
	for i, pd := range procs {
		states[i] = NewProcessState(pd)
	}
	return states
}

// Started reports whether the process has executed at least once.
func (ps *ProcessState) Started() bool {
	return ps.StartTime != Unset
}

// Completed reports whether the process has finished all of its burst.
func (ps *ProcessState) Completed() bool {
	return ps.CompletionTime != Unset && ps.RemainingTime == 0
}

// Ready reports whether the process is eligible for selection at the given tick.
func (ps *ProcessState) Ready(clock int64) bool {
	return ps.ArrivalTime <= clock && ps.RemainingTime > 0
}

// ResponseTime is the delay between arrival and first execution.
// Returns 0 for a process that never started.
func (ps *ProcessState) ResponseTime() int64 {
	if !ps.Started() {
		return 0
	}
	return ps.StartTime - ps.ArrivalTime
}

// TurnaroundTime is the delay between arrival and completion.
// Returns 0 for a process that has not completed.
func (ps *ProcessState) TurnaroundTime() int64 {
	if !ps.Completed() {
		return 0
	}
	return ps.CompletionTime - ps.ArrivalTime
}

// WaitingTime is the turnaround time minus the burst time.
func (ps *ProcessState) WaitingTime() int64 {
	if !ps.Completed() {
		return 0
	}
	return ps.TurnaroundTime() - ps.BurstTime
}

// start records the first dispatch. Later calls are ignored.
func (ps *ProcessState) start(clock int64) {
	if ps.Started() {
		return
	}
	ps.StartTime = clock
}

// run consumes ticks of execution.
func (ps *ProcessState) run(ticks int64) {
	if ticks < 0 || ticks > ps.RemainingTime {
		panic(fmt.Sprintf("process %d: cannot run %d ticks with %d remaining", ps.ID, ticks, ps.RemainingTime))
	}
	ps.RemainingTime -= ticks
}

// complete records the completion tick. RemainingTime must already be zero.
func (ps *ProcessState) complete(clock int64) {
	if ps.RemainingTime != 0 {
		panic(fmt.Sprintf("process %d: completed with %d ticks remaining", ps.ID, ps.RemainingTime))
	}
	ps.CompletionTime = clock
}

// This method returns a human-readable string representation of a ProcessState.
func (ps ProcessState) String() string {
	return fmt.Sprintf("Process: (ID: %d, Name: %s, Priority: %d, Arrival: %d, Burst: %d, Remaining: %d, Start: %d, Completion: %d)",
		ps.ID, ps.Name, ps.Priority, ps.ArrivalTime, ps.BurstTime, ps.RemainingTime, ps.StartTime, ps.CompletionTime)
}
