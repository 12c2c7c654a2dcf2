package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EventKind identifies what happened to a process at a given tick.
type EventKind string

const (
	// EventStart marks a dispatch: the process begins (or resumes) execution.
	EventStart EventKind = "start"
	// EventPreempt marks a process leaving the CPU with work remaining.
	EventPreempt EventKind = "preempt"
	// EventComplete marks a process finishing its burst.
	EventComplete EventKind = "complete"
)

// Event is one entry of a run's append-only execution log.
// The log feeds timelines and diagnostics; metrics never read it.
type Event struct {
	Tick      int64     `json:"tick" yaml:"tick"`
	ProcessID int       `json:"pid" yaml:"pid"`
	Kind      EventKind `json:"kind" yaml:"kind"`
}

func (e Event) String() string {
	return fmt.Sprintf("[tick %04d] %s pid=%d", e.Tick, e.Kind, e.ProcessID)
}

// EventLog collects the events of a single run in emission order.
type EventLog struct {
	events []Event
}

// Record appends an event to the log.
func (l *EventLog) Record(tick int64, pid int, kind EventKind) {
	ev := Event{Tick: tick, ProcessID: pid, Kind: kind}
	logrus.Debugf("<< %s", ev)
	l.events = append(l.events, ev)
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Events returns a copy of the recorded events.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
