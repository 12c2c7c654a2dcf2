package sim

import "testing"

func TestEventLog_RecordsInOrderAndReturnsCopy(t *testing.T) {
	// GIVEN a log with two events
	var log EventLog
	log.Record(0, 1, EventStart)
	log.Record(3, 1, EventComplete)

	// WHEN the events are read and the returned slice is modified
	events := log.Events()
	events[0].Tick = 99

	// THEN the log is unchanged
	if log.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", log.Len())
	}
	if got := log.Events()[0]; got != ev(0, 1, EventStart) {
		t.Errorf("Events()[0]: got %v, want start at 0", got)
	}
}

func TestEvent_String(t *testing.T) {
	got := ev(12, 3, EventPreempt).String()
	want := "[tick 0012] preempt pid=3"
	if got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}
