package sim

// abcWorkload is the three-process example used throughout the policy tests:
// A(priority 3, arrival 0, burst 5), B(priority 1, arrival 2, burst 3),
// C(priority 5, arrival 0, burst 4).
func abcWorkload() []ProcessDescriptor {
	return []ProcessDescriptor{
		MustProcessDescriptor(0, "A", "Standard", 3, 0, 5),
		MustProcessDescriptor(1, "B", "Critical", 1, 2, 3),
		MustProcessDescriptor(2, "C", "Routine", 5, 0, 4),
	}
}

// gapWorkload leaves the CPU idle between arrivals.
func gapWorkload() []ProcessDescriptor {
	return []ProcessDescriptor{
		MustProcessDescriptor(0, "early", "", 2, 0, 2),
		MustProcessDescriptor(1, "late", "", 2, 5, 3),
	}
}

// ev is shorthand for an expected event.
func ev(tick int64, pid int, kind EventKind) Event {
	return Event{Tick: tick, ProcessID: pid, Kind: kind}
}

// startsAndCompletions returns (start, completion) per process ID.
func startsAndCompletions(res *Result) map[int][2]int64 {
	out := make(map[int][2]int64, len(res.Processes))
	for _, p := range res.Processes {
		out[p.ID] = [2]int64{p.StartTime, p.CompletionTime}
	}
	return out
}
