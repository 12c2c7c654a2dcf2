package sim

import "sort"

// Segment is one uninterrupted execution interval [Start, End) of a process.
type Segment struct {
	ProcessID int   `json:"pid" yaml:"pid"`
	Start     int64 `json:"start" yaml:"start"`
	End       int64 `json:"end" yaml:"end"`
}

// Duration returns the number of ticks covered by the segment.
func (s Segment) Duration() int64 {
	return s.End - s.Start
}

// Timeline derives the execution segments of a run from its event log, in
// chronological order. Each Start event opens a segment; the next Preempt or
// Complete event for the same process closes it. A segment still open at the
// end of the log is closed at the result's TotalTime; such segments come
// last, ordered by start tick then process ID.
func Timeline(res *Result) []Segment {
	if res == nil {
		return nil
	}
	segments := make([]Segment, 0, len(res.Events)/2)
	open := make(map[int]int64)
	for _, ev := range res.Events {
		switch ev.Kind {
		case EventStart:
			open[ev.ProcessID] = ev.Tick
		case EventPreempt, EventComplete:
			start, ok := open[ev.ProcessID]
			if !ok {
				continue
			}
			segments = append(segments, Segment{ProcessID: ev.ProcessID, Start: start, End: ev.Tick})
			delete(open, ev.ProcessID)
		}
	}
	tail := make([]Segment, 0, len(open))
	for pid, start := range open {
		tail = append(tail, Segment{ProcessID: pid, Start: start, End: res.TotalTime})
	}
	sort.Slice(tail, func(i, j int) bool {
		if tail[i].Start != tail[j].Start {
			return tail[i].Start < tail[j].Start
		}
		return tail[i].ProcessID < tail[j].ProcessID
	})
	return append(segments, tail...)
}

// SegmentsFor filters segments down to a single process, preserving order.
func SegmentsFor(segments []Segment, pid int) []Segment {
	var out []Segment
	for _, s := range segments {
		if s.ProcessID == pid {
			out = append(out, s)
		}
	}
	return out
}
