package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hpms-sim/sched-sim/sim"
)

// maxTimelineColumns caps the Gantt chart width; longer runs are scaled.
const maxTimelineColumns = 60

// GanttRows renders one row per process, one character per column:
// '#' when the process executed during any tick of the column, '.' otherwise.
// Returns the rows keyed by process ID and the number of ticks per column.
func GanttRows(res *sim.Result, segments []sim.Segment) (map[int]string, int64) {
	scale := int64(1)
	if res.TotalTime > maxTimelineColumns {
		scale = (res.TotalTime + maxTimelineColumns - 1) / maxTimelineColumns
	}
	columns := int((res.TotalTime + scale - 1) / scale)

	rows := make(map[int]string, len(res.Processes))
	for _, p := range res.Processes {
		cells := make([]byte, columns)
		for c := range cells {
			cells[c] = '.'
		}
		for _, s := range sim.SegmentsFor(segments, p.ID) {
			for c := s.Start / scale; c*scale < s.End && int(c) < columns; c++ {
				cells[c] = '#'
			}
		}
		rows[p.ID] = string(cells)
	}
	return rows, scale
}

// WriteTimeline prints a Gantt chart of the run followed by its execution events.
func WriteTimeline(w io.Writer, res *sim.Result) {
	segments := sim.Timeline(res)
	rows, scale := GanttRows(res, segments)

	fmt.Fprintln(w, "\nReady Queue & Execution:")
	fmt.Fprintf(w, "Complete Timeline (0-%d, %d tick(s) per column):\n", res.TotalTime, scale)
	for _, p := range res.Processes {
		line := fmt.Sprintf("%-22s |%s|", truncate(p.Name, 22), rows[p.ID])
		if p.IsEmergency() {
			line += fmt.Sprintf(" * %d response", p.ResponseTime())
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, "Legend: # = executing, * = emergency patient")

	names := make(map[int]string, len(res.Processes))
	for _, p := range res.Processes {
		names[p.ID] = p.Name
	}
	fmt.Fprintln(w, "\nExecution Events:")
	for _, ev := range res.Events {
		fmt.Fprintf(w, "%5d  %-22s %s\n", ev.Tick, truncate(names[ev.ProcessID], 22), ev.Kind)
	}
	fmt.Fprintf(w, "%5d  All processes complete\n", res.TotalTime)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}
