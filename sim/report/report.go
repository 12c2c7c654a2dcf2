// Package report renders workloads, per-policy metrics, timelines and
// cross-policy comparisons as text. It is a stateless formatter: it reads
// engine and metrics output and never changes it.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/hpms-sim/sched-sim/sim"
	"github.com/hpms-sim/sched-sim/sim/compare"
)

const bannerWidth = 80

// Options selects the optional sections of a scenario report.
type Options struct {
	Processes bool // per-process performance table for every policy
	Timeline  bool // Gantt chart and execution events for every policy
}

// DisplayName returns the heading used for a policy in reports.
func DisplayName(res *sim.Result) string {
	switch res.Policy {
	case sim.PolicyPriority:
		return "PRIORITY SCHEDULING (Preemptive)"
	case sim.PolicyFCFS:
		return "FCFS (First Come First Served)"
	case sim.PolicySJF:
		return "SJF (Shortest Job First)"
	case sim.PolicyRoundRobin:
		return fmt.Sprintf("ROUND ROBIN (Quantum = %d)", res.Quantum)
	default:
		return strings.ToUpper(res.Policy)
	}
}

// Write renders a complete scenario report: the workload, one section per
// policy run and the comparison table.
func Write(w io.Writer, eval *compare.Evaluation, opts Options) {
	sc := eval.Scenario
	WriteBanner(w, sc.Title)
	if len(sc.Description) > 0 {
		fmt.Fprintln(w, "\nScenario Description:")
		for _, line := range sc.Description {
			fmt.Fprintf(w, "- %s\n", line)
		}
	}
	WriteWorkload(w, sc.Processes)

	for i, run := range eval.Runs {
		fmt.Fprintln(w)
		WriteBanner(w, fmt.Sprintf("ALGORITHM %d: %s", i+1, DisplayName(run.Result)))
		WriteMetrics(w, run.Metrics)
		if opts.Timeline {
			WriteTimeline(w, run.Result)
		}
		if opts.Processes {
			WriteProcesses(w, run.Result)
		}
	}

	fmt.Fprintln(w)
	WriteBanner(w, "ALGORITHM COMPARISON SUMMARY")
	WriteComparison(w, eval)
}

// WriteBanner prints a centered section title between two rules.
func WriteBanner(w io.Writer, title string) {
	rule := strings.Repeat("=", bannerWidth)
	pad := 0
	if len(title) < bannerWidth {
		pad = (bannerWidth - len(title)) / 2
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", pad), title)
	fmt.Fprintln(w, rule)
}

// newTable creates a borderless, left-aligned table in the report's style.
func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("-")
	table.SetHeaderLine(true)
	return table
}

// WriteWorkload prints the workload table followed by a process count summary.
func WriteWorkload(w io.Writer, procs []sim.ProcessDescriptor) {
	fmt.Fprintln(w, "\nProcess Workload:")
	table := newTable(w, []string{"PID", "Process Name", "Priority", "Arrival", "Burst", "Classification"})
	emergencies := 0
	for _, p := range procs {
		if p.IsEmergency() {
			emergencies++
		}
		table.Append([]string{
			fmt.Sprint(p.ID),
			p.Name,
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.BurstTime),
			p.Class,
		})
	}
	table.Render()

	fmt.Fprintf(w, "\nTotal Processes: %d", len(procs))
	if emergencies > 0 {
		fmt.Fprintf(w, " (%d emergencies + %d supporting operations)", emergencies, len(procs)-emergencies)
	}
	fmt.Fprintln(w)
}

// WriteMetrics prints one run's aggregate metrics with assessments.
func WriteMetrics(w io.Writer, m sim.Metrics) {
	fmt.Fprintln(w, "\nPerformance Metrics:")
	table := newTable(w, []string{"Metric", "Value", "Assessment"})
	table.Append([]string{"Completed Processes", fmt.Sprint(m.Completed), ""})
	table.Append([]string{"Average Response Time", fmt.Sprintf("%.2f", m.AvgResponseTime), AssessResponse(m.AvgResponseTime)})
	table.Append([]string{"Average Turnaround Time", fmt.Sprintf("%.2f", m.AvgTurnaroundTime), ""})
	table.Append([]string{"Average Waiting Time", fmt.Sprintf("%.2f", m.AvgWaitingTime), ""})
	table.Append([]string{"Emergency Processes", fmt.Sprint(m.EmergencyCount), ""})
	if m.HasEmergencies() {
		table.Append([]string{"EMERGENCY Response Time", EmergencyRange(m), AssessEmergency(m.EmergencyResponseMax)})
	}
	table.Append([]string{"CPU Utilization", fmt.Sprintf("%.2f%%", m.CPUUtilization), ""})
	table.Append([]string{"Context Switches", fmt.Sprint(m.ContextSwitches), ""})
	table.Append([]string{"Throughput", fmt.Sprintf("%.3f processes/tick", m.Throughput), ""})
	table.Append([]string{"Total Execution Time", fmt.Sprint(m.TotalTime), ""})
	table.Append([]string{"Busy Time", fmt.Sprint(m.BusyTime), ""})
	table.Append([]string{"Idle Time", fmt.Sprint(m.IdleTime), ""})
	table.Render()
}

// WriteProcesses prints the final state of every process, emergencies first.
func WriteProcesses(w io.Writer, res *sim.Result) {
	fmt.Fprintln(w, "\nIndividual Process Performance:")
	procs := make([]sim.ProcessState, len(res.Processes))
	copy(procs, res.Processes)
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].IsEmergency() && !procs[j].IsEmergency()
	})

	table := newTable(w, []string{"PID", "Process", "Priority", "Arrival", "Burst", "Start", "Finish", "Response", "Turnaround", "Waiting", "Remaining"})
	for i := range procs {
		p := &procs[i]
		table.Append([]string{
			fmt.Sprint(p.ID),
			p.Name,
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.BurstTime),
			tick(p.StartTime),
			tick(p.CompletionTime),
			fmt.Sprint(p.ResponseTime()),
			fmt.Sprint(p.TurnaroundTime()),
			fmt.Sprint(p.WaitingTime()),
			fmt.Sprint(p.RemainingTime),
		})
	}
	table.Render()
}

// tick formats a tick value, rendering sim.Unset as "-".
func tick(t int64) string {
	if t == sim.Unset {
		return "-"
	}
	return fmt.Sprint(t)
}

// WriteComparison prints the cross-policy comparison table and the best
// policy for each headline criterion.
func WriteComparison(w io.Writer, eval *compare.Evaluation) {
	header := []string{"Metric"}
	for _, run := range eval.Runs {
		header = append(header, run.Policy())
	}
	table := newTable(w, header)

	row := func(label string, cell func(sim.Metrics) string) {
		cells := []string{label}
		for _, run := range eval.Runs {
			cells = append(cells, cell(run.Metrics))
		}
		table.Append(cells)
	}
	row("Avg Response Time", func(m sim.Metrics) string { return fmt.Sprintf("%.2f", m.AvgResponseTime) })
	row("Avg Turnaround Time", func(m sim.Metrics) string { return fmt.Sprintf("%.2f", m.AvgTurnaroundTime) })
	row("Avg Waiting Time", func(m sim.Metrics) string { return fmt.Sprintf("%.2f", m.AvgWaitingTime) })
	if eval.Scenario.EmergencyCount() > 0 {
		row("Emergency Response", EmergencyRange)
	}
	row("Context Switches", func(m sim.Metrics) string { return fmt.Sprint(m.ContextSwitches) })
	row("CPU Utilization", func(m sim.Metrics) string { return fmt.Sprintf("%.2f%%", m.CPUUtilization) })
	row("Throughput", func(m sim.Metrics) string { return fmt.Sprintf("%.3f", m.Throughput) })
	row("Total Time", func(m sim.Metrics) string { return fmt.Sprint(m.TotalTime) })
	table.Render()

	writeFindings(w, eval)
}

// writeFindings prints the headline conclusions of a comparison.
func writeFindings(w io.Writer, eval *compare.Evaluation) {
	fmt.Fprintln(w)
	if best, ok := eval.Best(compare.ByAvgResponse); ok {
		fmt.Fprintf(w, "Best average response: %s (%.2f)\n", best.Policy(), best.Metrics.AvgResponseTime)
		if fcfs, ok := eval.Run(sim.PolicyFCFS); ok && best.Policy() != sim.PolicyFCFS {
			fmt.Fprintf(w, "- %.0f%% faster average response than fcfs\n",
				PercentImprovement(fcfs.Metrics.AvgResponseTime, best.Metrics.AvgResponseTime))
		}
	}
	if eval.Scenario.EmergencyCount() > 0 {
		if best, ok := eval.Best(compare.ByEmergencyResponse); ok {
			fmt.Fprintf(w, "Best emergency response: %s (%s)\n", best.Policy(), EmergencyRange(best.Metrics))
		}
	}
	if best, ok := eval.Best(compare.ByContextSwitches); ok {
		fmt.Fprintf(w, "Fewest context switches: %s (%d)\n", best.Policy(), best.Metrics.ContextSwitches)
	}
	rr, okRR := eval.Run(sim.PolicyRoundRobin)
	prio, okPrio := eval.Run(sim.PolicyPriority)
	if okRR && okPrio {
		fmt.Fprintf(w, "Round robin overhead: %d context switches vs %d for priority (%.0f%% overhead)\n",
			rr.Metrics.ContextSwitches, prio.Metrics.ContextSwitches,
			PercentOverhead(prio.Metrics.ContextSwitches, rr.Metrics.ContextSwitches))
	}
}
