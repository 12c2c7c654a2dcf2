package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpms-sim/sched-sim/sim"
	"github.com/hpms-sim/sched-sim/sim/compare"
	"github.com/hpms-sim/sched-sim/sim/report"
	"github.com/hpms-sim/sched-sim/sim/workload"
)

// scenarioAll selects every built-in scenario.
const scenarioAll = "all"

var (
	// CLI flags for workload selection
	scenarioName string // Built-in scenario name, or "all"
	workloadPath string // Path to a YAML workload file (overrides --scenario)

	// CLI flags for the engine
	policyNames []string // Policies to compare, in report order
	quantum     int64    // Round-robin time quantum (in ticks)
	parallel    bool     // Run policies concurrently

	// CLI flags for output
	outputFormat  string // text, json or yaml
	showTimeline  bool   // Force timelines for every scenario
	showProcesses bool   // Force per-process tables for every scenario
	brief         bool   // Suppress detailed sections even for detailed scenarios
	logLevel      string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sched-sim",
	Short: "Discrete-time CPU scheduling simulator",
}

// runConfig is the validated form of the run command's flags.
type runConfig struct {
	Scenarios []*workload.Scenario
	Policies  []sim.Policy
	Parallel  bool
	Format    string
	Timeline  bool
	Processes bool
	Brief     bool
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every scheduling policy over one or more scenarios and compare them",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		cfg, err := newRunConfig()
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting simulation of %d scenario(s) with policies=%v, quantum=%d, parallel=%v",
			len(cfg.Scenarios), policyNames, quantum, parallel)
		startTime := time.Now()

		if err := runSimulation(cmd.Context(), cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// setLogLevel configures the global logger from a level name.
func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// newRunConfig validates the run command's flags.
func newRunConfig() (*runConfig, error) {
	if quantum <= 0 {
		return nil, fmt.Errorf("quantum must be positive, got %d", quantum)
	}
	if !validFormats[outputFormat] {
		return nil, fmt.Errorf("unknown output format %q; valid: text, json, yaml", outputFormat)
	}

	scenarios, err := resolveScenarios(scenarioName, workloadPath)
	if err != nil {
		return nil, err
	}
	policies, err := resolvePolicies(policyNames, quantum)
	if err != nil {
		return nil, err
	}
	return &runConfig{
		Scenarios: scenarios,
		Policies:  policies,
		Parallel:  parallel,
		Format:    outputFormat,
		Timeline:  showTimeline,
		Processes: showProcesses,
		Brief:     brief,
	}, nil
}

// resolveScenarios returns the workload file's scenario when path is set,
// otherwise the named built-in scenario (or all of them).
func resolveScenarios(name, path string) ([]*workload.Scenario, error) {
	if path != "" {
		sc, err := workload.LoadScenario(path)
		if err != nil {
			return nil, err
		}
		return []*workload.Scenario{sc}, nil
	}
	if name == "" || name == scenarioAll {
		return workload.Scenarios(), nil
	}
	if !workload.IsValidScenario(name) {
		return nil, fmt.Errorf("unknown scenario %q; valid: %s, %s", name, strings.Join(workload.ScenarioNames(), ", "), scenarioAll)
	}
	sc, err := workload.ScenarioByName(name)
	if err != nil {
		return nil, err
	}
	return []*workload.Scenario{sc}, nil
}

// resolvePolicies builds policies from names, rejecting unknown and duplicate names.
func resolvePolicies(names []string, quantum int64) ([]sim.Policy, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one policy required")
	}
	seen := make(map[string]bool, len(names))
	policies := make([]sim.Policy, 0, len(names))
	for _, name := range names {
		if !sim.IsValidPolicy(name) {
			return nil, fmt.Errorf("unknown policy %q; valid: %v", name, sim.PolicyNames())
		}
		if seen[name] {
			return nil, fmt.Errorf("policy %q listed more than once", name)
		}
		seen[name] = true
		policies = append(policies, sim.NewPolicy(name, quantum))
	}
	return policies, nil
}

// runSimulation evaluates every scenario and writes the results to w.
func runSimulation(ctx context.Context, w io.Writer, cfg *runConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	evals := make([]*compare.Evaluation, 0, len(cfg.Scenarios))
	for _, sc := range cfg.Scenarios {
		eval, err := compare.Run(ctx, sc, cfg.Policies, compare.Options{Parallel: cfg.Parallel})
		if err != nil {
			return err
		}
		evals = append(evals, eval)
	}

	if cfg.Format != formatText {
		return writeResults(w, cfg.Format, evals)
	}
	for i, eval := range evals {
		if i > 0 {
			fmt.Fprintln(w)
		}
		detailed := eval.Scenario.Detailed && !cfg.Brief
		report.Write(w, eval, report.Options{
			Timeline:  cfg.Timeline || detailed,
			Processes: cfg.Processes || detailed,
		})
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Workload selection
	runCmd.Flags().StringVar(&scenarioName, "scenario", scenarioAll, "Built-in scenario (mass-casualty, normal, light) or \"all\"")
	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Path to a YAML workload file (overrides --scenario)")

	// Engine configuration
	runCmd.Flags().StringSliceVar(&policyNames, "policies", sim.PolicyNames(), "Comma-separated policies to compare (priority, fcfs, sjf, round-robin)")
	runCmd.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Round-robin time quantum (in ticks)")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "Run the policies of a scenario concurrently")

	// Output
	runCmd.Flags().StringVar(&outputFormat, "output", formatText, "Output format (text, json, yaml)")
	runCmd.Flags().BoolVar(&showTimeline, "timeline", false, "Show the execution timeline for every scenario")
	runCmd.Flags().BoolVar(&showProcesses, "processes", false, "Show per-process results for every scenario")
	runCmd.Flags().BoolVar(&brief, "brief", false, "Only show metrics and comparisons, even for detailed scenarios")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(generateCmd)
}
