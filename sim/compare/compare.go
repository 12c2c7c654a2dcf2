// Package compare runs several scheduling policies over the same workload and
// bundles their results for cross-policy reporting.
//
// Every policy receives its own copy of the workload and returns an
// independent Result, so runs may execute concurrently without locking.
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hpms-sim/sched-sim/sim"
	"github.com/hpms-sim/sched-sim/sim/workload"
)

// Options controls how a comparison is executed.
type Options struct {
	Parallel bool // run policies concurrently, one goroutine per policy
}

// PolicyRun is the outcome of one policy over the scenario.
type PolicyRun struct {
	Result  *sim.Result `json:"result" yaml:"result"`
	Metrics sim.Metrics `json:"metrics" yaml:"metrics"`
}

// Policy returns the name of the policy that produced the run.
func (r PolicyRun) Policy() string {
	return r.Result.Policy
}

// Evaluation bundles all policy runs for one scenario.
// Runs are kept in the order the policies were supplied.
type Evaluation struct {
	Scenario *workload.Scenario `json:"scenario" yaml:"scenario"`
	Runs     []PolicyRun        `json:"runs" yaml:"runs"`

	WallTime time.Duration `json:"-" yaml:"-"` // wall-clock duration of Run()
}

// Run evaluates every policy on the scenario.
// Cancellation is checked before each policy run; a policy run itself is
// synchronous and always finishes once started.
func Run(ctx context.Context, sc *workload.Scenario, policies []sim.Policy, opts Options) (*Evaluation, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario is required")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if len(policies) == 0 {
		return nil, fmt.Errorf("at least one policy required")
	}

	start := time.Now()
	runs := make([]PolicyRun, len(policies))

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, p := range policies {
			i, p := i, p
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				runs[i] = evaluate(p, sc.Processes)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("comparing policies on %q: %w", sc.Name, err)
		}
	} else {
		for i, p := range policies {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("comparing policies on %q: %w", sc.Name, err)
			}
			runs[i] = evaluate(p, sc.Processes)
		}
	}

	eval := &Evaluation{Scenario: sc, Runs: runs, WallTime: time.Since(start)}
	logrus.Infof("Evaluated %d policies on scenario %q in %v", len(runs), sc.Name, eval.WallTime)
	return eval, nil
}

func evaluate(p sim.Policy, procs []sim.ProcessDescriptor) PolicyRun {
	res := p.Run(procs)
	m := sim.CalculateMetrics(res)
	logrus.Debugf("[%s] avg response %.2f, switches %d, total %d ticks", p.Name(), m.AvgResponseTime, m.ContextSwitches, m.TotalTime)
	return PolicyRun{Result: res, Metrics: m}
}

// Run returns the run produced by the named policy.
func (e *Evaluation) Run(policy string) (PolicyRun, bool) {
	for _, r := range e.Runs {
		if r.Policy() == policy {
			return r, true
		}
	}
	return PolicyRun{}, false
}

// Best returns the run with the smallest value of key. Ties keep the earliest run.
// Returns false if the evaluation has no runs.
func (e *Evaluation) Best(key func(sim.Metrics) float64) (PolicyRun, bool) {
	if len(e.Runs) == 0 {
		return PolicyRun{}, false
	}
	best := e.Runs[0]
	for _, r := range e.Runs[1:] {
		if key(r.Metrics) < key(best.Metrics) {
			best = r
		}
	}
	return best, true
}

// ByAvgResponse ranks runs by average response time.
func ByAvgResponse(m sim.Metrics) float64 { return m.AvgResponseTime }

// ByEmergencyResponse ranks runs by worst-case emergency response time.
func ByEmergencyResponse(m sim.Metrics) float64 { return m.EmergencyResponseMax }

// ByContextSwitches ranks runs by context-switch count.
func ByContextSwitches(m sim.Metrics) float64 { return float64(m.ContextSwitches) }
