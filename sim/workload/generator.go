package workload

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hpms-sim/sched-sim/sim"
)

// GeneratorSpec describes a synthetic workload: one or more process classes,
// each with its own arrival process and burst distribution.
// Generation is deterministic given the same spec and seed.
type GeneratorSpec struct {
	Seed         int64       `yaml:"seed"`
	Horizon      int64       `yaml:"horizon"`                 // arrivals are generated in [0, Horizon)
	MaxProcesses int         `yaml:"max_processes,omitempty"` // 0 = no cap
	Classes      []ClassSpec `yaml:"classes"`
}

// ClassSpec is one stream of similar processes, e.g. emergency admissions.
type ClassSpec struct {
	Name     string      `yaml:"name"`            // process name prefix; unique per generator
	Class    string      `yaml:"class,omitempty"` // classification label; defaults to Name
	Priority int         `yaml:"priority"`
	Rate     float64     `yaml:"rate"` // mean arrivals per tick
	Arrival  ArrivalSpec `yaml:"arrival"`
	Burst    DistSpec    `yaml:"burst"`
}

// ArrivalSpec selects the inter-arrival time process of a class.
type ArrivalSpec struct {
	Process string   `yaml:"process"`      // poisson, gamma, weibull or constant
	CV      *float64 `yaml:"cv,omitempty"` // coefficient of variation for gamma and weibull
}

// DistSpec selects the burst time distribution of a class.
type DistSpec struct {
	Type   string             `yaml:"type"` // gaussian, exponential, constant or empirical
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Validate checks that all fields in the generator spec are valid.
func (g *GeneratorSpec) Validate() error {
	if g.Horizon <= 0 {
		return fmt.Errorf("generate.horizon must be positive, got %d", g.Horizon)
	}
	if g.Horizon > sim.MaxTime {
		return fmt.Errorf("generate.horizon must not exceed %d, got %d", sim.MaxTime, g.Horizon)
	}
	if g.MaxProcesses < 0 {
		return fmt.Errorf("generate.max_processes must be non-negative, got %d", g.MaxProcesses)
	}
	if len(g.Classes) == 0 {
		return fmt.Errorf("generate: at least one class required")
	}
	seen := make(map[string]bool, len(g.Classes))
	for i := range g.Classes {
		c := &g.Classes[i]
		prefix := fmt.Sprintf("generate.classes[%d]", i)
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%s: name is required", prefix)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s: duplicate class name %q", prefix, c.Name)
		}
		seen[c.Name] = true
		if c.Priority < 1 {
			return fmt.Errorf("%s: priority must be >= 1, got %d", prefix, c.Priority)
		}
		if c.Rate <= 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
			return fmt.Errorf("%s: rate must be a positive number, got %v", prefix, c.Rate)
		}
		if !validArrivalProcesses[c.Arrival.Process] {
			return fmt.Errorf("%s: unknown arrival process %q; valid: poisson, gamma, weibull, constant", prefix, c.Arrival.Process)
		}
		if cv := c.Arrival.CV; cv != nil && (*cv <= 0 || *cv > maxArrivalCV || math.IsNaN(*cv)) {
			return fmt.Errorf("%s: arrival cv must be in (0, %g], got %v", prefix, maxArrivalCV, *cv)
		}
		if _, err := NewBurstSampler(c.Burst); err != nil {
			return fmt.Errorf("%s: burst: %w", prefix, err)
		}
	}
	return nil
}

// generated is a sampled arrival before IDs are assigned.
type generated struct {
	class   int
	seq     int
	arrival int64
	burst   int64
}

// GenerateProcesses creates a workload from a GeneratorSpec.
// Returns processes sorted by arrival time with sequential IDs starting at 0.
// Ties keep class order, then sampling order.
func GenerateProcesses(spec *GeneratorSpec) ([]sim.ProcessDescriptor, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := NewPartitionedRNG(NewSimulationKey(spec.Seed))

	var all []generated
	for ci := range spec.Classes {
		c := &spec.Classes[ci]
		classRNG := rng.ForSubsystem(SubsystemClass(c.Name))
		arrivals := NewArrivalSampler(c.Arrival, c.Rate)
		bursts, err := NewBurstSampler(c.Burst)
		if err != nil {
			return nil, fmt.Errorf("class %q burst distribution: %w", c.Name, err)
		}

		currentTime := int64(0)
		for seq := 0; ; seq++ {
			currentTime += arrivals.SampleIAT(classRNG)
			if currentTime >= spec.Horizon {
				break
			}
			all = append(all, generated{class: ci, seq: seq, arrival: currentTime, burst: bursts.Sample(classRNG)})
		}
	}

	// Sort by arrival time (stable sort preserves class order for ties)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].arrival < all[j].arrival
	})
	if spec.MaxProcesses > 0 && len(all) > spec.MaxProcesses {
		all = all[:spec.MaxProcesses]
	}

	procs := make([]sim.ProcessDescriptor, 0, len(all))
	for id, g := range all {
		c := &spec.Classes[g.class]
		label := c.Class
		if label == "" {
			label = c.Name
		}
		pd, err := sim.NewProcessDescriptor(id, fmt.Sprintf("%s #%d", c.Name, g.seq+1), label, c.Priority, g.arrival, g.burst)
		if err != nil {
			return nil, err
		}
		procs = append(procs, pd)
	}

	logrus.Infof("Generated %d processes from %d classes (key %d, horizon %d)", len(procs), len(spec.Classes), rng.Key(), spec.Horizon)
	return procs, nil
}
