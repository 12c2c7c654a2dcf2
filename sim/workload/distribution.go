package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/hpms-sim/sched-sim/sim"
)

// Burst distribution names accepted in DistSpec.Type.
const (
	BurstGaussian    = "gaussian"
	BurstExponential = "exponential"
	BurstConstant    = "constant"
	BurstEmpirical   = "empirical"
)

// BurstSampler draws CPU burst lengths for a generator class.
type BurstSampler interface {
	// Sample returns a burst in ticks, within [1, sim.MaxTime].
	Sample(rng *rand.Rand) int64
}

// wholeTicks rounds a continuous draw to a tick count within [1, sim.MaxTime].
func wholeTicks(v float64) int64 {
	switch {
	case math.IsNaN(v) || v < 1:
		return 1
	case v >= float64(sim.MaxTime):
		return sim.MaxTime
	}
	return int64(math.Round(v))
}

// gaussianBursts draws from N(mean, stdDev) clamped to [lo, hi].
type gaussianBursts struct {
	mean, stdDev float64
	lo, hi       int64
}

func (g gaussianBursts) Sample(rng *rand.Rand) int64 {
	v := g.mean + g.stdDev*rng.NormFloat64()
	return wholeTicks(math.Max(float64(g.lo), math.Min(float64(g.hi), v)))
}

// exponentialBursts draws from an exponential distribution: many short jobs, a few long ones.
type exponentialBursts struct {
	mean float64
}

func (e exponentialBursts) Sample(rng *rand.Rand) int64 {
	return wholeTicks(rng.ExpFloat64() * e.mean)
}

// constantBursts always yields the same burst.
type constantBursts int64

func (c constantBursts) Sample(*rand.Rand) int64 {
	return int64(c)
}

// EmpiricalSampler draws bursts from a weighted table of observed values.
type EmpiricalSampler struct {
	bursts     []int64   // ascending, positive weight only
	cumulative []float64 // running weight total per burst
}

// NewEmpiricalSampler builds a sampler from burst → weight. Weights need not
// sum to 1. Bursts must be within [1, sim.MaxTime], weights non-negative, and
// at least one weight positive. Zero-weight bursts are never drawn.
func NewEmpiricalSampler(weights map[int64]float64) (*EmpiricalSampler, error) {
	bursts := make([]int64, 0, len(weights))
	for b, w := range weights {
		if b < 1 || b > sim.MaxTime {
			return nil, fmt.Errorf("empirical burst %d outside [1, %d]", b, sim.MaxTime)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("empirical weight for burst %d must be a non-negative number, got %v", b, w)
		}
		if w > 0 {
			bursts = append(bursts, b)
		}
	}
	if len(bursts) == 0 {
		return nil, fmt.Errorf("empirical distribution has no burst with positive weight")
	}
	sort.Slice(bursts, func(i, j int) bool { return bursts[i] < bursts[j] })

	s := &EmpiricalSampler{bursts: bursts, cumulative: make([]float64, len(bursts))}
	total := 0.0
	for i, b := range bursts {
		total += weights[b]
		s.cumulative[i] = total
	}
	return s, nil
}

func (s *EmpiricalSampler) Sample(rng *rand.Rand) int64 {
	u := rng.Float64() * s.cumulative[len(s.cumulative)-1]
	i := sort.Search(len(s.cumulative), func(i int) bool { return s.cumulative[i] > u })
	if i == len(s.bursts) {
		i--
	}
	return s.bursts[i]
}

// params reads required distribution parameters in order.
func params(spec DistSpec, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := spec.Params[k]
		if !ok {
			return nil, fmt.Errorf("%s distribution requires parameter %q", spec.Type, k)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s parameter %q must be finite", spec.Type, k)
		}
		out[i] = v
	}
	return out, nil
}

// NewBurstSampler builds the BurstSampler a DistSpec describes. Settings that
// could yield a burst below one tick are rejected rather than clamped.
func NewBurstSampler(spec DistSpec) (BurstSampler, error) {
	switch spec.Type {
	case BurstGaussian:
		p, err := params(spec, "mean", "std_dev", "min", "max")
		if err != nil {
			return nil, err
		}
		mean, stdDev, lo, hi := p[0], p[1], p[2], p[3]
		switch {
		case stdDev < 0:
			return nil, fmt.Errorf("gaussian std_dev must be non-negative, got %v", stdDev)
		case lo < 1:
			return nil, fmt.Errorf("gaussian min must be at least 1 tick, got %v", lo)
		case hi < lo:
			return nil, fmt.Errorf("gaussian max %v is below min %v", hi, lo)
		}
		g := gaussianBursts{mean: mean, stdDev: stdDev, lo: wholeTicks(math.Ceil(lo)), hi: wholeTicks(math.Floor(hi))}
		if g.hi < g.lo {
			return nil, fmt.Errorf("gaussian range [%v, %v] holds no whole tick", lo, hi)
		}
		return g, nil

	case BurstExponential:
		p, err := params(spec, "mean")
		if err != nil {
			return nil, err
		}
		if p[0] <= 0 {
			return nil, fmt.Errorf("exponential mean must be positive, got %v", p[0])
		}
		return exponentialBursts{mean: p[0]}, nil

	case BurstConstant:
		p, err := params(spec, "value")
		if err != nil {
			return nil, err
		}
		if p[0] < 1 || p[0] > float64(sim.MaxTime) || p[0] != math.Trunc(p[0]) {
			return nil, fmt.Errorf("constant value must be a whole number of ticks in [1, %d], got %v", sim.MaxTime, p[0])
		}
		return constantBursts(p[0]), nil

	case BurstEmpirical:
		weights := make(map[int64]float64, len(spec.Params))
		for k, w := range spec.Params {
			b, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("empirical burst %q is not an integer", k)
			}
			weights[b] = w
		}
		return NewEmpiricalSampler(weights)

	default:
		return nil, fmt.Errorf("unknown distribution type %q; valid: gaussian, exponential, constant, empirical", spec.Type)
	}
}
