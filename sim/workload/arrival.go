package workload

import (
	"math"
	"math/rand"
)

// Arrival process names accepted in ArrivalSpec.Process.
const (
	ArrivalPoisson  = "poisson"
	ArrivalGamma    = "gamma"
	ArrivalWeibull  = "weibull"
	ArrivalConstant = "constant"
)

var validArrivalProcesses = map[string]bool{
	ArrivalPoisson:  true,
	ArrivalGamma:    true,
	ArrivalWeibull:  true,
	ArrivalConstant: true,
}

// maxArrivalCV bounds the coefficient of variation of gamma and weibull arrivals.
const maxArrivalCV = 10.0

// ArrivalSampler draws the gap, in ticks, between consecutive arrivals of a class.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time, within [1, sim.MaxTime].
	SampleIAT(rng *rand.Rand) int64
}

// poissonArrivals has exponential gaps: memoryless walk-ins (CV = 1).
type poissonArrivals struct {
	mean float64
}

func (p poissonArrivals) SampleIAT(rng *rand.Rand) int64 {
	return wholeTicks(p.mean * rng.ExpFloat64())
}

// gammaArrivals has Gamma(shape, scale) gaps. CV above 1 clusters arrivals,
// such as casualties reaching the hospital in waves.
type gammaArrivals struct {
	shape, scale float64
}

func (g gammaArrivals) SampleIAT(rng *rand.Rand) int64 {
	return wholeTicks(g.scale * gammaDraw(rng, g.shape))
}

// gammaDraw samples Gamma(shape, 1) by Marsaglia-Tsang. Shapes below 1 are
// drawn at shape+1 and scaled by U^(1/shape).
func gammaDraw(rng *rand.Rand, shape float64) float64 {
	boost := 1.0
	if shape < 1 {
		boost = math.Pow(rng.Float64(), 1/shape)
		shape++
	}
	d := shape - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x || math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v * boost
		}
	}
}

// weibullArrivals has Weibull(k, lambda) gaps, drawn by inverting the CDF.
// CV below 1 gives more regular spacing than Poisson.
type weibullArrivals struct {
	k, lambda float64
}

func (w weibullArrivals) SampleIAT(rng *rand.Rand) int64 {
	u := 1 - rng.Float64() // (0, 1], keeps the log finite
	return wholeTicks(w.lambda * math.Pow(-math.Log(u), 1/w.k))
}

// weibullShape returns the k whose Weibull CV equals cv. CV falls
// monotonically as k grows, so bisection over [0.1, 100] converges.
func weibullShape(cv float64) float64 {
	lo, hi := 0.1, 100.0
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if weibullCV(mid) > cv {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func weibullCV(k float64) float64 {
	g1 := math.Gamma(1 + 1/k)
	g2 := math.Gamma(1 + 2/k)
	return math.Sqrt(g2/(g1*g1) - 1)
}

// constantArrivals spaces arrivals evenly, like scheduled check-ins.
type constantArrivals int64

func (c constantArrivals) SampleIAT(*rand.Rand) int64 {
	return int64(c)
}

// NewArrivalSampler builds the sampler for a class arriving at ratePerTick on
// average. CV defaults to 1 and only shapes gamma and weibull gaps. Unknown
// processes are rejected by GeneratorSpec.Validate before this is called.
func NewArrivalSampler(spec ArrivalSpec, ratePerTick float64) ArrivalSampler {
	mean := 1 / ratePerTick
	cv := 1.0
	if spec.CV != nil && *spec.CV > 0 {
		cv = math.Min(*spec.CV, maxArrivalCV)
	}

	switch spec.Process {
	case ArrivalGamma:
		return gammaArrivals{shape: 1 / (cv * cv), scale: mean * cv * cv}
	case ArrivalWeibull:
		k := weibullShape(cv)
		return weibullArrivals{k: k, lambda: mean / math.Gamma(1+1/k)}
	case ArrivalConstant:
		return constantArrivals(wholeTicks(mean))
	default:
		return poissonArrivals{mean: mean}
	}
}
