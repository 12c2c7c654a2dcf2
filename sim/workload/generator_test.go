package workload

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpms-sim/sched-sim/sim"
)

func surgeSpec() *GeneratorSpec {
	cv := 2.0
	return &GeneratorSpec{
		Seed:    42,
		Horizon: 500,
		Classes: []ClassSpec{
			{
				Name: "EMERGENCY", Class: "Critical", Priority: 1, Rate: 0.02,
				Arrival: ArrivalSpec{Process: ArrivalGamma, CV: &cv},
				Burst:   DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 3, "std_dev": 1, "min": 1, "max": 6}},
			},
			{
				Name: "Lab", Priority: 2, Rate: 0.05,
				Arrival: ArrivalSpec{Process: ArrivalPoisson},
				Burst:   DistSpec{Type: "exponential", Params: map[string]float64{"mean": 5}},
			},
		},
	}
}

func TestGenerateProcesses_SameSeed_Deterministic(t *testing.T) {
	// GIVEN the same spec generated twice
	first, err := GenerateProcesses(surgeSpec())
	require.NoError(t, err)
	second, err := GenerateProcesses(surgeSpec())
	require.NoError(t, err)

	// THEN the workloads are identical
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGenerateProcesses_DifferentSeed_Differs(t *testing.T) {
	a, err := GenerateProcesses(surgeSpec())
	require.NoError(t, err)
	spec := surgeSpec()
	spec.Seed = 43
	b, err := GenerateProcesses(spec)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateProcesses_SortedWithSequentialIDs(t *testing.T) {
	procs, err := GenerateProcesses(surgeSpec())
	require.NoError(t, err)

	for i, p := range procs {
		assert.Equal(t, i, p.ID)
		assert.Less(t, p.ArrivalTime, int64(500))
		assert.GreaterOrEqual(t, p.BurstTime, int64(1))
		if i > 0 {
			assert.LessOrEqual(t, procs[i-1].ArrivalTime, p.ArrivalTime, "process %d arrives before its predecessor", i)
		}
	}
	assert.NoError(t, sim.ValidateWorkload(procs))
}

func TestGenerateProcesses_LabelDefaultsToName(t *testing.T) {
	procs, err := GenerateProcesses(surgeSpec())
	require.NoError(t, err)

	for _, p := range procs {
		switch p.Priority {
		case 1:
			assert.Equal(t, "Critical", p.Class)
		case 2:
			assert.Equal(t, "Lab", p.Class)
		}
	}
}

func TestGenerateProcesses_MaxProcesses_KeepsEarliest(t *testing.T) {
	// GIVEN an uncapped workload and the same spec capped at 5
	all, err := GenerateProcesses(surgeSpec())
	require.NoError(t, err)
	require.Greater(t, len(all), 5)
	spec := surgeSpec()
	spec.MaxProcesses = 5

	// WHEN the capped spec is generated
	capped, err := GenerateProcesses(spec)

	// THEN only the five earliest arrivals remain
	require.NoError(t, err)
	assert.Equal(t, all[:5], capped)
}

func TestGenerateProcesses_ConstantArrivals_EvenlySpaced(t *testing.T) {
	spec := &GeneratorSpec{
		Horizon: 25,
		Classes: []ClassSpec{{
			Name: "Check-in", Priority: 3, Rate: 0.2,
			Arrival: ArrivalSpec{Process: ArrivalConstant},
			Burst:   DistSpec{Type: "constant", Params: map[string]float64{"value": 2}},
		}},
	}

	procs, err := GenerateProcesses(spec)

	require.NoError(t, err)
	require.Len(t, procs, 4)
	for i, p := range procs {
		assert.Equal(t, fmt.Sprintf("Check-in #%d", i+1), p.Name)
		assert.Equal(t, int64(5*(i+1)), p.ArrivalTime)
		assert.Equal(t, int64(2), p.BurstTime)
	}
}

func TestGenerateProcesses_AddingClass_LeavesOtherClassUnchanged(t *testing.T) {
	// GIVEN a spec with only the emergency class
	base := surgeSpec()
	base.Classes = base.Classes[:1]
	alone, err := GenerateProcesses(base)
	require.NoError(t, err)

	// WHEN a second class is added
	mixed, err := GenerateProcesses(surgeSpec())
	require.NoError(t, err)

	// THEN the emergency arrivals and bursts are unchanged
	type sample struct {
		name           string
		arrival, burst int64
	}
	pick := func(procs []sim.ProcessDescriptor) []sample {
		var out []sample
		for _, p := range procs {
			if p.Class == "Critical" {
				out = append(out, sample{p.Name, p.ArrivalTime, p.BurstTime})
			}
		}
		return out
	}
	require.NotEmpty(t, pick(alone))
	assert.Equal(t, pick(alone), pick(mixed))
}

func TestGeneratorSpec_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GeneratorSpec)
		wantErr string
	}{
		{"zero horizon", func(g *GeneratorSpec) { g.Horizon = 0 }, "horizon must be positive"},
		{"negative cap", func(g *GeneratorSpec) { g.MaxProcesses = -1 }, "max_processes must be non-negative"},
		{"no classes", func(g *GeneratorSpec) { g.Classes = nil }, "at least one class required"},
		{"unnamed class", func(g *GeneratorSpec) { g.Classes[1].Name = " " }, "classes[1]: name is required"},
		{"duplicate class", func(g *GeneratorSpec) { g.Classes[1].Name = "EMERGENCY" }, `duplicate class name "EMERGENCY"`},
		{"zero priority", func(g *GeneratorSpec) { g.Classes[0].Priority = 0 }, "priority must be >= 1"},
		{"zero rate", func(g *GeneratorSpec) { g.Classes[1].Rate = 0 }, "rate must be a positive number"},
		{"unknown arrival", func(g *GeneratorSpec) { g.Classes[0].Arrival.Process = "bursty" }, `unknown arrival process "bursty"`},
		{"negative cv", func(g *GeneratorSpec) { cv := -1.0; g.Classes[0].Arrival.CV = &cv }, "arrival cv must be in (0, 10]"},
		{"cv above limit", func(g *GeneratorSpec) { cv := 11.0; g.Classes[0].Arrival.CV = &cv }, "arrival cv must be in (0, 10]"},
		{"horizon above limit", func(g *GeneratorSpec) { g.Horizon = sim.MaxTime + 1 }, "horizon must not exceed"},
		{"zero-weight empirical burst", func(g *GeneratorSpec) {
			g.Classes[1].Burst = DistSpec{Type: "empirical", Params: map[string]float64{"5": 0}}
		}, "classes[1]: burst: empirical distribution has no burst with positive weight"},
		{"sub-tick gaussian burst", func(g *GeneratorSpec) {
			g.Classes[0].Burst = DistSpec{Type: "gaussian", Params: map[string]float64{"mean": -10, "std_dev": 2, "min": -20, "max": -5}}
		}, "classes[0]: burst: gaussian min must be at least 1 tick"},
		{"bad burst", func(g *GeneratorSpec) { g.Classes[1].Burst = DistSpec{Type: "uniform"} }, "classes[1]: burst: unknown distribution type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// GIVEN a generator spec with one invalid field
			spec := surgeSpec()
			tc.mutate(spec)

			// WHEN it is generated
			_, err := GenerateProcesses(spec)

			// THEN generation fails with the validation error
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadScenario_GeneratedWorkloadFile(t *testing.T) {
	// GIVEN the generated sample workload shipped in testdata
	path := filepath.Join("..", "..", "testdata", "workloads", "ward-surge.yaml")

	// WHEN it is loaded twice
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	again, err := LoadScenario(path)
	require.NoError(t, err)

	// THEN the synthesized workload is valid, capped and reproducible
	assert.Equal(t, "ward-surge", sc.Name)
	assert.Equal(t, sc, again)
	assert.LessOrEqual(t, len(sc.Processes), 40)
	require.NoError(t, sc.Validate())

	// AND the constant-rate check-ins arrive every 10 ticks
	checkIns := 0
	for _, p := range sc.Processes {
		if p.Class != "Standard" {
			continue
		}
		checkIns++
		assert.Equal(t, fmt.Sprintf("Check-in #%d", checkIns), p.Name)
		assert.Equal(t, int64(10*checkIns), p.ArrivalTime)
		assert.Contains(t, []int64{2, 4, 6}, p.BurstTime)
	}
	assert.Positive(t, checkIns)
}

func TestWorkloadSpec_GenerateWithProcesses_Rejected(t *testing.T) {
	spec := &WorkloadSpec{
		Version:   "1",
		Name:      "mixed",
		Processes: []ProcessSpec{{ID: 0, Name: "a", Priority: 1, Burst: 1}},
		Generate:  surgeSpec(),
	}

	err := spec.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestWorkloadSpec_GenerateEmpty_Rejected(t *testing.T) {
	// GIVEN a generator whose first arrival falls past the horizon
	gen := &GeneratorSpec{
		Horizon: 3,
		Classes: []ClassSpec{{
			Name: "Rare", Priority: 4, Rate: 0.1,
			Arrival: ArrivalSpec{Process: ArrivalConstant},
			Burst:   DistSpec{Type: "constant", Params: map[string]float64{"value": 1}},
		}},
	}
	spec := &WorkloadSpec{Version: "1", Name: "empty", Generate: gen}

	_, err := spec.Scenario()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator produced no processes before horizon 3")
}
