package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hpms-sim/sched-sim/sim"
	"github.com/hpms-sim/sched-sim/sim/workload"
)

func TestResolvePolicies_ValidNames_KeepOrder(t *testing.T) {
	policies, err := resolvePolicies([]string{"round-robin", "fcfs"}, 3)

	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, sim.PolicyRoundRobin, policies[0].Name())
	assert.Equal(t, sim.PolicyFCFS, policies[1].Name())
	assert.Equal(t, int64(3), policies[0].(*sim.RoundRobin).Quantum)
}

func TestResolvePolicies_Errors(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr string
	}{
		{"empty", nil, "at least one policy required"},
		{"unknown", []string{"fcfs", "lottery"}, `unknown policy "lottery"`},
		{"duplicate", []string{"sjf", "sjf"}, `policy "sjf" listed more than once`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolvePolicies(tc.names, 4)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestResolveScenarios(t *testing.T) {
	// GIVEN "all", a single name and a workload file
	all, err := resolveScenarios(scenarioAll, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := resolveScenarios(workload.ScenarioNormal, "")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, workload.ScenarioNormal, one[0].Name)

	// THEN the workload file wins over the scenario name
	fromFile, err := resolveScenarios(workload.ScenarioNormal, sampleWorkloadPath())
	require.NoError(t, err)
	require.Len(t, fromFile, 1)
	assert.Equal(t, "triage-drill", fromFile[0].Name)

	_, err = resolveScenarios("pandemic", "")
	assert.ErrorContains(t, err, `unknown scenario "pandemic"; valid: mass-casualty, normal, light, all`)
}

func TestNewRunConfig_RejectsBadFlags(t *testing.T) {
	defer restoreFlags(snapshotFlags())

	scenarioName, workloadPath, policyNames, outputFormat = scenarioAll, "", sim.PolicyNames(), formatText
	quantum = 0
	_, err := newRunConfig()
	assert.ErrorContains(t, err, "quantum must be positive")

	quantum = 4
	outputFormat = "csv"
	_, err = newRunConfig()
	assert.ErrorContains(t, err, `unknown output format "csv"`)

	outputFormat = formatJSON
	cfg, err := newRunConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.Scenarios, 3)
	assert.Len(t, cfg.Policies, 4)
}

func TestRunSimulation_Text_DetailedScenarioShowsTimeline(t *testing.T) {
	// GIVEN the detailed mass-casualty scenario and a non-detailed one
	cfg := &runConfig{
		Scenarios: []*workload.Scenario{workload.ScenarioMassCasualtyLoad(), workload.ScenarioLightLoad()},
		Policies:  sim.AllPolicies(sim.DefaultQuantum),
		Format:    formatText,
	}

	// WHEN the simulation writes text
	var buf bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), &buf, cfg))
	out := buf.String()

	// THEN only the detailed scenario carries timelines
	assert.Equal(t, 4, strings.Count(out, "Execution Events:"))
	assert.Equal(t, 2, strings.Count(out, "ALGORITHM COMPARISON SUMMARY"))

	// WHEN --brief is set
	buf.Reset()
	cfg.Brief = true
	require.NoError(t, runSimulation(context.Background(), &buf, cfg))

	// THEN no timelines are printed
	assert.NotContains(t, buf.String(), "Execution Events:")

	// WHEN --timeline is forced
	buf.Reset()
	cfg.Timeline = true
	require.NoError(t, runSimulation(context.Background(), &buf, cfg))
	assert.Equal(t, 8, strings.Count(buf.String(), "Execution Events:"))
}

func TestRunSimulation_JSON_ExportsMetrics(t *testing.T) {
	cfg := &runConfig{
		Scenarios: []*workload.Scenario{workload.ScenarioNormalLoad()},
		Policies:  sim.AllPolicies(sim.DefaultQuantum),
		Format:    formatJSON,
		Parallel:  true,
	}

	var buf bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), &buf, cfg))

	var got []struct {
		Scenario workload.Scenario `json:"scenario"`
		Runs     []struct {
			Result  sim.Result  `json:"result"`
			Metrics sim.Metrics `json:"metrics"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, workload.ScenarioNormal, got[0].Scenario.Name)
	require.Len(t, got[0].Runs, 4)
	assert.Equal(t, sim.PolicyPriority, got[0].Runs[0].Result.Policy)
	assert.Equal(t, 4.375, got[0].Runs[0].Metrics.AvgResponseTime)
	assert.Equal(t, 15, got[0].Runs[3].Metrics.ContextSwitches)
	assert.Equal(t, "Report Generation", got[0].Runs[0].Result.Processes[0].Name)
}

func TestRunSimulation_YAML_ExportsMetrics(t *testing.T) {
	cfg := &runConfig{
		Scenarios: []*workload.Scenario{workload.ScenarioLightLoad()},
		Policies:  []sim.Policy{&sim.FCFS{}},
		Format:    formatYAML,
	}

	var buf bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), &buf, cfg))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Contains(t, buf.String(), "avg_response_time: 2.6")
	assert.Contains(t, buf.String(), "policy: fcfs")
	assert.Contains(t, buf.String(), "name: Routine Check-in")
}

func TestListScenarios(t *testing.T) {
	var buf bytes.Buffer
	listScenarios(&buf)
	out := buf.String()

	for _, name := range workload.ScenarioNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Emergencies")
}

func TestExportThenValidate_RoundTrip(t *testing.T) {
	// GIVEN a built-in scenario exported as workload YAML
	var buf bytes.Buffer
	require.NoError(t, exportScenarioSpec(&buf, workload.ScenarioNormal))
	path := filepath.Join(t.TempDir(), "normal.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	// WHEN the file is validated
	var out bytes.Buffer
	require.NoError(t, validateWorkloadFile(&out, path))

	// THEN it is accepted with the same shape
	assert.Contains(t, out.String(), `OK ("normal", 8 processes, 1 emergencies)`)

	assert.Error(t, exportScenarioSpec(&buf, "pandemic"))
}

func TestValidateWorkloadFile_Invalid_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: bad\nprocesses: []\n"), 0o644))

	var out bytes.Buffer
	err := validateWorkloadFile(&out, path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one process required")
	assert.Empty(t, out.String())
}

func TestExpandWorkload_GeneratedFile_MatchesExplicitForm(t *testing.T) {
	// GIVEN the generated sample workload
	src := filepath.Join("..", "testdata", "workloads", "ward-surge.yaml")

	// WHEN it is expanded and the output is loaded back
	var buf bytes.Buffer
	require.NoError(t, expandWorkload(&buf, src))
	assert.NotContains(t, buf.String(), "generate:")
	path := filepath.Join(t.TempDir(), "expanded.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	// THEN the explicit workload describes the same scenario
	want, err := workload.LoadScenario(src)
	require.NoError(t, err)
	got, err := workload.LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, expandWorkload(&buf, filepath.Join(t.TempDir(), "absent.yaml")))
}

func sampleWorkloadPath() string {
	return filepath.Join("..", "testdata", "workloads", "triage-drill.yaml")
}

type flagSnapshot struct {
	scenario, workload, format string
	policies                   []string
	quantum                    int64
}

func snapshotFlags() flagSnapshot {
	return flagSnapshot{scenarioName, workloadPath, outputFormat, policyNames, quantum}
}

func restoreFlags(s flagSnapshot) {
	scenarioName, workloadPath, outputFormat, policyNames, quantum = s.scenario, s.workload, s.format, s.policies, s.quantum
}
