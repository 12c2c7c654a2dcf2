package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hpms-sim/sched-sim/sim"
)

// WorkloadSpec is a user-supplied workload definition.
// Loaded from YAML via LoadWorkloadSpec(path).
// Processes are either listed explicitly or synthesized from Generate, never both.
type WorkloadSpec struct {
	Version     string         `yaml:"version"`
	Name        string         `yaml:"name"`
	Title       string         `yaml:"title,omitempty"`
	Description []string       `yaml:"description,omitempty"` // generated from the workload when empty
	Detailed    bool           `yaml:"detailed,omitempty"`
	Processes   []ProcessSpec  `yaml:"processes,omitempty"`
	Generate    *GeneratorSpec `yaml:"generate,omitempty"`
}

// ProcessSpec defines a single process in a workload file.
type ProcessSpec struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Class    string `yaml:"class,omitempty"`
	Priority int    `yaml:"priority"`
	Arrival  int64  `yaml:"arrival"`
	Burst    int64  `yaml:"burst"`
}

// validVersions is the set of recognized workload file versions.
var validVersions = map[string]bool{"": true, "1": true}

// LoadWorkloadSpec reads and parses a YAML workload file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseWorkloadSpec(data)
}

// ParseWorkloadSpec parses YAML workload data with strict field checking.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
// Invalid descriptors are configuration errors and are never simulated.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unknown workload version %q; valid: 1", s.Version)
	}
	if s.Name == "" {
		return fmt.Errorf("workload name is required")
	}
	if s.Generate != nil {
		if len(s.Processes) > 0 {
			return fmt.Errorf("processes and generate are mutually exclusive")
		}
		return s.Generate.Validate()
	}
	if len(s.Processes) == 0 {
		return fmt.Errorf("at least one process required")
	}
	seen := make(map[int]bool, len(s.Processes))
	for i, p := range s.Processes {
		if err := validateProcess(&p, i); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("processes[%d]: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func validateProcess(p *ProcessSpec, idx int) error {
	prefix := fmt.Sprintf("processes[%d]", idx)
	if p.Name == "" {
		return fmt.Errorf("%s: name is required", prefix)
	}
	if _, err := sim.NewProcessDescriptor(p.ID, p.Name, p.Class, p.Priority, p.Arrival, p.Burst); err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return nil
}

// Scenario validates the spec and converts it into a Scenario.
func (s *WorkloadSpec) Scenario() (*Scenario, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	procs, err := s.descriptors()
	if err != nil {
		return nil, err
	}

	title := s.Title
	if title == "" {
		title = s.Name
	}
	desc := s.Description
	if len(desc) == 0 {
		desc = DescribeLoad(procs)
	}
	sc := &Scenario{
		Name:        s.Name,
		Title:       title,
		Description: desc,
		Detailed:    s.Detailed,
		Processes:   procs,
	}
	logrus.Infof("Loaded workload %q with %d processes (%d emergencies)", sc.Name, len(procs), sc.EmergencyCount())
	return sc, nil
}

// descriptors returns the explicit processes, or generates them.
func (s *WorkloadSpec) descriptors() ([]sim.ProcessDescriptor, error) {
	if s.Generate != nil {
		procs, err := GenerateProcesses(s.Generate)
		if err != nil {
			return nil, err
		}
		if len(procs) == 0 {
			return nil, fmt.Errorf("generator produced no processes before horizon %d", s.Generate.Horizon)
		}
		return procs, nil
	}
	procs := make([]sim.ProcessDescriptor, 0, len(s.Processes))
	for _, p := range s.Processes {
		pd, err := sim.NewProcessDescriptor(p.ID, p.Name, p.Class, p.Priority, p.Arrival, p.Burst)
		if err != nil {
			return nil, err
		}
		procs = append(procs, pd)
	}
	return procs, nil
}

// SpecFromScenario converts a scenario back into its workload file form,
// with every process listed explicitly.
func SpecFromScenario(sc *Scenario) *WorkloadSpec {
	spec := &WorkloadSpec{
		Version:     "1",
		Name:        sc.Name,
		Title:       sc.Title,
		Description: append([]string(nil), sc.Description...),
		Detailed:    sc.Detailed,
		Processes:   make([]ProcessSpec, 0, len(sc.Processes)),
	}
	for _, p := range sc.Processes {
		spec.Processes = append(spec.Processes, ProcessSpec{
			ID:       p.ID,
			Name:     p.Name,
			Class:    p.Class,
			Priority: p.Priority,
			Arrival:  p.ArrivalTime,
			Burst:    p.BurstTime,
		})
	}
	return spec
}

// LoadScenario loads, validates and converts a workload file in one step.
func LoadScenario(path string) (*Scenario, error) {
	spec, err := LoadWorkloadSpec(path)
	if err != nil {
		return nil, err
	}
	sc, err := spec.Scenario()
	if err != nil {
		return nil, fmt.Errorf("invalid workload %s: %w", path, err)
	}
	return sc, nil
}
