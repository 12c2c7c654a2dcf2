package workload

import (
	"fmt"
	"strings"

	"github.com/hpms-sim/sched-sim/sim"
)

// Built-in scenario presets for the hospital patient management workload.
// Each returns a fresh Scenario with literal, reproducible process data.

// Built-in scenario names.
const (
	ScenarioMassCasualty = "mass-casualty"
	ScenarioNormal       = "normal"
	ScenarioLight        = "light"
)

// Scenario is a named, ordered workload.
type Scenario struct {
	Name        string                  `json:"name" yaml:"name"`
	Title       string                  `json:"title" yaml:"title"`
	Description []string                `json:"description" yaml:"description"`
	Detailed    bool                    `json:"detailed" yaml:"detailed"` // report per-process tables and timelines by default
	Processes   []sim.ProcessDescriptor `json:"processes" yaml:"processes"`
}

// EmergencyCount returns the number of priority-1 processes in the scenario.
func (s *Scenario) EmergencyCount() int {
	n := 0
	for _, p := range s.Processes {
		if p.IsEmergency() {
			n++
		}
	}
	return n
}

// Validate checks the scenario's name and workload.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("scenario name must not be empty")
	}
	if err := sim.ValidateWorkload(s.Processes); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}

// DescribeLoad produces a short narrative of the workload from its emergency count.
func DescribeLoad(procs []sim.ProcessDescriptor) []string {
	emergencies := 0
	for _, p := range procs {
		if p.IsEmergency() {
			emergencies++
		}
	}
	switch {
	case emergencies >= 6:
		return []string{
			fmt.Sprintf("%d EMERGENCY patients arrive within 10 seconds (simulating mass casualty)", emergencies),
			"Background report generation in progress",
			"Lab processing and check-ins queued",
			"System must prioritize life-critical patients immediately",
		}
	case emergencies > 0:
		return []string{
			fmt.Sprintf("%d emergency patient(s) during normal operations", emergencies),
			"Mixed priority workload simulating evening rush",
			"Tests algorithm ability to prioritize critical cases",
		}
	default:
		return []string{
			"Light load scenario with routine operations",
			"Validation of algorithm behavior under minimal stress",
		}
	}
}

// ScenarioMassCasualtyLoad creates the heavy-load scenario: six critical
// patients arrive in quick succession while long background work is running.
func ScenarioMassCasualtyLoad() *Scenario {
	p := sim.MustProcessDescriptor
	procs := []sim.ProcessDescriptor{
		p(0, "Background Report", "Routine Documentation", 5, 0, 30),
		p(1, "EMERGENCY #1", "Critical - Trauma", 1, 5, 3),
		p(2, "EMERGENCY #2", "Critical - Cardiac", 1, 7, 3),
		p(3, "EMERGENCY #3", "Critical - Respiratory", 1, 9, 3),
		p(4, "EMERGENCY #4", "Critical - Hemorrhage", 1, 11, 3),
		p(5, "EMERGENCY #5", "Critical - Head Injury", 1, 13, 3),
		p(6, "EMERGENCY #6", "Critical - Multi-trauma", 1, 15, 3),
		p(7, "Lab Processing", "Urgent - Lab Results", 2, 8, 10),
		p(8, "Check-in", "Standard Registration", 3, 12, 4),
		p(9, "Admin Task", "Non-critical Admin", 4, 15, 8),
		p(10, "Lab Processing #2", "Urgent - Lab Results", 2, 18, 9),
		p(11, "Database Backup", "Background Maintenance", 5, 20, 25),
	}
	return &Scenario{
		Name:        ScenarioMassCasualty,
		Title:       "EMERGENCY SCENARIO (MASS CASUALTY): 6 Critical Patients + Mixed Priority Operations",
		Description: DescribeLoad(procs),
		Detailed:    true,
		Processes:   procs,
	}
}

// ScenarioNormalLoad creates the standard evening-rush scenario with a single emergency.
func ScenarioNormalLoad() *Scenario {
	p := sim.MustProcessDescriptor
	procs := []sim.ProcessDescriptor{
		p(0, "Report Generation", "Routine", 5, 0, 20),
		p(1, "Check-in #1", "Standard", 3, 3, 4),
		p(2, "Lab Processing #1", "Urgent", 2, 6, 8),
		p(3, "Check-in #2", "Standard", 3, 10, 4),
		p(4, "EMERGENCY Patient", "Critical", 1, 12, 2),
		p(5, "Lab Processing #2", "Urgent", 2, 15, 7),
		p(6, "Admin Task", "Routine", 4, 18, 6),
		p(7, "Check-in #3", "Standard", 3, 22, 4),
	}
	return &Scenario{
		Name:        ScenarioNormal,
		Title:       "NORMAL CASE VALIDATION: Standard Evening Rush (150 patients/hour)",
		Description: DescribeLoad(procs),
		Processes:   procs,
	}
}

// ScenarioLightLoad creates the light-load validation scenario.
func ScenarioLightLoad() *Scenario {
	p := sim.MustProcessDescriptor
	procs := []sim.ProcessDescriptor{
		p(0, "Routine Check-in", "Standard", 3, 0, 5),
		p(1, "Lab Result Processing", "Urgent", 2, 8, 10),
		p(2, "Admin Task", "Routine", 4, 15, 8),
		p(3, "Emergency Patient", "Critical", 1, 20, 3),
		p(4, "Report Generation", "Background", 5, 25, 12),
	}
	return &Scenario{
		Name:        ScenarioLight,
		Title:       "BEST CASE VALIDATION: Light Load (50 patients/hour)",
		Description: DescribeLoad(procs),
		Processes:   procs,
	}
}

// scenarioOrder fixes the order of built-in scenarios.
var scenarioOrder = []string{ScenarioMassCasualty, ScenarioNormal, ScenarioLight}

// validScenarios maps built-in scenario names to their constructors.
var validScenarios = map[string]func() *Scenario{
	ScenarioMassCasualty: ScenarioMassCasualtyLoad,
	ScenarioNormal:       ScenarioNormalLoad,
	ScenarioLight:        ScenarioLightLoad,
}

// IsValidScenario returns true if name is a built-in scenario.
func IsValidScenario(name string) bool {
	_, ok := validScenarios[name]
	return ok
}

// ScenarioNames returns the built-in scenario names in presentation order.
func ScenarioNames() []string {
	out := make([]string, len(scenarioOrder))
	copy(out, scenarioOrder)
	return out
}

// Scenarios returns fresh copies of all built-in scenarios in presentation order.
func Scenarios() []*Scenario {
	out := make([]*Scenario, 0, len(scenarioOrder))
	for _, name := range scenarioOrder {
		out = append(out, validScenarios[name]())
	}
	return out
}

// ScenarioByName returns a fresh copy of the named built-in scenario.
func ScenarioByName(name string) (*Scenario, error) {
	ctor, ok := validScenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q; valid: %s", name, strings.Join(scenarioOrder, ", "))
	}
	return ctor(), nil
}
