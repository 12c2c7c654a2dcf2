package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hpms-sim/sched-sim/sim/compare"
	"github.com/hpms-sim/sched-sim/sim/workload"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var validFormats = map[string]bool{
	formatText: true,
	formatJSON: true,
	formatYAML: true,
}

// writeResults serializes evaluations in a machine-readable format.
func writeResults(w io.Writer, format string, evals []*compare.Evaluation) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(evals, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling results to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		data, err := yaml.Marshal(evals)
		if err != nil {
			return fmt.Errorf("marshaling results to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeSpec marshals a WorkloadSpec to YAML.
func writeSpec(w io.Writer, spec *workload.WorkloadSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("YAML marshal failed: %w", err)
	}
	_, err = w.Write(data)
	return err
}
