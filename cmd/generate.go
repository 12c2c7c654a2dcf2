package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpms-sim/sched-sim/sim/workload"
)

var generateCmd = &cobra.Command{
	Use:   "generate <workload.yaml>",
	Short: "Expand a generated workload into explicit processes",
	Long:  "Sample the processes of a workload file with a `generate` section and write them to stdout as an explicit workload YAML, for inspection or hand editing.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if err := expandWorkload(cmd.OutOrStdout(), args[0]); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
	},
}

// expandWorkload loads path and writes its processes as explicit workload YAML.
func expandWorkload(w io.Writer, path string) error {
	sc, err := workload.LoadScenario(path)
	if err != nil {
		return err
	}
	return writeSpec(w, workload.SpecFromScenario(sc))
}
