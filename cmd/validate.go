package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpms-sim/sched-sim/sim/workload"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workload.yaml>",
	Short: "Check a workload file without running it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if err := validateWorkloadFile(cmd.OutOrStdout(), args[0]); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// validateWorkloadFile loads path and prints a one-line summary of the workload.
func validateWorkloadFile(w io.Writer, path string) error {
	sc, err := workload.LoadScenario(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: OK (%q, %d processes, %d emergencies)\n",
		path, sc.Name, len(sc.Processes), sc.EmergencyCount())
	return err
}
