package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpms-sim/sched-sim/sim/workload"
)

var exportScenario string

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List built-in scenarios, or export one as a workload file",
	Long:  "List built-in scenarios. With --export, write the named scenario to stdout as workload YAML that `run --workload` accepts.",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if exportScenario != "" {
			if err := exportScenarioSpec(cmd.OutOrStdout(), exportScenario); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			return
		}
		listScenarios(cmd.OutOrStdout())
	},
}

// listScenarios prints one row per built-in scenario.
func listScenarios(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Processes", "Emergencies", "Detailed", "Title"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, sc := range workload.Scenarios() {
		table.Append([]string{
			sc.Name,
			fmt.Sprint(len(sc.Processes)),
			fmt.Sprint(sc.EmergencyCount()),
			fmt.Sprint(sc.Detailed),
			sc.Title,
		})
	}
	table.Render()
}

// exportScenarioSpec writes a built-in scenario as workload YAML.
func exportScenarioSpec(w io.Writer, name string) error {
	sc, err := workload.ScenarioByName(name)
	if err != nil {
		return err
	}
	return writeSpec(w, workload.SpecFromScenario(sc))
}

func init() {
	scenariosCmd.Flags().StringVar(&exportScenario, "export", "", "Write the named built-in scenario as workload YAML")
}
