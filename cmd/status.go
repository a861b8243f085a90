package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chalkan3/kubeflow-up/pkg/juju"
	"github.com/chalkan3/kubeflow-up/pkg/runner"
)

var statusFormat string

// ApplicationState is one row of the status view.
type ApplicationState struct {
	Name    string `json:"name" yaml:"name"`
	Ready   bool   `json:"ready" yaml:"ready"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Kubeflow application status",
	Long: `Show the orchestration-level status of every Kubeflow application.

An application is considered ready when it reports no outstanding status
message. This is the same view the enable pipeline polls while waiting
for the stack to settle.`,
	Example: `  # Table view
  kubeflow-up status

  # Machine-readable output
  kubeflow-up status --format json
  kubeflow-up status --format yaml`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusFormat, "format", "table", "Output format: table|json|yaml")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusFormat != "table" && statusFormat != "json" && statusFormat != "yaml" {
		return fmt.Errorf("invalid output format: %s (must be table, json, or yaml)", statusFormat)
	}

	client := juju.NewClient(runner.New())
	snap, err := client.Status(juju.Controller, juju.Model)
	if err != nil {
		return err
	}

	states := applicationStates(snap)
	switch statusFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(states)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(states)
	default:
		printStatusTable(states)
		return nil
	}
}

// applicationStates flattens a snapshot into sorted rows.
func applicationStates(snap *juju.Snapshot) []ApplicationState {
	states := make([]ApplicationState, 0, len(snap.Applications))
	for name, app := range snap.Applications {
		msg := app.ApplicationStatus.Message
		states = append(states, ApplicationState{
			Name:    name,
			Ready:   msg == "",
			Message: msg,
		})
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })
	return states
}

func printStatusTable(states []ApplicationState) {
	printHeader("Kubeflow Applications")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "APPLICATION\tREADY\tMESSAGE")
	ready := 0
	for _, s := range states {
		mark := "no"
		if s.Ready {
			mark = "yes"
			ready++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, mark, s.Message)
	}
	w.Flush()

	fmt.Println()
	if ready == len(states) {
		color.Green("All %d applications ready", len(states))
	} else {
		color.Yellow("%d/%d applications ready", ready, len(states))
	}
}
