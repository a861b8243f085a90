package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chalkan3/kubeflow-up/pkg/addons"
	"github.com/chalkan3/kubeflow-up/pkg/config"
	"github.com/chalkan3/kubeflow-up/pkg/juju"
	"github.com/chalkan3/kubeflow-up/pkg/runner"
)

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Tear down Kubeflow and its controller",
	Long: `Destroy the Juju controller (and with it the whole Kubeflow model and
its storage), then disable the MicroK8s addons the bring-up enabled.

This is destructive and cannot be undone; all Kubeflow state on this
node is removed.`,
	Example: `  # Interactive teardown
  kubeflow-up disable

  # Non-interactive (CI) teardown
  kubeflow-up disable --yes`,
	RunE: runDisable,
}

func init() {
	rootCmd.AddCommand(disableCmd)
}

func runDisable(cmd *cobra.Command, args []string) error {
	printHeader("Kubeflow Teardown")

	if !autoApprove {
		fmt.Print("This destroys the Kubeflow deployment and all its data. Continue? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	r := runner.New()

	fmt.Println("Destroying the Juju controller...")
	if err := juju.NewClient(r).DestroyController(juju.Controller); err != nil {
		return err
	}

	cfg := config.Load()
	errs := addons.Disable(r, addons.List(cfg.MetallbRange, cfg.StaticHostname()))
	for _, err := range errs {
		color.Yellow("warning: %v", err)
	}

	fmt.Println()
	color.Green("Kubeflow has been removed from this node.")
	return nil
}
