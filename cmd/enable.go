package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chalkan3/kubeflow-up/internal/orchestrator"
	"github.com/chalkan3/kubeflow-up/pkg/config"
	"github.com/chalkan3/kubeflow-up/pkg/juju"
)

var promptPassword bool

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Deploy Kubeflow on this MicroK8s node",
	Long: `Deploy the full Kubeflow bundle on the local MicroK8s node.

The bring-up runs as a single sequential pipeline:
  1. Enable the required MicroK8s addons (dns, storage, dashboard,
     ingress, rbac, juju, and metallb unless a hostname is configured)
  2. Bootstrap a Juju controller and create the kubeflow model
  3. Expose the dashboard gateway (load-balancer IP or static hostname)
  4. Deploy the bundle with freshly generated credentials
  5. Wait until every application and pod reports ready

Any stage failing aborts the whole run; rerun after fixing the cause.
A pre-existing controller means Kubeflow is already enabled and the
command exits without touching anything.`,
	Example: `  # Default bring-up, hostname derived from the metallb IP
  kubeflow-up enable

  # Static hostname with an Ingress instead of a load balancer
  KUBEFLOW_HOSTNAME=kubeflow.example.com kubeflow-up enable

  # Pin the bundle channel and pick the admin password interactively
  KUBEFLOW_CHANNEL=1.8/stable kubeflow-up enable --prompt-password`,
	RunE: runEnable,
}

func init() {
	rootCmd.AddCommand(enableCmd)
	enableCmd.Flags().BoolVar(&promptPassword, "prompt-password", false, "Prompt for the admin password instead of generating one")
}

func runEnable(cmd *cobra.Command, args []string) error {
	printHeader("Kubeflow Bring-Up")

	cfg := config.Load()
	if promptPassword {
		password, err := readPassword()
		if err != nil {
			return err
		}
		cfg.AuthPassword = password
	}

	result, err := orchestrator.New(cfg).Enable()
	if errors.Is(err, juju.ErrAlreadyDeployed) {
		color.Yellow("Kubeflow has already been enabled on this node (controller %q exists).", juju.Controller)
		fmt.Println("Run 'kubeflow-up disable' first if you want to redeploy.")
		return err
	}
	if err != nil {
		return err
	}

	printSummary(result)
	return nil
}

func readPassword() (string, error) {
	fmt.Print("Admin password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}

func printSummary(result *orchestrator.Result) {
	fmt.Println()
	color.Green("✅ Congratulations, Kubeflow is now available!")
	fmt.Println()
	color.Cyan(headerRule)
	color.Cyan("  Kubeflow Dashboard")
	color.Cyan(headerRule)
	fmt.Printf("  URL:      https://%s/\n", result.Hostname)
	fmt.Printf("  Username: admin\n")
	fmt.Printf("  Password: %s\n", result.Password)
	fmt.Println()
	fmt.Println("  To retrieve this password later, run:")
	fmt.Println("     juju config kubeflow-gatekeeper password")
	fmt.Println()
	fmt.Println("  To tear down Kubeflow and associated infrastructure, run:")
	fmt.Println("     kubeflow-up disable")
	color.Cyan(headerRule)
}
