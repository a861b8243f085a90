package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	autoApprove bool

	// Version information - set by main.go
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// SetVersionInfo sets the version information from main.go
func SetVersionInfo(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kubeflow-up",
	Short: "One-shot Kubeflow bring-up on MicroK8s",
	Long: `kubeflow-up deploys the full Kubeflow bundle on a local MicroK8s node:
it enables the required addons, bootstraps a Juju controller, exposes the
dashboard gateway, deploys the bundle with freshly generated credentials,
and waits until every application and pod reports ready.

Configuration is taken from the environment (KUBEFLOW_AUTH_PASSWORD,
KUBEFLOW_CHANNEL, KUBEFLOW_HOSTNAME, KUBEFLOW_NO_PROXY, METALLB_IP_RANGE,
KUBEFLOW_DEBUG); everything has a working default.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&autoApprove, "yes", "y", false, "Auto-approve without prompting")

	// Version template
	rootCmd.SetVersionTemplate(fmt.Sprintf(`kubeflow-up %s
  Commit:    %s
  Built:     %s
  Built by:  %s
`, Version, Commit, Date, BuiltBy))
	rootCmd.Version = Version
}
