package cmd

import (
	"os"

	"github.com/spf13/cobra"
	kubectlcmd "k8s.io/kubectl/pkg/cmd"
)

// microk8sKubeconfig is where the MicroK8s snap keeps its client config.
const microk8sKubeconfig = "/var/snap/microk8s/current/credentials/client.config"

var kubectlCmd = &cobra.Command{
	Use:   "kubectl [kubectl-args...]",
	Short: "Run kubectl against the local MicroK8s cluster",
	Long: `Run kubectl commands directly using the embedded Kubernetes client.

This embeds the official kubectl client, providing full kubectl
functionality without a separate installation, and points it at the
MicroK8s credentials automatically. Useful for inspecting the Kubeflow
namespace while the bring-up is in progress.`,
	Example: `  # Watch Kubeflow pods come up
  kubeflow-up kubectl get pods -n kubeflow -w

  # Inspect the gateway service
  kubeflow-up kubectl get -n kubeflow svc/kubeflow-gateway -ojson`,
	DisableFlagParsing: true,
	RunE:               runKubectl,
}

func init() {
	rootCmd.AddCommand(kubectlCmd)
}

func runKubectl(cmd *cobra.Command, args []string) error {
	if os.Getenv("KUBECONFIG") == "" {
		os.Setenv("KUBECONFIG", microk8sKubeconfig)
	}

	kubectlRootCmd := kubectlcmd.NewDefaultKubectlCommand()
	kubectlRootCmd.SetArgs(args)
	kubectlRootCmd.SetIn(os.Stdin)
	kubectlRootCmd.SetOut(os.Stdout)
	kubectlRootCmd.SetErr(os.Stderr)

	return kubectlRootCmd.Execute()
}
