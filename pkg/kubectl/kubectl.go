// Package kubectl wraps the MicroK8s-bundled kubectl for the handful of
// operations the bring-up needs: applying manifests, reading a Service
// back, and waiting on pod readiness.
package kubectl

import (
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/chalkan3/kubeflow-up/pkg/runner"
)

const command = "microk8s-kubectl.wrapper"

// Client executes kubectl operations through a Runner.
type Client struct {
	runner runner.Runner
}

// NewClient returns a Client executing through r.
func NewClient(r runner.Runner) *Client {
	return &Client{runner: r}
}

// Apply feeds a JSON-encoded manifest to `kubectl apply -f -`.
func (c *Client) Apply(manifest []byte) error {
	if _, err := c.runner.RunInput(manifest, command, "apply", "-f", "-"); err != nil {
		return fmt.Errorf("failed to apply manifest: %w", err)
	}
	return nil
}

// GetService reads a Service back as a typed object.
func (c *Client) GetService(namespace, name string) (*corev1.Service, error) {
	out, err := c.runner.Run(command, "get", "-n", namespace, "svc/"+name, "-ojson")
	if err != nil {
		return nil, fmt.Errorf("failed to get service %s/%s: %w", namespace, name, err)
	}

	var svc corev1.Service
	if err := json.Unmarshal([]byte(out), &svc); err != nil {
		return nil, fmt.Errorf("failed to decode service %s/%s: %w", namespace, name, err)
	}
	return &svc, nil
}

// WaitPodsReady blocks until every pod in the namespace reports the Ready
// condition. The wait is unbounded; kubectl treats a negative timeout as
// infinite.
func (c *Client) WaitPodsReady(namespace string) error {
	_, err := c.runner.Run(command, "wait",
		"--namespace="+namespace,
		"--for=condition=Ready",
		"pod",
		"--timeout=-1s",
		"--all")
	if err != nil {
		return fmt.Errorf("failed waiting for pods in %s: %w", namespace, err)
	}
	return nil
}
