// Package juju drives the Juju CLI that orchestrates the Kubeflow bundle.
package juju

import (
	"errors"
	"fmt"

	"github.com/chalkan3/kubeflow-up/pkg/runner"
)

// Well-known names for the MicroK8s-backed deployment. The controller name
// doubles as the idempotency guard: its existence means Kubeflow was
// already brought up on this node.
const (
	Controller = "uk8s"
	Cloud      = "microk8s"
	Model      = "kubeflow"
	Bundle     = "kubeflow"
)

// ErrAlreadyDeployed reports that the controller already exists, meaning a
// previous bring-up completed (or is in progress) on this node.
var ErrAlreadyDeployed = errors.New("kubeflow has already been enabled on this node")

// ProbeResult classifies the outcome of the controller-existence probe.
type ProbeResult int

const (
	// ControllerFound means the controller exists.
	ControllerFound ProbeResult = iota
	// ControllerNotFound means show-controller failed, which is the
	// expected state before bootstrap.
	ControllerNotFound
	// ProbeFailed means the probe command itself could not run. The
	// enable pipeline treats this the same as ControllerNotFound, but the
	// distinction is kept for callers that care.
	ProbeFailed
)

// Client wraps the juju CLI through a Runner.
type Client struct {
	runner runner.Runner
}

// NewClient returns a Client executing through r. Pass a runner with echo
// enabled to surface the exact juju invocations.
func NewClient(r runner.Runner) *Client {
	return &Client{runner: r}
}

// ProbeController checks whether the named controller already exists.
// A failed show-controller is the success path before bootstrap, so the
// error is classified rather than propagated.
func (c *Client) ProbeController(name string) ProbeResult {
	_, err := c.runner.Run("juju", "show-controller", name)
	if err == nil {
		return ControllerFound
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return ControllerNotFound
	}
	return ProbeFailed
}

// Bootstrap stands up the controller against the given cloud. When noProxy
// is non-empty it is passed as controller configuration; the model-level
// counterpart must be set separately via ModelConfig.
func (c *Client) Bootstrap(cloud, controller, noProxy string, debug bool) error {
	args := []string{"bootstrap", cloud, controller}
	if debug {
		args = append(args, "--debug")
	}
	if noProxy != "" {
		args = append(args, fmt.Sprintf("--config=juju-no-proxy=%s", noProxy))
	}
	if _, err := c.runner.Run("juju", args...); err != nil {
		return fmt.Errorf("failed to bootstrap controller %s: %w", controller, err)
	}
	return nil
}

// AddModel creates the application model on the given cloud.
func (c *Client) AddModel(model, cloud string) error {
	if _, err := c.runner.Run("juju", "add-model", model, cloud); err != nil {
		return fmt.Errorf("failed to add model %s: %w", model, err)
	}
	return nil
}

// ModelConfig sets a model-scoped configuration key.
func (c *Client) ModelConfig(model, key, value string) error {
	if _, err := c.runner.Run("juju", "model-config", "-m", model, key+"="+value); err != nil {
		return fmt.Errorf("failed to set model config %s: %w", key, err)
	}
	return nil
}

// Deploy deploys the bundle from the given channel with the overlay applied.
// This call blocks until juju has queued the full bundle; application
// readiness is tracked separately through Status.
func (c *Client) Deploy(bundle, channel, overlayPath string) error {
	if _, err := c.runner.Run("juju", "deploy", bundle, "--channel", channel, "--overlay", overlayPath); err != nil {
		return fmt.Errorf("failed to deploy bundle %s: %w", bundle, err)
	}
	return nil
}

// DestroyController tears down the controller and everything under it.
func (c *Client) DestroyController(name string) error {
	if _, err := c.runner.Run("juju", "destroy-controller", name, "--destroy-all-models", "--destroy-storage", "-y"); err != nil {
		return fmt.Errorf("failed to destroy controller %s: %w", name, err)
	}
	return nil
}
