// Package orchestrator sequences the stages that take a bare MicroK8s node
// to a fully-ready Kubeflow stack.
//
// Every stage is a hard gate: the first failure aborts the run. There is no
// rollback of partial state - addon enablement and controller bootstrap are
// idempotent at their own layers, and the operator reruns or cleans up
// manually.
package orchestrator

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	corev1 "k8s.io/api/core/v1"

	"github.com/chalkan3/kubeflow-up/internal/validation"
	"github.com/chalkan3/kubeflow-up/pkg/addons"
	"github.com/chalkan3/kubeflow-up/pkg/bundle"
	"github.com/chalkan3/kubeflow-up/pkg/config"
	"github.com/chalkan3/kubeflow-up/pkg/expose"
	"github.com/chalkan3/kubeflow-up/pkg/health"
	"github.com/chalkan3/kubeflow-up/pkg/juju"
	"github.com/chalkan3/kubeflow-up/pkg/kubectl"
	"github.com/chalkan3/kubeflow-up/pkg/runner"
	"github.com/chalkan3/kubeflow-up/pkg/secrets"
)

// ControllerClient is the juju surface the pipeline drives.
type ControllerClient interface {
	ProbeController(name string) juju.ProbeResult
	Bootstrap(cloud, controller, noProxy string, debug bool) error
	AddModel(model, cloud string) error
	ModelConfig(model, key, value string) error
	Deploy(bundle, channel, overlayPath string) error
	Status(controller, model string) (*juju.Snapshot, error)
}

// ClusterClient is the kubectl surface the pipeline drives.
type ClusterClient interface {
	Apply(manifest []byte) error
	GetService(namespace, name string) (*corev1.Service, error)
	WaitPodsReady(namespace string) error
}

// Result carries what the operator needs after a successful bring-up.
type Result struct {
	Hostname string
	Password string
	RunID    string
}

// Orchestrator runs the bring-up pipeline. Strictly sequential; the only
// repeated suspension is the application-status poll inside the waiter.
type Orchestrator struct {
	cfg        config.Config
	runner     runner.Runner
	controller ControllerClient
	cluster    ClusterClient
	waiter     *health.Waiter
	out        io.Writer
	spin       bool
	runID      string
}

// New wires an Orchestrator against the real external tools. Controller
// invocations echo their exact command line when cfg.Debug is set.
func New(cfg config.Config) *Orchestrator {
	base := runner.New()
	jujuRunner := runner.Runner(base)
	if cfg.Debug {
		jujuRunner = base.WithEcho()
	}

	return &Orchestrator{
		cfg:        cfg,
		runner:     base,
		controller: juju.NewClient(jujuRunner),
		cluster:    kubectl.NewClient(base),
		waiter:     health.NewWaiter(),
		out:        os.Stdout,
		spin:       true,
		runID:      uuid.NewString()[:8],
	}
}

// NewWithClients wires an Orchestrator with injected collaborators.
func NewWithClients(cfg config.Config, r runner.Runner, controller ControllerClient, cluster ClusterClient, waiter *health.Waiter, out io.Writer) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		runner:     r,
		controller: controller,
		cluster:    cluster,
		waiter:     waiter,
		out:        out,
		runID:      uuid.NewString()[:8],
	}
}

// RunID identifies this bring-up run in progress output and transient files.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Enable runs the full pipeline and returns the operator-facing result.
func (o *Orchestrator) Enable() (*Result, error) {
	cfg := o.cfg
	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	password := cfg.AuthPassword
	if password == "" {
		password = secrets.GeneratePassword()
	}

	fmt.Fprintf(o.out, "Deploying Kubeflow (run %s)\n\n", o.runID)

	// Stage 1: addons. One attempt each; already-enabled is a no-op at the
	// snap layer.
	fmt.Fprintln(o.out, "🔌 Enabling MicroK8s addons...")
	if err := addons.Enable(o.runner, addons.List(cfg.MetallbRange, cfg.StaticHostname())); err != nil {
		return nil, err
	}

	// Stage 2: idempotency guard, before anything mutating.
	if o.controller.ProbeController(juju.Controller) == juju.ControllerFound {
		return nil, juju.ErrAlreadyDeployed
	}

	// Stage 3: controller and model.
	fmt.Fprintln(o.out, "🚀 Bootstrapping the Juju controller (this may take a few minutes)...")
	if err := o.withSpinner("Bootstrapping controller", func() error {
		return o.controller.Bootstrap(juju.Cloud, juju.Controller, cfg.NoProxy, cfg.Debug)
	}); err != nil {
		return nil, err
	}
	if err := o.controller.AddModel(juju.Model, juju.Cloud); err != nil {
		return nil, err
	}
	if cfg.NoProxy != "" {
		// Bootstrap-time config alone leaves the model inconsistent; the
		// model-scoped key must be set as well.
		if err := o.controller.ModelConfig(juju.Model, "juju-no-proxy", cfg.NoProxy); err != nil {
			return nil, err
		}
	}

	// Stage 4: exposure. The hostname must be concrete before deploy since
	// downstream configuration references it.
	fmt.Fprintln(o.out, "🌐 Configuring gateway exposure...")
	hostname, err := expose.Configure(o.cluster, cfg.Hostname)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(o.out, "Kubeflow dashboard will be served at %s\n", hostname)

	// Stage 5: deploy with generated credentials.
	fmt.Fprintln(o.out, "📦 Deploying the Kubeflow bundle...")
	creds := secrets.NewCredentialSet(password)
	if err := o.withSpinner("Deploying bundle", func() error {
		return bundle.Deploy(o.controller, creds, cfg.Channel, o.runID)
	}); err != nil {
		return nil, err
	}

	// Stage 6: two-phase readiness.
	fmt.Fprintln(o.out, "⏳ Waiting for applications to settle...")
	if err := o.waiter.WaitForApplications(o.controller); err != nil {
		return nil, err
	}
	fmt.Fprintln(o.out, "⏳ Waiting for all pods to become Ready...")
	if err := o.waiter.WaitForPods(o.cluster); err != nil {
		return nil, err
	}

	return &Result{
		Hostname: hostname,
		Password: password,
		RunID:    o.runID,
	}, nil
}

// withSpinner shows a spinner around a long blocking call. Orchestrators
// built with injected clients run the call bare.
func (o *Orchestrator) withSpinner(suffix string, fn func() error) error {
	if !o.spin {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix + "..."
	s.Start()
	defer s.Stop()
	return fn()
}
