// Package health blocks until the deployed stack is actually usable.
//
// Readiness is two-level: first the orchestration controller must report no
// outstanding status message for any application, then every pod in the
// namespace must reach the Ready condition. Both phases run strictly in
// sequence and both block the caller.
package health

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chalkan3/kubeflow-up/pkg/expose"
	"github.com/chalkan3/kubeflow-up/pkg/juju"
)

// DefaultInterval is the pause between application-status polls.
const DefaultInterval = 15 * time.Second

// StatusClient fetches orchestration-level application status.
type StatusClient interface {
	Status(controller, model string) (*juju.Snapshot, error)
}

// PodWaiter blocks until all pods in a namespace are Ready.
type PodWaiter interface {
	WaitPodsReady(namespace string) error
}

// TimeoutError reports that a bounded wait ran out of attempts.
type TimeoutError struct {
	Attempts int
	Unready  []string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("gave up after %d status checks; still waiting on %v", e.Attempts, e.Unready)
}

// Waiter polls until the stack converges.
//
// The zero MaxAttempts means wait forever, so slow image pulls never trip
// a false-negative abort. Operators who want a bound set MaxAttempts
// without any other change in behavior.
type Waiter struct {
	Controller string
	Model      string
	Namespace  string

	// Interval between status polls. Zero means DefaultInterval.
	Interval time.Duration

	// MaxAttempts bounds the application-status poll. Zero means unbounded.
	MaxAttempts int

	// Out receives per-tick progress lines. Defaults to os.Stdout.
	Out io.Writer

	// Hooks for tests. Nil means time.Sleep and time.Now.
	SleepFunc func(time.Duration)
	NowFunc   func() time.Time
}

// NewWaiter returns a Waiter for the standard controller, model, and
// namespace with the default unbounded policy.
func NewWaiter() *Waiter {
	return &Waiter{
		Controller: juju.Controller,
		Model:      juju.Model,
		Namespace:  expose.Namespace,
		Interval:   DefaultInterval,
	}
}

// WaitForApplications polls application status until no application
// reports an outstanding message. Each tick prints the elapsed wait time
// and how many applications are still settling.
func (w *Waiter) WaitForApplications(client StatusClient) error {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}
	sleep := w.SleepFunc
	if sleep == nil {
		sleep = time.Sleep
	}
	now := w.NowFunc
	if now == nil {
		now = time.Now
	}
	interval := w.Interval
	if interval == 0 {
		interval = DefaultInterval
	}

	start := now()
	for attempt := 1; ; attempt++ {
		snap, err := client.Status(w.Controller, w.Model)
		if err != nil {
			return err
		}

		unready := snap.Unready()
		if len(unready) == 0 {
			return nil
		}
		if w.MaxAttempts > 0 && attempt >= w.MaxAttempts {
			return &TimeoutError{Attempts: attempt, Unready: unready}
		}

		elapsed := now().Sub(start).Round(time.Second)
		fmt.Fprintf(out, "Waited %s for Kubeflow, %d applications still settling\n", elapsed, len(unready))
		sleep(interval)
	}
}

// WaitForPods delegates to the container runtime's own wait primitive for
// the Ready condition across all pods in the namespace. Errors from the
// underlying call are fatal to the bring-up and propagate unchanged.
func (w *Waiter) WaitForPods(pods PodWaiter) error {
	return pods.WaitPodsReady(w.Namespace)
}
