// Package addons enables the MicroK8s addons Kubeflow depends on.
//
// The enable mechanism itself lives in the snap; enabling an
// already-enabled addon is a no-op by its contract, so this package makes
// exactly one attempt per addon and does not deduplicate.
package addons

import (
	"fmt"

	"github.com/chalkan3/kubeflow-up/pkg/runner"
)

const (
	enableCommand  = "microk8s-enable.wrapper"
	disableCommand = "microk8s-disable.wrapper"
)

// Addon is a single cluster capability, optionally parameterized.
type Addon struct {
	Name string
	Arg  string
}

// Spec returns the addon's enable argument, "<name>" or "<name>:<arg>".
func (a Addon) Spec() string {
	if a.Arg == "" {
		return a.Name
	}
	return a.Name + ":" + a.Arg
}

// List returns the addons to enable, in dependency order. Later entries
// (ingress, rbac) rely on earlier ones (dns, storage). metallb is only
// included when no static hostname was configured, since it exists solely
// to hand the gateway Service an external IP.
func List(metallbRange string, staticHostname bool) []Addon {
	list := []Addon{
		{Name: "dns"},
		{Name: "storage"},
		{Name: "dashboard"},
		{Name: "ingress"},
		{Name: "rbac"},
		{Name: "juju"},
	}
	if !staticHostname {
		list = append(list, Addon{Name: "metallb", Arg: metallbRange})
	}
	return list
}

// Enable activates each addon in order, stopping at the first failure.
func Enable(r runner.Runner, list []Addon) error {
	for _, addon := range list {
		fmt.Printf("Enabling %s...\n", addon.Name)
		if _, err := r.Run(enableCommand, addon.Spec()); err != nil {
			return fmt.Errorf("failed to enable addon %s: %w", addon.Name, err)
		}
	}
	return nil
}

// Disable deactivates each addon in reverse order. Failures are collected
// rather than aborting, so teardown gets as far as it can.
func Disable(r runner.Runner, list []Addon) []error {
	var errs []error
	for i := len(list) - 1; i >= 0; i-- {
		addon := list[i]
		fmt.Printf("Disabling %s...\n", addon.Name)
		if _, err := r.Run(disableCommand, addon.Name); err != nil {
			errs = append(errs, fmt.Errorf("failed to disable addon %s: %w", addon.Name, err))
		}
	}
	return errs
}
