// Package validation checks the resolved configuration before the bring-up
// starts mutating anything, so bad input fails in milliseconds instead of
// minutes into a bootstrap.
package validation

import (
	"fmt"
	"net"
	"strings"

	"github.com/chalkan3/kubeflow-up/pkg/config"
)

// ValidateConfig performs comprehensive validation of the bring-up configuration.
func ValidateConfig(cfg config.Config) error {
	if err := ValidateChannel(cfg.Channel); err != nil {
		return fmt.Errorf("channel validation failed: %w", err)
	}
	if err := ValidateHostname(cfg.Hostname); err != nil {
		return fmt.Errorf("hostname validation failed: %w", err)
	}
	// The metallb range is only consumed on the dynamic branch.
	if !cfg.StaticHostname() {
		if err := ValidateMetallbRange(cfg.MetallbRange); err != nil {
			return fmt.Errorf("metallb range validation failed: %w", err)
		}
	}
	return nil
}

// ValidateChannel checks the bundle channel is non-empty and well-formed.
func ValidateChannel(channel string) error {
	if channel == "" {
		return fmt.Errorf("channel must not be empty")
	}
	if strings.ContainsAny(channel, " \t") {
		return fmt.Errorf("channel %q must not contain whitespace", channel)
	}
	return nil
}

// ValidateHostname checks a configured hostname looks like a DNS name.
// An empty hostname is valid - it selects the load-balancer branch.
func ValidateHostname(hostname string) error {
	if hostname == "" {
		return nil
	}
	if strings.ContainsAny(hostname, " /:") {
		return fmt.Errorf("hostname %q must be a bare DNS name", hostname)
	}
	for _, label := range strings.Split(hostname, ".") {
		if label == "" {
			return fmt.Errorf("hostname %q has an empty label", hostname)
		}
	}
	return nil
}

// ValidateMetallbRange checks the address range has the "<ip>-<ip>" shape
// the metallb addon expects.
func ValidateMetallbRange(r string) error {
	parts := strings.Split(r, "-")
	if len(parts) != 2 {
		return fmt.Errorf("address range %q must have the form <start-ip>-<end-ip>", r)
	}
	for _, part := range parts {
		if net.ParseIP(part) == nil {
			return fmt.Errorf("address range %q contains invalid IP %q", r, part)
		}
	}
	return nil
}
