// Package config resolves the bring-up configuration from the environment.
//
// Configuration is read exactly once at startup; the resulting Config is
// immutable and passed by value into every component. No component performs
// its own environment lookups.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultChannel      = "stable"
	DefaultMetallbRange = "10.64.140.43-10.64.140.49"
)

// Environment variables consumed by Load.
const (
	EnvAuthPassword = "KUBEFLOW_AUTH_PASSWORD"
	EnvChannel      = "KUBEFLOW_CHANNEL"
	EnvNoProxy      = "KUBEFLOW_NO_PROXY"
	EnvHostname     = "KUBEFLOW_HOSTNAME"
	EnvMetallbRange = "METALLB_IP_RANGE"
	EnvDebug        = "KUBEFLOW_DEBUG"
)

// Config holds the resolved bring-up configuration.
type Config struct {
	// AuthPassword is the dashboard admin password. Empty means "generate
	// one"; the enable pipeline fills it in before use and echoes it in the
	// final summary.
	AuthPassword string

	// Channel is the bundle release channel passed to the deploy call.
	Channel string

	// NoProxy, when non-empty, is propagated to the controller at bootstrap
	// time and set as model configuration afterwards.
	NoProxy string

	// Hostname, when non-empty, selects the static ingress exposure branch.
	// When empty a load-balancer Service is created and the hostname is
	// derived from its assigned external IP.
	Hostname string

	// MetallbRange is the address range handed to the metallb addon.
	MetallbRange string

	// Debug enables verbose command echo for controller invocations.
	Debug bool
}

// Load resolves a Config from the process environment.
func Load() Config {
	return Config{
		AuthPassword: os.Getenv(EnvAuthPassword),
		Channel:      getenvDefault(EnvChannel, DefaultChannel),
		NoProxy:      os.Getenv(EnvNoProxy),
		Hostname:     os.Getenv(EnvHostname),
		MetallbRange: getenvDefault(EnvMetallbRange, DefaultMetallbRange),
		Debug:        truthy(os.Getenv(EnvDebug)),
	}
}

// StaticHostname reports whether a hostname was supplied up front, selecting
// the Ingress exposure branch instead of the load-balancer Service branch.
func (c Config) StaticHostname() bool {
	return c.Hostname != ""
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// truthy interprets boolean-like environment values. strconv covers the
// usual 1/t/true forms; "yes" and "on" are accepted as well.
func truthy(s string) bool {
	if s == "" {
		return false
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true
	}
	return false
}
