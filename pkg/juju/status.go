package juju

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Snapshot is a point-in-time read of application status for one model.
// It is re-fetched on every poll tick and never cached.
type Snapshot struct {
	Applications map[string]Application `json:"applications"`
}

// Application carries the orchestration-level status of one application.
type Application struct {
	ApplicationStatus ApplicationStatus `json:"application-status"`
}

// ApplicationStatus holds the optional human-readable status message.
// A non-empty message means the application is not yet ready.
type ApplicationStatus struct {
	Message string `json:"message,omitempty"`
}

// Unready returns the sorted names of applications still carrying a status
// message.
func (s *Snapshot) Unready() []string {
	var names []string
	for name, app := range s.Applications {
		if app.ApplicationStatus.Message != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Status fetches a Snapshot for the given controller and model.
func (c *Client) Status(controller, model string) (*Snapshot, error) {
	out, err := c.runner.Run("juju", "status", "-m", controller+":"+model, "--format=json")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status for %s:%s: %w", controller, model, err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode status for %s:%s: %w", controller, model, err)
	}
	return &snap, nil
}
