// Package bundle deploys the Kubeflow bundle with generated credentials
// merged in through a deploy-time overlay.
package bundle

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chalkan3/kubeflow-up/pkg/juju"
	"github.com/chalkan3/kubeflow-up/pkg/secrets"
)

// Deployer is the subset of the juju client the deploy step needs.
type Deployer interface {
	Deploy(bundle, channel, overlayPath string) error
}

// overlay mirrors juju's bundle overlay document shape.
type overlay struct {
	Applications map[string]application `yaml:"applications"`
}

type application struct {
	Options map[string]string `yaml:"options"`
}

// Overlay renders the credential overlay. Each application's secret lands
// under applications.<name>.options with the option key that application
// expects; the gatekeeper password is the operator-facing auth password
// verbatim.
func Overlay(creds *secrets.CredentialSet) ([]byte, error) {
	doc := overlay{
		Applications: map[string]application{
			"katib-db": {
				Options: map[string]string{"root_password": creds.KatibDBPassword},
			},
			"kubeflow-gatekeeper": {
				Options: map[string]string{"password": creds.AuthPassword},
			},
			"modeldb-db": {
				Options: map[string]string{"root_password": creds.ModelDBPassword},
			},
			"pipelines-db": {
				Options: map[string]string{"root_password": creds.PipelinesDBRoot},
			},
			"minio": {
				Options: map[string]string{"minio-secret-key": creds.MinioSecretKey},
			},
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return out, nil
}

// Deploy writes the overlay to a transient file and triggers the bundle
// deploy against the given channel. The overlay file only exists for the
// duration of the deploy call; runID tags it for debuggability while it
// lives. The deploy itself is long-running and is not polled here.
func Deploy(d Deployer, creds *secrets.CredentialSet, channel, runID string) error {
	doc, err := Overlay(creds)
	if err != nil {
		return err
	}

	tmpfile, err := os.CreateTemp("", fmt.Sprintf("kubeflow-overlay-%s-*.yaml", runID))
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write(doc); err != nil {
		_ = tmpfile.Close()
		return fmt.Errorf("failed to write overlay file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return fmt.Errorf("failed to close overlay file: %w", err)
	}

	return d.Deploy(juju.Bundle, channel, tmpfile.Name())
}
