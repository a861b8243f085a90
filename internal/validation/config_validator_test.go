package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chalkan3/kubeflow-up/pkg/config"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name: "defaults are valid",
			cfg:  config.Config{Channel: "stable", MetallbRange: "10.64.140.43-10.64.140.49"},
		},
		{
			name: "static hostname skips range check",
			cfg:  config.Config{Channel: "stable", Hostname: "kubeflow.example.com", MetallbRange: "garbage"},
		},
		{
			name:    "empty channel",
			cfg:     config.Config{MetallbRange: "10.0.0.1-10.0.0.9"},
			wantErr: "channel",
		},
		{
			name:    "hostname with scheme",
			cfg:     config.Config{Channel: "stable", Hostname: "https://kubeflow.example.com"},
			wantErr: "hostname",
		},
		{
			name:    "malformed range",
			cfg:     config.Config{Channel: "stable", MetallbRange: "10.0.0.1"},
			wantErr: "metallb",
		},
		{
			name:    "range with bad ip",
			cfg:     config.Config{Channel: "stable", MetallbRange: "10.0.0.1-banana"},
			wantErr: "metallb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHostname(t *testing.T) {
	assert.NoError(t, ValidateHostname(""))
	assert.NoError(t, ValidateHostname("example.com"))
	assert.NoError(t, ValidateHostname("10.0.0.5.xip.io"))
	assert.Error(t, ValidateHostname("two words"))
	assert.Error(t, ValidateHostname("trailing.dot."))
}

func TestValidateMetallbRange(t *testing.T) {
	assert.NoError(t, ValidateMetallbRange("10.64.140.43-10.64.140.49"))
	assert.Error(t, ValidateMetallbRange(""))
	assert.Error(t, ValidateMetallbRange("10.0.0.1"))
	assert.Error(t, ValidateMetallbRange("a-b"))
}
