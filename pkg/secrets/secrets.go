// Package secrets generates the throwaway credentials injected into the
// Kubeflow bundle at deploy time.
//
// These are service-account passwords for components that only ever talk to
// each other inside the cluster; they are regenerated on every bring-up and
// never reused. Uniform randomness is all that is required here, not
// cryptographic strength - a deliberate scope limitation.
package secrets

import (
	"math/rand"
	"time"
)

const (
	passwordLength  = 30
	passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GeneratePassword returns a fresh 30-character password drawn uniformly
// from uppercase letters and digits.
func GeneratePassword() string {
	buf := make([]byte, passwordLength)
	for i := range buf {
		buf[i] = passwordCharset[rng.Intn(len(passwordCharset))]
	}
	return string(buf)
}

// CredentialSet holds the generated secrets for one bring-up run.
//
// AuthPassword is carried verbatim so the same value that lands in the
// gatekeeper configuration can be echoed to the operator at the end.
type CredentialSet struct {
	AuthPassword    string
	KatibDBPassword string
	ModelDBPassword string
	PipelinesDBRoot string
	MinioSecretKey  string
}

// NewCredentialSet generates a full set of credentials for a single run.
// authPassword is taken as-is; everything else is freshly generated.
func NewCredentialSet(authPassword string) *CredentialSet {
	return &CredentialSet{
		AuthPassword:    authPassword,
		KatibDBPassword: GeneratePassword(),
		ModelDBPassword: GeneratePassword(),
		PipelinesDBRoot: GeneratePassword(),
		MinioSecretKey:  GeneratePassword(),
	}
}
