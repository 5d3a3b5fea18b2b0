package creds

import (
	"fmt"
	"strings"
)

// Environment variable names read by the environment source.
const (
	EnvAppID          = "GITHUB_APP_ID"
	EnvInstallationID = "GITHUB_APP_INSTALLATION_ID"
	EnvPrivateKey     = "GITHUB_APP_PRIVATE_KEY"
)

// Vault storage conventions for the GitHub App bundle.
const (
	// VaultMount is the KV v2 mount holding the bundle.
	VaultMount = "secret"
	// VaultSecretPath is the path of the bundle below the mount.
	VaultSecretPath = "github-app"

	// FieldAppID is the backend field holding the GitHub App id.
	FieldAppID = "app_id"
	// FieldInstallationID is the backend field holding the installation id.
	FieldInstallationID = "installation_id"
	// FieldPrivateKey is the backend field holding the PEM private key.
	FieldPrivateKey = "private_key"
)

// Bundle is the three-field GitHub App identity treated as an atomic unit.
// A bundle is valid only when all three fields are non-empty; partial bundles
// are rejected as a whole and never partially applied.
type Bundle struct {
	AppID          string
	InstallationID string
	PrivateKey     string
}

// Validate reports ErrInvalidInput naming the first missing field.
func (b Bundle) Validate() error {
	switch {
	case strings.TrimSpace(b.AppID) == "":
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, FieldAppID)
	case strings.TrimSpace(b.InstallationID) == "":
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, FieldInstallationID)
	case strings.TrimSpace(b.PrivateKey) == "":
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, FieldPrivateKey)
	}

	return nil
}

// NormalizePrivateKey converts literal backslash-n escape sequences into real
// newlines. Transports that flatten PEM line breaks (shell exports, CI secret
// stores) deliver keys in that form; keys that already contain real newlines
// pass through unchanged.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Source identifies which backend supplied a resolved bundle.
type Source string

const (
	// SourceEnvironment marks a bundle read from process environment variables.
	SourceEnvironment Source = "environment"
	// SourceVault marks a bundle read from the Vault secret backend.
	SourceVault Source = "vault"
	// SourceNone marks the absent outcome: no source qualified.
	SourceNone Source = "none"
)

// ResolvedCredential is the outcome of resolution: a bundle plus the source
// that supplied it, or the absent state. It is created once at application
// startup and treated as read-only for the process lifetime.
type ResolvedCredential struct {
	Bundle Bundle
	Source Source
}

// Absent is the resolution outcome when no source qualifies.
//
//nolint:gochecknoglobals // Immutable sentinel value.
var Absent = ResolvedCredential{Source: SourceNone}

// Present reports whether a bundle was resolved.
func (r ResolvedCredential) Present() bool {
	return r.Source != SourceNone && r.Source != ""
}
