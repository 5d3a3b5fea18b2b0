package creds

import (
	"context"
	"os"
	"time"

	vaultclient "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/vault"
)

// resolveTimeout bounds the single backend round trip a source may make so a
// hung backend cannot delay application readiness.
const resolveTimeout = 5 * time.Second

// SecretSource is one place a credential bundle may come from. TryRead never
// returns an error: a source either qualifies with a complete bundle or it
// does not, and every failure mode counts as not qualifying.
type SecretSource interface {
	// Name identifies the source in resolution outcomes.
	Name() Source

	// TryRead returns a complete, validated bundle and true, or false.
	TryRead(ctx context.Context) (Bundle, bool)
}

// EnvSource reads the bundle from process environment variables. The check is
// all-or-nothing: partial presence does not qualify.
type EnvSource struct {
	lookup func(key string) (string, bool)
}

var _ SecretSource = (*EnvSource)(nil)

// NewEnvSource creates a source backed by the process environment.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

// NewEnvSourceWithLookup creates a source with an explicit lookup function
// for testing purposes.
func NewEnvSourceWithLookup(lookup func(key string) (string, bool)) *EnvSource {
	return &EnvSource{lookup: lookup}
}

// Name implements SecretSource.
func (s *EnvSource) Name() Source {
	return SourceEnvironment
}

// TryRead implements SecretSource.
func (s *EnvSource) TryRead(_ context.Context) (Bundle, bool) {
	appID, okAppID := s.lookup(EnvAppID)
	installationID, okInstallation := s.lookup(EnvInstallationID)
	privateKey, okKey := s.lookup(EnvPrivateKey)

	if !okAppID || !okInstallation || !okKey {
		return Bundle{}, false
	}

	bundle := Bundle{
		AppID:          appID,
		InstallationID: installationID,
		PrivateKey:     NormalizePrivateKey(privateKey),
	}

	if bundle.Validate() != nil {
		return Bundle{}, false
	}

	return bundle, true
}

// SecretReader is the read-only backend surface the Vault source needs. The
// whole secret comes back in one call so resolution costs a single round trip.
type SecretReader interface {
	GetSecret(ctx context.Context, mount, path string) (map[string]string, error)
}

// VaultSource reads the bundle from the Vault secret backend. Any backend
// failure (unreachable, unauthenticated, not found, malformed fields)
// disqualifies the source rather than raising an error, since absence of the
// backend is an expected deployment shape.
type VaultSource struct {
	reader  SecretReader
	timeout time.Duration
}

var _ SecretSource = (*VaultSource)(nil)

// NewVaultSource creates a source over the given backend reader.
func NewVaultSource(reader SecretReader) *VaultSource {
	return &VaultSource{
		reader:  reader,
		timeout: resolveTimeout,
	}
}

// NewVaultSourceFromEnv builds a Vault source from VAULT_ADDR and VAULT_TOKEN.
// Returns nil when either is unset or the client cannot be constructed;
// callers treat nil as "no backend configured", which is not an error.
func NewVaultSourceFromEnv() *VaultSource {
	address := os.Getenv("VAULT_ADDR")
	token := os.Getenv("VAULT_TOKEN")

	if address == "" || token == "" {
		return nil
	}

	client, err := vaultclient.New(address, token)
	if err != nil {
		return nil
	}

	return NewVaultSource(client)
}

// Name implements SecretSource.
func (s *VaultSource) Name() Source {
	return SourceVault
}

// TryRead implements SecretSource. The secret is fetched in a single call and
// the three fields are extracted locally, so resolution never costs more than
// one backend round trip.
func (s *VaultSource) TryRead(ctx context.Context) (Bundle, bool) {
	if s == nil || s.reader == nil {
		return Bundle{}, false
	}

	readCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fields, err := s.reader.GetSecret(readCtx, VaultMount, VaultSecretPath)
	if err != nil {
		return Bundle{}, false
	}

	bundle := Bundle{
		AppID:          fields[FieldAppID],
		InstallationID: fields[FieldInstallationID],
		// Backend-stored keys are normalized too rather than assumed well-formed.
		PrivateKey: NormalizePrivateKey(fields[FieldPrivateKey]),
	}

	if bundle.Validate() != nil {
		return Bundle{}, false
	}

	return bundle, true
}
