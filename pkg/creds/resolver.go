package creds

import (
	"context"
)

// Resolver queries an ordered list of secret sources, short-circuiting on the
// first that qualifies. The same application code works unmodified on a
// cluster with a secrets manager and on environment-variable-only hosting.
type Resolver struct {
	sources []SecretSource
}

// NewResolver creates a resolver over the given sources, queried in order.
func NewResolver(sources ...SecretSource) *Resolver {
	return &Resolver{sources: sources}
}

// DefaultResolver resolves from the process environment first, then from
// Vault when VAULT_ADDR and VAULT_TOKEN are configured.
func DefaultResolver() *Resolver {
	sources := []SecretSource{NewEnvSource()}

	if vaultSource := NewVaultSourceFromEnv(); vaultSource != nil {
		sources = append(sources, vaultSource)
	}

	return NewResolver(sources...)
}

// Resolve returns the first qualifying bundle, or Absent. It is invoked once
// at application startup; it never returns an error and never writes to a
// backend.
func (r *Resolver) Resolve(ctx context.Context) ResolvedCredential {
	for _, source := range r.sources {
		if source == nil {
			continue
		}

		bundle, ok := source.TryRead(ctx)
		if ok {
			return ResolvedCredential{Bundle: bundle, Source: source.Name()}
		}
	}

	return Absent
}
