package creds

import (
	"context"
	"errors"
	"fmt"

	vaultclient "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/vault"
)

// SecretBackend is the backend surface provisioning needs. It is implemented
// by vaultclient.Client; tests inject fakes.
type SecretBackend interface {
	// EnsureKVv2Mount idempotently enables a KV v2 engine at the mount path.
	EnsureKVv2Mount(ctx context.Context, mount string) error

	// Put writes all fields as one atomic, versioned update.
	Put(ctx context.Context, mount, path string, data map[string]string) error

	// GetField reads a single string field back from the store.
	GetField(ctx context.Context, mount, path, field string) (string, error)
}

// ProvisionResult reports what a successful provisioning run did.
type ProvisionResult struct {
	Mount string
	Path  string
	// VerifiedFields lists the fields confirmed readable after the write.
	VerifiedFields []string
}

// Provision writes the credential bundle into the secret backend and verifies
// it is readable.
//
// The sequence is ordered and idempotent: the KV v2 engine is ensured first
// (an already-enabled engine is not an error), the bundle is written as a
// single multi-field update to the conventional path, and each field is then
// read back individually. A written-but-unverifiable bundle surfaces as
// ErrVerificationFailed naming the failing field. Invalid input fails before
// any network call. No retries: provisioning is an operator-driven, one-shot
// action.
func Provision(ctx context.Context, backend SecretBackend, bundle Bundle) (ProvisionResult, error) {
	err := bundle.Validate()
	if err != nil {
		return ProvisionResult{}, err
	}

	err = backend.EnsureKVv2Mount(ctx, VaultMount)
	if err != nil {
		return ProvisionResult{}, wrapBackendErr("enable secrets engine", err)
	}

	data := map[string]string{
		FieldAppID:          bundle.AppID,
		FieldInstallationID: bundle.InstallationID,
		FieldPrivateKey:     bundle.PrivateKey,
	}

	err = backend.Put(ctx, VaultMount, VaultSecretPath, data)
	if err != nil {
		return ProvisionResult{}, wrapBackendErr("write credential bundle", err)
	}

	result := ProvisionResult{
		Mount: VaultMount,
		Path:  VaultSecretPath,
	}

	// Read back each field individually so a failure names the exact field.
	for _, field := range []string{FieldAppID, FieldInstallationID, FieldPrivateKey} {
		value, readErr := backend.GetField(ctx, VaultMount, VaultSecretPath, field)
		if readErr != nil || value == "" {
			if readErr != nil && errors.Is(readErr, vaultclient.ErrPermissionDenied) {
				return ProvisionResult{}, fmt.Errorf("%w: reading back %s: %w", ErrAuthFailed, field, readErr)
			}

			return ProvisionResult{}, fmt.Errorf("%w: field %s", ErrVerificationFailed, field)
		}

		result.VerifiedFields = append(result.VerifiedFields, field)
	}

	return result, nil
}

// --- internals ---

// wrapBackendErr maps rejected tokens onto ErrAuthFailed and passes all other
// backend failures through with context. Connectivity failures stay fatal to
// the call.
func wrapBackendErr(operation string, err error) error {
	if errors.Is(err, vaultclient.ErrPermissionDenied) {
		return fmt.Errorf("%w: %s: %w", ErrAuthFailed, operation, err)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
