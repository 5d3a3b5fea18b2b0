package creds

import (
	"context"
	"fmt"
	"strings"
)

// Kubernetes secret conventions for the propagated Vault access token.
const (
	// TokenSecretName is the name of the Kubernetes secret holding the token.
	TokenSecretName = "vault-token"
	// TokenSecretKey is the key inside the secret holding the token value.
	TokenSecretKey = "token"
)

// SecretApplier deposits a secret into the orchestration platform's own
// secret storage. Implemented by kubeclient.SecretApplier.
type SecretApplier interface {
	// UpsertSecret creates the named secret or replaces its data.
	UpsertSecret(ctx context.Context, namespace, name string, data map[string][]byte) error
}

// PropagateResult reports where the access token was deposited.
type PropagateResult struct {
	Namespace  string
	SecretName string
}

// Propagate copies the backend access token into the platform secret the
// dashboard reads at startup, so its resolver can authenticate to Vault
// without the operator's interactive session.
//
// The operation is declarative and idempotent: applying it twice with the
// same token produces the same end state (replace, not append), and a prior
// value never causes a failure.
func Propagate(
	ctx context.Context,
	applier SecretApplier,
	targetNamespace string,
	accessToken string,
) (PropagateResult, error) {
	if strings.TrimSpace(accessToken) == "" {
		return PropagateResult{}, fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}

	if strings.TrimSpace(targetNamespace) == "" {
		return PropagateResult{}, fmt.Errorf("%w: target namespace is required", ErrInvalidInput)
	}

	data := map[string][]byte{
		TokenSecretKey: []byte(accessToken),
	}

	err := applier.UpsertSecret(ctx, targetNamespace, TokenSecretName, data)
	if err != nil {
		return PropagateResult{}, fmt.Errorf("%w: %w", ErrPlatformUnreachable, err)
	}

	return PropagateResult{
		Namespace:  targetNamespace,
		SecretName: TokenSecretName,
	}, nil
}
