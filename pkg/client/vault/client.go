// Package vaultclient wraps the HashiCorp Vault API client with the small
// KV v2 surface the credential subsystem needs: mount management, versioned
// writes, and per-field reads.
package vaultclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"
)

var (
	// ErrPermissionDenied is returned when Vault rejects the access token.
	ErrPermissionDenied = errors.New("vault: permission denied")

	// ErrFieldNotFound is returned when a read succeeds but the requested
	// field is missing or empty.
	ErrFieldNotFound = errors.New("vault: field not found")

	errAddressRequired = errors.New("vault: address is required")
	errTokenRequired   = errors.New("vault: token is required")
	errNotInitialized  = errors.New("vault: server not initialized")
	errSealed          = errors.New("vault: server is sealed")
)

// Client is a thin wrapper over the Vault API client scoped to KV v2 usage.
type Client struct {
	api *vaultapi.Client
}

// New creates a Vault client for the given address and token.
func New(address, token string) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	if token == "" {
		return nil, errTokenRequired
	}

	config := vaultapi.DefaultConfig()
	config.Address = address

	apiClient, err := vaultapi.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("create vault api client: %w", err)
	}

	apiClient.SetToken(token)

	return &Client{api: apiClient}, nil
}

// EnsureKVv2Mount enables a KV v2 secrets engine at the given mount path.
// Enabling a mount that already exists is not an error; Vault's
// "path is already in use" response is absorbed silently so the operation
// stays idempotent.
func (c *Client) EnsureKVv2Mount(ctx context.Context, mount string) error {
	input := &vaultapi.MountInput{
		Type:    "kv",
		Options: map[string]string{"version": "2"},
	}

	err := c.api.Sys().MountWithContext(ctx, mount, input)
	if err != nil {
		if strings.Contains(err.Error(), "path is already in use") {
			return nil
		}

		return classify(fmt.Errorf("enable kv v2 mount %q: %w", mount, err))
	}

	return nil
}

// Put writes all fields as a single versioned KV v2 write. The backend
// creates a new version rather than mutating history.
func (c *Client) Put(ctx context.Context, mount, path string, data map[string]string) error {
	payload := make(map[string]any, len(data))
	for key, value := range data {
		payload[key] = value
	}

	_, err := c.api.KVv2(mount).Put(ctx, path, payload)
	if err != nil {
		return classify(fmt.Errorf("write secret %s/%s: %w", mount, path, err))
	}

	return nil
}

// GetField reads a single string field from a KV v2 secret.
// Returns ErrFieldNotFound when the field is missing or empty.
func (c *Client) GetField(ctx context.Context, mount, path, field string) (string, error) {
	secret, err := c.api.KVv2(mount).Get(ctx, path)
	if err != nil {
		return "", classify(fmt.Errorf("read secret %s/%s: %w", mount, path, err))
	}

	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("%w: %s in %s/%s", ErrFieldNotFound, field, mount, path)
	}

	value, ok := secret.Data[field].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s in %s/%s", ErrFieldNotFound, field, mount, path)
	}

	return value, nil
}

// GetSecret reads a whole KV v2 secret in one request and returns its string
// fields. Non-string values are skipped.
func (c *Client) GetSecret(ctx context.Context, mount, path string) (map[string]string, error) {
	secret, err := c.api.KVv2(mount).Get(ctx, path)
	if err != nil {
		return nil, classify(fmt.Errorf("read secret %s/%s: %w", mount, path, err))
	}

	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: secret %s/%s has no data", ErrFieldNotFound, mount, path)
	}

	fields := make(map[string]string, len(secret.Data))

	for key, raw := range secret.Data {
		if value, ok := raw.(string); ok {
			fields[key] = value
		}
	}

	return fields, nil
}

// Health reports whether the Vault server is reachable, initialized, and
// unsealed. Dev-mode servers are always initialized and unsealed.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.api.Sys().HealthWithContext(ctx)
	if err != nil {
		return classify(fmt.Errorf("vault health check: %w", err))
	}

	if !resp.Initialized {
		return errNotInitialized
	}

	if resp.Sealed {
		return errSealed
	}

	return nil
}

// --- internals ---

// classify maps Vault HTTP auth responses onto ErrPermissionDenied so callers
// can distinguish rejected tokens from connectivity failures.
func classify(err error) error {
	var responseErr *vaultapi.ResponseError

	if errors.As(err, &responseErr) {
		switch responseErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
	}

	return err
}
