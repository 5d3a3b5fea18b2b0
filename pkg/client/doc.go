// Package client provides embedded clients for the external systems the CLI
// drives.
//
// Subpackages:
//
//   - helm: Helm chart installation and repository management
//   - kube: Kubernetes REST config loading and secret upserts
//   - vault: Vault KV v2 mount management, writes, and per-field reads
//
// Embedding these as Go libraries keeps Docker as the only external binary
// dependency.
package client
