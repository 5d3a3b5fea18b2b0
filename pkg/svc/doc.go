// Package svc provides the service layer that coordinates between the CLI
// commands and the underlying clients.
//
// Subpackages:
//   - installer: Helm-based installers for the Flux operator and Vault
//   - provisioner: local cluster provisioning
package svc
