// Package clusterprovisioner defines the interface for provisioning local
// Kubernetes clusters and the default factory used by command handlers.
package clusterprovisioner

import (
	"context"
)

// ClusterProvisioner defines lifecycle operations for a local Kubernetes cluster.
type ClusterProvisioner interface {
	// Create creates a cluster with the given name.
	Create(ctx context.Context, name string) error

	// Delete deletes the cluster with the given name.
	Delete(ctx context.Context, name string) error

	// List returns the names of all clusters managed by this provisioner.
	List(ctx context.Context) ([]string, error)

	// Exists reports whether a cluster with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)
}

// Factory creates cluster provisioners. Command handlers resolve a Factory
// from the runtime container so tests can inject fakes.
type Factory interface {
	// Provisioner returns a provisioner writing kubeconfig data to the given path.
	Provisioner(kubeConfig string) (ClusterProvisioner, error)
}
