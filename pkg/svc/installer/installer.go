// Package installer defines the contract for components installed into the
// local cluster after it is created.
package installer

import "context"

// Installer provides install and uninstall operations for a cluster component.
type Installer interface {
	// Install installs the component into the cluster.
	Install(ctx context.Context) error

	// Uninstall removes the component from the cluster.
	Uninstall(ctx context.Context) error
}
