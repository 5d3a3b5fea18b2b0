// Package clustererrors provides common error types for cluster provisioners.
//
// This package defines sentinel errors shared by cluster provisioner
// implementations to enable consistent error handling in command handlers.
package clustererrors

import "errors"

// ErrClusterNotFound is returned when a cluster operation is attempted on a non-existent cluster.
var ErrClusterNotFound = errors.New("cluster not found")
