// Package provisioner provides cluster provisioning services.
//
// The cluster subpackage defines the provisioner contract and factory; the
// cluster/kind subpackage implements it for kind.
package provisioner
