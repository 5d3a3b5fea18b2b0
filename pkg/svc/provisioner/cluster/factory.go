package clusterprovisioner

import (
	kindprovisioner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster/kind"
	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"
)

// DefaultFactory creates kind-backed cluster provisioners.
type DefaultFactory struct {
	// KindConfig is the kind cluster configuration to provision from.
	// If nil, a single-node default is used.
	KindConfig *v1alpha4.Cluster
}

var _ Factory = DefaultFactory{}

// Provisioner returns a kind cluster provisioner for the configured cluster.
func (f DefaultFactory) Provisioner(kubeConfig string) (ClusterProvisioner, error) {
	config := f.KindConfig
	if config == nil {
		config = kindprovisioner.DefaultConfig()
	}

	return kindprovisioner.NewProvisioner(config, kubeConfig), nil
}
