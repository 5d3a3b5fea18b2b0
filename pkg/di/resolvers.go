package di

import (
	"fmt"

	"github.com/samber/do/v2"

	clusterprovisioner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster"
)

// ResolveClusterProvisionerFactory resolves the registered cluster provisioner factory.
func ResolveClusterProvisionerFactory(injector Injector) (clusterprovisioner.Factory, error) {
	factory, err := do.Invoke[clusterprovisioner.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cluster provisioner factory: %w", err)
	}

	return factory, nil
}

// ResolveHelmClientFactory resolves the registered Helm client factory.
func ResolveHelmClientFactory(injector Injector) (HelmClientFactory, error) {
	factory, err := do.Invoke[HelmClientFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve helm client factory: %w", err)
	}

	return factory, nil
}

// ResolveSecretBackendFactory resolves the registered secrets backend factory.
func ResolveSecretBackendFactory(injector Injector) (SecretBackendFactory, error) {
	factory, err := do.Invoke[SecretBackendFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve secret backend factory: %w", err)
	}

	return factory, nil
}

// ResolveSecretApplierFactory resolves the registered secret applier factory.
func ResolveSecretApplierFactory(injector Injector) (SecretApplierFactory, error) {
	factory, err := do.Invoke[SecretApplierFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve secret applier factory: %w", err)
	}

	return factory, nil
}
