package di

import (
	"github.com/samber/do/v2"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/helm"
	kubeclient "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/kube"
	vaultclient "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/vault"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/creds"
	clusterprovisioner "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/svc/provisioner/cluster"
)

// HelmClientFactory constructs a Helm client bound to a kubeconfig and context.
type HelmClientFactory func(kubeConfig, kubeContext string) (helm.Interface, error)

// SecretBackendFactory constructs a secrets manager client from an address and token.
type SecretBackendFactory func(address, token string) (creds.SecretBackend, error)

// SecretApplierFactory constructs a Kubernetes secret applier from a kubeconfig path.
type SecretApplierFactory func(kubeConfig string) (creds.SecretApplier, error)

// DefaultModule registers the production implementations of all services.
func DefaultModule(injector Injector) error {
	do.Provide(injector, func(do.Injector) (clusterprovisioner.Factory, error) {
		return &clusterprovisioner.DefaultFactory{}, nil
	})

	do.Provide(injector, func(do.Injector) (HelmClientFactory, error) {
		return func(kubeConfig, kubeContext string) (helm.Interface, error) {
			return helm.NewClient(kubeConfig, kubeContext)
		}, nil
	})

	do.Provide(injector, func(do.Injector) (SecretBackendFactory, error) {
		return func(address, token string) (creds.SecretBackend, error) {
			return vaultclient.New(address, token)
		}, nil
	})

	do.Provide(injector, func(do.Injector) (SecretApplierFactory, error) {
		return func(kubeConfig string) (creds.SecretApplier, error) {
			restConfig, err := kubeclient.NewRESTConfig(kubeConfig, "")
			if err != nil {
				return nil, err
			}

			return kubeclient.NewSecretApplier(restConfig)
		}, nil
	})

	return nil
}

// ProvideClusterProvisionerFactory registers a specific cluster provisioner
// factory, replacing the default. Intended for tests.
func ProvideClusterProvisionerFactory(factory clusterprovisioner.Factory) Module {
	return func(injector Injector) error {
		do.Override(injector, func(do.Injector) (clusterprovisioner.Factory, error) {
			return factory, nil
		})

		return nil
	}
}

// ProvideHelmClientFactory registers a specific Helm client factory, replacing
// the default. Intended for tests.
func ProvideHelmClientFactory(factory HelmClientFactory) Module {
	return func(injector Injector) error {
		do.Override(injector, func(do.Injector) (HelmClientFactory, error) {
			return factory, nil
		})

		return nil
	}
}

// ProvideSecretBackendFactory registers a specific secrets backend factory,
// replacing the default. Intended for tests.
func ProvideSecretBackendFactory(factory SecretBackendFactory) Module {
	return func(injector Injector) error {
		do.Override(injector, func(do.Injector) (SecretBackendFactory, error) {
			return factory, nil
		})

		return nil
	}
}

// ProvideSecretApplierFactory registers a specific secret applier factory,
// replacing the default. Intended for tests.
func ProvideSecretApplierFactory(factory SecretApplierFactory) Module {
	return func(injector Injector) error {
		do.Override(injector, func(do.Injector) (SecretApplierFactory, error) {
			return factory, nil
		})

		return nil
	}
}
