package kubeclient

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// managedByLabel marks secrets created by this CLI.
const managedByLabel = "portfolio"

// SecretApplier creates or replaces opaque Kubernetes secrets.
type SecretApplier struct {
	client client.Client
}

// NewSecretApplier builds a SecretApplier over the given REST config.
func NewSecretApplier(restConfig *rest.Config) (*SecretApplier, error) {
	scheme := runtime.NewScheme()

	err := corev1.AddToScheme(scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to add core scheme: %w", err)
	}

	k8sClient, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return NewSecretApplierWithClient(k8sClient), nil
}

// NewSecretApplierWithClient builds a SecretApplier over an existing client
// for testing purposes.
func NewSecretApplierWithClient(k8sClient client.Client) *SecretApplier {
	return &SecretApplier{client: k8sClient}
}

// UpsertSecret creates the named opaque secret or replaces its data if it
// already exists. The replace semantics keep repeated applications of the
// same data idempotent.
func (a *SecretApplier) UpsertSecret(
	ctx context.Context,
	namespace string,
	name string,
	data map[string][]byte,
) error {
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				"app.kubernetes.io/managed-by": managedByLabel,
			},
		},
		Type: corev1.SecretTypeOpaque,
		Data: data,
	}

	existing := &corev1.Secret{}
	err := a.client.Get(ctx, client.ObjectKeyFromObject(secret), existing)

	if apierrors.IsNotFound(err) {
		createErr := a.client.Create(ctx, secret)
		if createErr != nil {
			return fmt.Errorf("failed to create secret %s/%s: %w", namespace, name, createErr)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check existing secret %s/%s: %w", namespace, name, err)
	}

	existing.Data = secret.Data
	existing.Type = secret.Type

	updateErr := a.client.Update(ctx, existing)
	if updateErr != nil {
		return fmt.Errorf("failed to update secret %s/%s: %w", namespace, name, updateErr)
	}

	return nil
}
