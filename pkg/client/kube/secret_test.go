package kubeclient_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	kubeclient "github.com/ziyotek-edu/devsecops-portfolio-template/pkg/client/kube"
)

func newScheme(t *testing.T) *runtime.Scheme {
	t.Helper()

	scheme := runtime.NewScheme()
	require.NoError(t, corev1.AddToScheme(scheme))

	return scheme
}

func TestUpsertSecretCreatesOpaqueSecret(t *testing.T) {
	t.Parallel()

	fakeClient := fake.NewClientBuilder().WithScheme(newScheme(t)).Build()
	applier := kubeclient.NewSecretApplierWithClient(fakeClient)

	err := applier.UpsertSecret(context.Background(), "default", "vault-token", map[string][]byte{
		"token": []byte("root"),
	})
	require.NoError(t, err)

	stored := &corev1.Secret{}
	getErr := fakeClient.Get(
		context.Background(),
		types.NamespacedName{Namespace: "default", Name: "vault-token"},
		stored,
	)

	require.NoError(t, getErr)
	assert.Equal(t, corev1.SecretTypeOpaque, stored.Type)
	assert.Equal(t, []byte("root"), stored.Data["token"])
	assert.Equal(t, "portfolio", stored.Labels["app.kubernetes.io/managed-by"])
}

func TestUpsertSecretReplacesExistingData(t *testing.T) {
	t.Parallel()

	fakeClient := fake.NewClientBuilder().WithScheme(newScheme(t)).Build()
	applier := kubeclient.NewSecretApplierWithClient(fakeClient)

	err := applier.UpsertSecret(context.Background(), "default", "vault-token", map[string][]byte{
		"token": []byte("old"),
	})
	require.NoError(t, err)

	err = applier.UpsertSecret(context.Background(), "default", "vault-token", map[string][]byte{
		"token": []byte("new"),
	})
	require.NoError(t, err)

	stored := &corev1.Secret{}
	getErr := fakeClient.Get(
		context.Background(),
		types.NamespacedName{Namespace: "default", Name: "vault-token"},
		stored,
	)

	require.NoError(t, getErr)
	assert.Equal(t, []byte("new"), stored.Data["token"])
}
