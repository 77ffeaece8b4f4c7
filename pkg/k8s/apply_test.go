package k8s_test

import (
	"context"
	"testing"

	"github.com/chuistack/certstack/pkg/k8s"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	k8stesting "k8s.io/client-go/testing"
)

var (
	secretGVK = schema.GroupVersionKind{Version: "v1", Kind: "Secret"}
	issuerGVK = schema.GroupVersionKind{Group: "certmanager.k8s.io", Version: "v1alpha1", Kind: "ClusterIssuer"}
)

func testMapper() meta.RESTMapper {
	mapper := meta.NewDefaultRESTMapper(nil)
	mapper.Add(secretGVK, meta.RESTScopeNamespace)
	mapper.Add(issuerGVK, meta.RESTScopeRoot)

	return mapper
}

func newApplyRecorder(t *testing.T) (*dynamicfake.FakeDynamicClient, *[]k8stesting.PatchAction) {
	t.Helper()

	client := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(
		runtime.NewScheme(),
		map[schema.GroupVersionResource]string{
			{Version: "v1", Resource: "secrets"}: "SecretList",
			{Group: "certmanager.k8s.io", Version: "v1alpha1", Resource: "clusterissuers"}: "ClusterIssuerList",
		},
	)

	var patches []k8stesting.PatchAction

	client.PrependReactor("patch", "*", func(action k8stesting.Action) (bool, runtime.Object, error) {
		patch, ok := action.(k8stesting.PatchAction)
		require.True(t, ok)

		patches = append(patches, patch)

		obj := &unstructured.Unstructured{}
		require.NoError(t, obj.UnmarshalJSON(patch.GetPatch()))

		return true, obj, nil
	})

	return client, &patches
}

func TestToUnstructured(t *testing.T) {
	t.Parallel()

	secret := &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: "cloudflare-key", Namespace: "cert-manager"},
		StringData: map[string]string{"api-key.txt": "K"},
	}

	obj, err := k8s.ToUnstructured(secret)

	require.NoError(t, err)
	assert.Equal(t, secretGVK, obj.GroupVersionKind())

	value, found, err := unstructured.NestedString(obj.Object, "stringData", "api-key.txt")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "K", value)
}

func TestServerSideApply_Namespaced(t *testing.T) {
	t.Parallel()

	client, patches := newApplyRecorder(t)

	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(secretGVK)
	obj.SetName("cloudflare-key")
	obj.SetNamespace("cert-manager")
	obj.Object["status"] = map[string]any{"ignored": true}

	_, err := k8s.ServerSideApply(context.Background(), client, testMapper(), obj, k8s.FieldManager)
	require.NoError(t, err)

	require.Len(t, *patches, 1)
	patch := (*patches)[0]
	assert.Equal(t, types.ApplyPatchType, patch.GetPatchType())
	assert.Equal(t, "cert-manager", patch.GetNamespace())
	assert.Equal(t, "secrets", patch.GetResource().Resource)
	assert.NotContains(t, string(patch.GetPatch()), "status")
}

func TestServerSideApply_ClusterScoped(t *testing.T) {
	t.Parallel()

	client, patches := newApplyRecorder(t)

	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(issuerGVK)
	obj.SetName("letsencrypt-prod")
	obj.SetNamespace("should-be-dropped")

	_, err := k8s.ServerSideApply(context.Background(), client, testMapper(), obj, k8s.FieldManager)
	require.NoError(t, err)

	require.Len(t, *patches, 1)
	assert.Empty(t, (*patches)[0].GetNamespace())
	assert.Equal(t, "clusterissuers", (*patches)[0].GetResource().Resource)
}

func TestServerSideApply_Incomplete(t *testing.T) {
	t.Parallel()

	client, _ := newApplyRecorder(t)

	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(secretGVK)

	_, err := k8s.ServerSideApply(context.Background(), client, testMapper(), obj, k8s.FieldManager)

	require.ErrorIs(t, err, k8s.ErrObjectIncomplete)
}

func TestServerSideApply_UnknownKind(t *testing.T) {
	t.Parallel()

	client, _ := newApplyRecorder(t)

	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(schema.GroupVersionKind{Group: "example.com", Version: "v1", Kind: "Widget"})
	obj.SetName("w")

	_, err := k8s.ServerSideApply(context.Background(), client, testMapper(), obj, k8s.FieldManager)

	require.Error(t, err)
	assert.True(t, meta.IsNoMatchError(err))
}
