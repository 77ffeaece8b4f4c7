package certmanagerinstaller_test

import (
	"context"
	"testing"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/svc/graph"
	certmanagerinstaller "github.com/chuistack/certstack/pkg/svc/installer/certmanager"
	"github.com/chuistack/certstack/pkg/svc/issuer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
)

type recordingApplier struct {
	graphs []*graph.Graph
	err    error
}

func (r *recordingApplier) Apply(_ context.Context, g *graph.Graph) error {
	r.graphs = append(r.graphs, g)

	return r.err
}

func orderIDs(t *testing.T, g *graph.Graph) []string {
	t.Helper()

	order, err := g.TopologicalOrder()
	require.NoError(t, err)

	ids := make([]string, 0, len(order))
	for _, node := range order {
		ids = append(ids, node.ID)
	}

	return ids
}

func newInstaller(solver v1alpha1.DNSSolver, applier *recordingApplier) *certmanagerinstaller.CertManagerInstaller {
	stack := v1alpha1.NewStack()
	stack.Spec.DNSSolver = solver

	return certmanagerinstaller.NewCertManagerInstaller(stack, v1alpha1.Credentials{
		CloudFlareEmail:  "a@b.com",
		CloudFlareAPIKey: "K",
		LetsEncryptEmail: "c@d.com",
	}, applier)
}

func TestCompose_CloudFlareChain(t *testing.T) {
	t.Parallel()

	resources, err := newInstaller(v1alpha1.DNSSolverCloudFlare, &recordingApplier{}).Compose()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ManifestURL/cert-manager-crds",
		"Namespace/cert-manager",
		"HelmRelease/cert-manager/cert-manager",
		"Secret/cert-manager/cloudflare-key",
		"CustomResource/ClusterIssuer/letsencrypt-staging",
		"CustomResource/ClusterIssuer/letsencrypt-prod",
	}, orderIDs(t, resources.Graph))

	require.NotNil(t, resources.Secret)

	for _, node := range resources.Issuers.Nodes() {
		assert.Equal(t, []string{resources.Secret.ID}, node.DependsOn)
	}
}

func TestCompose_NoDNSSolverChain(t *testing.T) {
	t.Parallel()

	resources, err := newInstaller(v1alpha1.DNSSolverNone, &recordingApplier{}).Compose()
	require.NoError(t, err)

	assert.Nil(t, resources.Secret)
	assert.Equal(t, 5, resources.Graph.Len())

	for _, node := range resources.Graph.Nodes() {
		assert.NotEqual(t, graph.KindSecret, node.Kind)
	}

	for _, node := range resources.Issuers.Nodes() {
		assert.Equal(t, []string{resources.Release.ID}, node.DependsOn)
	}
}

func TestCompose_NoDNSSolver_ReleaseEdgeAddedByInstaller(t *testing.T) {
	t.Parallel()

	stack := v1alpha1.NewStack()
	stack.Spec.DNSSolver = v1alpha1.DNSSolverNone
	creds := v1alpha1.Credentials{LetsEncryptEmail: "c@d.com"}

	for _, node := range issuer.BuildClusterIssuers(stack, creds, nil).Nodes() {
		assert.Empty(t, node.DependsOn, node.ID)
	}

	installer := certmanagerinstaller.NewCertManagerInstaller(stack, creds, &recordingApplier{})

	resources, err := installer.Compose()
	require.NoError(t, err)

	for _, node := range resources.Issuers.Nodes() {
		assert.Equal(t, []string{"HelmRelease/cert-manager/cert-manager"}, node.DependsOn, node.ID)
	}
}

func TestCompose_Namespace(t *testing.T) {
	t.Parallel()

	resources, err := newInstaller(v1alpha1.DNSSolverNone, &recordingApplier{}).Compose()
	require.NoError(t, err)

	namespace, ok := resources.Namespace.Object.(*corev1.Namespace)
	require.True(t, ok)
	assert.Equal(t, "cert-manager", namespace.Name)
	assert.Equal(t, map[string]string{"certmanager.k8s.io/disable-validation": "true"}, namespace.Labels)
	assert.Equal(t, []string{resources.CRDs.ID}, resources.Namespace.DependsOn)
}

func TestCompose_Release(t *testing.T) {
	t.Parallel()

	resources, err := newInstaller(v1alpha1.DNSSolverNone, &recordingApplier{}).Compose()
	require.NoError(t, err)

	release, ok := resources.Release.Object.(*graph.HelmRelease)
	require.True(t, ok)
	assert.Equal(t, "jetstack", release.Repository.Name)
	assert.Equal(t, "https://charts.jetstack.io", release.Repository.URL)
	assert.Equal(t, "cert-manager", release.Chart.ReleaseName)
	assert.Equal(t, "jetstack/cert-manager", release.Chart.ChartName)
	assert.Equal(t, "v0.10.0", release.Chart.Version)
	assert.Equal(t, v1alpha1.DefaultTimeout, release.Chart.Timeout)
	assert.Equal(t, []string{resources.Namespace.ID}, resources.Release.DependsOn)

	source, ok := resources.CRDs.Object.(*graph.ManifestSource)
	require.True(t, ok)
	assert.Equal(t,
		"https://raw.githubusercontent.com/jetstack/cert-manager/release-0.10/deploy/manifests/00-crds.yaml",
		source.URL)
}

func TestInstall_AppliesOnce(t *testing.T) {
	t.Parallel()

	applier := &recordingApplier{}

	resources, err := newInstaller(v1alpha1.DNSSolverCloudFlare, applier).InstallResources(context.Background())

	require.NoError(t, err)
	require.Len(t, applier.graphs, 1)
	assert.Same(t, resources.Graph, applier.graphs[0])
	assert.NotNil(t, issuer.ClusterIssuerOf(resources.Issuers.Production))
}

func TestInstall_ApplyError(t *testing.T) {
	t.Parallel()

	applier := &recordingApplier{err: assert.AnError}

	err := newInstaller(v1alpha1.DNSSolverNone, applier).Install(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to install cert-manager")
}

func TestPlan(t *testing.T) {
	t.Parallel()

	applier := &recordingApplier{}

	resourceGraph, err := newInstaller(v1alpha1.DNSSolverNone, applier).Plan()

	require.NoError(t, err)
	assert.Equal(t, 5, resourceGraph.Len())
	assert.Empty(t, applier.graphs)
}
