package issuer_test

import (
	"encoding/json"
	"testing"

	certmanagerv1alpha1 "github.com/chuistack/certstack/pkg/apis/certmanager/v1alpha1"
	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/svc/graph"
	"github.com/chuistack/certstack/pkg/svc/issuer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloudFlareStack() (*v1alpha1.Stack, v1alpha1.Credentials) {
	stack := v1alpha1.NewStack()
	stack.Spec.DNSSolver = v1alpha1.DNSSolverCloudFlare

	return stack, v1alpha1.Credentials{
		CloudFlareEmail:  "a@b.com",
		CloudFlareAPIKey: "K",
		LetsEncryptEmail: "c@d.com",
	}
}

func noneStack() (*v1alpha1.Stack, v1alpha1.Credentials) {
	return v1alpha1.NewStack(), v1alpha1.Credentials{LetsEncryptEmail: "c@d.com"}
}

func countKind(solvers []certmanagerv1alpha1.Solver, kind certmanagerv1alpha1.SolverKind) int {
	count := 0

	for _, solver := range solvers {
		if solver.Kind == kind {
			count++
		}
	}

	return count
}

func TestBuild_CloudFlareScenario(t *testing.T) {
	t.Parallel()

	stack, creds := cloudFlareStack()

	secretNode := issuer.DNSSolverSecretNode(stack, creds)
	require.NotNil(t, secretNode)

	secret := issuer.DNSSolverSecret(stack, creds)
	assert.Equal(t, "cloudflare-key", secret.Name)
	assert.Equal(t, "cert-manager", secret.Namespace)
	assert.Equal(t, map[string]string{"api-key.txt": "K"}, secret.StringData)

	issuers := issuer.BuildClusterIssuers(stack, creds, secretNode)

	for _, node := range issuers.Nodes() {
		clusterIssuer := issuer.ClusterIssuerOf(node)
		require.NotNil(t, clusterIssuer)

		assert.Equal(t, []string{secretNode.ID}, node.DependsOn)
		assert.Equal(t, "c@d.com", clusterIssuer.Spec.ACME.Email)

		solvers := clusterIssuer.Spec.ACME.Solvers
		require.Len(t, solvers, 2)
		assert.Equal(t, certmanagerv1alpha1.NewHTTP01Solver("nginx"), solvers[0])

		dns := solvers[1]
		require.Equal(t, certmanagerv1alpha1.SolverKindDNS01CloudFlare, dns.Kind)
		assert.Equal(t, "a@b.com", dns.DNS01CloudFlare.Email)
		assert.Equal(t, certmanagerv1alpha1.SecretKeySelector{
			Name: "cloudflare-key",
			Key:  "api-key.txt",
		}, dns.DNS01CloudFlare.APIKeyRef)
		assert.Equal(t, "nginx", dns.DNS01CloudFlare.IngressClass)
	}
}

func TestBuild_NoneScenario(t *testing.T) {
	t.Parallel()

	stack, creds := noneStack()

	assert.Nil(t, issuer.DNSSolverSecret(stack, creds))
	assert.Nil(t, issuer.DNSSolverSecretNode(stack, creds))

	issuers := issuer.BuildClusterIssuers(stack, creds, nil)

	for _, node := range issuers.Nodes() {
		assert.Empty(t, node.DependsOn)

		solvers := issuer.ClusterIssuerOf(node).Spec.ACME.Solvers
		assert.Equal(t, []certmanagerv1alpha1.Solver{certmanagerv1alpha1.NewHTTP01Solver("nginx")}, solvers)
	}
}

func TestBuildClusterIssuers_SolverCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		solver    v1alpha1.DNSSolver
		wantDNS01 int
	}{
		{name: "none", solver: v1alpha1.DNSSolverNone, wantDNS01: 0},
		{name: "empty defaults to none", solver: "", wantDNS01: 0},
		{name: "cloudflare", solver: v1alpha1.DNSSolverCloudFlare, wantDNS01: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stack, creds := cloudFlareStack()
			stack.Spec.DNSSolver = tt.solver

			issuers := issuer.BuildClusterIssuers(stack, creds, issuer.DNSSolverSecretNode(stack, creds))

			for _, node := range issuers.Nodes() {
				solvers := issuer.ClusterIssuerOf(node).Spec.ACME.Solvers
				assert.Equal(t, 1, countKind(solvers, certmanagerv1alpha1.SolverKindHTTP01))
				assert.Equal(t, tt.wantDNS01, countKind(solvers, certmanagerv1alpha1.SolverKindDNS01CloudFlare))
			}

			assert.Equal(t,
				issuer.ClusterIssuerOf(issuers.Staging).Spec.ACME.Solvers,
				issuer.ClusterIssuerOf(issuers.Production).Spec.ACME.Solvers,
			)
		})
	}
}

func TestBuildClusterIssuers_Endpoints(t *testing.T) {
	t.Parallel()

	stack, creds := noneStack()
	issuers := issuer.BuildClusterIssuers(stack, creds, nil)

	staging := issuer.ClusterIssuerOf(issuers.Staging)
	assert.Equal(t, "letsencrypt-staging", staging.Name)
	assert.Equal(t, "https://acme-staging-v02.api.letsencrypt.org/directory", staging.Spec.ACME.Server)
	assert.Equal(t, "staging-issuer-account-key", staging.Spec.ACME.PrivateKey.Name)

	production := issuer.ClusterIssuerOf(issuers.Production)
	assert.Equal(t, "letsencrypt-prod", production.Name)
	assert.Equal(t, "https://acme-v02.api.letsencrypt.org/directory", production.Spec.ACME.Server)
	assert.Equal(t, "production-issuer-account-key", production.Spec.ACME.PrivateKey.Name)

	assert.Equal(t, graph.KindCustomResource, issuers.Staging.Kind)
	assert.Equal(t, "CustomResource/ClusterIssuer/letsencrypt-staging", issuers.Staging.ID)

	resource, ok := issuers.Production.Object.(*graph.CustomResource)
	require.True(t, ok)
	assert.Equal(t, "clusterissuers.certmanager.k8s.io", resource.CRD)
}

func TestDNSSolverSecretNode_DependsOn(t *testing.T) {
	t.Parallel()

	stack, creds := cloudFlareStack()
	chart := &graph.Node{ID: "HelmRelease/cert-manager/cert-manager"}

	node := issuer.DNSSolverSecretNode(stack, creds, chart)

	require.NotNil(t, node)
	assert.Equal(t, "Secret/cert-manager/cloudflare-key", node.ID)
	assert.Equal(t, []string{chart.ID}, node.DependsOn)
}

func TestBuildClusterIssuers_WireFormat(t *testing.T) {
	t.Parallel()

	stack, creds := cloudFlareStack()
	issuers := issuer.BuildClusterIssuers(stack, creds, nil)

	data, err := json.Marshal(issuer.ClusterIssuerOf(issuers.Production).Spec)

	require.NoError(t, err)
	assert.JSONEq(t, `{"acme": {
		"email": "c@d.com",
		"server": "https://acme-v02.api.letsencrypt.org/directory",
		"privateKeySecretRef": {"name": "production-issuer-account-key"},
		"solvers": [
			{"http01": {"ingress": {"class": "nginx"}}},
			{
				"selector": {"matchLabels": {"use-cloudflare-solver": "true"}},
				"dns01": {
					"ingress": {"class": "nginx"},
					"cloudflare": {
						"email": "a@b.com",
						"apiKeySecretRef": {"name": "cloudflare-key", "key": "api-key.txt"}
					}
				}
			}
		]
	}}`, string(data))
}

func TestClusterIssuerOf_Foreign(t *testing.T) {
	t.Parallel()

	assert.Nil(t, issuer.ClusterIssuerOf(nil))
	assert.Nil(t, issuer.ClusterIssuerOf(&graph.Node{Object: "not a resource"}))
}
