package certmanagerinstaller

import (
	"context"
	"fmt"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/client/helm"
	"github.com/chuistack/certstack/pkg/svc/graph"
	"github.com/chuistack/certstack/pkg/svc/installer"
	"github.com/chuistack/certstack/pkg/svc/issuer"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Resources are the handles of every node the installer created.
type Resources struct {
	Graph *graph.Graph

	CRDs      *graph.Node
	Namespace *graph.Node
	Release   *graph.Node
	// Secret is nil unless a DNS solver is enabled.
	Secret  *graph.Node
	Issuers issuer.ClusterIssuers
}

// CertManagerInstaller installs cert-manager and its cluster issuers.
type CertManagerInstaller struct {
	stack   *v1alpha1.Stack
	creds   v1alpha1.Credentials
	applier installer.Applier
}

var _ installer.Installer = (*CertManagerInstaller)(nil)

// NewCertManagerInstaller creates a new cert-manager installer instance.
func NewCertManagerInstaller(
	stack *v1alpha1.Stack,
	creds v1alpha1.Credentials,
	applier installer.Applier,
) *CertManagerInstaller {
	return &CertManagerInstaller{stack: stack, creds: creds, applier: applier}
}

// Plan builds the resource graph.
func (c *CertManagerInstaller) Plan() (*graph.Graph, error) {
	resources, err := c.Compose()
	if err != nil {
		return nil, err
	}

	return resources.Graph, nil
}

// Install composes the stack and applies it.
func (c *CertManagerInstaller) Install(ctx context.Context) error {
	_, err := c.InstallResources(ctx)

	return err
}

// InstallResources composes the stack, applies it and returns its handles.
func (c *CertManagerInstaller) InstallResources(ctx context.Context) (*Resources, error) {
	resources, err := c.Compose()
	if err != nil {
		return nil, err
	}

	err = c.applier.Apply(ctx, resources.Graph)
	if err != nil {
		return nil, fmt.Errorf("failed to install cert-manager: %w", err)
	}

	return resources, nil
}

// Compose wires CRDs, namespace, chart, the optional DNS solver secret and
// the cluster issuers into one linear chain.
func (c *CertManagerInstaller) Compose() (*Resources, error) {
	crds := crdsNode()
	namespace := namespaceNode(crds)
	release := releaseNode(c.stack, namespace)
	secret := issuer.DNSSolverSecretNode(c.stack, c.creds, release)
	issuers := issuer.BuildClusterIssuers(c.stack, c.creds, secret)

	// Without a secret the issuers have no dependencies of their own; they
	// still must follow the chart that serves their CRD.
	if secret == nil {
		for _, node := range issuers.Nodes() {
			node.DependsOn = append(node.DependsOn, release.ID)
		}
	}

	resourceGraph := graph.New()

	for _, node := range []*graph.Node{crds, namespace, release, secret, issuers.Staging, issuers.Production} {
		if node == nil {
			continue
		}

		err := resourceGraph.Add(node)
		if err != nil {
			return nil, fmt.Errorf("compose cert-manager graph: %w", err)
		}
	}

	return &Resources{
		Graph:     resourceGraph,
		CRDs:      crds,
		Namespace: namespace,
		Release:   release,
		Secret:    secret,
		Issuers:   issuers,
	}, nil
}

func crdsNode() *graph.Node {
	return &graph.Node{
		ID:     graph.NodeID(graph.KindManifestURL, "cert-manager-crds"),
		Kind:   graph.KindManifestURL,
		Object: &graph.ManifestSource{URL: v1alpha1.CertManagerCRDsURL},
	}
}

func namespaceNode(dependsOn ...*graph.Node) *graph.Node {
	return &graph.Node{
		ID:   graph.NodeID(graph.KindNamespace, v1alpha1.CertManagerNamespace),
		Kind: graph.KindNamespace,
		Object: &corev1.Namespace{
			TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
			ObjectMeta: metav1.ObjectMeta{
				Name:   v1alpha1.CertManagerNamespace,
				Labels: map[string]string{v1alpha1.DisableValidationLabel: "true"},
			},
		},
		DependsOn: graph.DependsOnNodes(dependsOn...),
	}
}

func releaseNode(stack *v1alpha1.Stack, dependsOn ...*graph.Node) *graph.Node {
	return &graph.Node{
		ID:   graph.NodeID(graph.KindHelmRelease, v1alpha1.CertManagerNamespace, v1alpha1.CertManagerReleaseName),
		Kind: graph.KindHelmRelease,
		Object: &graph.HelmRelease{
			Repository: &helm.RepositoryEntry{
				Name: v1alpha1.CertManagerRepoName,
				URL:  v1alpha1.CertManagerRepoURL,
			},
			Chart: &helm.ChartSpec{
				ReleaseName: v1alpha1.CertManagerReleaseName,
				ChartName:   v1alpha1.CertManagerChartName,
				Namespace:   v1alpha1.CertManagerNamespace,
				Version:     v1alpha1.CertManagerChartVersion,
				RepoURL:     v1alpha1.CertManagerRepoURL,
				Wait:        true,
				WaitForJobs: true,
				Silent:      true,
				Timeout:     stack.Spec.Connection.Timeout.Duration,
			},
		},
		DependsOn: graph.DependsOnNodes(dependsOn...),
	}
}
