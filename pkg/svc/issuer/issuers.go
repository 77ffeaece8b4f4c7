package issuer

import (
	certmanagerv1alpha1 "github.com/chuistack/certstack/pkg/apis/certmanager/v1alpha1"
	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/svc/graph"
)

// ClusterIssuers holds the two issuer nodes. Validate certificates against
// Staging first: Production is subject to Let's Encrypt rate limits.
type ClusterIssuers struct {
	Staging    *graph.Node
	Production *graph.Node
}

// Nodes returns the issuer nodes, staging first.
func (c ClusterIssuers) Nodes() []*graph.Node {
	return []*graph.Node{c.Staging, c.Production}
}

type issuerSpec struct {
	name       string
	server     string
	accountKey string
}

// BuildClusterIssuers returns the staging and production issuers with
// identical solver lists. When secret is non-nil both issuers depend on it;
// otherwise their dependency lists are empty. Callers order the issuers after
// the chart by making the secret, or the issuers themselves, depend on it.
func BuildClusterIssuers(
	stack *v1alpha1.Stack,
	creds v1alpha1.Credentials,
	secret *graph.Node,
) ClusterIssuers {
	return ClusterIssuers{
		Staging: buildIssuerNode(stack, creds, secret, issuerSpec{
			name:       v1alpha1.StagingClusterIssuerName,
			server:     v1alpha1.StagingACMEServer,
			accountKey: v1alpha1.StagingAccountKeySecretName,
		}),
		Production: buildIssuerNode(stack, creds, secret, issuerSpec{
			name:       v1alpha1.ProductionClusterIssuerName,
			server:     v1alpha1.ProductionACMEServer,
			accountKey: v1alpha1.ProductionAccountKeySecretName,
		}),
	}
}

func buildIssuerNode(
	stack *v1alpha1.Stack,
	creds v1alpha1.Credentials,
	secret *graph.Node,
	spec issuerSpec,
) *graph.Node {
	issuer := certmanagerv1alpha1.NewClusterIssuer(spec.name, &certmanagerv1alpha1.ACMEIssuer{
		Email:      creds.LetsEncryptEmail,
		Server:     spec.server,
		PrivateKey: certmanagerv1alpha1.SecretKeySelector{Name: spec.accountKey},
		Solvers:    BuildSolvers(stack, creds),
	})

	return &graph.Node{
		ID:   graph.NodeID(graph.KindCustomResource, certmanagerv1alpha1.ClusterIssuerKind, spec.name),
		Kind: graph.KindCustomResource,
		Object: &graph.CustomResource{
			CRD:    certmanagerv1alpha1.ClusterIssuerCRDName,
			Object: issuer,
		},
		DependsOn: graph.DependsOnNodes(secret),
	}
}

// ClusterIssuerOf returns the ClusterIssuer carried by node, or nil.
func ClusterIssuerOf(node *graph.Node) *certmanagerv1alpha1.ClusterIssuer {
	if node == nil {
		return nil
	}

	resource, ok := node.Object.(*graph.CustomResource)
	if !ok {
		return nil
	}

	issuer, _ := resource.Object.(*certmanagerv1alpha1.ClusterIssuer)

	return issuer
}
