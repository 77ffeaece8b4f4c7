package graph

import (
	"strings"

	"github.com/chuistack/certstack/pkg/client/helm"
)

// Kind identifies how a node's payload is applied.
type Kind string

const (
	// KindManifestURL is a remote multi-document YAML manifest (*ManifestSource).
	KindManifestURL Kind = "ManifestURL"
	// KindNamespace is a namespace (*corev1.Namespace).
	KindNamespace Kind = "Namespace"
	// KindHelmRelease is a Helm chart release (*HelmRelease).
	KindHelmRelease Kind = "HelmRelease"
	// KindSecret is a namespaced secret (*corev1.Secret).
	KindSecret Kind = "Secret"
	// KindCustomResource is an object backed by a CRD (*CustomResource).
	KindCustomResource Kind = "CustomResource"
)

// Node is a single resource in the graph.
type Node struct {
	ID        string
	Kind      Kind
	Object    any
	DependsOn []string
}

// ManifestSource points at a remote manifest.
type ManifestSource struct {
	URL string
}

// HelmRelease is a chart to install from a repository.
type HelmRelease struct {
	Repository *helm.RepositoryEntry
	Chart      *helm.ChartSpec
}

// CustomResource is an object whose type is served by CRD. Object must
// marshal to a complete Kubernetes object including apiVersion and kind.
type CustomResource struct {
	CRD    string
	Object any
}

// NodeID builds a stable node ID from a kind and name parts, for example
// "Secret/cert-manager/cloudflare-key".
func NodeID(kind Kind, parts ...string) string {
	return strings.Join(append([]string{string(kind)}, parts...), "/")
}

// DependsOnNodes returns the IDs of the given nodes, skipping nil entries.
func DependsOnNodes(nodes ...*Node) []string {
	ids := make([]string, 0, len(nodes))

	for _, node := range nodes {
		if node != nil {
			ids = append(ids, node.ID)
		}
	}

	return ids
}
