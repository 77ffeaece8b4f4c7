package applier

import (
	"fmt"
	"io"
	"strings"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/k8s"
	"github.com/chuistack/certstack/pkg/svc/graph"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"
)

// HelmReleaseKind is the kind of the descriptor document written for a Helm
// release. It is not served by any cluster.
const HelmReleaseKind = "HelmRelease"

const redacted = "REDACTED"

// RenderOptions controls Render.
type RenderOptions struct {
	// ShowSecrets writes secret values instead of a placeholder.
	ShowSecrets bool
}

// Render writes the graph as multi-document YAML in topological order. Remote
// manifests are written as a comment naming their URL.
func Render(writer io.Writer, resourceGraph *graph.Graph, opts RenderOptions) error {
	order, err := resourceGraph.TopologicalOrder()
	if err != nil {
		return fmt.Errorf("failed to order resources: %w", err)
	}

	var out strings.Builder

	for _, node := range order {
		doc, err := renderNode(node, opts)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", node.ID, err)
		}

		out.WriteString("---\n# ")
		out.WriteString(node.ID)
		out.WriteString("\n")
		out.Write(doc)
	}

	_, err = io.WriteString(writer, out.String())
	if err != nil {
		return fmt.Errorf("failed to write rendered resources: %w", err)
	}

	return nil
}

func renderNode(node *graph.Node, opts RenderOptions) ([]byte, error) {
	switch node.Kind {
	case graph.KindManifestURL:
		source, ok := node.Object.(*graph.ManifestSource)
		if !ok {
			return nil, payloadError(node)
		}

		return []byte("# manifest: " + source.URL + "\n"), nil
	case graph.KindHelmRelease:
		release, ok := node.Object.(*graph.HelmRelease)
		if !ok || release.Chart == nil {
			return nil, payloadError(node)
		}

		return marshal(helmReleaseDescriptor(release))
	case graph.KindNamespace:
		return renderObject(node.Object)
	case graph.KindSecret:
		u, err := k8s.ToUnstructured(node.Object)
		if err != nil {
			return nil, err //nolint:wrapcheck // context added by caller
		}

		if !opts.ShowSecrets {
			redact(u)
		}

		return marshalUnstructured(u)
	case graph.KindCustomResource:
		resource, ok := node.Object.(*graph.CustomResource)
		if !ok {
			return nil, payloadError(node)
		}

		return renderObject(resource.Object)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, node.Kind)
	}
}

func helmReleaseDescriptor(release *graph.HelmRelease) map[string]any {
	spec := map[string]any{
		"chart":   release.Chart.ChartName,
		"version": release.Chart.Version,
	}

	if release.Repository != nil {
		spec["repository"] = map[string]any{
			"name": release.Repository.Name,
			"url":  release.Repository.URL,
		}
	}

	if release.Chart.Timeout > 0 {
		spec["timeout"] = release.Chart.Timeout.String()
	}

	return map[string]any{
		"apiVersion": v1alpha1.APIVersion,
		"kind":       HelmReleaseKind,
		"metadata": map[string]any{
			"name":      release.Chart.ReleaseName,
			"namespace": release.Chart.Namespace,
		},
		"spec": spec,
	}
}

func renderObject(obj any) ([]byte, error) {
	u, err := k8s.ToUnstructured(obj)
	if err != nil {
		return nil, err //nolint:wrapcheck // context added by caller
	}

	return marshalUnstructured(u)
}

func marshalUnstructured(u *unstructured.Unstructured) ([]byte, error) {
	unstructured.RemoveNestedField(u.Object, "metadata", "creationTimestamp")
	unstructured.RemoveNestedField(u.Object, "status")

	return marshal(u.Object)
}

func marshal(obj any) ([]byte, error) {
	data, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return data, nil
}

func redact(u *unstructured.Unstructured) {
	for _, field := range []string{"stringData", "data"} {
		values, found, _ := unstructured.NestedMap(u.Object, field)
		if !found {
			continue
		}

		for key := range values {
			values[key] = redacted
		}

		_ = unstructured.SetNestedMap(u.Object, values, field)
	}
}
