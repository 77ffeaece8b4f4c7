package applier

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chuistack/certstack/pkg/client/helm"
	"github.com/chuistack/certstack/pkg/client/manifest"
	"github.com/chuistack/certstack/pkg/k8s"
	"github.com/chuistack/certstack/pkg/k8s/readiness"
	"github.com/chuistack/certstack/pkg/svc/graph"
	"github.com/chuistack/certstack/pkg/svc/installer"
	"github.com/chuistack/certstack/pkg/utils/notify"
	corev1 "k8s.io/api/core/v1"
)

// Applier applies graph nodes to a live cluster.
type Applier struct {
	clients *k8s.Clients
	helm    helm.Interface
	fetcher manifest.Fetcher
	timeout time.Duration
	out     io.Writer
}

var _ installer.Applier = (*Applier)(nil)

// New creates an Applier. timeout bounds each Helm operation and CRD wait.
func New(
	clients *k8s.Clients,
	helmClient helm.Interface,
	fetcher manifest.Fetcher,
	timeout time.Duration,
	out io.Writer,
) *Applier {
	if out == nil {
		out = io.Discard
	}

	return &Applier{
		clients: clients,
		helm:    helmClient,
		fetcher: fetcher,
		timeout: timeout,
		out:     out,
	}
}

// Apply applies every node in topological order and stops at the first failure.
func (a *Applier) Apply(ctx context.Context, resourceGraph *graph.Graph) error {
	order, err := resourceGraph.TopologicalOrder()
	if err != nil {
		return fmt.Errorf("failed to order resources: %w", err)
	}

	for _, node := range order {
		notify.Activityf(a.out, "applying %s", node.ID)

		err = a.applyNode(ctx, node)
		if err != nil {
			return fmt.Errorf("failed to apply %s: %w", node.ID, err)
		}
	}

	return nil
}

func (a *Applier) applyNode(ctx context.Context, node *graph.Node) error {
	switch node.Kind {
	case graph.KindManifestURL:
		source, ok := node.Object.(*graph.ManifestSource)
		if !ok {
			return payloadError(node)
		}

		return a.applyManifest(ctx, source)
	case graph.KindNamespace:
		namespace, ok := node.Object.(*corev1.Namespace)
		if !ok {
			return payloadError(node)
		}

		return k8s.EnsureNamespace(ctx, a.clients.Kubernetes, namespace)
	case graph.KindHelmRelease:
		release, ok := node.Object.(*graph.HelmRelease)
		if !ok || release.Chart == nil {
			return payloadError(node)
		}

		return helm.InstallOrUpgradeChart(ctx, a.helm, release.Repository, release.Chart, a.timeout)
	case graph.KindSecret:
		secret, ok := node.Object.(*corev1.Secret)
		if !ok {
			return payloadError(node)
		}

		return a.applyObject(ctx, secret)
	case graph.KindCustomResource:
		resource, ok := node.Object.(*graph.CustomResource)
		if !ok {
			return payloadError(node)
		}

		err := readiness.WaitForCRDEstablished(ctx, a.clients.APIExtensions, resource.CRD, a.timeout)
		if err != nil {
			return err //nolint:wrapcheck // already names the CRD
		}

		return a.applyObject(ctx, resource.Object)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, node.Kind)
	}
}

func (a *Applier) applyManifest(ctx context.Context, source *graph.ManifestSource) error {
	data, err := a.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch manifest: %w", err)
	}

	objects, err := manifest.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode manifest %s: %w", source.URL, err)
	}

	for _, obj := range objects {
		_, err = k8s.ServerSideApply(ctx, a.clients.Dynamic, a.clients.Mapper, obj, k8s.FieldManager)
		if err != nil {
			return err //nolint:wrapcheck // names the object
		}
	}

	// The manifest usually registers new kinds.
	a.clients.Mapper.Reset()

	notify.Infof(a.out, "applied %d objects from %s", len(objects), source.URL)

	return nil
}

func (a *Applier) applyObject(ctx context.Context, obj any) error {
	u, err := k8s.ToUnstructured(obj)
	if err != nil {
		return err //nolint:wrapcheck // context added by caller
	}

	_, err = k8s.ServerSideApply(ctx, a.clients.Dynamic, a.clients.Mapper, u, k8s.FieldManager)

	return err //nolint:wrapcheck // names the object
}

func payloadError(node *graph.Node) error {
	return fmt.Errorf("%w: %s node holds %T", ErrUnexpectedPayload, node.Kind, node.Object)
}
