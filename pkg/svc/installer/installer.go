package installer

import (
	"context"

	"github.com/chuistack/certstack/pkg/svc/graph"
)

// Installer composes a component into a resource graph and applies it.
type Installer interface {
	// Plan builds the resource graph without touching the cluster.
	Plan() (*graph.Graph, error)

	// Install plans the component and applies the graph.
	Install(ctx context.Context) error
}

// Applier applies a resource graph to a cluster.
type Applier interface {
	Apply(ctx context.Context, g *graph.Graph) error
}
