package graph_test

import (
	"testing"

	"github.com/chuistack/certstack/pkg/svc/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(nodes []*graph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.ID)
	}

	return out
}

func mustAdd(t *testing.T, g *graph.Graph, id string, deps ...string) {
	t.Helper()

	require.NoError(t, g.Add(&graph.Node{ID: id, Kind: graph.KindSecret, DependsOn: deps}))
}

func TestGraph_Add(t *testing.T) {
	t.Parallel()

	g := graph.New()

	require.ErrorIs(t, g.Add(nil), graph.ErrNilNode)
	require.ErrorIs(t, g.Add(&graph.Node{}), graph.ErrNilNode)

	mustAdd(t, g, "a")
	require.ErrorIs(t, g.Add(&graph.Node{ID: "a"}), graph.ErrDuplicateNode)

	node, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, "a", node.ID)

	_, ok = g.Node("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, g.Len())
}

func TestGraph_TopologicalOrder_LinearChain(t *testing.T) {
	t.Parallel()

	g := graph.New()
	mustAdd(t, g, "issuers", "secret")
	mustAdd(t, g, "crds")
	mustAdd(t, g, "chart", "namespace")
	mustAdd(t, g, "secret", "chart")
	mustAdd(t, g, "namespace", "crds")

	order, err := g.TopologicalOrder()

	require.NoError(t, err)
	assert.Equal(t, []string{"crds", "namespace", "chart", "secret", "issuers"}, ids(order))
}

func TestGraph_TopologicalOrder_TiesFollowInsertionOrder(t *testing.T) {
	t.Parallel()

	g := graph.New()
	mustAdd(t, g, "root")
	mustAdd(t, g, "z", "root")
	mustAdd(t, g, "a", "root")
	mustAdd(t, g, "m", "root", "root")

	order, err := g.TopologicalOrder()

	require.NoError(t, err)
	assert.Equal(t, []string{"root", "z", "a", "m"}, ids(order))
}

func TestGraph_TopologicalOrder_DependenciesFirst(t *testing.T) {
	t.Parallel()

	g := graph.New()
	mustAdd(t, g, "d", "b", "c")
	mustAdd(t, g, "c", "a")
	mustAdd(t, g, "b", "a")
	mustAdd(t, g, "a")

	order, err := g.TopologicalOrder()
	require.NoError(t, err)

	position := make(map[string]int)
	for i, node := range order {
		position[node.ID] = i
	}

	for _, node := range g.Nodes() {
		for _, dep := range node.DependsOn {
			assert.Less(t, position[dep], position[node.ID], "%s before %s", dep, node.ID)
		}
	}
}

func TestGraph_TopologicalOrder_Cycle(t *testing.T) {
	t.Parallel()

	g := graph.New()
	mustAdd(t, g, "a", "c")
	mustAdd(t, g, "b", "a")
	mustAdd(t, g, "c", "b")
	mustAdd(t, g, "free")

	order, err := g.TopologicalOrder()

	require.ErrorIs(t, err, graph.ErrCycle)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "a, b, c")
}

func TestGraph_TopologicalOrder_UnknownDependency(t *testing.T) {
	t.Parallel()

	g := graph.New()
	mustAdd(t, g, "issuer", "secret")

	_, err := g.TopologicalOrder()

	require.ErrorIs(t, err, graph.ErrUnknownDependency)
	assert.Contains(t, err.Error(), "issuer depends on secret")
}

func TestNodeID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Secret/cert-manager/cloudflare-key",
		graph.NodeID(graph.KindSecret, "cert-manager", "cloudflare-key"))
	assert.Equal(t, "Namespace/cert-manager", graph.NodeID(graph.KindNamespace, "cert-manager"))
}

func TestDependsOnNodes(t *testing.T) {
	t.Parallel()

	secret := &graph.Node{ID: "secret"}

	assert.Equal(t, []string{"secret"}, graph.DependsOnNodes(secret, nil))
	assert.Empty(t, graph.DependsOnNodes(nil))
}
