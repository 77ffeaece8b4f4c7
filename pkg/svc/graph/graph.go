package graph

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is an insertion-ordered set of nodes.
type Graph struct {
	nodes map[string]*Node
	index map[string]int
	order []string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		index: make(map[string]int),
	}
}

// Add inserts node. Dependencies may be added later; they are checked by
// TopologicalOrder.
func (g *Graph) Add(node *Node) error {
	if node == nil || node.ID == "" {
		return ErrNilNode
	}

	if _, exists := g.nodes[node.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
	}

	g.index[node.ID] = len(g.order)
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)

	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	node, ok := g.nodes[id]

	return node, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}

	return nodes
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// TopologicalOrder returns the nodes so that every node follows all of its
// dependencies. Ties are broken by insertion order, so the result is stable
// for a given construction sequence.
func (g *Graph) TopologicalOrder() ([]*Node, error) {
	inDegree := make(map[string]int, len(g.order))
	dependents := make(map[string][]string, len(g.order))

	for _, id := range g.order {
		node := g.nodes[id]
		inDegree[id] = 0

		for _, dep := range node.DependsOn {
			if _, ok := g.nodes[dep]; !ok {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, id, dep)
			}
		}
	}

	for _, id := range g.order {
		for _, dep := range uniq(g.nodes[id].DependsOn) {
			inDegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	// Kahn's algorithm with the ready queue kept in insertion order.
	var queue []string

	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	result := make([]*Node, 0, len(g.order))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, g.nodes[id])

		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = g.insertSorted(queue, dependent)
			}
		}
	}

	if len(result) != len(g.order) {
		var stuck []string

		for _, id := range g.order {
			if inDegree[id] > 0 {
				stuck = append(stuck, id)
			}
		}

		return nil, fmt.Errorf("%w between %s", ErrCycle, strings.Join(stuck, ", "))
	}

	return result, nil
}

func (g *Graph) insertSorted(queue []string, id string) []string {
	pos, _ := slices.BinarySearchFunc(queue, id, func(a, b string) int {
		return g.index[a] - g.index[b]
	})

	return slices.Insert(queue, pos, id)
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
