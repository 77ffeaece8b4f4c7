// Package graph models the resources of a stack as a directed acyclic graph.
//
// Each node carries a typed payload and the IDs of the nodes that must be
// applied before it. TopologicalOrder yields a deterministic apply order in
// which every node follows its dependencies.
package graph
