// Package installer defines the contract shared by component installers.
//
// An installer first plans its component as a resource graph (see
// [graph.Graph]) and then hands the graph to an [Applier]. Planning never
// touches the cluster, so the same graph can be rendered for review.
package installer
