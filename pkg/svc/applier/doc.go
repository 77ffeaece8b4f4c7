// Package applier applies a resource graph to a cluster in dependency order,
// or renders it as multi-document YAML without touching the cluster.
package applier
