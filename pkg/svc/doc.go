// Package svc provides the service layer between the CLI commands and the
// cluster clients.
//
// Subpackages:
//   - graph: resource DAG with deterministic topological order
//   - issuer: ClusterIssuer and DNS solver secret builders
//   - installer: component installers that plan resource graphs
//   - applier: applies or renders a resource graph
//   - secrets: secret stores backed by the environment and SOPS files
package svc
