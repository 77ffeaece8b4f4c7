// Package apis provides the API types read and produced by certstack.
//
//   - certstack: the Stack configuration
//   - certmanager: the cert-manager ClusterIssuer objects certstack emits
package apis
