// Package cmd provides the certstack command-line interface.
//
// Subcommands:
//   - install: apply the cert-manager stack to a cluster
//   - render: write the stack as YAML without touching a cluster
//   - annotations: print the ingress annotations selecting each issuer
//   - verify: check that the CRD manifest and DNS credentials are usable
package cmd
