// Package client provides the remote clients certstack talks to.
//
//   - helm: Helm repository and chart release management
//   - manifest: remote manifest fetching and decoding
//   - cloudflare: CloudFlare credential preflight
//   - netretry: transient network error classification
package client
