// Package issuer builds the Let's Encrypt ClusterIssuers and the optional
// DNS-01 credential Secret they reference.
//
// Building never fails: features that are not enabled in the configuration
// are simply left out.
package issuer
