// Package secrets resolves named secrets from the environment or a
// SOPS-encrypted file and turns them into stack credentials.
package secrets
