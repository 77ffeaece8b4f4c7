package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
)

// ErrSecretNotFound is returned when no store holds the requested secret.
var ErrSecretNotFound = errors.New("secret not found")

// EnvPrefix prefixes every secret environment variable.
const EnvPrefix = "CERTSTACK_SECRET_"

// Store looks up secrets by name.
type Store interface {
	// Require returns the secret value or an error wrapping ErrSecretNotFound.
	Require(name string) (string, error)
}

// EnvStore reads secrets from environment variables named by EnvKey.
type EnvStore struct {
	lookup func(string) (string, bool)
}

var _ Store = (*EnvStore)(nil)

// NewEnvStore creates a store backed by the process environment.
func NewEnvStore() *EnvStore {
	return &EnvStore{lookup: os.LookupEnv}
}

// Require implements Store. Empty values count as missing.
func (s *EnvStore) Require(name string) (string, error) {
	key := EnvKey(name)

	value, ok := s.lookup(key)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s (set %s)", ErrSecretNotFound, name, key)
	}

	return value, nil
}

// EnvKey converts a secret name to its environment variable,
// e.g. cloudflareEmail becomes CERTSTACK_SECRET_CLOUDFLARE_EMAIL.
func EnvKey(name string) string {
	var key strings.Builder

	key.WriteString(EnvPrefix)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			key.WriteByte('_')
		}

		if r == '-' || r == '.' {
			key.WriteByte('_')

			continue
		}

		key.WriteRune(unicode.ToUpper(r))
	}

	return key.String()
}

// ChainStore asks each store in turn and returns the first hit. Errors other
// than ErrSecretNotFound stop the chain.
type ChainStore []Store

var _ Store = ChainStore(nil)

// Require implements Store.
func (c ChainStore) Require(name string) (string, error) {
	for _, store := range c {
		value, err := store.Require(name)
		if err == nil {
			return value, nil
		}

		if !errors.Is(err, ErrSecretNotFound) {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: %s", ErrSecretNotFound, name)
}

// NewDefaultStore returns the environment store, followed by a SOPS store
// when sopsFile is set.
func NewDefaultStore(sopsFile string) Store {
	chain := ChainStore{NewEnvStore()}

	if sopsFile != "" {
		chain = append(chain, NewSOPSStore(sopsFile))
	}

	return chain
}

// ResolveCredentials looks up every secret the stack requires and fails on
// the first one missing.
func ResolveCredentials(stack *v1alpha1.Stack, store Store) (v1alpha1.Credentials, error) {
	var creds v1alpha1.Credentials

	targets := map[string]*string{
		v1alpha1.SecretLetsEncryptEmail: &creds.LetsEncryptEmail,
		v1alpha1.SecretCloudFlareEmail:  &creds.CloudFlareEmail,
		v1alpha1.SecretCloudFlareKey:    &creds.CloudFlareAPIKey,
	}

	for _, name := range stack.RequiredSecrets() {
		value, err := store.Require(name)
		if err != nil {
			return v1alpha1.Credentials{}, fmt.Errorf("failed to resolve secret %s: %w", name, err)
		}

		*targets[name] = value
	}

	return creds, nil
}
