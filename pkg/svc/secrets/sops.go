package secrets

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/getsops/sops/v3/decrypt"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSecretsFile is returned when a decrypted file is not a flat map
// of scalars.
var ErrInvalidSecretsFile = errors.New("invalid secrets file")

// SOPSStore reads secrets from a SOPS-encrypted YAML file holding a flat map
// of names to values. Keys are resolved the same way the sops CLI does it
// (age via SOPS_AGE_KEY_FILE, cloud KMS via ambient credentials).
type SOPSStore struct {
	path    string
	decrypt func(data []byte) ([]byte, error)

	once   sync.Once
	values map[string]string
	err    error
}

var _ Store = (*SOPSStore)(nil)

// NewSOPSStore creates a store for path. The file is decrypted on first use.
func NewSOPSStore(path string) *SOPSStore {
	return &SOPSStore{path: path, decrypt: decryptYAML}
}

// Require implements Store.
func (s *SOPSStore) Require(name string) (string, error) {
	s.once.Do(s.load)

	if s.err != nil {
		return "", s.err
	}

	value, ok := s.values[name]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s (not in %s)", ErrSecretNotFound, name, s.path)
	}

	return value, nil
}

func (s *SOPSStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.err = fmt.Errorf("failed to read secrets file: %w", err)

		return
	}

	plain, err := s.decrypt(data)
	if err != nil {
		s.err = fmt.Errorf("failed to decrypt %s: %w", s.path, err)

		return
	}

	values, err := parseFlatMap(plain)
	if err != nil {
		s.err = fmt.Errorf("%w: %s: %w", ErrInvalidSecretsFile, s.path, err)

		return
	}

	s.values = values
}

// parseFlatMap reads a YAML mapping of scalars. Values keep their source text,
// so numbers and booleans come back exactly as written.
func parseFlatMap(data []byte) (map[string]string, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	values := map[string]string{}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return values, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a map", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}

		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %q must be a scalar", key.Line, key.Value)
		}

		if value.ShortTag() == "!!null" {
			values[key.Value] = ""

			continue
		}

		values[key.Value] = value.Value
	}

	return values, nil
}

func decryptYAML(data []byte) ([]byte, error) {
	plain, err := decrypt.Data(data, "yaml")
	if err != nil {
		return nil, fmt.Errorf("sops: %w", err)
	}

	return plain, nil
}
