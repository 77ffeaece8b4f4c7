package secrets

// NewEnvStoreWithLookup creates an EnvStore over a custom lookup.
func NewEnvStoreWithLookup(lookup func(string) (string, bool)) *EnvStore {
	return &EnvStore{lookup: lookup}
}

// NewSOPSStoreWithDecrypt creates a SOPSStore with a custom decrypt step.
func NewSOPSStoreWithDecrypt(path string, decrypt func([]byte) ([]byte, error)) *SOPSStore {
	return &SOPSStore{path: path, decrypt: decrypt}
}
