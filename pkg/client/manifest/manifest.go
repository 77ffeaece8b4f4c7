// Package manifest fetches remote Kubernetes manifests and decodes them into
// unstructured objects.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chuistack/certstack/pkg/client/netretry"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
)

const (
	defaultFetchTimeout = 30 * time.Second
	maxManifestBytes    = 16 << 20
	decodeBufferSize    = 4096

	fetchMaxRetries    = 4
	fetchRetryBaseWait = time.Second
	fetchRetryMaxWait  = 10 * time.Second
)

// ErrUnexpectedStatus is returned when the manifest host answers with a
// non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// ErrManifestTooLarge is returned when a manifest exceeds the size limit.
var ErrManifestTooLarge = errors.New("manifest too large")

// Fetcher retrieves manifests by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches manifests over HTTP(S) and retries transient failures.
type HTTPFetcher struct {
	client *http.Client
	policy netretry.Policy
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = client
	}
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy netretry.Policy) Option {
	return func(f *HTTPFetcher) {
		f.policy = policy
	}
}

// NewHTTPFetcher creates a fetcher with a 30s request timeout.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	fetcher := &HTTPFetcher{
		client: &http.Client{Timeout: defaultFetchTimeout},
		policy: netretry.Policy{
			MaxAttempts: fetchMaxRetries,
			BaseWait:    fetchRetryBaseWait,
			MaxWait:     fetchRetryMaxWait,
		},
	}

	for _, opt := range opts {
		opt(fetcher)
	}

	return fetcher
}

// Fetch downloads url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := netretry.Do(ctx, f.policy, func(ctx context.Context) error {
		data, fetchErr := f.fetchOnce(ctx, url)
		if fetchErr != nil {
			return fetchErr
		}

		body = data

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch manifest %s: %w", url, err)
	}

	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// The status code is part of the message so netretry can classify it.
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if len(data) > maxManifestBytes {
		return nil, ErrManifestTooLarge
	}

	return data, nil
}

// Decode splits a multi-document YAML or JSON manifest into objects. Empty
// documents are skipped.
func Decode(data []byte) ([]*unstructured.Unstructured, error) {
	decoder := utilyaml.NewYAMLOrJSONDecoder(bytes.NewReader(data), decodeBufferSize)

	var objects []*unstructured.Unstructured

	for {
		var raw map[string]any

		err := decoder.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("decode manifest document %d: %w", len(objects)+1, err)
		}

		if len(raw) == 0 {
			continue
		}

		objects = append(objects, &unstructured.Unstructured{Object: raw})
	}

	return objects, nil
}
