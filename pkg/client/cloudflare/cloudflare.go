// Package cloudflare checks CloudFlare credentials before they are handed to
// cert-manager's DNS-01 solver.
package cloudflare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	cf "github.com/cloudflare/cloudflare-go"
)

// ErrCredentialsRejected is returned when CloudFlare refuses the email and
// global API key pair.
var ErrCredentialsRejected = errors.New("cloudflare rejected the credentials")

// ErrEmailMismatch is returned when the key belongs to another account email.
var ErrEmailMismatch = errors.New("cloudflare account email does not match")

// Account summarises what the credentials can reach.
type Account struct {
	Email string
	Zones []string
}

// Verifier checks a CloudFlare email and global API key pair.
type Verifier interface {
	Verify(ctx context.Context, email, apiKey string) (*Account, error)
}

// Client verifies credentials against the CloudFlare v4 API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries *int
}

var _ Verifier = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMaxRetries caps how often rate-limited and 5xx requests are retried.
// Retries are attempted back to back.
func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) {
		c.maxRetries = &retries
	}
}

// NewClient returns a client for the public CloudFlare API. baseURL and
// httpClient may be empty or nil to use the defaults.
func NewClient(baseURL string, httpClient *http.Client, opts ...ClientOption) *Client {
	client := &Client{baseURL: baseURL, httpClient: httpClient}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Verify authenticates with the legacy global API key, the only scheme the
// pinned cert-manager release supports, and lists the zones it can manage.
func (c *Client) Verify(ctx context.Context, email, apiKey string) (*Account, error) {
	var opts []cf.Option
	if c.baseURL != "" {
		opts = append(opts, cf.BaseURL(c.baseURL))
	}

	if c.httpClient != nil {
		opts = append(opts, cf.HTTPClient(c.httpClient))
	}

	if c.maxRetries != nil {
		opts = append(opts, cf.UsingRetryPolicy(*c.maxRetries, 0, 0))
	}

	api, err := cf.New(apiKey, email, opts...)
	if err != nil {
		return nil, fmt.Errorf("create cloudflare client: %w", err)
	}

	user, err := api.UserDetails(ctx)
	if err != nil {
		if isAuthError(err) {
			return nil, fmt.Errorf("%w: %w", ErrCredentialsRejected, err)
		}

		return nil, fmt.Errorf("look up cloudflare user: %w", err)
	}

	if !strings.EqualFold(user.Email, email) {
		return nil, fmt.Errorf("%w: key belongs to %s", ErrEmailMismatch, user.Email)
	}

	zones, err := api.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cloudflare zones: %w", err)
	}

	account := &Account{Email: user.Email, Zones: make([]string, 0, len(zones))}
	for _, zone := range zones {
		account.Zones = append(account.Zones, zone.Name)
	}

	return account, nil
}

// isAuthError reports whether CloudFlare answered 401 or 403.
func isAuthError(err error) bool {
	var (
		authz *cf.AuthorizationError
		authn *cf.AuthenticationError
	)

	return errors.As(err, &authz) || errors.As(err, &authn)
}
