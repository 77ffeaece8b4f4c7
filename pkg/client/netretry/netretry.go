// Package netretry provides shared retry utilities for transient network errors
// hit while talking to chart repositories, manifest hosts and the API server.
package netretry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"regexp"
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	utilnet "k8s.io/apimachinery/pkg/util/net"
)

// httpStatusCodePattern matches HTTP 5xx and 429 status codes at word
// boundaries so port numbers like ":5000" do not match.
var httpStatusCodePattern = regexp.MustCompile(`\b(50[0-4]|429)\b`)

// textPatterns are transient failures that only surface as wrapped strings,
// for example from Helm's getter.
//
//nolint:gochecknoglobals // read-only lookup table
var textPatterns = []string{
	"Internal Server Error", "Bad Gateway",
	"Service Unavailable", "Gateway Timeout",
	"Too Many Requests",
	"connection reset by peer", "connection refused",
	"i/o timeout", "TLS handshake timeout",
	"unexpected EOF", "no such host",
}

// IsRetryable returns true if the error indicates a transient network error
// that should be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if isTransientAPIError(err) || isTransientNetError(err) {
		return true
	}

	errMsg := err.Error()

	for _, pattern := range textPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return httpStatusCodePattern.MatchString(errMsg)
}

func isTransientAPIError(err error) bool {
	return apierrors.IsServerTimeout(err) ||
		apierrors.IsTimeout(err) ||
		apierrors.IsTooManyRequests(err) ||
		apierrors.IsServiceUnavailable(err) ||
		apierrors.IsInternalError(err)
}

func isTransientNetError(err error) bool {
	if utilnet.IsConnectionReset(err) ||
		utilnet.IsConnectionRefused(err) ||
		utilnet.IsProbableEOF(err) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// ExponentialDelay returns min(baseWait * 2^(attempt-1), maxWait).
func ExponentialDelay(
	attempt int,
	baseWait, maxWait time.Duration,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	return min(baseWait*time.Duration(1<<(attempt-1)), maxWait)
}

// Policy bounds a retry loop.
type Policy struct {
	MaxAttempts int
	BaseWait    time.Duration
	MaxWait     time.Duration
}

// Do calls operation until it succeeds, fails with a non-retryable error or
// the policy runs out of attempts. The last error is returned unwrapped so
// callers can add their own context.
func Do(ctx context.Context, policy Policy, operation func(ctx context.Context) error) error {
	attempts := max(policy.MaxAttempts, 1)

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}

		if !IsRetryable(lastErr) || attempt == attempts {
			break
		}

		timer := time.NewTimer(ExponentialDelay(attempt, policy.BaseWait, policy.MaxWait))
		select {
		case <-ctx.Done():
			timer.Stop()

			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return lastErr
}
