package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// DefaultPollInterval is the interval between readiness checks.
const DefaultPollInterval = 2 * time.Second

// PollForReadiness calls check every DefaultPollInterval until it reports
// true, returns an error, or deadline elapses.
func PollForReadiness(
	ctx context.Context,
	deadline time.Duration,
	check wait.ConditionWithContextFunc,
) error {
	return pollForReadiness(ctx, DefaultPollInterval, deadline, check)
}

func pollForReadiness(
	ctx context.Context,
	interval, deadline time.Duration,
	check wait.ConditionWithContextFunc,
) error {
	err := wait.PollUntilContextTimeout(ctx, interval, deadline, true, check)
	if err == nil {
		return nil
	}

	if wait.Interrupted(err) && !errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w after %s", ErrTimeoutExceeded, deadline)
	}

	return err
}
