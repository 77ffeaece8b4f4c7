package readiness

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// PollForReadinessWithInterval exposes the polling loop with a custom interval.
func PollForReadinessWithInterval(
	ctx context.Context,
	interval, deadline time.Duration,
	check wait.ConditionWithContextFunc,
) error {
	return pollForReadiness(ctx, interval, deadline, check)
}
