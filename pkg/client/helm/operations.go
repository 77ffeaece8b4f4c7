package helm

import (
	"context"
	"fmt"
	"time"

	"github.com/chuistack/certstack/pkg/client/netretry"
)

const (
	// ContextTimeoutBuffer is added to the Helm timeout so the Go context
	// outlives Helm's own kstatus wait.
	ContextTimeoutBuffer = 5 * time.Minute

	chartInstallMaxRetries    = 5
	chartInstallRetryBaseWait = 3 * time.Second
	chartInstallRetryMaxWait  = 30 * time.Second
)

// InstallOrUpgradeChart adds the repository and installs or upgrades the
// chart, retrying transient failures.
func InstallOrUpgradeChart(
	ctx context.Context,
	client Interface,
	repo *RepositoryEntry,
	spec *ChartSpec,
	timeout time.Duration,
) error {
	if repo != nil {
		addRepoErr := client.AddRepository(ctx, repo, timeout)
		if addRepoErr != nil {
			return fmt.Errorf("failed to add %s repository: %w", repo.Name, addRepoErr)
		}
	}

	chart := *spec
	if chart.Timeout == 0 {
		chart.Timeout = timeout
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeoutOrDefault(chart.Timeout)+ContextTimeoutBuffer)
	defer cancel()

	return InstallChartWithRetry(timeoutCtx, client, &chart)
}

// InstallChartWithRetry installs a chart, retrying on transient network
// errors (429 rate limits, 5xx server errors, connection resets).
func InstallChartWithRetry(ctx context.Context, client Interface, spec *ChartSpec) error {
	err := netretry.Do(ctx, netretry.Policy{
		MaxAttempts: chartInstallMaxRetries,
		BaseWait:    chartInstallRetryBaseWait,
		MaxWait:     chartInstallRetryMaxWait,
	}, func(ctx context.Context) error {
		_, installErr := client.InstallOrUpgradeChart(ctx, spec)

		return installErr
	})
	if err != nil {
		return fmt.Errorf("failed to install %s chart: %w", spec.ChartName, err)
	}

	return nil
}
