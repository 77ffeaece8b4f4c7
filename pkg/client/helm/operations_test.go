package helm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chuistack/certstack/pkg/client/helm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	errRepositoryConnection    = errors.New("failed to connect to repository")
	errChartInstallationFailed = errors.New("chart installation failed")
	errServiceUnavailable      = errors.New("503 Service Unavailable")
)

func testRepo() *helm.RepositoryEntry {
	return &helm.RepositoryEntry{Name: "jetstack", URL: "https://charts.jetstack.io"}
}

func testChart() *helm.ChartSpec {
	return &helm.ChartSpec{
		ReleaseName: "cert-manager",
		ChartName:   "jetstack/cert-manager",
		Namespace:   "cert-manager",
		Version:     "v0.10.0",
		RepoURL:     "https://charts.jetstack.io",
		Wait:        true,
	}
}

func TestInstallOrUpgradeChart_Success(t *testing.T) {
	t.Parallel()

	mockClient := helm.NewMockInterface(t)
	timeout := 5 * time.Minute

	mockClient.EXPECT().AddRepository(
		mock.Anything,
		mock.MatchedBy(func(entry *helm.RepositoryEntry) bool {
			return entry.Name == "jetstack" && entry.URL == "https://charts.jetstack.io"
		}),
		timeout,
	).Return(nil)

	mockClient.EXPECT().InstallOrUpgradeChart(
		mock.Anything,
		mock.MatchedBy(func(spec *helm.ChartSpec) bool {
			return spec.ReleaseName == "cert-manager" &&
				spec.Version == "v0.10.0" &&
				spec.Timeout == timeout
		}),
	).Return(&helm.ReleaseInfo{Name: "cert-manager"}, nil)

	err := helm.InstallOrUpgradeChart(context.Background(), mockClient, testRepo(), testChart(), timeout)

	require.NoError(t, err)
}

func TestInstallOrUpgradeChart_DoesNotMutateSpec(t *testing.T) {
	t.Parallel()

	mockClient := helm.NewMockInterface(t)
	mockClient.EXPECT().AddRepository(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockClient.EXPECT().InstallOrUpgradeChart(mock.Anything, mock.Anything).
		Return(&helm.ReleaseInfo{}, nil)

	spec := testChart()

	err := helm.InstallOrUpgradeChart(context.Background(), mockClient, testRepo(), spec, time.Minute)

	require.NoError(t, err)
	assert.Zero(t, spec.Timeout)
}

func TestInstallOrUpgradeChart_AddRepositoryError(t *testing.T) {
	t.Parallel()

	mockClient := helm.NewMockInterface(t)
	mockClient.EXPECT().AddRepository(mock.Anything, mock.Anything, mock.Anything).
		Return(errRepositoryConnection)

	err := helm.InstallOrUpgradeChart(context.Background(), mockClient, testRepo(), testChart(), time.Minute)

	require.ErrorIs(t, err, errRepositoryConnection)
	assert.Contains(t, err.Error(), "failed to add jetstack repository")
}

func TestInstallOrUpgradeChart_NilRepositorySkipsAdd(t *testing.T) {
	t.Parallel()

	mockClient := helm.NewMockInterface(t)
	mockClient.EXPECT().InstallOrUpgradeChart(mock.Anything, mock.Anything).
		Return(&helm.ReleaseInfo{}, nil)

	err := helm.InstallOrUpgradeChart(context.Background(), mockClient, nil, testChart(), time.Minute)

	require.NoError(t, err)
}

func TestInstallChartWithRetry_PermanentError(t *testing.T) {
	t.Parallel()

	mockClient := helm.NewMockInterface(t)
	mockClient.EXPECT().InstallOrUpgradeChart(mock.Anything, mock.Anything).
		Return(nil, errChartInstallationFailed).Once()

	err := helm.InstallChartWithRetry(context.Background(), mockClient, testChart())

	require.ErrorIs(t, err, errChartInstallationFailed)
	assert.Contains(t, err.Error(), "failed to install jetstack/cert-manager chart")
}

func TestInstallChartWithRetry_CancelledDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	mockClient := helm.NewMockInterface(t)
	mockClient.EXPECT().InstallOrUpgradeChart(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *helm.ChartSpec) (*helm.ReleaseInfo, error) {
			cancel()

			return nil, errServiceUnavailable
		}).Once()

	err := helm.InstallChartWithRetry(ctx, mockClient, testChart())

	require.ErrorIs(t, err, context.Canceled)
}
