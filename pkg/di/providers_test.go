package di_test

import (
	"testing"
	"time"

	"github.com/chuistack/certstack/pkg/di"
	"github.com/chuistack/certstack/pkg/svc/secrets"
	"github.com/chuistack/certstack/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTimer struct{ started bool }

func (s *stubTimer) Start()    { s.started = true }
func (s *stubTimer) NewStage() {}

func (s *stubTimer) GetTiming() (time.Duration, time.Duration) { return 0, 0 }

func TestNewRuntime_ResolvesDefaults(t *testing.T) {
	t.Parallel()

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		tmr, err := di.ResolveTimer(injector)
		require.NoError(t, err)
		assert.NotNil(t, tmr)

		factory, err := di.ResolveClusterClientFactory(injector)
		require.NoError(t, err)
		assert.IsType(t, di.DefaultClusterClientFactory{}, factory)

		fetcher, err := di.ResolveManifestFetcher(injector)
		require.NoError(t, err)
		assert.NotNil(t, fetcher)

		verifier, err := di.ResolveCloudFlareVerifier(injector)
		require.NoError(t, err)
		assert.NotNil(t, verifier)

		storeFactory, err := di.ResolveSecretStoreFactory(injector)
		require.NoError(t, err)
		assert.IsType(t, secrets.ChainStore{}, storeFactory(""))

		return nil
	})

	require.NoError(t, err)
}

func TestResolvers_Missing(t *testing.T) {
	t.Parallel()

	err := di.New().Invoke(func(injector di.Injector) error {
		_, err := di.ResolveTimer(injector)
		assert.ErrorContains(t, err, "resolve timer dependency")

		_, err = di.ResolveClusterClientFactory(injector)
		assert.ErrorContains(t, err, "resolve cluster client factory dependency")

		_, err = di.ResolveManifestFetcher(injector)
		assert.ErrorContains(t, err, "resolve manifest fetcher dependency")

		_, err = di.ResolveCloudFlareVerifier(injector)
		assert.ErrorContains(t, err, "resolve cloudflare verifier dependency")

		_, err = di.ResolveSecretStoreFactory(injector)
		assert.ErrorContains(t, err, "resolve secret store factory dependency")

		return nil
	})

	require.NoError(t, err)
}

func TestWithTimer_StartsOverriddenTimer(t *testing.T) {
	t.Parallel()

	tmr := &stubTimer{}
	override := func(i di.Injector) error {
		do.OverrideValue[timer.Timer](i, tmr)

		return nil
	}

	var received timer.Timer

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		return di.WithTimer(func(_ *cobra.Command, _ di.Injector, tm timer.Timer) error {
			received = tm

			return nil
		})(&cobra.Command{}, injector)
	}, override)

	require.NoError(t, err)
	assert.Same(t, tmr, received)
	assert.True(t, tmr.started)
}
