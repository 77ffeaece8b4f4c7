package di

import (
	"fmt"

	"github.com/chuistack/certstack/pkg/client/cloudflare"
	"github.com/chuistack/certstack/pkg/client/manifest"
	"github.com/chuistack/certstack/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

// ResolveTimer retrieves the timer dependency.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveClusterClientFactory retrieves the cluster client factory.
func ResolveClusterClientFactory(injector Injector) (ClusterClientFactory, error) {
	factory, err := do.Invoke[ClusterClientFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve cluster client factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveManifestFetcher retrieves the manifest fetcher.
func ResolveManifestFetcher(injector Injector) (manifest.Fetcher, error) {
	fetcher, err := do.Invoke[manifest.Fetcher](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest fetcher dependency: %w", err)
	}

	return fetcher, nil
}

// ResolveCloudFlareVerifier retrieves the CloudFlare credential verifier.
func ResolveCloudFlareVerifier(injector Injector) (cloudflare.Verifier, error) {
	verifier, err := do.Invoke[cloudflare.Verifier](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve cloudflare verifier dependency: %w", err)
	}

	return verifier, nil
}

// ResolveSecretStoreFactory retrieves the secret store factory.
func ResolveSecretStoreFactory(injector Injector) (SecretStoreFactory, error) {
	factory, err := do.Invoke[SecretStoreFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve secret store factory dependency: %w", err)
	}

	return factory, nil
}

// WithTimer decorates a handler so it receives a started timer.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		tmr.Start()

		return handler(cmd, injector, tmr)
	}
}

// RunEWithRuntime adapts a handler to cobra, running it inside a fresh injector.
func RunEWithRuntime(
	runtime *Runtime,
	handler func(cmd *cobra.Command, injector Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		return runtime.Invoke(func(injector Injector) error {
			return handler(cmd, injector)
		})
	}
}
