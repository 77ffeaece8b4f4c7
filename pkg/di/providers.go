package di

import (
	"github.com/chuistack/certstack/pkg/client/cloudflare"
	"github.com/chuistack/certstack/pkg/client/helm"
	"github.com/chuistack/certstack/pkg/client/manifest"
	"github.com/chuistack/certstack/pkg/k8s"
	"github.com/chuistack/certstack/pkg/svc/secrets"
	"github.com/chuistack/certstack/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// ClusterClientFactory creates cluster clients once the target is known.
type ClusterClientFactory interface {
	NewClients(kubeconfig, context string) (*k8s.Clients, error)
	NewHelmClient(kubeconfig, context string) (helm.Interface, error)
}

// DefaultClusterClientFactory builds real clients from a kubeconfig.
type DefaultClusterClientFactory struct{}

var _ ClusterClientFactory = DefaultClusterClientFactory{}

// NewClients implements ClusterClientFactory.
func (DefaultClusterClientFactory) NewClients(kubeconfig, context string) (*k8s.Clients, error) {
	return k8s.NewClients(kubeconfig, context) //nolint:wrapcheck // already wrapped
}

// NewHelmClient implements ClusterClientFactory.
func (DefaultClusterClientFactory) NewHelmClient(kubeconfig, context string) (helm.Interface, error) {
	return helm.NewClient(kubeconfig, context) //nolint:wrapcheck // already wrapped
}

// SecretStoreFactory builds the secret store for an optional SOPS file.
type SecretStoreFactory func(sopsFile string) secrets.Store

// NewRuntime constructs the shared runtime container used by the root command.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideClusterClientFactory,
		provideManifestFetcher,
		provideCloudFlareVerifier,
		provideSecretStoreFactory,
	)
}

func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

func provideClusterClientFactory(i Injector) error {
	do.ProvideValue[ClusterClientFactory](i, DefaultClusterClientFactory{})

	return nil
}

func provideManifestFetcher(i Injector) error {
	do.Provide(i, func(Injector) (manifest.Fetcher, error) {
		return manifest.NewHTTPFetcher(), nil
	})

	return nil
}

func provideCloudFlareVerifier(i Injector) error {
	do.Provide(i, func(Injector) (cloudflare.Verifier, error) {
		return cloudflare.NewClient("", nil), nil
	})

	return nil
}

func provideSecretStoreFactory(i Injector) error {
	do.ProvideValue[SecretStoreFactory](i, secrets.NewDefaultStore)

	return nil
}
