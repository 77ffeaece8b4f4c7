package cmd

import (
	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/di"
	configmanager "github.com/chuistack/certstack/pkg/io/configmanager"
	"github.com/chuistack/certstack/pkg/svc/applier"
	certmanagerinstaller "github.com/chuistack/certstack/pkg/svc/installer/certmanager"
	"github.com/chuistack/certstack/pkg/utils/notify"
	"github.com/chuistack/certstack/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd(runtime *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install cert-manager and the Let's Encrypt cluster issuers",
		Long: `Apply the cert-manager CRDs, the cert-manager namespace, the cert-manager Helm
release, the optional CloudFlare API key secret and the staging and production
ClusterIssuers, in that order.

Secrets are read from CERTSTACK_SECRET_LETSENCRYPT_EMAIL,
CERTSTACK_SECRET_CLOUDFLARE_EMAIL and CERTSTACK_SECRET_CLOUDFLARE_KEY, or from
the SOPS file set with --secrets-file.`,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.DefaultFieldSelectors())

	cmd.RunE = di.RunEWithRuntime(runtime, di.WithTimer(
		func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
			return handleInstallRunE(cmd, injector, tmr, cfgManager)
		},
	))

	return cmd
}

func handleInstallRunE(
	cmd *cobra.Command,
	injector di.Injector,
	tmr timer.Timer,
	cfgManager *configmanager.ConfigManager,
) error {
	out := cmd.OutOrStdout()

	stack, creds, err := loadStackAndCredentials(cmd, injector, cfgManager, configmanager.LoadOptions{Timer: tmr})
	if err != nil {
		return err
	}

	nextStage(tmr)
	notify.Titlef(out, "🔐", "Install cert-manager...")

	factory, err := di.ResolveClusterClientFactory(injector)
	if err != nil {
		return err
	}

	clients, err := factory.NewClients(stack.Spec.Connection.Kubeconfig, stack.Spec.Connection.Context)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped
	}

	helmClient, err := factory.NewHelmClient(stack.Spec.Connection.Kubeconfig, stack.Spec.Connection.Context)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped
	}

	fetcher, err := di.ResolveManifestFetcher(injector)
	if err != nil {
		return err
	}

	resourceApplier := applier.New(clients, helmClient, fetcher, stack.Spec.Connection.Timeout.Duration, out)

	resources, err := certmanagerinstaller.NewCertManagerInstaller(stack, creds, resourceApplier).
		InstallResources(cmd.Context())
	if err != nil {
		return err //nolint:wrapcheck // already wrapped
	}

	notify.SuccessWithTimerf(out, tmr, "cert-manager %s installed (%d resources, dns solver %s)",
		v1alpha1.CertManagerChartVersion, resources.Graph.Len(), stack.Spec.DNSSolver)
	notify.Infof(out,
		"annotate ingresses with %s: %s until certificates issue, then switch to %s",
		v1alpha1.ClusterIssuerAnnotationKey,
		v1alpha1.StagingClusterIssuerName,
		v1alpha1.ProductionClusterIssuerName,
	)

	return nil
}
