package cmd

import (
	"context"
	"fmt"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/client/cloudflare"
	"github.com/chuistack/certstack/pkg/client/manifest"
	"github.com/chuistack/certstack/pkg/di"
	configmanager "github.com/chuistack/certstack/pkg/io/configmanager"
	"github.com/chuistack/certstack/pkg/utils/notify"
	"github.com/chuistack/certstack/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd(runtime *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check configuration, secrets and remote prerequisites",
		Long: `Load the configuration and secrets, then concurrently check that the CRD
manifest can be fetched and, with --dns-solver CloudFlare, that CloudFlare
accepts the global API key for the configured email.`,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.RenderFieldSelectors())

	cmd.RunE = di.RunEWithRuntime(runtime, di.WithTimer(
		func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
			return handleVerifyRunE(cmd, injector, tmr, cfgManager)
		},
	))

	return cmd
}

func handleVerifyRunE(
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

	fetcher, err := di.ResolveManifestFetcher(injector)
	if err != nil {
		return err
	}

	verifier, err := di.ResolveCloudFlareVerifier(injector)
	if err != nil {
		return err
	}

	var (
		objects int
		account *cloudflare.Account
	)

	tasks := []notify.ProgressTask{{
		Name: "crd-manifest",
		Fn: func(ctx context.Context) error {
			data, err := fetcher.Fetch(ctx, v1alpha1.CertManagerCRDsURL)
			if err != nil {
				return err //nolint:wrapcheck // named by the task
			}

			decoded, err := manifest.Decode(data)
			if err != nil {
				return err //nolint:wrapcheck // named by the task
			}

			objects = len(decoded)

			return nil
		},
	}}

	if stack.Spec.DNSSolver.CloudFlareEnabled() {
		tasks = append(tasks, notify.ProgressTask{
			Name: "cloudflare-credentials",
			Fn: func(ctx context.Context) error {
				verified, err := verifier.Verify(ctx, creds.CloudFlareEmail, creds.CloudFlareAPIKey)
				if err != nil {
					return err //nolint:wrapcheck // named by the task
				}

				account = verified

				return nil
			},
		})
	}

	group := notify.NewProgressGroup("Verify prerequisites", "🩺", out,
		notify.WithLabels(notify.CheckingLabels()),
		notify.WithTimer(tmr),
	)

	err = group.Run(cmd.Context(), tasks...)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	notify.Activityf(out, "CRD manifest reachable (%d objects)", objects)

	if account != nil {
		notify.Activityf(out, "CloudFlare key accepted for %s (%d zones)", account.Email, len(account.Zones))
	} else {
		notify.Activityf(out, "dns solver %s, skipping CloudFlare check", stack.Spec.DNSSolver)
	}

	notify.Successf(out, "prerequisites verified")

	return nil
}
