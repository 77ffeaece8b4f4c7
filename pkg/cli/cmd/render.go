package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chuistack/certstack/pkg/di"
	"github.com/chuistack/certstack/pkg/fsutil"
	configmanager "github.com/chuistack/certstack/pkg/io/configmanager"
	"github.com/chuistack/certstack/pkg/svc/applier"
	certmanagerinstaller "github.com/chuistack/certstack/pkg/svc/installer/certmanager"
	"github.com/chuistack/certstack/pkg/utils/notify"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	output      string
	force       bool
	showSecrets bool
}

// NewRenderCmd creates the render command.
func NewRenderCmd(runtime *di.Runtime) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the cert-manager stack as YAML without touching a cluster",
		Long: `Render every resource install would apply, in apply order, as multi-document
YAML. The CRD manifest is referenced by URL and the Helm release is written as
a HelmRelease descriptor. Secret values are redacted unless --show-secrets is set.`,
		SilenceUsage: true,
	}

	cfgManager := configmanager.NewCommandConfigManager(cmd, configmanager.RenderFieldSelectors())

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite the output file if it exists")
	cmd.Flags().BoolVar(&flags.showSecrets, "show-secrets", false, "Write secret values instead of a placeholder")

	cmd.RunE = di.RunEWithRuntime(runtime, func(cmd *cobra.Command, injector di.Injector) error {
		return handleRenderRunE(cmd, injector, cfgManager, flags)
	})

	return cmd
}

func handleRenderRunE(
	cmd *cobra.Command,
	injector di.Injector,
	cfgManager *configmanager.ConfigManager,
	flags *renderFlags,
) error {
	// Notifications would corrupt YAML written to stdout.
	toStdout := flags.output == ""

	stack, creds, err := loadStackAndCredentials(cmd, injector, cfgManager, configmanager.LoadOptions{Silent: toStdout})
	if err != nil {
		return err
	}

	resourceGraph, err := certmanagerinstaller.NewCertManagerInstaller(stack, creds, nil).Plan()
	if err != nil {
		return err //nolint:wrapcheck // already wrapped
	}

	var rendered bytes.Buffer

	err = applier.Render(&rendered, resourceGraph, applier.RenderOptions{ShowSecrets: flags.showSecrets})
	if err != nil {
		return err //nolint:wrapcheck // already wrapped
	}

	if toStdout {
		_, err = io.Copy(cmd.OutOrStdout(), &rendered)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		return nil
	}

	err = fsutil.WriteFile(rendered.String(), flags.output, flags.force)
	if err != nil {
		return err //nolint:wrapcheck // names the file
	}

	notify.Successf(cmd.OutOrStdout(), "rendered %d resources to %s", resourceGraph.Len(), flags.output)

	return nil
}
