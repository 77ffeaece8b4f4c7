package cmd

import (
	"context"
	"fmt"

	"github.com/chuistack/certstack/pkg/cli/ui/errorhandler"
	"github.com/chuistack/certstack/pkg/di"
	"github.com/spf13/cobra"
)

const configFlag = "config"

// NewRootCmd creates the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command over a custom runtime.
func NewRootCmdWithRuntime(runtime *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certstack",
		Short: "Install cert-manager with Let's Encrypt cluster issuers",
		Long: `certstack installs cert-manager v0.10.0 together with two Let's Encrypt
ClusterIssuers, letsencrypt-staging and letsencrypt-prod. Both issuers solve
HTTP-01 challenges through the nginx ingress class; with --dns-solver CloudFlare
they also solve DNS-01 challenges for ingresses labelled use-cloudflare-solver=true.`,
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().String(
		configFlag,
		"",
		"Config file (default is ./certstack.yaml, then $HOME/.config/certstack/certstack.yaml)",
	)

	cmd.AddCommand(NewInstallCmd(runtime))
	cmd.AddCommand(NewRenderCmd(runtime))
	cmd.AddCommand(NewAnnotationsCmd())
	cmd.AddCommand(NewVerifyCmd(runtime))

	return cmd
}

// Execute runs the root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	err := errorhandler.NewExecutor().Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// Help only fails when the output writer does.
	_ = cmd.Help()

	return nil
}
