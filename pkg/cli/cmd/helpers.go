package cmd

import (
	"fmt"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/di"
	configmanager "github.com/chuistack/certstack/pkg/io/configmanager"
	"github.com/chuistack/certstack/pkg/svc/secrets"
	"github.com/chuistack/certstack/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// configFilePath returns the --config value when the command inherits the flag.
func configFilePath(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup(configFlag)
	if flag == nil {
		return ""
	}

	return flag.Value.String()
}

// loadStackAndCredentials loads the configuration and resolves every secret
// it requires, failing on the first one missing.
func loadStackAndCredentials(
	cmd *cobra.Command,
	injector di.Injector,
	cfgManager *configmanager.ConfigManager,
	opts configmanager.LoadOptions,
) (*v1alpha1.Stack, v1alpha1.Credentials, error) {
	cfgManager.Writer = cmd.OutOrStdout()
	cfgManager.SetConfigFile(configFilePath(cmd))

	stack, err := cfgManager.Load(opts)
	if err != nil {
		return nil, v1alpha1.Credentials{}, fmt.Errorf("failed to load config: %w", err)
	}

	storeFactory, err := di.ResolveSecretStoreFactory(injector)
	if err != nil {
		return nil, v1alpha1.Credentials{}, err
	}

	creds, err := secrets.ResolveCredentials(stack, storeFactory(stack.Spec.Secrets.File))
	if err != nil {
		return nil, v1alpha1.Credentials{}, err //nolint:wrapcheck // names the secret
	}

	err = stack.ValidateCredentials(creds)
	if err != nil {
		return nil, v1alpha1.Credentials{}, fmt.Errorf("invalid credentials: %w", err)
	}

	return stack, creds, nil
}

func nextStage(tmr timer.Timer) {
	if tmr != nil {
		tmr.NewStage()
	}
}
