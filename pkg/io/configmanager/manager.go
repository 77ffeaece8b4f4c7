package configmanager

import (
	"errors"
	"fmt"
	"io"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/fsutil"
	"github.com/chuistack/certstack/pkg/utils/envvar"
	"github.com/chuistack/certstack/pkg/utils/notify"
	"github.com/chuistack/certstack/pkg/utils/timer"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Timer enables timing output in notifications when provided.
	Timer timer.Timer
	// Silent suppresses all loading notifications when true.
	Silent bool
	// IgnoreConfigFile skips reading on-disk config files when true (flags/defaults only).
	IgnoreConfigFile bool
}

// ConfigManager loads and caches a v1alpha1.Stack.
type ConfigManager struct {
	Viper  *viper.Viper
	Config *v1alpha1.Stack
	Writer io.Writer

	fieldSelectors  []FieldSelector
	command         *cobra.Command
	configLoaded    bool
	configFileFound bool
}

// NewConfigManager creates a configuration manager with the given field selectors.
func NewConfigManager(writer io.Writer, fieldSelectors ...FieldSelector) *ConfigManager {
	if writer == nil {
		writer = io.Discard
	}

	return &ConfigManager{
		Viper:          InitializeViper(),
		Config:         v1alpha1.NewStack(),
		Writer:         writer,
		fieldSelectors: fieldSelectors,
	}
}

// NewCommandConfigManager constructs a ConfigManager bound to cmd. It registers
// a flag per selector and writes notifications to the command's output.
func NewCommandConfigManager(cmd *cobra.Command, selectors []FieldSelector) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout(), selectors...)
	manager.command = cmd
	manager.AddFlagsFromFields(cmd)

	return manager
}

// SetConfigFile reads path instead of searching for certstack.yaml.
func (m *ConfigManager) SetConfigFile(path string) {
	if path != "" {
		m.Viper.SetConfigFile(path)
	}
}

// ConfigFileUsed returns the config file that was read, if any.
func (m *ConfigManager) ConfigFileUsed() string {
	if !m.configFileFound {
		return ""
	}

	return m.Viper.ConfigFileUsed()
}

// Load reads, merges, defaults and validates the configuration. Later calls
// return the cached result.
func (m *ConfigManager) Load(opts LoadOptions) (*v1alpha1.Stack, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	if !opts.Silent {
		notify.Titlef(m.Writer, "⏳", "Load config...")
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig(opts.Silent)
		if err != nil {
			return nil, err
		}
	}

	overrides := m.captureChangedFlagValues()

	err := m.unmarshalAndApplyDefaults()
	if err != nil {
		return nil, err
	}

	err = m.applyFlagOverrides(overrides)
	if err != nil {
		return nil, err
	}

	err = m.expandPaths()
	if err != nil {
		return nil, err
	}

	err = m.Config.Validate()
	if err != nil {
		if !opts.Silent {
			notify.Errorf(m.Writer, "%s", err)
		}

		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if !opts.Silent {
		if opts.Timer != nil {
			notify.SuccessWithTimerf(m.Writer, opts.Timer, "config loaded")
		} else {
			notify.Successf(m.Writer, "config loaded")
		}
	}

	m.configLoaded = true

	return m.Config, nil
}

func (m *ConfigManager) readConfig(silent bool) error {
	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false

		if !silent {
			notify.Activityf(m.Writer, "no %s.yaml found, using defaults", ConfigName)
		}

		return nil
	}

	m.configFileFound = true

	if !silent {
		notify.Activityf(m.Writer, "'%s' found", m.Viper.ConfigFileUsed())
	}

	return nil
}

func (m *ConfigManager) unmarshalAndApplyDefaults() error {
	// A config file must declare its own apiVersion and kind so validation
	// can reject foreign documents.
	if m.configFileFound {
		m.Config.APIVersion = ""
		m.Config.Kind = ""
	}

	err := m.Viper.Unmarshal(m.Config, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = decodeHooks()
	})
	if err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	for _, selector := range m.fieldSelectors {
		fieldPtr := selector.Selector(m.Config)
		if fieldPtr != nil && isFieldEmpty(fieldPtr) {
			setFieldValue(fieldPtr, selector.DefaultValue)
		}
	}

	m.Config.ApplyDefaults()

	return nil
}

func (m *ConfigManager) captureChangedFlagValues() map[string]string {
	if m.command == nil {
		return nil
	}

	overrides := make(map[string]string)

	m.command.Flags().Visit(func(f *pflag.Flag) {
		overrides[f.Name] = f.Value.String()
	})

	return overrides
}

func (m *ConfigManager) applyFlagOverrides(overrides map[string]string) error {
	for _, selector := range m.fieldSelectors {
		value, ok := overrides[selector.Flag]
		if !ok {
			continue
		}

		err := setFieldValueFromFlag(selector.Selector(m.Config), value)
		if err != nil {
			return fmt.Errorf("failed to apply flag override for %s: %w", selector.Flag, err)
		}
	}

	return nil
}

// expandPaths resolves ${VAR} placeholders and a leading ~ in path fields.
func (m *ConfigManager) expandPaths() error {
	for _, path := range []*string{&m.Config.Spec.Connection.Kubeconfig, &m.Config.Spec.Secrets.File} {
		expanded, err := fsutil.ExpandHomePath(envvar.Expand(*path))
		if err != nil {
			return fmt.Errorf("failed to expand %q: %w", *path, err)
		}

		*path = expanded
	}

	return nil
}
