package configmanager

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes configuration environment variables, e.g.
	// CERTSTACK_SPEC_DNSSOLVER.
	EnvPrefix = "CERTSTACK"
	// ConfigName is the config file name without extension.
	ConfigName = "certstack"
	// UserConfigDir is searched after the working directory.
	UserConfigDir = "$HOME/.config/certstack"
)

// configKeys are bound to environment variables explicitly so Unmarshal sees
// them even when no config file sets the key.
//
//nolint:gochecknoglobals // fixed key list
var configKeys = []string{
	"apiVersion",
	"kind",
	"spec.dnsSolver",
	"spec.connection.kubeconfig",
	"spec.connection.context",
	"spec.connection.timeout",
	"spec.secrets.file",
}

// InitializeViper creates a viper instance with certstack's search paths and
// environment handling.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()

	viperInstance.SetConfigName(ConfigName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.AddConfigPath(UserConfigDir)

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperInstance.AutomaticEnv()

	for _, key := range configKeys {
		_ = viperInstance.BindEnv(key)
	}

	return viperInstance
}
