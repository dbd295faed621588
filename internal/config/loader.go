package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/incsweep/internal/sweep"
)

// envPrefix is the environment variable prefix for incsweep settings.
const envPrefix = "INCSWEEP"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// DefaultBuildTimeout bounds a single build invocation unless overridden.
const DefaultBuildTimeout = 2 * time.Minute

// DefaultFormat is the default report output format.
const DefaultFormat = "table"

// Load resolves configuration from defaults and INCSWEEP_* environment
// variables. overrides are applied last, so command-line flags win; nil
// values in overrides leave the resolved value untouched.
func Load(overrides map[string]any) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	for key, value := range overrides {
		if value == nil {
			continue
		}

		viperCfg.Set(key, value)
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("build_command", "")
	viperCfg.SetDefault("path", ".")
	viperCfg.SetDefault("extensions", sweep.DefaultExtensions)
	viperCfg.SetDefault("build_timeout", DefaultBuildTimeout)
	viperCfg.SetDefault("format", DefaultFormat)
	viperCfg.SetDefault("all", false)
	viperCfg.SetDefault("no_color", false)
	viperCfg.SetDefault("silent", false)
}
