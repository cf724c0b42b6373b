// Package config provides Viper-based configuration for adminctl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/me/adminctl/pkg/adminapi"
)

// Config is the complete adminctl configuration, merged from the config
// file, ADMINCTL_* environment variables, and flags.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	State   StateConfig   `mapstructure:"state"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// APIConfig locates the administration API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StateConfig locates the persisted session state.
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables.
// cfgFile may be empty; the default search path is
// ~/.config/adminctl/config.yaml, then the working directory.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/adminctl")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ADMINCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file is fine, defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url must not be empty")
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", adminapi.DefaultBaseURL)
	v.SetDefault("api.timeout", adminapi.DefaultTimeout)
	v.SetDefault("state.dir", defaultStateDir())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("output.colors", true)
}

// defaultStateDir returns ~/.adminctl, falling back to a relative
// directory when the home directory cannot be resolved.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adminctl"
	}
	return filepath.Join(home, ".adminctl")
}
