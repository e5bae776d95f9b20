// Package config loads importer settings from flags, environment and an
// optional config file, and validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ACCIMPORT_FORMAT.
const EnvPrefix = "ACCIMPORT"

// Config holds every setting of an import run.
type Config struct {
	Format     string `mapstructure:"format" validate:"oneof=markdown json yaml pdf html"`
	OutputDir  string `mapstructure:"output_dir"`
	DataHost   string `mapstructure:"data_host" validate:"omitempty,url"`
	PathFilter string `mapstructure:"path_filter" validate:"required"`

	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Interval      time.Duration `mapstructure:"interval" validate:"gte=0"`
	MaxPages      int           `mapstructure:"max_pages" validate:"gte=1"`
	RespectRobots bool          `mapstructure:"respect_robots"`

	Debug   bool `mapstructure:"debug"`
	Quiet   bool `mapstructure:"quiet"`
	LogJSON bool `mapstructure:"log_json"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", "markdown")
	v.SetDefault("path_filter", "/accessories/")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("interval", time.Second)
	v.SetDefault("max_pages", 100)
	v.SetDefault("respect_robots", true)
}

// ReadFile configures v to read cfgFile, or .accimport.yaml from the home
// and working directories when cfgFile is empty. A missing default file
// is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".accimport")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatValidationError(e))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", e.Field(), e.Param(), e.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", e.Field(), e.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag())
	}
}
