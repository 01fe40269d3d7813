/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config.go
Description: Configuration for Mercy. Loads settings from viper (flags, MERCY_*
environment variables, optional config file), applies defaults, and validates the
result with go-playground/validator.
*/

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix (MERCY_LOG_LEVEL, ...)
const EnvPrefix = "MERCY"

// Config is the complete runtime configuration
type Config struct {
	LogLevel    string       `mapstructure:"log_level" validate:"oneof=debug info warn warning error fatal"`
	LogFormat   string       `mapstructure:"log_format" validate:"oneof=text json custom"`
	LogDir      string       `mapstructure:"log_dir"`
	LogMaxFiles int          `mapstructure:"log_max_files" validate:"gte=1"`
	Lookup      LookupConfig `mapstructure:"lookup"`
	Report      ReportConfig `mapstructure:"report"`
}

// LookupConfig controls the network lookup collaborators
type LookupConfig struct {
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RatePerSecond  float64       `mapstructure:"rate_per_second" validate:"gt=0"`
	Burst          int           `mapstructure:"burst" validate:"gte=1"`
	CacheSize      int           `mapstructure:"cache_size" validate:"gte=1"`
	ReputationURL  string        `mapstructure:"reputation_url" validate:"omitempty,url"`
	ReputationPath string        `mapstructure:"reputation_path" validate:"required"`
	DNSServer      string        `mapstructure:"dns_server" validate:"required,hostname_port"`
	ProbeAddress   string        `mapstructure:"probe_address" validate:"required,hostname_port"`
}

// ReportConfig controls mutate session reports
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	return &Config{
		LogLevel:    "warn",
		LogFormat:   "custom",
		LogDir:      "",
		LogMaxFiles: 10,
		Lookup: LookupConfig{
			Timeout:        10 * time.Second,
			RatePerSecond:  2,
			Burst:          1,
			CacheSize:      256,
			ReputationPath: "classification",
			DNSServer:      "1.1.1.1:53",
			ProbeAddress:   "8.8.8.8:80",
		},
		Report: ReportConfig{
			OutputDir: "./mercy_reports",
		},
	}
}

// SetDefaults registers defaults on v so unset keys resolve
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_dir", d.LogDir)
	v.SetDefault("log_max_files", d.LogMaxFiles)
	v.SetDefault("lookup.timeout", d.Lookup.Timeout)
	v.SetDefault("lookup.rate_per_second", d.Lookup.RatePerSecond)
	v.SetDefault("lookup.burst", d.Lookup.Burst)
	v.SetDefault("lookup.cache_size", d.Lookup.CacheSize)
	v.SetDefault("lookup.reputation_url", d.Lookup.ReputationURL)
	v.SetDefault("lookup.reputation_path", d.Lookup.ReputationPath)
	v.SetDefault("lookup.dns_server", d.Lookup.DNSServer)
	v.SetDefault("lookup.probe_address", d.Lookup.ProbeAddress)
	v.SetDefault("report.output_dir", d.Report.OutputDir)
}

// Load reads an optional config file, environment, and defaults from v
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config against its struct rules
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
