/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config_test.go
Description: Tests for configuration loading and validation.
*/

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mercy.yaml")
	content := `log_level: debug
lookup:
  timeout: 3s
  reputation_url: https://reputation.example.test/v1/{domain}
  dns_server: 9.9.9.9:53
report:
  output_dir: /tmp/mercy
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, "https://reputation.example.test/v1/{domain}", cfg.Lookup.ReputationURL)
	assert.Equal(t, "9.9.9.9:53", cfg.Lookup.DNSServer)
	assert.Equal(t, "/tmp/mercy", cfg.Report.OutputDir)
	assert.Equal(t, "classification", cfg.Lookup.ReputationPath)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MERCY_LOG_FORMAT", "json")
	t.Setenv("MERCY_LOOKUP_CACHE_SIZE", "12")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 12, cfg.Lookup.CacheSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]func(*Config){
		"log level":  func(c *Config) { c.LogLevel = "loud" },
		"log format": func(c *Config) { c.LogFormat = "xml" },
		"timeout":    func(c *Config) { c.Lookup.Timeout = 0 },
		"rate":       func(c *Config) { c.Lookup.RatePerSecond = 0 },
		"dns server": func(c *Config) { c.Lookup.DNSServer = "not a server" },
		"report dir": func(c *Config) { c.Report.OutputDir = "" },
		"reputation": func(c *Config) { c.Lookup.ReputationURL = "::nope" },
		"cache size": func(c *Config) { c.Lookup.CacheSize = 0 },
		"max files":  func(c *Config) { c.LogMaxFiles = 0 },
		"probe":      func(c *Config) { c.Lookup.ProbeAddress = "" },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
