/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Mercy commands. Provides configuration loading,
logging setup, and dispatcher assembly used across all command implementations.
*/

package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/kleascm/mercy/pkg/config"
	"github.com/kleascm/mercy/pkg/core"
	"github.com/kleascm/mercy/pkg/logging"
	"github.com/kleascm/mercy/pkg/lookup"
	"github.com/kleascm/mercy/pkg/sysinfo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build information
const (
	Name    = "mercy"
	Version = "1.2.0"
	Author  = "KleaSCM"
)

// SourceInfo returns the author/version/documentation block
func SourceInfo() string {
	return fmt.Sprintf("Author: %s\nVersion: %s\nDocumentation: run `%s list` for every method and protocol", Author, Version, Name)
}

// LoadConfig loads configuration from flags, files and environment
func LoadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), viper.GetString("config"))
}

// SetupLogging configures the logging system from cfg
func SetupLogging(cfg *config.Config) (*logging.Logger, error) {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(cfg.LogLevel),
		Format:    logging.LogFormat(cfg.LogFormat),
		OutputDir: cfg.LogDir,
		MaxFiles:  cfg.LogMaxFiles,
		Timestamp: true,
	})
}

// runtimeEnv bundles what a command needs to execute
type runtimeEnv struct {
	cfg        *config.Config
	logger     *logging.Logger
	lookup     *lookup.Client
	stats      *core.StatsReporter
	dispatcher *core.Dispatcher
}

// setup loads config and logging and assembles the dispatcher
func setup() (*runtimeEnv, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := SetupLogging(cfg)
	if err != nil {
		return nil, err
	}

	client, err := lookup.NewClient(cfg.Lookup, lookup.WithLogger(logger.GetLogger()))
	if err != nil {
		logger.Close()
		return nil, err
	}

	stats := core.NewStatsReporter()
	dispatcher := core.NewDispatcher(
		core.WithLogger(logger.GetLogger()),
		core.WithAddressResolver(sysinfo.NewUDPProbe(cfg.Lookup.ProbeAddress)),
		core.WithNetworkLookup(client),
		core.WithReporter(stats),
	)

	return &runtimeEnv{cfg: cfg, logger: logger, lookup: client, stats: stats, dispatcher: dispatcher}, nil
}

// close logs the dispatch tallies and releases the logger
func (e *runtimeEnv) close() {
	snapshot := e.stats.Snapshot()
	categories := make([]string, 0, len(snapshot))
	for c := range snapshot {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		o := snapshot[c]
		e.logger.LogDispatchStats(c, o.Ok, o.Unsupported, o.Failed)
	}

	if err := e.logger.Close(); err != nil {
		e.logger.GetLogger().WithError(err).Warn("Failed to close logger")
	}
}

// commandContext returns the command's context or a background context
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// quietLogger discards everything; used where no configured logger exists yet
func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
