/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utilities.go
Description: Utility commands for Mercy. Provides the capability listing, self-check,
and version information.
*/

package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kleascm/mercy/pkg/config"
	"github.com/kleascm/mercy/pkg/core"
	"github.com/kleascm/mercy/pkg/logging"
	"github.com/kleascm/mercy/pkg/reporting"
	"github.com/kleascm/mercy/pkg/sysinfo"
	"github.com/spf13/cobra"
)

var examples = []struct {
	description string
	command     string
}{
	{"Print general information for the host system", "mercy -m sys -p system_info -i all"},
	{"Decode an encoded string using base64", "mercy -m decode -p base64 -i bWVyY3kgaXMgcmVhbGx5IGNvb2w="},
	{"Check if a domain is malicious or not", "mercy -m mal -p status -i 'example.com'"},
	{"Identify an unknown string", "mercy -m id -p identify -i 'UCrlEbqe4ppk5dVIHzdxtC7g'"},
	{"List bit-flip candidates for a domain", "mercy mutate example.com --resolve"},
}

// ListCapabilities prints every method, protocol and example
func ListCapabilities(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	theme := reporting.DefaultTheme()
	dispatcher := core.NewDispatcher(core.WithLogger(quietLogger()))

	fmt.Fprintln(out, reporting.CapabilityTable(theme, dispatcher.Capabilities()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render("system_info inputs"))
	fmt.Fprintln(out, strings.Join(sysinfo.Fields, ", "))
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Title.Render("Examples"))
	for _, ex := range examples {
		fmt.Fprintf(out, "%s\n  %s\n", ex.description, ex.command)
	}
	return nil
}

// PerformSelfCheck validates configuration and the host environment
func PerformSelfCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 Mercy - System Self-Check")
	fmt.Fprintln(out, "============================")
	fmt.Fprintln(out)

	cfg, cfgErr := LoadConfig()
	ctx, cancel := context.WithTimeout(commandContext(cmd), 5*time.Second)
	defer cancel()

	checks := []struct {
		name     string
		function func() (string, error)
	}{
		{"Configuration Validation", func() (string, error) { return "", cfgErr }},
		{"Log Directory", func() (string, error) { return checkLogDirectory(cfg) }},
		{"Report Directory", func() (string, error) { return "", checkReportDirectory(cfg) }},
		{"System Information", func() (string, error) { return "", checkSystemInfo(ctx) }},
		{"Network Probe", func() (string, error) { return "", checkNetworkProbe(ctx, cfg) }},
	}

	passed := 0
	total := len(checks)

	for _, check := range checks {
		fmt.Fprintf(out, "🔍 %s... ", check.name)
		detail, err := check.function()
		switch {
		case err != nil:
			fmt.Fprintf(out, "❌ FAILED: %v\n", err)
			continue
		case detail != "":
			fmt.Fprintf(out, "✅ PASSED (%s)\n", detail)
		default:
			fmt.Fprintln(out, "✅ PASSED")
		}
		passed++
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "📊 Results: %d/%d checks passed\n", passed, total)

	if passed != total {
		return fmt.Errorf("%d/%d checks failed", total-passed, total)
	}
	fmt.Fprintln(out, "✨ All checks passed.")
	return nil
}

// PrintVersion prints the source information block
func PrintVersion(cmd *cobra.Command, args []string) {
	fmt.Fprintln(cmd.OutOrStdout(), SourceInfo())
}

// checkLogDirectory verifies the log directory and summarizes the files in it
func checkLogDirectory(cfg *config.Config) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("configuration unavailable")
	}
	if cfg.LogDir == "" {
		return "file logging disabled", nil
	}
	if err := logging.Writable(cfg.LogDir); err != nil {
		return "", fmt.Errorf("log directory %s is not writable: %w", cfg.LogDir, err)
	}

	stats, err := logging.NewLogManager(cfg.LogDir, cfg.LogMaxFiles).GetLogStats()
	if err != nil {
		return "", fmt.Errorf("failed to read log directory: %w", err)
	}
	detail := fmt.Sprintf("%d log files, %d bytes", stats.TotalFiles, stats.TotalSize)
	if stats.NewestFile != "" {
		detail += ", newest " + stats.NewestFile
	}
	return detail, nil
}

func checkReportDirectory(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration unavailable")
	}
	if err := logging.Writable(cfg.Report.OutputDir); err != nil {
		return fmt.Errorf("report directory %s is not writable: %w", cfg.Report.OutputDir, err)
	}
	return nil
}

func checkSystemInfo(ctx context.Context) error {
	_, err := sysinfo.NewProvider().Hostname(ctx)
	return err
}

func checkNetworkProbe(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration unavailable")
	}
	_, err := sysinfo.NewUDPProbe(cfg.Lookup.ProbeAddress).InternalIP(ctx)
	return err
}
