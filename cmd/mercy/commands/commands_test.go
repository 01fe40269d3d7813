/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: commands_test.go
Description: Tests for the command handlers, driven through viper keys the way the
root command binds its flags.
*/

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("log_level", "error")
	viper.Set("report.output_dir", t.TempDir())

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd, &out
}

// TestRunDispatch tests that the root flags dispatch a single result line
func TestRunDispatch(t *testing.T) {
	cmd, out := newTestCommand(t)
	viper.Set("method", "decode")
	viper.Set("protocol", "base64")
	viper.Set("input", "YXphemVsbTNkajNk")

	require.NoError(t, Run(cmd, nil))
	assert.Equal(t, "azazelm3dj3d\n", out.String())
}

// TestRunUnknownMethod tests the parse sentinel for unknown and empty methods
func TestRunUnknownMethod(t *testing.T) {
	cmd, out := newTestCommand(t)
	require.NoError(t, Run(cmd, nil))
	assert.Equal(t, "Unable to parse provided arguments\n", out.String())
}

// TestRunInvalidConfig tests that invalid configuration is reported
func TestRunInvalidConfig(t *testing.T) {
	cmd, _ := newTestCommand(t)
	viper.Set("log_level", "loud")
	viper.Set("method", "decode")

	err := Run(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

// TestRunLogsDispatchStats tests that dispatch tallies reach the log file on close
func TestRunLogsDispatchStats(t *testing.T) {
	cmd, _ := newTestCommand(t)
	logDir := t.TempDir()
	viper.Set("log_level", "debug")
	viper.Set("log_dir", logDir)
	viper.Set("method", "decode")
	viper.Set("protocol", "base64")
	viper.Set("input", "bWVyY3k=")

	require.NoError(t, Run(cmd, nil))

	files, err := filepath.Glob(filepath.Join(logDir, "mercy_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DISPATCH] summary category=decode failed=0 ok=1 unsupported=0")
}

// TestSetupRegistersStats tests that every dispatch is tallied
func TestSetupRegistersStats(t *testing.T) {
	newTestCommand(t)
	env, err := setup()
	require.NoError(t, err)
	defer env.close()

	ctx := context.Background()
	_, err = env.dispatcher.Dispatch(ctx, "hash", "md5", "mercy")
	require.NoError(t, err)
	_, err = env.dispatcher.Dispatch(ctx, "hash", "crc32", "mercy")
	require.NoError(t, err)
	_, err = env.dispatcher.Dispatch(ctx, "lookup", "whois", "")
	require.NoError(t, err)

	snapshot := env.stats.Snapshot()
	assert.Equal(t, 1, snapshot["hash"].Ok)
	assert.Equal(t, 1, snapshot["hash"].Unsupported)
	assert.Equal(t, 1, snapshot["lookup"].Unsupported)
	assert.Zero(t, snapshot["lookup"].Failed)
}

// TestPerformSelfCheckLogStats tests the log directory summary line
func TestPerformSelfCheckLogStats(t *testing.T) {
	cmd, out := newTestCommand(t)
	logDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "mercy_2024-06-11_01-30-00.000.log"), []byte("hello"), 0644))
	viper.Set("log_dir", logDir)

	// The network step depends on the host, so only the log step is checked.
	_ = PerformSelfCheck(cmd, nil)
	assert.Contains(t, out.String(), "Log Directory... ✅ PASSED (1 log files, 5 bytes, newest mercy_2024-06-11_01-30-00.000.log)")
	assert.Contains(t, out.String(), "Configuration Validation... ✅ PASSED\n")
}

// TestRunExtended tests the -e listing
func TestRunExtended(t *testing.T) {
	cmd, out := newTestCommand(t)
	viper.Set("extended", true)

	require.NoError(t, Run(cmd, nil))
	for _, want := range []string{"decode", "base64, rot13", "system_info", "hostname, cpu_cores", "mercy -m sys -p system_info -i all"} {
		assert.Contains(t, out.String(), want)
	}
}

// TestRunMutateReport tests candidate output and the JSON session report
func TestRunMutateReport(t *testing.T) {
	cmd, out := newTestCommand(t)
	reportDir := viper.GetString("report.output_dir")
	viper.Set("mutate.report", true)

	require.NoError(t, RunMutate(cmd, []string{"a.co"}))
	assert.Equal(t, "c.co\ne.co\ni.co\nq.co\n", out.String())

	files, err := filepath.Glob(filepath.Join(reportDir, "mutate", "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var report struct {
		Seed       string `json:"seed"`
		Candidates []struct {
			Domain string `json:"domain"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "a.co", report.Seed)
	assert.Len(t, report.Candidates, 4)
}

// TestRunMutateTable tests the table rendering
func TestRunMutateTable(t *testing.T) {
	cmd, out := newTestCommand(t)
	viper.Set("mutate.table", true)

	require.NoError(t, RunMutate(cmd, []string{"a.co"}))
	assert.Contains(t, out.String(), "Bit-flip candidates for a.co")
	assert.Equal(t, 1, strings.Count(out.String(), "q.co"))
}

// TestPrintVersion tests the source information block
func TestPrintVersion(t *testing.T) {
	cmd, out := newTestCommand(t)
	PrintVersion(cmd, nil)
	assert.Contains(t, out.String(), "Author: "+Author)
	assert.Contains(t, out.String(), "Version: "+Version)
}
