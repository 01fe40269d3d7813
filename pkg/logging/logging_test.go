/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logging_test.go
Description: Tests for the logging system. Covers config validation, console and
file output, the custom formatter, and log retention.
*/

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggerConfigValidate tests config validation
func TestLoggerConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Level = "loud"
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.OutputDir = t.TempDir()
	bad.MaxFiles = 0
	assert.Error(t, bad.Validate())

	_, err := NewLogger(bad)
	assert.Error(t, err)
}

// TestLoggerConsoleOnly tests that nothing is written to disk without OutputDir
func TestLoggerConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = LogLevelDebug
	cfg.Timestamp = false
	cfg.Console = &buf

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	defer logger.Close()

	logger.LogDispatchStats("decode", 2, 1, 0)
	assert.Equal(t, "DEBUG [DISPATCH] summary category=decode failed=0 ok=2 unsupported=1\n", buf.String())
	assert.Empty(t, logger.FilePath())
}

// TestLoggerLevelFilter tests that entries below the level are dropped
func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Console = &buf

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.LogLookup("whois", "example.com", nil)
	assert.Empty(t, buf.String())

	logger.LogLookup("whois", "example.com", errors.New("timeout"))
	assert.Contains(t, buf.String(), "WARNING [LOOKUP] failed")
	assert.Contains(t, buf.String(), "error=timeout")
}

// TestLoggerJSONFormat tests JSON output
func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = LogLevelInfo
	cfg.Format = LogFormatJSON
	cfg.Console = &buf

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.LogMutation("example.com", 33, time.Millisecond, logrus.Fields{"session": "abc"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "MUTATE session complete", entry["msg"])
	assert.Equal(t, "example.com", entry["seed"])
	assert.Equal(t, float64(33), entry["candidates"])
	assert.Equal(t, "abc", entry["session"])
}

// TestLoggerFileOutput tests that the file receives the same lines as the console
func TestLoggerFileOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = LogLevelInfo
	cfg.OutputDir = dir
	cfg.Console = &buf

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	path := logger.FilePath()
	require.NotEmpty(t, path)
	assert.True(t, strings.HasPrefix(filepath.Base(path), FilePrefix))

	logger.GetLogger().Info("MUTATE started")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[MUTATE] started")
	assert.Equal(t, buf.String(), string(data))
}

// TestCustomFormatter tests prefixes, field ordering, and truncation
func TestCustomFormatter(t *testing.T) {
	f := &CustomFormatter{}
	entry := &logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "plain message",
		Data: logrus.Fields{
			"zeta":  strings.Repeat("x", 60),
			"alpha": 5 * time.Second,
			"bytes": []byte{0xde, 0xad},
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	want := "INFO plain message alpha=5s bytes=dead zeta=" + strings.Repeat("x", 50) + "...\n"
	assert.Equal(t, want, string(out))

	assert.Equal(t, "DISPATCH", EventPrefix("DISPATCH ok"))
	assert.Equal(t, "LOOKUP", EventPrefix("LOOKUP whois"))
	assert.Equal(t, "", EventPrefix("nothing here"))
}

// TestLogManager tests retention and statistics
func TestLogManager(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"mercy_2024-01-01_10-00-00.000.log",
		"mercy_2024-01-01_11-00-00.000.log",
		"mercy_2024-01-01_12-00-00.000.log",
		"mercy_2024-01-01_13-00-00.000.log",
		"unrelated.txt",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("line\n"), 0644))
	}

	manager := NewLogManager(dir, 3)
	require.NoError(t, manager.CleanupOldLogs())

	files, err := filepath.Glob(filepath.Join(dir, FilePrefix+"*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.NoFileExists(t, filepath.Join(dir, names[0]))
	assert.FileExists(t, filepath.Join(dir, "unrelated.txt"))

	stats, err := manager.GetLogStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, int64(15), stats.TotalSize)
	assert.Equal(t, names[1], stats.OldestFile)
	assert.Equal(t, names[3], stats.NewestFile)
}

// TestWritable tests the directory writability probe
func TestWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	require.NoError(t, Writable(dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
