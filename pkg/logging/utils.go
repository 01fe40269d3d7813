/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Log retention for Mercy. Prunes old log files beyond a retention count
and reports statistics about the log directory.
*/

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LogManager applies retention to a log directory
type LogManager struct {
	logDir   string
	maxFiles int
}

// NewLogManager creates a new log manager
func NewLogManager(logDir string, maxFiles int) *LogManager {
	return &LogManager{logDir: logDir, maxFiles: maxFiles}
}

// files returns Mercy log files oldest first. Names embed a sortable timestamp.
func (lm *LogManager) files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(lm.logDir, FilePrefix+"*.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob log files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// CleanupOldLogs removes the oldest files beyond maxFiles
func (lm *LogManager) CleanupOldLogs() error {
	if lm.logDir == "" || lm.maxFiles <= 0 {
		return nil
	}

	files, err := lm.files()
	if err != nil {
		return err
	}
	if len(files) <= lm.maxFiles {
		return nil
	}

	for _, file := range files[:len(files)-lm.maxFiles] {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", file, err)
		}
	}
	return nil
}

// LogStats holds statistics about log files
type LogStats struct {
	TotalFiles int       `json:"total_files"`
	TotalSize  int64     `json:"total_size"`
	OldestFile string    `json:"oldest_file"`
	NewestFile string    `json:"newest_file"`
	NewestTime time.Time `json:"newest_time"`
}

// GetLogStats returns statistics about log files
func (lm *LogManager) GetLogStats() (*LogStats, error) {
	files, err := lm.files()
	if err != nil {
		return nil, err
	}

	stats := &LogStats{TotalFiles: len(files)}
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		stats.TotalSize += info.Size()
		if info.ModTime().After(stats.NewestTime) {
			stats.NewestTime = info.ModTime()
		}
	}
	if len(files) > 0 {
		stats.OldestFile = filepath.Base(files[0])
		stats.NewestFile = filepath.Base(files[len(files)-1])
	}
	return stats, nil
}

// Writable reports whether the directory exists (or can be created) and accepts new files
func Writable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".mercy-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
