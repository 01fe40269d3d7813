/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Writes session reports to the report directory. Handles timestamped,
type-specific subdirectory naming and writes indented JSON for easy analysis.
*/

package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteResult writes result as JSON under outputDir/reportType and returns the file path
func WriteResult(outputDir, reportType, name string, result interface{}) (string, error) {
	dir := filepath.Join(outputDir, reportType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// 2024-06-11_01-30-00_mutate_example.com.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%s.json", timestamp, reportType, sanitize(name))
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// WriteSession writes a mutate session report
func WriteSession(outputDir string, s *Session) (string, error) {
	name := s.Seed
	if len(s.ID) >= 8 {
		name += "_" + s.ID[:8]
	}
	return WriteResult(outputDir, "mutate", name, s)
}

// sanitize keeps file names portable
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" {
		return "empty"
	}
	return name
}
