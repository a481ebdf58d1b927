package scenario

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/numanim/internal/system"
)

// DefaultDir is where batch looks for scenarios when none is given.
var DefaultDir = filepath.Join("input", "scenarios")

// GenerateScenarioPath creates a timestamped scenario filename in dir
func GenerateScenarioPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scenario_%s.yaml", timestamp))
}

// FindLatestScenario finds the most recent scenario file in dir
func FindLatestScenario(dir string) (string, error) {
	path, err := system.FindLatestFile(dir, ".yaml", ".yml")
	if err != nil {
		return "", fmt.Errorf("no scenario files found in %s: %w", dir, err)
	}
	return path, nil
}
