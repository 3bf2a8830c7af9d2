package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/timeline/pkg/config"
)

// rootMarkers identify a vault root, in order of preference.
var rootMarkers = []string{config.DefaultDir, ".obsidian", ".git"}

// FindRoot recursively looks upwards for a vault root indicator.
// Indicators are: .timeline directory, .obsidian directory, or .git directory.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, marker := range rootMarkers {
			if hasFile(dir, marker) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
