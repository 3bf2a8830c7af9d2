package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// replaceFile swaps the settings file at path for data with a single rename.
// An existing file keeps its permissions; a new one is created 0644.
func replaceFile(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	staged := tmp.Name()
	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(staged)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
