package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/timeline/pkg/adapters/fs"
	"github.com/aretw0/timeline/pkg/config"
	"github.com/aretw0/timeline/pkg/core"
)

// Open returns the document store for uri.
// The uri argument is adapter-specific (a directory for "fs").
func Open(uri string, opts ...Option) (core.Repository, error) {
	return open(uri, applyOptions(opts))
}

func open(uri string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	switch o.adapter {
	case "fs":
		return openFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// openFS opens an existing directory of markdown files.
func openFS(path string, o *options) (core.Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open vault %s: not a directory", abs)
	}

	return fs.NewRepository(fs.Config{
		Path:         abs,
		Logger:       o.logger,
		Extensions:   o.extensions,
		ErrorHandler: o.errorHandler,
	}), nil
}

// LoadSettings returns the settings in effect for the vault at root.
func LoadSettings(root string, opts ...Option) (core.Settings, error) {
	return loadSettings(root, applyOptions(opts))
}

func loadSettings(root string, o *options) (core.Settings, error) {
	if o.settings != nil {
		return *o.settings, nil
	}
	path := o.configPath
	if path == "" {
		path = config.DefaultPath(root)
	}
	s, err := config.Load(path)
	if err != nil {
		return core.Settings{}, err
	}
	if o.logger != nil {
		o.logger.Debug("settings loaded", "path", path, "sort", s.DefaultSortOrder, "delimiter", s.Delimiter)
	}
	return s, nil
}

// SettingsPath returns the settings file used for the vault at root.
func SettingsPath(root string, opts ...Option) string {
	o := applyOptions(opts)
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultPath(root)
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
