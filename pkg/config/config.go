// Package config loads and saves the persisted timeline settings.
//
// The file holds four keys:
//
//	useRegex:   false    # match `reference` as a pattern instead of an exact key
//	reference:  created  # metadata key (or pattern) holding the reference date
//	sort:       asc      # default direction, asc or desc
//	singleLine: false    # one entry per line instead of per paragraph
//
// Environment variables prefixed with TIMELINE_ (e.g. TIMELINE_SORT) override the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/timeline/pkg/core"
)

// Keys of the persisted settings.
const (
	KeyUseRegex   = "useRegex"
	KeyReference  = "reference"
	KeySort       = "sort"
	KeySingleLine = "singleLine"
)

// DefaultDir is the hidden directory holding the settings file inside a vault.
const DefaultDir = ".timeline"

// DefaultPath returns the settings file location for a vault root.
func DefaultPath(root string) string {
	return filepath.Join(root, DefaultDir, "config.yaml")
}

// File is the on-disk shape of the settings.
type File struct {
	UseRegex   bool   `yaml:"useRegex"`
	Reference  string `yaml:"reference"`
	Sort       string `yaml:"sort"`
	SingleLine bool   `yaml:"singleLine"`
}

// FromSettings converts settings to their on-disk shape.
func FromSettings(s core.Settings) File {
	return File{
		UseRegex:   s.UseReferencePattern,
		Reference:  s.ReferenceKeyOrPattern,
		Sort:       string(s.DefaultSortOrder),
		SingleLine: s.Delimiter == core.SingleLine,
	}
}

// Settings validates the file and converts it to settings.
func (f File) Settings() (core.Settings, error) {
	order, err := core.ParseSortOrder(f.Sort)
	if err != nil {
		return core.Settings{}, fmt.Errorf("invalid %s: %w", KeySort, err)
	}
	s := core.Settings{
		UseReferencePattern:   f.UseRegex,
		ReferenceKeyOrPattern: f.Reference,
		DefaultSortOrder:      order,
		Delimiter:             core.BlankLine,
	}
	if f.SingleLine {
		s.Delimiter = core.SingleLine
	}
	return s, nil
}

// Load reads settings from path (optional: a missing file yields the defaults) and
// applies TIMELINE_* environment overrides.
func Load(path string) (core.Settings, error) {
	def := FromSettings(core.DefaultSettings())

	v := viper.New()
	v.SetDefault(KeyUseRegex, def.UseRegex)
	v.SetDefault(KeyReference, def.Reference)
	v.SetDefault(KeySort, def.Sort)
	v.SetDefault(KeySingleLine, def.SingleLine)
	v.SetEnvPrefix("TIMELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return core.Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	f := File{
		UseRegex:   v.GetBool(KeyUseRegex),
		Reference:  v.GetString(KeyReference),
		Sort:       v.GetString(KeySort),
		SingleLine: v.GetBool(KeySingleLine),
	}
	return f.Settings()
}

// Save writes the settings to path, replacing the whole file atomically.
func Save(path string, s core.Settings) error {
	data, err := yaml.Marshal(FromSettings(s))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return replaceFile(path, data)
}

// Apply returns a copy of s with one persisted key changed.
func Apply(s core.Settings, key, value string) (core.Settings, error) {
	f := FromSettings(s)
	switch strings.ToLower(key) {
	case strings.ToLower(KeyUseRegex):
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", KeyUseRegex, err)
		}
		f.UseRegex = b
	case strings.ToLower(KeyReference):
		f.Reference = value
	case strings.ToLower(KeySort):
		f.Sort = value
	case strings.ToLower(KeySingleLine):
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("invalid %s: %w", KeySingleLine, err)
		}
		f.SingleLine = b
	default:
		return s, fmt.Errorf("unknown setting %q", key)
	}
	return f.Settings()
}
