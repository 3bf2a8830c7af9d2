// Package fs implements the document store on top of a directory of markdown
// files with YAML frontmatter.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/timeline/pkg/core"
)

// DefaultExtension is appended to IDs that have none.
const DefaultExtension = ".md"

// Repository implements core.Repository and core.Watchable using the filesystem.
// Document IDs are slash-separated paths relative to the root, extension included.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watchers      int
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	Logger       *slog.Logger
	Extensions   []string    // text document extensions, default [".md"]
	ErrorHandler func(error) // receives watcher errors in addition to the log
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{DefaultExtension}
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Get reads a document and its frontmatter.
//
// Workflow:
//  1. Resolve the ID to a file under the root (appending .md when there is no extension).
//  2. Reject files that are not text documents.
//  3. Split the frontmatter from the body and decode it in stored order.
//  4. Stamp the creation time from the filesystem.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	id, fullPath, err := r.resolve(id)
	if err != nil {
		return core.Document{}, err
	}
	if !r.supported(id) {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrUnsupportedDocument, id)
	}

	info, err := os.Stat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to stat %s: %w", id, err)
	}
	if info.IsDir() {
		return core.Document{}, fmt.Errorf("%w: %s is a directory", core.ErrUnsupportedDocument, id)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to read %s: %w", id, err)
	}

	meta, offset, err := parseFrontmatter(data)
	if err != nil {
		r.config.Logger.Warn("ignoring invalid frontmatter", "document", id, "error", err)
	}

	return core.Document{
		ID:         id,
		Content:    string(data),
		BodyOffset: offset,
		Metadata:   meta,
		Created:    creationTime(fullPath, info),
	}, nil
}

// List returns the IDs of the text documents whose path matches the glob pattern.
// An empty pattern matches every document. Hidden directories are skipped.
func (r *Repository) List(ctx context.Context, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	var ids []string
	err := filepath.WalkDir(r.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if p != r.Path && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		id, err := r.relativeID(p)
		if err != nil || !r.supported(id) {
			return nil
		}
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, id); !ok {
				return nil
			}
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.Path, err)
	}

	sort.Strings(ids)
	return ids, nil
}

// resolve maps an ID to a canonical ID and an absolute path inside the root.
func (r *Repository) resolve(id string) (string, string, error) {
	id = path.Clean(strings.TrimPrefix(filepath.ToSlash(id), "/"))
	if id == "." || id == ".." || strings.HasPrefix(id, "../") {
		return "", "", fmt.Errorf("%w: invalid id %q", core.ErrNotFound, id)
	}
	if path.Ext(id) == "" {
		id += DefaultExtension
	}
	return id, filepath.Join(r.Path, filepath.FromSlash(id)), nil
}

// Canonical returns id as the watcher reports it: cleaned, with the default
// extension when it has none. Invalid IDs are returned unchanged.
func (r *Repository) Canonical(id string) string {
	if c, _, err := r.resolve(id); err == nil {
		return c
	}
	return id
}

func (r *Repository) relativeID(fullPath string) (string, error) {
	rel, err := filepath.Rel(r.Path, fullPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (r *Repository) supported(id string) bool {
	ext := strings.ToLower(path.Ext(id))
	for _, e := range r.config.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.Watchable  = (*Repository)(nil)
)
