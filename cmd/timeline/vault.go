package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/timeline"
)

// resolveRoot returns the vault root: the --vault flag, else the nearest marked
// ancestor of the working directory, else the working directory itself.
func resolveRoot() (string, error) {
	if vaultDir != "" {
		return filepath.Abs(vaultDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if root, err := timeline.FindRoot(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

// openService wires the service for the CLI. Notices go to stderr.
func openService(root string, extra ...timeline.Option) (*timeline.Service, error) {
	opts := []timeline.Option{
		timeline.WithLogger(slog.Default()),
		timeline.WithNotifier(stderrNotifier{}),
	}
	if configPath != "" {
		opts = append(opts, timeline.WithConfigPath(configPath))
	}
	return timeline.New(root, append(opts, extra...)...)
}

// documentID maps a CLI argument to a document ID. A path to an existing file is
// taken relative to the working directory; anything else is already an ID.
func documentID(root, arg string) string {
	if abs, err := filepath.Abs(arg); err == nil {
		if _, err := os.Stat(abs); err == nil {
			if rel, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(arg)
}

type stderrNotifier struct{}

func (stderrNotifier) Notify(msg string) {
	fmt.Fprintf(os.Stderr, "timeline: %s\n", msg)
}
