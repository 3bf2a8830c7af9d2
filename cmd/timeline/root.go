package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	vaultDir   string
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Build chronological timelines from markdown notes",
	Long: `Timeline reads a markdown note, splits it into entries, dates each entry by the
first date phrase it mentions and groups the dated entries by month and day.

Relative phrases ("next friday") are read against the note's reference date: a
reference directive in its timeline block, a frontmatter property, or the file's
creation time.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&vaultDir, "vault", "C", "", "Vault root (default: nearest directory holding .timeline, .obsidian or .git)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: <vault>/.timeline/config.yaml)")
}
