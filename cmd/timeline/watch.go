package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/timeline/pkg/adapters/lifecycle"
	"github.com/aretw0/timeline/pkg/pipeline"
	"github.com/aretw0/timeline/pkg/render"
)

var watchCmd = &cobra.Command{
	Use:   "watch [note]",
	Short: "Rebuild the timeline of a note every time it changes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		root, err := resolveRoot()
		if err != nil {
			fatal("Error resolving vault", err)
		}
		svc, err := openService(root)
		if err != nil {
			fatal("Error initializing timeline", err)
		}

		src := lifecycle.NewSource(svc, documentID(root, args[0]), nil)
		if err := src.Start(ctx); err != nil {
			fatal("Error watching note", err)
		}

		for e := range src.Events() {
			u, ok := e.(pipeline.Update)
			if !ok {
				continue
			}
			slog.Debug("timeline update", "update", u.String())
			printUpdate(u)
		}
	},
}

func printUpdate(u pipeline.Update) {
	fmt.Fprint(os.Stdout, "\033[H\033[2J")
	switch {
	case u.Err != nil:
		fmt.Fprintf(os.Stderr, "Error building timeline: %v\n", u.Err)
	case u.Result == nil:
		fmt.Fprintf(os.Stdout, "%s is gone or is not a markdown note\n", u.Event.ID)
	default:
		if err := render.Text(os.Stdout, u.Result.Timeline); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing timeline: %v\n", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
