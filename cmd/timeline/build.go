package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/timeline/pkg/annotate"
	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/render"
)

var (
	buildJSON      bool
	buildSort      string
	buildReference string
)

var buildCmd = &cobra.Command{
	Use:   "build [note]",
	Short: "Build the timeline of a note",
	Long: `Build the timeline of a note and print it grouped by month and day.
--sort and --reference override the directives of the note's timeline block.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		overrides := annotate.Directives{}
		if buildSort != "" {
			if _, err := core.ParseSortOrder(buildSort); err != nil {
				fatal("Invalid --sort", err)
			}
			overrides[annotate.DirectiveSort] = buildSort
		}
		if buildReference != "" {
			overrides[annotate.DirectiveReference] = buildReference
		}

		root, err := resolveRoot()
		if err != nil {
			fatal("Error resolving vault", err)
		}
		svc, err := openService(root)
		if err != nil {
			fatal("Error initializing timeline", err)
		}

		id := documentID(root, args[0])
		res, err := svc.BuildWith(context.Background(), id, nil, overrides)
		if err != nil {
			fatal("Error building timeline", err)
		}
		if res == nil {
			fatal("Error building timeline", fmt.Errorf("%w %q in %s", errNoNote, id, root))
		}

		if buildJSON {
			if err := render.JSON(os.Stdout, render.NewResultJSON(res)); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		if err := render.Text(os.Stdout, res.Timeline); err != nil {
			fatal("Error writing timeline", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "Output in JSON format")
	buildCmd.Flags().StringVar(&buildSort, "sort", "", "Sort order (asc or desc)")
	buildCmd.Flags().StringVar(&buildReference, "reference", "", "Reference date for relative phrases")
}
