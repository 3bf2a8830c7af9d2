package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/timeline/pkg/render"
)

var datesJSON bool

var datesCmd = &cobra.Command{
	Use:   "dates [note]",
	Short: "List every date mentioned in a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, err := resolveRoot()
		if err != nil {
			fatal("Error resolving vault", err)
		}
		svc, err := openService(root)
		if err != nil {
			fatal("Error initializing timeline", err)
		}

		id := documentID(root, args[0])
		list, err := svc.Dates(context.Background(), id)
		if err != nil {
			fatal("Error listing dates", err)
		}
		if list == nil {
			fatal("Error listing dates", fmt.Errorf("%w %q in %s", errNoNote, id, root))
		}

		if datesJSON {
			if err := render.JSON(os.Stdout, list); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		if err := render.Dates(os.Stdout, list); err != nil {
			fatal("Error writing dates", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(datesCmd)
	datesCmd.Flags().BoolVar(&datesJSON, "json", false, "Output in JSON format")
}
