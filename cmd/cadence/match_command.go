package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cadence/internal/catalog"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var title, artist string
	var duration int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Search remote catalogs for a track without touching the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return errors.New("--title is required")
			}
			orch, err := ctx.newOrchestrator()
			if err != nil {
				return err
			}

			track := catalog.LocalTrack{
				ID:       catalog.TrackID("adhoc:" + title + ":" + artist),
				Title:    title,
				Artist:   artist,
				Duration: duration,
			}
			set := orch.FindCandidates(cmd.Context(), track)
			if set.Failed() {
				return fmt.Errorf("search failed: %s", set.Err)
			}
			return printCandidateSet(cmd, set, jsonOut)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Track title to search for")
	cmd.Flags().StringVar(&artist, "artist", "", "Track artist")
	cmd.Flags().IntVar(&duration, "duration", 0, "Track duration in seconds (improves ranking)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
