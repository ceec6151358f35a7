package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cadence/internal/catalog"
	"cadence/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the local track library",
	}

	libraryCmd.AddCommand(newLibraryAddCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryMatchCommand(ctx))
	libraryCmd.AddCommand(newLibraryApplyCommand(ctx))
	libraryCmd.AddCommand(newLibraryHistoryCommand(ctx))
	libraryCmd.AddCommand(newLibraryRemoveCommand(ctx))

	return libraryCmd
}

func newLibraryAddCommand(ctx *commandContext) *cobra.Command {
	var track catalog.LocalTrack

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add or update a track in the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track.Path = strings.TrimSpace(args[0])
			return ctx.withStore(func(store *library.Store) error {
				stored, err := store.Upsert(cmd.Context(), track)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%s)\n", stored.Path, stored.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&track.Title, "title", "", "Track title")
	cmd.Flags().StringVar(&track.Artist, "artist", "", "Track artist")
	cmd.Flags().StringVar(&track.Album, "album", "", "Album or release name")
	cmd.Flags().StringVar(&track.Genre, "genre", "", "Genre")
	cmd.Flags().IntVar(&track.Year, "year", 0, "Release year")
	cmd.Flags().IntVar(&track.Duration, "duration", 0, "Duration in seconds")
	cmd.Flags().IntVar(&track.BPM, "bpm", 0, "Beats per minute")
	cmd.Flags().StringVar(&track.Key, "key", "", "Musical key")
	cmd.Flags().StringVar(&track.Label, "label", "", "Record label")
	return cmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library tracks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				tracks, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, tracks)
				}

				out := cmd.OutOrStdout()
				if len(tracks) == 0 {
					fmt.Fprintln(out, "Library is empty")
					return nil
				}
				rows := make([][]string, 0, len(tracks))
				for _, track := range tracks {
					year := "-"
					if track.Year > 0 {
						year = strconv.Itoa(track.Year)
					}
					rows = append(rows, []string{
						track.Artist,
						track.Title,
						orDash(track.Album),
						orDash(track.Genre),
						year,
						formatClock(track.Duration),
						track.Path,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Artist", "Title", "Album", "Genre", "Year", "Time", "Path"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newLibraryMatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var all bool

	cmd := &cobra.Command{
		Use:   "match [path]",
		Short: "Find remote candidates for a library track (or every track with --all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("provide a track path or use --all")
			}
			orch, err := ctx.newOrchestrator()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *library.Store) error {
				if all {
					tracks, err := store.List(cmd.Context())
					if err != nil {
						return err
					}
					sets := orch.FindCandidatesForMany(cmd.Context(), tracks)
					for _, set := range sets {
						if set.Failed() {
							fmt.Fprintf(cmd.ErrOrStderr(), "search failed for %q: %s\n", set.Title, set.Err)
							continue
						}
						fmt.Fprintf(cmd.OutOrStdout(), "%s - %s\n", set.Artist, set.Title)
						if err := printCandidateSet(cmd, set, jsonOut); err != nil {
							return err
						}
					}
					return nil
				}

				track, err := store.GetByPath(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				set := orch.FindCandidates(cmd.Context(), track)
				if set.Failed() {
					return fmt.Errorf("search failed: %s", set.Err)
				}
				return printCandidateSet(cmd, set, jsonOut)
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Match every library track")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newLibraryApplyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <path> <candidate-id|none>",
		Short: "Apply a selected candidate's tags to a library track",
		Long: `Apply resolves the chosen candidate against the track's current tags and
persists the merged result. Pass "none" as the candidate to record an explicit
no-match decision without writing tags. Candidate ids come from "library
match" output, e.g. beatport:1234.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.newOrchestrator()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *library.Store) error {
				track, err := store.GetByPath(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				set := orch.FindCandidates(cmd.Context(), track)
				if set.Failed() {
					return fmt.Errorf("search failed: %s", set.Err)
				}

				var selection catalog.Selection
				if strings.EqualFold(args[1], "none") {
					selection = set.NoMatch()
				} else {
					selection, err = set.Select(args[1])
					if err != nil {
						return err
					}
				}

				merged, applied, err := orch.ApplySelection(cmd.Context(), selection, track)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !applied {
					fmt.Fprintf(out, "No match recorded for %s; tags unchanged\n", track.Path)
					return nil
				}

				if err := store.ApplyTags(cmd.Context(), track.ID, selection.CandidateID(), merged); err != nil {
					return err
				}

				rows := [][]string{
					{"title", merged.Title, string(merged.Origins["title"])},
					{"artist", merged.Artist, string(merged.Origins["artist"])},
					{"album", orDash(merged.Album), string(merged.Origins["album"])},
					{"genre", orDash(merged.Genre), string(merged.Origins["genre"])},
					{"year", strconv.Itoa(merged.Year), string(merged.Origins["year"])},
					{"bpm", strconv.Itoa(merged.BPM), string(merged.Origins["bpm"])},
					{"key", orDash(merged.Key), string(merged.Origins["key"])},
					{"label", orDash(merged.Label), string(merged.Origins["label"])},
				}
				fmt.Fprintf(out, "Applied %s to %s\n", selection.CandidateID(), track.Path)
				fmt.Fprintln(out, renderTable(
					[]string{"Field", "Value", "Origin"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	return cmd
}

func newLibraryHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history <path>",
		Short: "Show the tag write journal for a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				track, err := store.GetByPath(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				history, err := store.TagHistory(cmd.Context(), track.ID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, history)
				}

				out := cmd.OutOrStdout()
				if len(history) == 0 {
					fmt.Fprintf(out, "No tag writes recorded for %s\n", track.Path)
					return nil
				}
				rows := make([][]string, 0, len(history))
				for _, write := range history {
					rows = append(rows, []string{
						write.AppliedAt.Local().Format("2006-01-02 15:04:05"),
						write.CandidateID,
						write.Field,
						write.Value,
						string(write.Origin),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Applied", "Candidate", "Field", "Value", "Origin"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newLibraryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a track from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				id := catalog.TrackID(strings.TrimSpace(args[0]))
				if err := store.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}
