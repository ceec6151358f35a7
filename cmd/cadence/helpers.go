package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cadence/internal/catalog"
)

// formatClock renders a duration in seconds as m:ss (or h:mm:ss).
func formatClock(seconds int) string {
	if seconds <= 0 {
		return "-"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 3, 64)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

type candidateView struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	Score        float64 `json:"score"`
	Duration     int     `json:"duration_seconds"`
	BPM          int     `json:"bpm,omitempty"`
	Key          string  `json:"key,omitempty"`
	Label        string  `json:"label,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	AutoSelected bool    `json:"auto_selected"`
}

type candidateSetView struct {
	TrackID    string          `json:"track_id"`
	Title      string          `json:"title"`
	Artist     string          `json:"artist"`
	Candidates []candidateView `json:"candidates"`
}

func newCandidateSetView(set catalog.CandidateSet) candidateSetView {
	view := candidateSetView{
		TrackID:    set.TrackID,
		Title:      set.Title,
		Artist:     set.Artist,
		Candidates: make([]candidateView, 0, len(set.Candidates)),
	}
	auto, hasAuto := set.AutoSelected()
	for _, candidate := range set.Candidates {
		view.Candidates = append(view.Candidates, candidateView{
			ID:           candidate.ID(),
			Source:       candidate.Source.String(),
			Title:        candidate.DisplayTitle(),
			Artist:       candidate.Artist,
			Score:        candidate.Score,
			Duration:     candidate.Duration,
			BPM:          candidate.BPM,
			Key:          candidate.Key,
			Label:        candidate.Label,
			ReleaseDate:  candidate.ReleaseDate,
			AutoSelected: hasAuto && candidate.ID() == auto.ID(),
		})
	}
	return view
}

// printCandidateSet renders one track's candidates as a table or JSON.
func printCandidateSet(cmd *cobra.Command, set catalog.CandidateSet, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, newCandidateSetView(set))
	}

	out := cmd.OutOrStdout()
	if len(set.Candidates) == 0 {
		fmt.Fprintf(out, "No candidates for %q by %q\n", set.Title, set.Artist)
		return nil
	}

	auto, hasAuto := set.AutoSelected()
	rows := make([][]string, 0, len(set.Candidates))
	for _, candidate := range set.Candidates {
		marker := ""
		if hasAuto && candidate.ID() == auto.ID() {
			marker = "*"
		}
		bpm := "-"
		if candidate.BPM > 0 {
			bpm = strconv.Itoa(candidate.BPM)
		}
		rows = append(rows, []string{
			marker,
			formatScore(candidate.Score),
			candidate.ID(),
			candidate.DisplayTitle(),
			candidate.Artist,
			bpm,
			formatClock(candidate.Duration),
			orDash(candidate.Label),
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"", "Score", "Candidate", "Title", "Artist", "BPM", "Time", "Label"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	if hasAuto {
		fmt.Fprintf(out, "* auto-accepted (score %s)\n", formatScore(auto.Score))
	}
	return nil
}
