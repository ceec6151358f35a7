package catalog

import "strings"

// RawCandidate is a single remote catalog record proposed as a possible match
// for a local track, as returned by a provider search. Zero values mean the
// provider did not supply the field; Duration is in seconds.
type RawCandidate struct {
	Source        Source
	NativeID      string
	Title         string
	MixName       string
	Artist        string
	Album         string
	BPM           int
	Key           string
	Duration      int
	ArtworkURL    string
	Genre         string
	Label         string
	ReleaseDate   string
	CatalogNumber string
	ISRC          string
}

// ID returns the provider-qualified identifier for the candidate.
func (c RawCandidate) ID() string {
	return FormatID(c.Source, c.NativeID)
}

// DisplayTitle renders the candidate title with its mix name appended in
// parentheses. The literal "Original Mix" is omitted since it carries no
// information.
func (c RawCandidate) DisplayTitle() string {
	mix := strings.TrimSpace(c.MixName)
	if mix == "" || strings.EqualFold(mix, "Original Mix") {
		return c.Title
	}
	return c.Title + " (" + mix + ")"
}

// Year extracts the release year from the candidate's ISO release date
// ("2023-06-02" or just "2023"). Returns 0 when absent or malformed.
func (c RawCandidate) Year() int {
	date := strings.TrimSpace(c.ReleaseDate)
	if len(date) < 4 {
		return 0
	}
	year := 0
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// ScoredCandidate is a RawCandidate augmented with its composite similarity
// score in [0, 1]. The score is deterministic for a given (local title,
// local artist, local duration, candidate) tuple.
type ScoredCandidate struct {
	RawCandidate
	Score float64
}

// CandidateSet groups the scored candidates for one local track across all
// queried providers, sorted descending by score and truncated to the
// configured maximum. AutoSelected points into Candidates when the top score
// cleared the auto-accept threshold.
//
// Err distinguishes "search infrastructure failed" from "searched and found
// nothing": it is set only when every enabled provider search failed.
type CandidateSet struct {
	TrackID    string
	Title      string
	Artist     string
	Duration   int
	Candidates []ScoredCandidate
	Err        string

	autoSelected int
}

// Failed reports whether every provider search failed for this track.
func (s CandidateSet) Failed() bool {
	return s.Err != ""
}

// MarkAutoSelected records the auto-accepted candidate by index.
func (s *CandidateSet) MarkAutoSelected(index int) {
	if index < 0 || index >= len(s.Candidates) {
		return
	}
	s.autoSelected = index + 1
}

// AutoSelected returns the auto-accepted candidate, if any.
func (s CandidateSet) AutoSelected() (ScoredCandidate, bool) {
	if s.autoSelected == 0 || s.autoSelected > len(s.Candidates) {
		return ScoredCandidate{}, false
	}
	return s.Candidates[s.autoSelected-1], true
}

// Select builds a Selection for the candidate with the given
// provider-qualified id, or an error if the set has no such candidate.
func (s CandidateSet) Select(id string) (Selection, error) {
	source, nativeID, err := ParseID(id)
	if err != nil {
		return Selection{}, err
	}
	for i := range s.Candidates {
		if s.Candidates[i].Source == source && s.Candidates[i].NativeID == nativeID {
			chosen := s.Candidates[i].RawCandidate
			return Selection{TrackID: s.TrackID, Candidate: &chosen}, nil
		}
	}
	return Selection{}, &NoSuchCandidateError{TrackID: s.TrackID, CandidateID: id}
}

// NoMatch builds the explicit "no match" selection for the set's track.
func (s CandidateSet) NoMatch() Selection {
	return Selection{TrackID: s.TrackID}
}

// NoSuchCandidateError reports a selection id absent from a candidate set.
type NoSuchCandidateError struct {
	TrackID     string
	CandidateID string
}

func (e *NoSuchCandidateError) Error() string {
	return "candidate " + e.CandidateID + " not present for track " + e.TrackID
}

// Selection records the chosen candidate for one local track, or the explicit
// "no match" decision when Candidate is nil. A selection is consumed exactly
// once by tag merging and is not persisted on its own.
type Selection struct {
	TrackID   string
	Candidate *RawCandidate
}

// NoMatch reports whether the selection explicitly declined every candidate.
func (s Selection) NoMatch() bool {
	return s.Candidate == nil
}

// CandidateID returns the provider-qualified id of the chosen candidate, or
// "" for a no-match selection.
func (s Selection) CandidateID() string {
	if s.Candidate == nil {
		return ""
	}
	return s.Candidate.ID()
}
