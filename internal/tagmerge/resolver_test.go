package tagmerge

import (
	"testing"

	"cadence/internal/catalog"
)

const testYear = 2026

func TestMergeBPM(t *testing.T) {
	tests := []struct {
		name       string
		local      int
		remote     int
		want       int
		wantOrigin Origin
	}{
		{"remote missing keeps local", 128, 0, 128, OriginLocal},
		{"local missing takes remote", 0, 140, 140, OriginRemote},
		{"close remote wins", 128, 129, 129, OriginRemote},
		{"gap over twenty keeps local", 128, 160, 128, OriginLocal},
		{"implausible low remote keeps local", 128, 50, 128, OriginLocal},
		{"implausible high remote keeps local", 128, 260, 128, OriginLocal},
		{"both missing", 0, 0, 0, OriginLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, origin := mergeBPM(tt.local, tt.remote)
			if got != tt.want || origin != tt.wantOrigin {
				t.Errorf("mergeBPM(%d, %d) = (%d, %s), want (%d, %s)",
					tt.local, tt.remote, got, origin, tt.want, tt.wantOrigin)
			}
		})
	}
}

func TestMergeGenre(t *testing.T) {
	tests := []struct {
		name       string
		local      string
		remote     string
		want       string
		wantOrigin Origin
	}{
		{"remote missing keeps local", "Tech House", "", "Tech House", OriginLocal},
		{"local missing takes remote", "", "House", "House", OriginRemote},
		{"equal adopts remote casing", "tech house", "Tech House", "Tech House", OriginRemote},
		// "tech house" contains "house": local is the longer, more specific string.
		{"local superset keeps local", "Tech House", "House", "Tech House", OriginLocal},
		{"remote superset takes remote", "House", "Deep House", "Deep House", OriginRemote},
		{"genuinely different keeps local", "Trance", "Dubstep", "Trance", OriginLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, origin := mergeGenre(tt.local, tt.remote)
			if got != tt.want || origin != tt.wantOrigin {
				t.Errorf("mergeGenre(%q, %q) = (%q, %s), want (%q, %s)",
					tt.local, tt.remote, got, origin, tt.want, tt.wantOrigin)
			}
		})
	}
}

func TestMergeAlbum(t *testing.T) {
	tests := []struct {
		name       string
		local      string
		remote     string
		want       string
		wantOrigin Origin
	}{
		{"remote missing keeps local", "Random Album Title", "", "Random Album Title", OriginLocal},
		{"local missing takes remote", "", "Random Album Title", "Random Album Title", OriginRemote},
		{"equal adopts remote", "random album title", "Random Album Title", "Random Album Title", OriginRemote},
		{"local with edition info keeps local", "Random Album Title (Deluxe Edition)", "Random Album Title", "Random Album Title (Deluxe Edition)", OriginLocal},
		{"different takes remote", "Some Old Rip", "Random Album Title", "Random Album Title", OriginRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, origin := mergeAlbum(tt.local, tt.remote)
			if got != tt.want || origin != tt.wantOrigin {
				t.Errorf("mergeAlbum(%q, %q) = (%q, %s), want (%q, %s)",
					tt.local, tt.remote, got, origin, tt.want, tt.wantOrigin)
			}
		})
	}
}

func TestMergeYear(t *testing.T) {
	tests := []struct {
		name       string
		local      int
		remote     int
		want       int
		wantOrigin Origin
	}{
		{"remote missing keeps local", 2010, 0, 2010, OriginLocal},
		{"local missing takes remote", 0, 2023, 2023, OriginRemote},
		{"close remote wins", 2022, 2023, 2023, OriginRemote},
		{"reissue gap keeps local", 2010, 2023, 2010, OriginLocal},
		{"implausible ancient remote keeps local", 2010, 1850, 2010, OriginLocal},
		{"implausible future remote keeps local", 2010, testYear + 5, 2010, OriginLocal},
		{"both implausible falls to remote", 1600, 1850, 1850, OriginRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, origin := mergeYear(tt.local, tt.remote, testYear)
			if got != tt.want || origin != tt.wantOrigin {
				t.Errorf("mergeYear(%d, %d) = (%d, %s), want (%d, %s)",
					tt.local, tt.remote, got, origin, tt.want, tt.wantOrigin)
			}
		})
	}
}

func TestMergeOverwriteFields(t *testing.T) {
	remote := catalog.RawCandidate{
		Source:        catalog.SourceBeatport,
		NativeID:      "1",
		Title:         "Strobe",
		MixName:       "Club Edit",
		Artist:        "deadmau5",
		Key:           "B maj",
		Label:         "mau5trap",
		CatalogNumber: "MAU5001",
		ISRC:          "USUS11100001",
		ArtworkURL:    "https://example.com/art.jpg",
	}
	local := catalog.LocalTrack{
		Title:  "strobe (old rip)",
		Artist: "Deadmaus",
		Key:    "Bmaj",
		Label:  "unknown",
	}

	merged := mergeAt(remote, local, testYear)

	if merged.Title != "Strobe (Club Edit)" {
		t.Errorf("Title = %q, want mix-qualified remote title", merged.Title)
	}
	if merged.Artist != "deadmau5" || merged.Origins[FieldArtist] != OriginRemote {
		t.Error("artist should always be overwritten from remote")
	}
	if merged.Key != "B maj" || merged.Label != "mau5trap" {
		t.Error("key and label should always be overwritten from remote")
	}
	if merged.CatalogNumber != "MAU5001" || merged.ISRC != "USUS11100001" {
		t.Error("catalog identifiers should come from remote")
	}
	if merged.ArtworkURL != "https://example.com/art.jpg" {
		t.Error("artwork url should come from remote")
	}
}

func TestMergeOriginalMixTitle(t *testing.T) {
	remote := catalog.RawCandidate{Title: "Strobe", MixName: "Original Mix"}
	merged := mergeAt(remote, catalog.LocalTrack{Title: "old"}, testYear)
	if merged.Title != "Strobe" {
		t.Errorf("Title = %q, Original Mix suffix should be dropped", merged.Title)
	}
}

func TestMergeMissingRemoteKeepsLocalIdentity(t *testing.T) {
	local := catalog.LocalTrack{Title: "Strobe", Artist: "deadmau5", Key: "B maj"}
	merged := mergeAt(catalog.RawCandidate{}, local, testYear)
	if merged.Title != "Strobe" || merged.Origins[FieldTitle] != OriginLocal {
		t.Error("empty remote title should keep local title")
	}
	if merged.Artist != "deadmau5" || merged.Key != "B maj" {
		t.Error("empty remote fields should keep local values")
	}
}

func TestMergeScenarioFromLibrary(t *testing.T) {
	// local {bpm: 128, genre: "Tech House"} + remote {bpm: 129, genre: "House"}:
	// bpm gap is 1 so remote wins; "tech house" contains "house" so the more
	// specific local genre survives.
	remote := catalog.RawCandidate{
		Title:       "X",
		Artist:      "Y",
		BPM:         129,
		Genre:       "House",
		ReleaseDate: "2023-06-02",
	}
	local := catalog.LocalTrack{BPM: 128, Genre: "Tech House", Year: 2010}

	merged := mergeAt(remote, local, testYear)

	if merged.BPM != 129 || merged.Origins[FieldBPM] != OriginRemote {
		t.Errorf("BPM = %d (%s), want 129 from remote", merged.BPM, merged.Origins[FieldBPM])
	}
	if merged.Genre != "Tech House" || merged.Origins[FieldGenre] != OriginLocal {
		t.Errorf("Genre = %q (%s), want local Tech House", merged.Genre, merged.Origins[FieldGenre])
	}
	if merged.Year != 2010 || merged.Origins[FieldYear] != OriginLocal {
		t.Errorf("Year = %d (%s), want local 2010 (gap > 2)", merged.Year, merged.Origins[FieldYear])
	}
}

func TestCandidateYearParsing(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2023-06-02", 2023},
		{"2023", 2023},
		{"", 0},
		{"junk", 0},
		{"20", 0},
	}
	for _, tt := range tests {
		c := catalog.RawCandidate{ReleaseDate: tt.date}
		if got := c.Year(); got != tt.want {
			t.Errorf("Year(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}
