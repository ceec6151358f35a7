package tagmerge

import (
	"strings"
	"time"

	"cadence/internal/catalog"
	"cadence/internal/textutil"
)

// Origin records where a merged field value came from.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Field names used in merge provenance and the tag write journal.
const (
	FieldTitle         = "title"
	FieldArtist        = "artist"
	FieldAlbum         = "album"
	FieldGenre         = "genre"
	FieldYear          = "year"
	FieldBPM           = "bpm"
	FieldKey           = "key"
	FieldLabel         = "label"
	FieldCatalogNumber = "catalog_number"
	FieldISRC          = "isrc"
	FieldArtworkURL    = "artwork_url"
)

// Plausibility bounds for conservative merging.
const (
	bpmMin     = 60
	bpmMax     = 200
	bpmMaxGap  = 20
	yearMin    = 1900
	yearMaxGap = 2
)

// MergedTagSet holds the final field values to persist for a track, plus
// per-field provenance. Provenance is bookkeeping for logging and the write
// journal only; it never drives control flow.
type MergedTagSet struct {
	Title         string
	Artist        string
	Album         string
	Genre         string
	Year          int
	BPM           int
	Key           string
	Label         string
	CatalogNumber string
	ISRC          string
	ArtworkURL    string

	Origins map[string]Origin
}

// Merge resolves the selected remote candidate's metadata against the
// track's current local values. Pure: no clock reads besides the current
// year bound, no mutation of its inputs.
func Merge(remote catalog.RawCandidate, local catalog.LocalTrack) MergedTagSet {
	return mergeAt(remote, local, time.Now().Year())
}

func mergeAt(remote catalog.RawCandidate, local catalog.LocalTrack, currentYear int) MergedTagSet {
	merged := MergedTagSet{Origins: make(map[string]Origin, 11)}

	merged.Title, merged.Origins[FieldTitle] = overwriteString(local.Title, remote.DisplayTitle())
	merged.Artist, merged.Origins[FieldArtist] = overwriteString(local.Artist, remote.Artist)
	merged.Key, merged.Origins[FieldKey] = overwriteString(local.Key, remote.Key)
	merged.Label, merged.Origins[FieldLabel] = overwriteString(local.Label, remote.Label)
	merged.CatalogNumber, merged.Origins[FieldCatalogNumber] = overwriteString("", remote.CatalogNumber)
	merged.ISRC, merged.Origins[FieldISRC] = overwriteString("", remote.ISRC)
	merged.ArtworkURL, merged.Origins[FieldArtworkURL] = overwriteString("", remote.ArtworkURL)

	merged.BPM, merged.Origins[FieldBPM] = mergeBPM(local.BPM, remote.BPM)
	merged.Genre, merged.Origins[FieldGenre] = mergeGenre(local.Genre, remote.Genre)
	merged.Album, merged.Origins[FieldAlbum] = mergeAlbum(local.Album, remote.Album)
	merged.Year, merged.Origins[FieldYear] = mergeYear(local.Year, remote.Year(), currentYear)

	return merged
}

// overwriteString implements the always-overwrite policy: remote wins when
// present, otherwise the local value stands.
func overwriteString(local, remote string) (string, Origin) {
	if strings.TrimSpace(remote) == "" {
		return local, OriginLocal
	}
	return remote, OriginRemote
}

// mergeBPM preserves the local bpm when the remote is missing, implausible,
// or far enough away (> 20) to look like a deliberate manual correction.
func mergeBPM(local, remote int) (int, Origin) {
	if remote == 0 {
		return local, OriginLocal
	}
	if local != 0 {
		gap := local - remote
		if gap < 0 {
			gap = -gap
		}
		if gap > bpmMaxGap {
			return local, OriginLocal
		}
		if remote < bpmMin || remote > bpmMax {
			return local, OriginLocal
		}
	}
	return remote, OriginRemote
}

// mergeGenre keeps whichever genre string carries more information: equal
// strings adopt the remote's canonical casing, a substring relation keeps
// the longer (more specific) side, and genuinely different genres preserve
// the local value as intentional manual tagging.
func mergeGenre(local, remote string) (string, Origin) {
	if strings.TrimSpace(remote) == "" {
		return local, OriginLocal
	}
	if strings.TrimSpace(local) == "" {
		return remote, OriginRemote
	}
	localNorm := textutil.Normalize(local)
	remoteNorm := textutil.Normalize(remote)
	if localNorm == remoteNorm {
		return remote, OriginRemote
	}
	if strings.Contains(localNorm, remoteNorm) {
		return local, OriginLocal
	}
	if strings.Contains(remoteNorm, localNorm) {
		return remote, OriginRemote
	}
	return local, OriginLocal
}

// mergeAlbum preserves a local album that extends the remote one (edition or
// remix suffixes); otherwise the remote value wins.
func mergeAlbum(local, remote string) (string, Origin) {
	if strings.TrimSpace(remote) == "" {
		return local, OriginLocal
	}
	if strings.TrimSpace(local) == "" {
		return remote, OriginRemote
	}
	localNorm := textutil.Normalize(local)
	remoteNorm := textutil.Normalize(remote)
	if localNorm == remoteNorm {
		return remote, OriginRemote
	}
	if strings.Contains(localNorm, remoteNorm) {
		return local, OriginLocal
	}
	return remote, OriginRemote
}

// mergeYear preserves the local year against implausible remote years and
// large gaps (> 2 years, a possible reissue). An implausible local year
// falls through to the remote value.
func mergeYear(local, remote, currentYear int) (int, Origin) {
	if remote == 0 {
		return local, OriginLocal
	}
	if local == 0 {
		return remote, OriginRemote
	}
	if remote < yearMin || remote > currentYear+1 {
		if local >= yearMin && local <= currentYear+1 {
			return local, OriginLocal
		}
		return remote, OriginRemote
	}
	gap := local - remote
	if gap < 0 {
		gap = -gap
	}
	if gap > yearMaxGap {
		return local, OriginLocal
	}
	return remote, OriginRemote
}
