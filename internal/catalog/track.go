package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// LocalTrack is a track from the local library as read from storage. Zero
// values mean the field is not set; Duration is in seconds.
type LocalTrack struct {
	ID       string
	Path     string
	Title    string
	Artist   string
	Album    string
	Genre    string
	Year     int
	Duration int
	BPM      int
	Key      string
	Label    string
}

// TrackID derives the deterministic identifier for a track file: the SHA-256
// hex digest of the lowercased path.
func TrackID(path string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(path)))
	return hex.EncodeToString(sum[:])
}
