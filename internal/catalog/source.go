package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Source identifies one integrated remote catalog.
type Source string

const (
	SourceBeatport   Source = "beatport"
	SourceTraxsource Source = "traxsource"
)

// Sources lists every integrated catalog in default priority order.
var Sources = []Source{SourceBeatport, SourceTraxsource}

// ErrUnknownSource indicates a source tag that does not match any integrated catalog.
var ErrUnknownSource = errors.New("unknown catalog source")

// ParseSource validates a source tag.
func ParseSource(value string) (Source, error) {
	src := Source(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Sources {
		if src == known {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, value)
}

// Valid reports whether the source names an integrated catalog.
func (s Source) Valid() bool {
	_, err := ParseSource(string(s))
	return err == nil
}

// String returns the source tag.
func (s Source) String() string {
	return string(s)
}

// FormatID builds the provider-qualified candidate identifier used for
// selections, e.g. "beatport:12345".
func FormatID(source Source, nativeID string) string {
	return string(source) + ":" + nativeID
}

// ParseID splits a provider-qualified identifier back into its source and
// native id. The native id may itself contain colons.
func ParseID(id string) (Source, string, error) {
	tag, nativeID, found := strings.Cut(id, ":")
	if !found || nativeID == "" {
		return "", "", fmt.Errorf("malformed candidate id %q", id)
	}
	source, err := ParseSource(tag)
	if err != nil {
		return "", "", err
	}
	return source, nativeID, nil
}
