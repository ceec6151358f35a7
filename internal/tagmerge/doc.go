// Package tagmerge decides, field by field, whether a track keeps its local
// metadata or accepts the remote candidate's value.
//
// Identity fields (title, artist, key, label, catalog identifiers, artwork)
// are always overwritten when the remote supplies them. The bpm, genre,
// album, and year fields follow conservation rules that protect deliberate
// manual corrections: a locally-set value survives when the remote value is
// missing, implausible, or different enough to look intentional. Every rule
// is a pure function of the two values.
package tagmerge
