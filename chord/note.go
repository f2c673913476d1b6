package chord

import (
	"fmt"
	"strings"

	"github.com/jsphweid/capo/util"
)

// notes is indexed by pitch class. Slots with two entries are enharmonic
// spellings, sharp first.
var notes = [12][]string{
	{"A"},
	{"A#", "Bb"},
	{"B"},
	{"C"},
	{"C#", "Db"},
	{"D"},
	{"D#", "Eb"},
	{"E"},
	{"F"},
	{"F#", "Gb"},
	{"G"},
	{"G#", "Ab"},
}

type NoteStyle uint8

const (
	StyleBoth NoteStyle = iota
	StyleSharp
	StyleFlat
)

func ParseNoteStyle(s string) (NoteStyle, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return StyleBoth, nil
	case "sharp":
		return StyleSharp, nil
	case "flat":
		return StyleFlat, nil
	}
	return StyleBoth, fmt.Errorf("unknown note style %q", s)
}

// Spellings returns every accepted spelling of a pitch class.
func Spellings(num int) []string {
	slot := notes[util.Mod(num, 12)]
	res := make([]string, len(slot))
	copy(res, slot)
	return res
}

// ParseRoot resolves a note name to its pitch class. The letter is
// case-insensitive; the accidental, if any, must be '#' or a lowercase 'b'.
func ParseRoot(root string) (int, error) {
	if root == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidRoot)
	}
	spelled := strings.ToUpper(root[:1]) + root[1:]
	for i, slot := range notes {
		for _, name := range slot {
			if name == spelled {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRoot, root)
}

func FormatNote(num int) string {
	return FormatNoteStyle(num, StyleBoth)
}

func FormatNoteStyle(num int, style NoteStyle) string {
	slot := notes[util.Mod(num, 12)]
	if len(slot) == 1 {
		return slot[0]
	}
	switch style {
	case StyleSharp:
		return slot[0]
	case StyleFlat:
		return slot[1]
	}
	return strings.Join(slot, "/")
}

// FormatChord prints the note followed by the type token. Major chords are
// printed bare.
func FormatChord(c Chord) string {
	return FormatChordStyle(c, StyleBoth)
}

func FormatChordStyle(c Chord, style NoteStyle) string {
	s := FormatNoteStyle(c.Num, style)
	if c.Type != Maj {
		s += " " + c.Type.String()
	}
	return s
}
