package sequence

import (
	"github.com/jsphweid/capo/chord"
)

var defaultOpenChords = Must([]chord.ChordInput{
	chord.Root("A", "maj"), chord.Root("A", "min"), chord.Root("A", "7"), chord.Root("A", "min7"),
	chord.Root("A", "maj7"), chord.Root("C", "maj"), chord.Root("C", "7"), chord.Root("D", "maj"),
	chord.Root("D", "min"), chord.Root("D", "7"), chord.Root("D", "min7"), chord.Root("D", "maj7"),
	chord.Root("E", "maj"), chord.Root("E", "min"), chord.Root("E", "7"), chord.Root("E", "min7"),
	chord.Root("E", "maj7"), chord.Root("G", "maj"), chord.Root("G", "7"),
})

// Diatonic chords of A major. Transposing this set gives every other key.
var aMajorChords = Must([]chord.ChordInput{
	chord.Root("A", "maj"), chord.Root("A", "maj7"), chord.Root("B", "min"), chord.Root("B", "min7"),
	chord.Root("C#", "min"), chord.Root("C#", "min7"), chord.Root("D", "maj"), chord.Root("D", "maj7"),
	chord.Root("E", "maj"), chord.Root("E", "7"), chord.Root("F#", "min"), chord.Root("F#", "min7"),
})

// DefaultOpenChords returns the chords playable with common open-position
// fingerings.
func DefaultOpenChords() Sequence {
	return FromChords(defaultOpenChords.chords)
}

type OpenPosition struct {
	Fret     int      `json:"fret"`
	Sequence Sequence `json:"sequence"`
}

type Key struct {
	Root string `json:"root"`
	Num  int    `json:"num"`
}

// IsOpen reports whether every chord is in the default open-chord set. An
// empty sequence is open.
func (s Sequence) IsOpen() bool {
	return s.IsOpenIn(defaultOpenChords)
}

func (s Sequence) IsOpenIn(ref Sequence) bool {
	return ref.ContainsEveryChord(s.chords)
}

func (s Sequence) IsOpenInputs(ref []chord.ChordInput) (bool, error) {
	refSeq, err := New(ref)
	if err != nil {
		return false, err
	}
	return s.IsOpenIn(refSeq), nil
}

// FindOpenPositions lists the capo frets at which the sequence can be
// played with open chords.
func (s Sequence) FindOpenPositions() []OpenPosition {
	return s.FindOpenPositionsIn(defaultOpenChords)
}

// FindOpenPositionsIn checks frets 1 through 11. A chord shape played at fret
// i sounds i semitones higher, so the shapes needed are the sequence
// transposed down by i.
func (s Sequence) FindOpenPositionsIn(ref Sequence) []OpenPosition {
	positions := []OpenPosition{}
	if s.Len() == 0 {
		return positions
	}
	for i := 1; i <= 11; i++ {
		candidate := s.Transpose(-i)
		if candidate.IsOpenIn(ref) {
			positions = append(positions, OpenPosition{Fret: i, Sequence: candidate})
		}
	}
	return positions
}

// FindKeys lists every major key whose diatonic chords include all of the
// sequence's chords, in pitch class order. An empty sequence has no keys.
func (s Sequence) FindKeys() []Key {
	keys := []Key{}
	if s.Len() == 0 {
		return keys
	}
	for i := 0; i <= 11; i++ {
		if aMajorChords.Transpose(i).ContainsEveryChord(s.chords) {
			keys = append(keys, Key{Root: chord.FormatNote(i), Num: i})
		}
	}
	return keys
}
