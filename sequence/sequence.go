// Package sequence holds an ordered list of canonical chords and the
// transposition searches built on it. A Sequence is a value: every operation
// that changes the chords returns a new Sequence and leaves the receiver as
// it was, so Sequences can be shared between goroutines.
package sequence

import (
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/util"
)

type Sequence struct {
	chords []chord.Chord
}

// FullChord is the enriched view of one chord.
type FullChord struct {
	Num     int        `json:"num"`
	Root    string     `json:"root"`
	Type    chord.Type `json:"type"`
	Display string     `json:"string"`
}

// New normalizes every input. Nothing is returned unless all of them are
// valid.
func New(inputs []chord.ChordInput) (Sequence, error) {
	chords := make([]chord.Chord, 0, len(inputs))
	for i, in := range inputs {
		c, err := chord.Normalize(in)
		if err != nil {
			return Sequence{}, wrapChordError("new", fmt.Errorf("chord %d: %w", i, err))
		}
		chords = append(chords, c)
	}
	return Sequence{chords: chords}, nil
}

func Must(inputs []chord.ChordInput) Sequence {
	s, err := New(inputs)
	if err != nil {
		panic(err)
	}
	return s
}

func FromChords(chords []chord.Chord) Sequence {
	res := make([]chord.Chord, len(chords))
	copy(res, chords)
	return Sequence{chords: res}
}

func (s Sequence) Len() int {
	return len(s.chords)
}

func (s Sequence) Chords() []chord.Chord {
	res := make([]chord.Chord, len(s.chords))
	copy(res, s.chords)
	return res
}

func (s Sequence) Equal(other Sequence) bool {
	if len(s.chords) != len(other.chords) {
		return false
	}
	for i := range s.chords {
		if s.chords[i] != other.chords[i] {
			return false
		}
	}
	return true
}

func (s Sequence) String() string {
	return s.Format(chord.StyleBoth)
}

func (s Sequence) Format(style chord.NoteStyle) string {
	parts := make([]string, len(s.chords))
	for i, c := range s.chords {
		parts[i] = chord.FormatChordStyle(c, style)
	}
	return strings.Join(parts, ", ")
}

func (s Sequence) FullChords() []FullChord {
	res := make([]FullChord, len(s.chords))
	for i, c := range s.chords {
		res[i] = FullChord{
			Num:     c.Num,
			Root:    chord.FormatNote(c.Num),
			Type:    c.Type,
			Display: chord.FormatChord(c),
		}
	}
	return res
}

func (s Sequence) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.FullChords())
}

// All yields the display string of each chord in order. It can be ranged
// over any number of times.
func (s Sequence) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, c := range s.chords {
			if !yield(chord.FormatChord(c)) {
				return
			}
		}
	}
}

func (s Sequence) AddChord(in chord.ChordInput) (Sequence, error) {
	c, err := chord.Normalize(in)
	if err != nil {
		return s, wrapChordError("add", err)
	}
	chords := make([]chord.Chord, len(s.chords), len(s.chords)+1)
	copy(chords, s.chords)
	return Sequence{chords: append(chords, c)}, nil
}

// RemoveChord drops every chord equal to in.
func (s Sequence) RemoveChord(in chord.ChordInput) (Sequence, error) {
	target, err := chord.Normalize(in)
	if err != nil {
		return s, wrapChordError("remove", err)
	}
	chords := make([]chord.Chord, 0, len(s.chords))
	for _, c := range s.chords {
		if c != target {
			chords = append(chords, c)
		}
	}
	return Sequence{chords: chords}, nil
}

func (s Sequence) RemoveAt(index int) (Sequence, error) {
	if index < 0 || index >= len(s.chords) {
		return s, &SequenceError{
			Op:     "remove at",
			Reason: ReasonIndex,
			Err:    fmt.Errorf("index %d outside [0, %d)", index, len(s.chords)),
		}
	}
	chords := make([]chord.Chord, 0, len(s.chords)-1)
	chords = append(chords, s.chords[:index]...)
	chords = append(chords, s.chords[index+1:]...)
	return Sequence{chords: chords}, nil
}

// Transpose shifts every chord by semitones, wrapping into 0-11.
func (s Sequence) Transpose(semitones int) Sequence {
	chords := make([]chord.Chord, len(s.chords))
	for i, c := range s.chords {
		chords[i] = chord.Chord{Num: util.Mod(c.Num+semitones, 12), Type: c.Type}
	}
	return Sequence{chords: chords}
}

// TransposeString is Transpose for an amount that still has to be parsed.
func (s Sequence) TransposeString(semitones string) (Sequence, error) {
	n, err := strconv.Atoi(strings.TrimSpace(semitones))
	if err != nil {
		return s, &SequenceError{Op: "transpose", Reason: ReasonTransposition, Err: err}
	}
	return s.Transpose(n), nil
}

func (s Sequence) ContainsChord(in chord.ChordInput) (bool, error) {
	c, err := chord.Normalize(in)
	if err != nil {
		return false, wrapChordError("contains", err)
	}
	return s.contains(c), nil
}

// ContainsEveryChord is true for an empty argument.
func (s Sequence) ContainsEveryChord(chords []chord.Chord) bool {
	for _, c := range chords {
		if !s.contains(c) {
			return false
		}
	}
	return true
}

func (s Sequence) contains(target chord.Chord) bool {
	for _, c := range s.chords {
		if c == target {
			return true
		}
	}
	return false
}
