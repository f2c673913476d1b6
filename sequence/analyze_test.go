package sequence

import (
	"testing"

	"github.com/jsphweid/capo/chord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOpenChords(t *testing.T) {
	open := DefaultOpenChords()
	assert.Equal(t, 19, open.Len())
	assert.True(t, open.IsOpen())

	open.chords[0] = chord.Chord{Num: 8, Type: chord.Maj}
	assert.Equal(t, chord.Chord{Num: 0, Type: chord.Maj}, DefaultOpenChords().chords[0])
}

func TestIsOpen(t *testing.T) {
	assert := assert.New(t)

	assert.True(Must([]chord.ChordInput{chord.Root("G", "maj"), chord.Root("C", "maj"), chord.Root("D", "maj")}).IsOpen())
	assert.False(Must([]chord.ChordInput{chord.Root("G", "maj"), chord.Root("F", "maj")}).IsOpen())
	assert.True(Sequence{}.IsOpen())

	s := Must([]chord.ChordInput{chord.Root("F", "maj"), chord.Root("B", "min")})
	ok, err := s.IsOpenInputs([]chord.ChordInput{chord.Root("F", "maj"), chord.Root("B", "min"), chord.Root("C", "maj")})
	assert.NoError(err)
	assert.True(ok)

	_, err = s.IsOpenInputs([]chord.ChordInput{chord.Root("X", "maj")})
	assert.True(IsReason(err, ReasonInvalidRoot))
}

func TestIsOpenSurvivesTransposition(t *testing.T) {
	ref := DefaultOpenChords()
	s := Must([]chord.ChordInput{chord.Root("E", "min"), chord.Root("C", "maj"), chord.Root("G", "7")})
	require.True(t, s.IsOpenIn(ref))

	for k := -13; k <= 13; k++ {
		assert.True(t, s.Transpose(k).IsOpenIn(ref.Transpose(k)), "k=%v", k)
	}
}

func TestFindOpenPositions(t *testing.T) {
	s := Must([]chord.ChordInput{chord.Root("B", "maj"), chord.Root("E", "maj"), chord.Root("F#", "maj")})

	positions := s.FindOpenPositions()
	require.Len(t, positions, 3)

	assert := assert.New(t)
	assert.Equal(2, positions[0].Fret)
	assert.Equal("A, D, E", positions[0].Sequence.String())
	assert.Equal(4, positions[1].Fret)
	assert.Equal("G, C, D", positions[1].Sequence.String())
	assert.Equal(9, positions[2].Fret)
	assert.Equal("D, G, A", positions[2].Sequence.String())
}

func TestFindOpenPositionsCustomReference(t *testing.T) {
	s := Must([]chord.ChordInput{chord.Root("C", "maj")})
	ref := Must([]chord.ChordInput{chord.Root("A", "maj")})

	positions := s.FindOpenPositionsIn(ref)
	require.Len(t, positions, 1)
	assert.Equal(t, 3, positions[0].Fret)
	assert.Equal(t, "A", positions[0].Sequence.String())
}

func TestFindOpenPositionsSkipsFretZero(t *testing.T) {
	s := Must([]chord.ChordInput{chord.Root("G", "maj"), chord.Root("C", "maj"), chord.Root("D", "maj")})
	var frets []int
	for _, p := range s.FindOpenPositions() {
		frets = append(frets, p.Fret)
	}
	assert.Equal(t, []int{5, 10}, frets)
}

func TestFindOpenPositionsEmpty(t *testing.T) {
	positions := Sequence{}.FindOpenPositions()
	assert.NotNil(t, positions)
	assert.Empty(t, positions)
}

func TestFindKeys(t *testing.T) {
	s := Must([]chord.ChordInput{chord.Root("A", "maj"), chord.Root("B", "min")})
	assert.Equal(t, []Key{{Root: "A", Num: 0}, {Root: "D", Num: 5}}, s.FindKeys())
}

func TestFindKeysSingleMajorChord(t *testing.T) {
	s := Must([]chord.ChordInput{chord.Root("E", "maj")})
	assert.Equal(t, []Key{{Root: "A", Num: 0}, {Root: "B", Num: 2}, {Root: "E", Num: 7}}, s.FindKeys())
}

func TestFindKeysUsesBothSpellings(t *testing.T) {
	// Bb maj7 is I and F 7 is V only in Bb major
	s := Must([]chord.ChordInput{chord.Root("Bb", "maj7"), chord.Root("F", "7")})
	assert.Equal(t, []Key{{Root: "A#/Bb", Num: 1}}, s.FindKeys())
}

func TestFindKeysNoMatch(t *testing.T) {
	s := Must([]chord.ChordInput{chord.Root("A", "maj"), chord.Root("A", "min")})
	keys := s.FindKeys()
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}

func TestFindKeysEmpty(t *testing.T) {
	keys := Sequence{}.FindKeys()
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
}
