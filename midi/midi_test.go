package midi

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/sample"
	"github.com/jsphweid/capo/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestWriteThenReadSequence(t *testing.T) {
	seq := sequence.Must([]chord.ChordInput{
		chord.Root("A", "maj"),
		chord.Root("F#", "min7"),
		chord.Root("D", "maj7"),
		chord.Root("E", "7"),
		chord.Root("C", "min"),
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, seq, sample.Options{}))

	back, err := ReadSequence(&buf)
	require.NoError(t, err)
	assert.Equal(t, seq.String(), back.String())
}

func TestRepeatedChordsCollapse(t *testing.T) {
	seq := sequence.Must([]chord.ChordInput{
		chord.Root("G", "maj"),
		chord.Root("G", "maj"),
		chord.Root("C", "maj"),
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSequence(&buf, seq, sample.Options{BaseKey: 45, TicksPerChord: 100}))

	back, err := ReadSequence(&buf)
	require.NoError(t, err)
	assert.Equal(t, "G, C", back.String())
}

func TestGetChordsSkipsDrumsAndUnknownSets(t *testing.T) {
	var track smf.Track
	// C E G with a kick drum on channel 10
	track.Add(0, gomidi.NoteOn(0, 60, 100))
	track.Add(0, gomidi.NoteOn(0, 64, 100))
	track.Add(0, gomidi.NoteOn(0, 67, 100))
	track.Add(0, gomidi.NoteOn(drumChannel, 36, 100))
	// drop the E: an open fifth is not a chord
	track.Add(480, gomidi.NoteOn(0, 64, 0))
	// add Eb: C minor
	track.Add(480, gomidi.NoteOn(0, 63, 100))
	track.Add(480, gomidi.NoteOff(0, 60))
	track.Add(0, gomidi.NoteOff(0, 63))
	track.Add(0, gomidi.NoteOff(0, 67))
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(sample.Resolution)
	require.NoError(t, s.Add(track))

	got := GetChords(s)
	assert.Equal(t, []chord.Chord{
		{Num: 3, Type: chord.Maj},
		{Num: 3, Type: chord.Min},
	}, got.Chords())
}

func TestGetChordsEmptyFile(t *testing.T) {
	var track smf.Track
	track.Close(0)
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(sample.Resolution)
	require.NoError(t, s.Add(track))

	assert.Equal(t, 0, GetChords(s).Len())
}

func TestSequenceFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mid")
	seq := sequence.Must([]chord.ChordInput{chord.Root("D", "min"), chord.Root("G", "7")})

	require.NoError(t, WriteSequenceFile(path, seq, sample.Options{}))
	back, err := ReadSequenceFile(path)
	require.NoError(t, err)
	assert.True(t, back.Equal(seq))
}

func TestReadMidiFileMissing(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "nope.mid"))
	assert.Error(t, err)
}
