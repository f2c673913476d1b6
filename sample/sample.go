package sample

import (
	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/sequence"
	"github.com/jsphweid/capo/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const Resolution = 960

// MaxBaseKey is the highest base key whose voicings stay within MIDI key 127:
// pitch class 11 plus the widest interval (11) lands on 127.
const MaxBaseKey = 105

type Options struct {
	// spacing between chord onsets; defaults to one 4/4 bar
	TicksPerChord uint32
	Channel       uint8
	Velocity      uint8
	// MIDI key used for pitch class 0 (A); defaults to A3, at most MaxBaseKey
	BaseKey uint8
}

func (o Options) withDefaults(clock smf.MetricTicks) Options {
	if o.TicksPerChord == 0 {
		o.TicksPerChord = clock.Ticks4th() * 4
	}
	if o.Velocity == 0 {
		o.Velocity = 90
	}
	if o.BaseKey == 0 {
		o.BaseKey = 57
	}
	return o
}

// Voicing returns the keys of a root position block chord. baseKey is
// clamped to MaxBaseKey.
func Voicing(c chord.Chord, baseKey uint8) []uint8 {
	root := int(util.Min(baseKey, MaxBaseKey)) + c.Num
	var keys []uint8
	for _, interval := range chord.Intervals(c.Type) {
		keys = append(keys, uint8(root+interval))
	}
	return keys
}

// Create lays the sequence out as block chords on a single track.
func Create(s sequence.Sequence, opts Options) *smf.SMF {
	clock := smf.MetricTicks(Resolution)
	opts = opts.withDefaults(clock)

	var track smf.Track
	for _, c := range s.Chords() {
		keys := Voicing(c, opts.BaseKey)
		for _, key := range keys {
			track.Add(0, midi.NoteOn(opts.Channel, key, opts.Velocity))
		}
		for i, key := range keys {
			var delta uint32
			if i == 0 {
				delta = opts.TicksPerChord
			}
			track.Add(delta, midi.NoteOff(opts.Channel, key))
		}
	}
	track.Close(0)

	res := smf.New()
	res.TimeFormat = clock
	res.Add(track)
	return res
}
