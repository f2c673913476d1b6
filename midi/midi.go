package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/sample"
	"github.com/jsphweid/capo/sequence"
	"gitlab.com/gomidi/midi/v2/smf"
)

// General MIDI percussion, never part of a chord
const drumChannel = 9

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	note      uint8
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("Error reading midi file... %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("Error parsing midi file... %w", err)
	}
	return res, nil
}

func ReadSequence(r io.Reader) (seq sequence.Sequence, e error) {
	defer func() {
		if rec, ok := recover().(string); ok {
			seq, e = sequence.Sequence{}, errors.New(rec)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return sequence.Sequence{}, fmt.Errorf("Error parsing midi file... %w", err)
	}
	return GetChords(s), nil
}

func ReadSequenceFile(filepath string) (sequence.Sequence, error) {
	s, err := ReadMidiFile(filepath)
	if err != nil {
		return sequence.Sequence{}, err
	}
	return GetChords(s), nil
}

func reduceEvents(s *smf.SMF) []reducedEvent {
	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				if channel == drumChannel {
					continue
				}
				// note on with zero velocity is a note off
				reducedEvents = append(reducedEvents, reducedEvent{
					offset:    absTicks,
					isNoteOff: velocity == 0,
					note:      key,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				if channel == drumChannel {
					continue
				}
				reducedEvents = append(reducedEvents, reducedEvent{
					offset:    absTicks,
					isNoteOff: true,
					note:      key,
				})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].offset != reducedEvents[j].offset {
			return reducedEvents[i].offset < reducedEvents[j].offset
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})
	return reducedEvents
}

func pitchClasses(pressed map[uint8]int) []int {
	var res []int
	for note := range pressed {
		res = append(res, chord.PitchClassOfKey(note))
	}
	return res
}

// GetChords recognises the chord sounding after each point in time where
// notes start or stop. Unrecognised note sets are skipped and consecutive
// repeats collapse into one chord.
func GetChords(s *smf.SMF) sequence.Sequence {
	events := reduceEvents(s)

	var chords []chord.Chord
	pressed := make(map[uint8]int)
	for i, evt := range events {
		if evt.isNoteOff {
			if pressed[evt.note] > 1 {
				pressed[evt.note]--
			} else {
				delete(pressed, evt.note)
			}
		} else {
			pressed[evt.note]++
		}

		// only look at the state once every event at this offset is applied
		if i < len(events)-1 && events[i+1].offset == evt.offset {
			continue
		}
		c, ok := chord.Identify(pitchClasses(pressed))
		if !ok {
			continue
		}
		if len(chords) > 0 && chords[len(chords)-1] == c {
			continue
		}
		chords = append(chords, c)
	}
	return sequence.FromChords(chords)
}

func WriteSequence(w io.Writer, seq sequence.Sequence, opts sample.Options) error {
	if _, err := sample.Create(seq, opts).WriteTo(w); err != nil {
		return fmt.Errorf("could not write midi: %w", err)
	}
	return nil
}

func WriteSequenceFile(filepath string, seq sequence.Sequence, opts sample.Options) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("could not create %v: %w", filepath, err)
	}
	defer f.Close()

	if err := WriteSequence(f, seq, opts); err != nil {
		return err
	}
	return f.Close()
}
