package model

import (
	"encoding/json"
	"strings"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/sequence"
)

type AnalyzeRequestBody struct {
	Chords     []chord.ChordInput `json:"chords"`
	OpenChords []chord.ChordInput `json:"open_chords,omitempty"`
}

type OpenPositionResult struct {
	Fret     int               `json:"fret"`
	Display  string            `json:"display"`
	Sequence sequence.Sequence `json:"sequence"`
}

type AnalyzeResponse struct {
	Display   string               `json:"display"`
	Chords    sequence.Sequence    `json:"chords"`
	Keys      []sequence.Key       `json:"keys"`
	Open      bool                 `json:"open"`
	Positions []OpenPositionResult `json:"positions"`
}

type TransposeRequestBody struct {
	Chords []chord.ChordInput `json:"chords"`
	// a JSON number or a string holding one
	Semitones json.RawMessage `json:"semitones"`
}

// SemitonesString returns the amount as text so it can be validated in one
// place whichever JSON type the client used.
func (b TransposeRequestBody) SemitonesString() string {
	var s string
	if err := json.Unmarshal(b.Semitones, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(b.Semitones))
}

type TransposeResponse struct {
	Display  string            `json:"display"`
	Sequence sequence.Sequence `json:"sequence"`
}

type ProgressionRequestBody struct {
	Name   string             `json:"name"`
	Chords []chord.ChordInput `json:"chords"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
