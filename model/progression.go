package model

import (
	"time"

	"github.com/jsphweid/capo/sequence"
)

type Progression struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Display   string            `json:"display"`
	Sequence  sequence.Sequence `json:"sequence"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewProgression(id string, name string, seq sequence.Sequence, createdAt time.Time) Progression {
	return Progression{
		ID:        id,
		Name:      name,
		Display:   seq.String(),
		Sequence:  seq,
		CreatedAt: createdAt,
	}
}
