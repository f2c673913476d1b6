package chord

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat      = errors.New("incorrect chord format")
	ErrRange       = errors.New("invalid chord number")
	ErrInvalidRoot = errors.New("invalid chord root")
	ErrInvalidType = errors.New("invalid chord type")
)

type Type uint8

const (
	Maj Type = iota
	Min
	Dom7
	Min7
	Maj7
)

var typeTokens = [...]string{
	Maj:  "maj",
	Min:  "min",
	Dom7: "7",
	Min7: "min7",
	Maj7: "maj7",
}

// Types lists every recognised chord type in token order.
func Types() []Type {
	return []Type{Maj, Min, Dom7, Min7, Maj7}
}

func (t Type) String() string {
	if int(t) < len(typeTokens) {
		return typeTokens[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

func (t Type) MarshalText() ([]byte, error) {
	if int(t) >= len(typeTokens) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidType, uint8(t))
	}
	return []byte(typeTokens[t]), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType matches a type token case-insensitively.
func ParseType(s string) (Type, error) {
	lower := strings.ToLower(s)
	for i, token := range typeTokens {
		if token == lower {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Chord is the canonical form: a pitch class (0 = A) and a type.
type Chord struct {
	Num  int  `json:"num"`
	Type Type `json:"type"`
}

func (c Chord) String() string {
	return FormatChord(c)
}

// ChordInput is the loosely typed description accepted at API boundaries.
// Exactly one of Root and Num must be set.
type ChordInput struct {
	Root *string `json:"root,omitempty"`
	Num  *int    `json:"num,omitempty"`
	Type string  `json:"type"`
}

func Root(root string, typ string) ChordInput {
	return ChordInput{Root: &root, Type: typ}
}

func Num(num int, typ string) ChordInput {
	return ChordInput{Num: &num, Type: typ}
}

func Normalize(in ChordInput) (Chord, error) {
	if in.Type == "" || (in.Root == nil) == (in.Num == nil) {
		return Chord{}, fmt.Errorf("%w: need a type and exactly one of root or num", ErrFormat)
	}

	var c Chord
	if in.Num != nil {
		if *in.Num < 0 || *in.Num > 11 {
			return Chord{}, fmt.Errorf("%w: %d is outside 0-11", ErrRange, *in.Num)
		}
		c.Num = *in.Num
	} else {
		num, err := ParseRoot(*in.Root)
		if err != nil {
			return Chord{}, err
		}
		c.Num = num
	}

	t, err := ParseType(in.Type)
	if err != nil {
		return Chord{}, err
	}
	c.Type = t
	return c, nil
}
