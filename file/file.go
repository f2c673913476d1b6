package file

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/sequence"
)

type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseChart reads chords separated by commas or newlines, each written as
// "ROOT [TYPE]" with maj as the default type. A root given as "C#/Db" uses
// its first spelling. Lines starting with '#' are comments.
func ParseChart(text string) (sequence.Sequence, error) {
	var chords []chord.Chord
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			c, err := parseToken(token)
			if err != nil {
				return sequence.Sequence{}, &ParseError{Line: i + 1, Token: token, Err: err}
			}
			chords = append(chords, c)
		}
	}
	return sequence.FromChords(chords), nil
}

func parseToken(token string) (chord.Chord, error) {
	fields := strings.Fields(token)
	if len(fields) > 2 {
		return chord.Chord{}, fmt.Errorf("%w: expected ROOT [TYPE]", chord.ErrFormat)
	}
	root, _, _ := strings.Cut(fields[0], "/")
	typ := chord.Maj.String()
	if len(fields) == 2 {
		typ = fields[1]
	}
	return chord.Normalize(chord.Root(root, typ))
}

func FormatChart(s sequence.Sequence, style chord.NoteStyle) string {
	return s.Format(style)
}

func ReadChart(path string) (sequence.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sequence.Sequence{}, fmt.Errorf("could not read chart %v: %w", path, err)
	}
	return ParseChart(string(data))
}

func WriteChart(path string, s sequence.Sequence) error {
	data := FormatChart(s, chord.StyleBoth) + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("could not write chart %v: %w", path, err)
	}
	return nil
}
