package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/file"
	"github.com/jsphweid/capo/sequence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	chartFile   string
	openFlag    string
	transposeBy string
	chartOut    string
)

func init() {
	for _, c := range []*cobra.Command{showCmd, keysCmd, positionsCmd, transposeCmd} {
		c.Flags().StringVarP(&chartFile, "file", "f", "", "read the chord chart from a file")
		rootCmd.AddCommand(c)
	}
	showCmd.Flags().StringVar(&openFlag, "open", "", "chart of chords to treat as open")
	positionsCmd.Flags().StringVar(&openFlag, "open", "", "chart of chords to treat as open")
	transposeCmd.Flags().StringVarP(&transposeBy, "by", "b", "", "semitones to shift by (may be negative)")
	transposeCmd.Flags().StringVarP(&chartOut, "out", "o", "", "write the result to a chart file")
}

var showCmd = &cobra.Command{
	Use:   "show [chart]",
	Short: "Shows keys, open status and capo positions",
	Long:  `Shows the chords, the keys they fit in, and every capo fret that lets them be played open.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := loadChart(args, chartFile)
		if err != nil {
			return err
		}
		ref, err := openChords(openFlag)
		if err != nil {
			return err
		}
		printAnalysis(cmd.OutOrStdout(), seq, ref, noteStyle())
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys [chart]",
	Short: "Lists the keys a progression fits in",
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := loadChart(args, chartFile)
		if err != nil {
			return err
		}
		for _, key := range seq.FindKeys() {
			fmt.Fprintln(cmd.OutOrStdout(), chord.FormatNoteStyle(key.Num, noteStyle()))
		}
		return nil
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions [chart]",
	Short: "Lists capo frets that allow open chords",
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := loadChart(args, chartFile)
		if err != nil {
			return err
		}
		ref, err := openChords(openFlag)
		if err != nil {
			return err
		}
		for _, p := range seq.FindOpenPositionsIn(ref) {
			fmt.Fprintf(cmd.OutOrStdout(), "fret %d: %s\n", p.Fret, p.Sequence.Format(noteStyle()))
		}
		return nil
	},
}

var transposeCmd = &cobra.Command{
	Use:   "transpose --by N [chart]",
	Short: "Shifts every chord by N semitones",
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := loadChart(args, chartFile)
		if err != nil {
			return err
		}
		moved, err := seq.TransposeString(transposeBy)
		if err != nil {
			return err
		}
		if chartOut != "" {
			logger.Info("Writing chart", zap.String("path", chartOut))
			return file.WriteChart(chartOut, moved)
		}
		fmt.Fprintln(cmd.OutOrStdout(), moved.Format(noteStyle()))
		return nil
	},
}

// loadChart reads the chart from path when given, otherwise from the
// command line arguments.
func loadChart(args []string, path string) (sequence.Sequence, error) {
	if path != "" {
		return file.ReadChart(path)
	}
	if len(args) == 0 {
		return sequence.Sequence{}, errors.New("no chords given: pass a chart or --file")
	}
	return file.ParseChart(strings.Join(args, " "))
}

// openChords picks the reference set: the flag, then the config, then the
// built-in open chords.
func openChords(flag string) (sequence.Sequence, error) {
	chart := flag
	if chart == "" {
		chart = cfg.Analysis.OpenChords
	}
	if chart == "" {
		return sequence.DefaultOpenChords(), nil
	}
	ref, err := file.ParseChart(chart)
	if err != nil {
		return sequence.Sequence{}, fmt.Errorf("invalid open chords: %w", err)
	}
	return ref, nil
}

func printAnalysis(w io.Writer, seq sequence.Sequence, ref sequence.Sequence, style chord.NoteStyle) {
	fmt.Fprintf(w, "Chords: %s\n", seq.Format(style))

	var keys []string
	for _, key := range seq.FindKeys() {
		keys = append(keys, chord.FormatNoteStyle(key.Num, style))
	}
	if len(keys) == 0 {
		keys = append(keys, "none")
	}
	fmt.Fprintf(w, "Keys: %s\n", strings.Join(keys, ", "))

	open := "no"
	if seq.IsOpenIn(ref) {
		open = "yes"
	}
	fmt.Fprintf(w, "Open: %s\n", open)

	positions := seq.FindOpenPositionsIn(ref)
	if len(positions) == 0 {
		fmt.Fprintln(w, "Capo: none")
	}
	for _, p := range positions {
		fmt.Fprintf(w, "Capo %d: %s\n", p.Fret, p.Sequence.Format(style))
	}
}
