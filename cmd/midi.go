package cmd

import (
	"errors"

	"github.com/jsphweid/capo/file"
	"github.com/jsphweid/capo/midi"
	"github.com/jsphweid/capo/sample"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importOut     string
	exportOut     string
	ticksPerChord uint32
)

func init() {
	midiImportCmd.Flags().StringVarP(&importOut, "out", "o", "", "write the recognised chords to a chart file")
	midiExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "midi file to write")
	midiExportCmd.Flags().StringVarP(&chartFile, "file", "f", "", "read the chord chart from a file")
	midiExportCmd.Flags().Uint32Var(&ticksPerChord, "ticks", 0, "ticks between chords (default one bar)")
	midiCmd.AddCommand(midiImportCmd, midiExportCmd)
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi",
	Short: "Reads and writes chord progressions as MIDI files",
}

var midiImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Recognises the chords in a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := midi.ReadSequenceFile(args[0])
		if err != nil {
			return err
		}
		logger.Debug("Read midi file", zap.String("path", args[0]), zap.Int("chords", seq.Len()))
		if importOut != "" {
			return file.WriteChart(importOut, seq)
		}
		ref, err := openChords("")
		if err != nil {
			return err
		}
		printAnalysis(cmd.OutOrStdout(), seq, ref, noteStyle())
		return nil
	},
}

var midiExportCmd = &cobra.Command{
	Use:   "export --out FILE [chart]",
	Short: "Writes a progression as block chords",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOut == "" {
			return errors.New("--out is required")
		}
		seq, err := loadChart(args, chartFile)
		if err != nil {
			return err
		}
		logger.Info("Writing midi file", zap.String("path", exportOut), zap.Int("chords", seq.Len()))
		return midi.WriteSequenceFile(exportOut, seq, sample.Options{TicksPerChord: ticksPerChord})
	},
}
