package cmd

import (
	"fmt"

	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/config"
	"github.com/jsphweid/capo/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	styleFlag  string

	logger = zap.NewNop()
	cfg    = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "capo",
	Short: "Chord progression keys and capo positions",
	Long: `capo reads chord progressions (e.g. "A, B min, E 7"), finds the major keys
they fit in and the capo frets that let them be played with open chords.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if styleFlag != "" {
			loaded.Display.NoteStyle = styleFlag
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		cfg = loaded
		logger.Debug("Loaded config", zap.String("path", configPath), zap.String("store", cfg.Store.Backend))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.GetConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&styleFlag, "style", "", "note names: both, sharp or flat")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func noteStyle() chord.NoteStyle {
	return cfg.NoteStyle()
}
