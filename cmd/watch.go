package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/capo/file"
	"github.com/jsphweid/capo/sequence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const watchDelay = 200 * time.Millisecond

func init() {
	watchCmd.Flags().StringVar(&openFlag, "open", "", "chart of chords to treat as open")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-analyzes a chart file whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := openChords(openFlag)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchChart(ctx, args[0], ref, cmd.OutOrStdout(), watchDelay)
	},
}

// watchChart prints the analysis of path once, then again after each burst
// of writes to it settles for delay. It returns when ctx is done.
func watchChart(ctx context.Context, path string, ref sequence.Sequence, out io.Writer, delay time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch the directory
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("could not watch %v: %w", path, err)
	}

	var mu sync.Mutex
	stopped := false
	defer func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()
	report := func() {
		seq, err := file.ReadChart(target)
		if err != nil {
			logger.Warn("Could not read chart", zap.String("path", target), zap.Error(err))
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		fmt.Fprintln(out, "--")
		printAnalysis(out, seq, ref, noteStyle())
	}
	report()

	debounced := debounce.New(delay)
	// replaces a pending report with a no-op
	defer debounced(func() {})
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != target {
				continue
			}
			if evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) {
				logger.Debug("Chart changed", zap.String("op", evt.Op.String()))
				debounced(report)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", zap.Error(err))
		}
	}
}
