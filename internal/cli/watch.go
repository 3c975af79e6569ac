package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RandomGgames/obschunk/internal/clipboard"
	"github.com/RandomGgames/obschunk/internal/watcher"
)

var watchCopyFlag bool

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the scenes directory and re-extract on changes",
	Long: `Watch monitors the OBS scenes directory and re-runs extraction
whenever a collection file changes, which happens when OBS saves the
collection. Results are logged; with --copy, a single match is also
copied to the clipboard.

Examples:
  # Log chunk data whenever OBS saves a collection
  obschunk watch

  # Keep the clipboard updated with the latest single match
  obschunk watch --copy
`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchCopyFlag, "copy", false, "Copy single matches to the clipboard")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("interrupted, stopping watch")
		cancel()
	}()

	dir, err := resolveScenesDir()
	if err != nil {
		return err
	}

	w, err := watcher.New(dir, cfg.Scenes.Include, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx, handleChangedFiles); err != nil {
		return err
	}

	log.Info().Str("dir", dir).Msg("watching for scene-collection changes")
	<-ctx.Done()
	return nil
}

// handleChangedFiles re-extracts each changed collection and reports
// the outcome.
func handleChangedFiles(files []string) {
	for _, file := range files {
		payloads, err := extractFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("extraction failed")
			continue
		}

		switch len(payloads) {
		case 0:
			log.Info().Str("file", file).Msg("no ReaFIR filter found")
		case 1:
			log.Info().Str("file", file).Msg("found ReaFIR chunk data")
			if watchCopyFlag {
				if err := clipboard.Copy(payloads[0]); err != nil {
					log.Error().Err(err).Msg("clipboard copy failed")
					continue
				}
				log.Info().Msg("chunk data copied to clipboard")
			}
		default:
			log.Warn().Str("file", file).Int("matches", len(payloads)).Msg("multiple ReaFIR filters found; not copying")
		}
	}
}
