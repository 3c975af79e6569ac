package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RandomGgames/obschunk/internal/config"
	"github.com/RandomGgames/obschunk/internal/scenes"
)

var (
	cfgFile   string
	verbose   bool
	scenesDir string

	// cfg is loaded before any command runs.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "obschunk",
	Short: "Extract ReaFIR chunk data from OBS scene collections",
	Long: `obschunk finds ReaFIR VST plugin configuration payloads ("chunk data")
inside OBS Studio scene-collection files and copies a single match to
the system clipboard, so a tuned noise-suppression profile can be moved
between machines.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		setupLogging(cfg.Log.Level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.obschunk/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&scenesDir, "scenes-dir", "", "scene-collection directory (default is the OBS profile directory)")
}

// setupLogging configures the global zerolog logger. --verbose forces
// debug level regardless of the configured level.
func setupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// resolveScenesDir returns the directory to search for collections:
// the --scenes-dir flag, then the configured directory, then the
// platform default.
func resolveScenesDir() (string, error) {
	if scenesDir != "" {
		return scenesDir, nil
	}
	if cfg.Scenes.Dir != "" {
		return cfg.Scenes.Dir, nil
	}
	return scenes.DefaultDir()
}
