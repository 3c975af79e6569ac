package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RandomGgames/obschunk/internal/clipboard"
	"github.com/RandomGgames/obschunk/internal/extract"
	"github.com/RandomGgames/obschunk/internal/scene"
	"github.com/RandomGgames/obschunk/internal/scenes"
)

var printOnlyFlag bool

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract ReaFIR chunk data and copy it to the clipboard",
	Long: `Extract searches a scene collection for filter entries whose plugin
path ends in the configured suffix (reafir_standalone.dll by default)
and collects their chunk data.

Without an argument, the OBS scenes directory is searched for
collections. If exactly one exists it is used; otherwise a numbered
list is shown and one must be chosen.

Outcome depends on how many entries match:
  - exactly one: the chunk data is copied to the clipboard
  - none: a notice is printed; this is not an error
  - several: all matches are printed for manual disambiguation and
    nothing is copied

Examples:
  # Search the default OBS scenes directory
  obschunk extract

  # Extract from a specific collection file
  obschunk extract ~/backups/Streaming.json

  # Print the chunk data instead of copying it
  obschunk extract --print-only
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().BoolVarP(&printOnlyFlag, "print-only", "p", false, "Print the chunk data instead of copying it to the clipboard")
}

func runExtract(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		selected, err := selectCollection(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		path = selected.Path
	}

	payloads, err := extractFile(path)
	if err != nil {
		return err
	}

	switch len(payloads) {
	case 0:
		log.Warn().Str("file", path).Msg("no ReaFIR filter found")

	case 1:
		if printOnlyFlag {
			fmt.Fprintln(cmd.OutOrStdout(), payloads[0])
			return nil
		}
		if err := clipboard.Copy(payloads[0]); err != nil {
			return err
		}
		log.Info().Msg("chunk data copied to clipboard")

	default:
		// Multiple matches are surfaced for manual disambiguation
		// rather than guessing which one to copy.
		log.Warn().Int("matches", len(payloads)).Msg("multiple ReaFIR filters found; not copying")
		for i, payload := range payloads {
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i+1, payload)
		}
	}

	return nil
}

// selectCollection discovers collections and picks one: automatically
// when only one exists, interactively otherwise.
func selectCollection(in io.Reader, out io.Writer) (scenes.Collection, error) {
	dir, err := resolveScenesDir()
	if err != nil {
		return scenes.Collection{}, err
	}

	discovery, err := scenes.NewDiscovery(dir, cfg.Scenes.Include, cfg.Scenes.Ignore)
	if err != nil {
		return scenes.Collection{}, err
	}

	collections, err := discovery.Discover()
	if err != nil {
		return scenes.Collection{}, err
	}

	if len(collections) == 0 {
		return scenes.Collection{}, fmt.Errorf("no scene collections found in %s", dir)
	}

	if len(collections) == 1 {
		log.Debug().Str("file", collections[0].Path).Msg("auto-selected the only scene collection")
		return collections[0], nil
	}

	return chooseCollection(in, out, collections)
}

// chooseCollection prompts with a numbered list until a valid selection
// is made.
func chooseCollection(in io.Reader, out io.Writer, collections []scenes.Collection) (scenes.Collection, error) {
	for i, c := range collections {
		fmt.Fprintf(out, "%d: %s\n", i+1, c.Name)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Select a scene collection by number: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return scenes.Collection{}, fmt.Errorf("failed to read selection: %w", err)
			}
			return scenes.Collection{}, errors.New("no selection made")
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > len(collections) {
			fmt.Fprintln(out, "Invalid selection, try again")
			continue
		}
		return collections[n-1], nil
	}
}

// extractFile reads, parses, and extracts one collection file using the
// configured match settings.
func extractFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene collection: %w", err)
	}

	root, err := scene.Parse(data)
	if err != nil {
		return nil, err
	}

	extractor := extract.New(
		extract.FieldSuffix(cfg.Match.DiscriminatorKey, cfg.Match.PluginSuffix),
		cfg.Match.PayloadKey,
		extract.WithMaxDepth(cfg.Match.MaxDepth),
	)

	payloads, err := extractor.Extract(root)
	if err != nil {
		return nil, fmt.Errorf("failed to extract from %s: %w", path, err)
	}

	log.Debug().Str("file", path).Int("matches", len(payloads)).Msg("extraction complete")
	return payloads, nil
}
