package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RandomGgames/obschunk/internal/scenes"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered scene collections",
	Long: `List prints the scene-collection files found in the OBS scenes
directory (or the directory given with --scenes-dir), in the order the
extract prompt numbers them.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	dir, err := resolveScenesDir()
	if err != nil {
		return err
	}

	discovery, err := scenes.NewDiscovery(dir, cfg.Scenes.Include, cfg.Scenes.Ignore)
	if err != nil {
		return err
	}

	collections, err := discovery.Discover()
	if err != nil {
		return err
	}

	if len(collections) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No scene collections found in %s\n", dir)
		return nil
	}

	for i, c := range collections {
		fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%s)\n", i+1, c.Name, c.Path)
	}
	return nil
}
