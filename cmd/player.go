package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/report"
)

var playerJSON bool

// playerCmd prints the per-side breakdown for one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <name|id> [<name|id>...]",
	Short: "Per-side statistics for one or more players",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().BoolVar(&playerJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(playerCmd)
}

func runPlayer(cmd *cobra.Command, args []string) error {
	ms, err := loadSelected(cmd.Context())
	if err != nil {
		return err
	}
	snap := aggregator.Compute(ms)

	ids, err := snap.Resolve(args)
	if err != nil {
		printLookupError(err)
		return err
	}

	if playerJSON {
		views := make([]report.PlayerView, len(ids))
		for i, id := range ids {
			views[i] = report.NewPlayerView(snap.Players[id])
		}
		return report.WriteJSON(os.Stdout, views)
	}
	for _, id := range ids {
		report.PrintPlayerDetail(os.Stdout, snap.Players[id])
	}
	return nil
}

// printLookupError lists unknown and ambiguous identifiers on stderr.
func printLookupError(err error) {
	var lerr *model.LookupError
	if !errors.As(err, &lerr) {
		return
	}
	for _, name := range lerr.Unknown {
		cError.Fprintf(os.Stderr, "unknown player: %s\n", name)
	}
	for _, name := range lerr.Ambiguous {
		cWarn.Fprintf(os.Stderr, "ambiguous name, use the player id: %s\n", name)
	}
	fmt.Fprintln(os.Stderr)
}
