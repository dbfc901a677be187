package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/report"
)

var (
	statsJSON   bool
	statsOutput string
	statsMin    uint32
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print player and map statistics over all genuine rounds",
	Long: `Print the overall marine win rate, the players table and the maps table.

The players table only lists players with more than --min kills and deaths,
ordered by K/D.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the full snapshot as JSON")
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "write to this file instead of stdout")
	statsCmd.Flags().Uint32Var(&statsMin, "min", report.DefaultMinCount, "kills and deaths a player must exceed to be listed (default $NS2STAT_MIN_COUNT)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ms, err := loadSelected(cmd.Context())
	if err != nil {
		return err
	}
	snap := aggregator.Compute(ms)

	minCount := cfg.MinCount
	if cmd.Flags().Changed("min") {
		minCount = statsMin
	}

	return withOutput(statsOutput, func(w io.Writer) error {
		if statsJSON {
			return report.WriteJSON(w, report.NewStatsView(snap))
		}
		report.PrintStats(w, snap, minCount)
		return nil
	})
}

// withOutput runs fn against stdout, or against path when it is set.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}
