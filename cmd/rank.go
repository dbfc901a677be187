package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/ranking"
	"github.com/pable/ns2-stats/internal/report"
)

var (
	rankMinEncounters uint32
	rankMinPair       uint32
	rankSlack         int
	rankGenuine       bool
	rankJSON          bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank players by head-to-head kill ratios",
	Long: `Build the pairwise kill ratio matrix from every kill feed and order players by
its dominant eigenvector. Only players with at least --min-encounters recorded
deaths and pairs that met at least --min-pair times take part.

Rounds are not filtered unless --genuine is set.`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().Uint32Var(&rankMinEncounters, "min-encounters", ranking.DefaultMinEncounters, "deaths a player needs to be ranked (default $NS2STAT_MIN_ENCOUNTERS)")
	rankCmd.Flags().Uint32Var(&rankMinPair, "min-pair", ranking.DefaultMinPairEncounters, "kills between two players for their ratio to count (default $NS2STAT_MIN_PAIR_ENCOUNTERS)")
	rankCmd.Flags().IntVar(&rankSlack, "slack", ranking.DefaultEncounterSlack, "drop players with this many fewer scored opponents than the best connected one; negative disables")
	rankCmd.Flags().BoolVar(&rankGenuine, "genuine", false, "only use genuine rounds")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ms, err := loadRounds(cmd.Context())
	if err != nil {
		return err
	}

	opts := ranking.Options{
		Genuine:           rankGenuine,
		MinEncounters:     cfg.MinEncounters,
		MinPairEncounters: cfg.MinPairEncounters,
		EncounterSlack:    rankSlack,
	}
	if cmd.Flags().Changed("min-encounters") {
		if rankMinEncounters == 0 {
			return fmt.Errorf("--min-encounters must be positive")
		}
		opts.MinEncounters = rankMinEncounters
	}
	if cmd.Flags().Changed("min-pair") {
		if rankMinPair == 0 {
			return fmt.Errorf("--min-pair must be positive")
		}
		opts.MinPairEncounters = rankMinPair
	}

	ranked, err := ranking.Rank(ms, opts)
	if err != nil {
		return err
	}
	if rankJSON {
		return report.WriteJSON(os.Stdout, ranked)
	}
	report.PrintRanking(os.Stdout, ranked)
	return nil
}
