package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/report"
)

var (
	gamesFrom   string
	gamesTo     string
	gamesLatest bool
	gamesJSON   bool
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List round summaries with teams and commanders",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

func init() {
	gamesCmd.Flags().StringVar(&gamesFrom, "from", "", "first date to include (YYYY-MM-DD or unix seconds)")
	gamesCmd.Flags().StringVar(&gamesTo, "to", "", "last date to include (YYYY-MM-DD or unix seconds)")
	gamesCmd.Flags().BoolVar(&gamesLatest, "latest", false, "only the most recent round")
	gamesCmd.Flags().BoolVar(&gamesJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(gamesCmd)
}

func runGames(cmd *cobra.Command, _ []string) error {
	from, err := parseDate(gamesFrom, false)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseDate(gamesTo, true)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	ms, err := loadSelected(cmd.Context())
	if err != nil {
		return err
	}
	summaries := games.SummarizeAll(games.Between(ms, from, to))
	if gamesLatest && len(summaries) > 0 {
		summaries = summaries[len(summaries)-1:]
	}

	if gamesJSON {
		if summaries == nil {
			summaries = []model.GameSummary{}
		}
		return report.WriteJSON(os.Stdout, summaries)
	}
	report.PrintGames(os.Stdout, summaries)
	return nil
}
