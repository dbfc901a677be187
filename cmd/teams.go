package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/report"
	"github.com/pable/ns2-stats/internal/teams"
)

// Players with fewer attributed games than this get a warning: their ratios
// are mostly noise.
const fewGames = 5

var (
	teamsMetric     string
	teamsScoring    string
	teamsMax        int
	teamsWorkers    int
	teamsHistory    bool
	teamsMarineComm string
	teamsAlienComm  string
)

var teamsCmd = &cobra.Command{
	Use:   "teams <name|id> [<name|id>...]",
	Short: "Suggest balanced marine/alien splits for a roster",
	Long: `Enumerate every split of the roster into two sides whose sizes differ by at
most one, and print the most even ones. The first listed side plays marines.

With --history, earlier rounds played by exactly this roster under the given
commanders are listed instead, longest first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTeams,
}

func init() {
	teamsCmd.Flags().StringVar(&teamsMetric, "metric", "kd", "statistic to balance: kd, kda, winrate, score, accuracy")
	teamsCmd.Flags().StringVar(&teamsScoring, "scoring", "symmetric", "symmetric (total stat) or side-aware (marine stat vs alien stat)")
	teamsCmd.Flags().IntVar(&teamsMax, "max", 4, "number of suggestions to print")
	teamsCmd.Flags().IntVar(&teamsWorkers, "workers", 0, "search workers (default $NS2STAT_WORKERS or GOMAXPROCS)")
	teamsCmd.Flags().BoolVar(&teamsHistory, "history", false, "list past rounds with this roster instead")
	teamsCmd.Flags().StringVar(&teamsMarineComm, "marine-comm", "", "marine commander for --history")
	teamsCmd.Flags().StringVar(&teamsAlienComm, "alien-comm", "", "alien commander for --history")
	rootCmd.AddCommand(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	ms, err := loadSelected(cmd.Context())
	if err != nil {
		return err
	}

	if teamsHistory {
		past := teams.PastGames(games.SummarizeAll(ms), args, teamsMarineComm, teamsAlienComm)
		fmt.Fprintf(os.Stdout, "Rounds with %s\n", strings.Join(args, ", "))
		report.PrintPastGames(os.Stdout, past)
		return nil
	}

	metric, err := teams.ParseMetric(teamsMetric)
	if err != nil {
		return err
	}
	scoring, err := teams.ParseScoring(teamsScoring)
	if err != nil {
		return err
	}
	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = teamsWorkers
	}

	snap := aggregator.Compute(ms)
	got, err := teams.Suggest(snap, args, metric, teams.Options{
		Scoring:        scoring,
		MaxSuggestions: teamsMax,
		Workers:        workers,
	})
	if err != nil {
		printLookupError(err)
		return fmt.Errorf("suggest teams: %w", err)
	}

	warnFewGames(snap, args)
	warnSubstituted(snap, got.Substituted, metric)
	fmt.Fprintf(os.Stdout, "Team suggestions (%s, %s)\n", metric, scoring)
	report.PrintSuggestions(os.Stdout, got.Assignments, snap.Name)
	return nil
}

// warnSubstituted names the players whose undefined ratio was replaced.
func warnSubstituted(snap model.Snapshot, ids []model.PlayerID, metric teams.Metric) {
	for _, id := range ids {
		cWarn.Fprintf(os.Stderr, "warning: %s has no defined %s on a side, using the total or 0\n", snap.Name(id), metric)
	}
}

func warnFewGames(snap model.Snapshot, idents []string) {
	ids, err := snap.Resolve(idents)
	if err != nil {
		return
	}
	for _, id := range ids {
		if g := snap.Players[id].Games.Total; g < fewGames {
			cWarn.Fprintf(os.Stderr, "warning: %s has only %d genuine rounds\n", snap.Name(id), g)
		}
	}
}
