package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/report"
	"github.com/pable/ns2-stats/internal/storage"
)

const schemaHelp = `Schema overview:
  rounds(id, round_date, round_length, map_name, winning_team, server_name, genuine)
  round_players(round_id, steam_id, name, side, kills, deaths, assists, score,
    hits, misses, time_played, commander_time, player_damage)
  kills(round_id, game_time, killer_id, killer_class, killer_team, victim_id,
    victim_class, weapon)
  player_totals(steam_id, name, side, games, commander, wins, kills, assists,
    deaths, score, hits, misses)          side is 'total', 'marines' or 'aliens'
  maps(map_name, total_games, marine_wins, alien_wins)

rounds, round_players and kills hold every round; player_totals and maps only
count genuine rounds unless --all is set.`

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the loaded rounds",
	Long: `Load the data directory into an in-memory SQLite database, run an arbitrary
SQL query against it and print the result as a table.

` + schemaHelp,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func init() {
	rootCmd.AddCommand(sqlCmd)
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintSQL(os.Stdout, cols, rows)
	return nil
}

// openStore loads every round into a fresh in-memory database.
func openStore(ctx context.Context) (*storage.DB, error) {
	ms, err := loadRounds(ctx)
	if err != nil {
		return nil, err
	}
	return newStore(ms)
}

func newStore(ms []model.MatchRecord) (*storage.DB, error) {
	db, err := storage.Open()
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	counted := ms
	if !allRounds {
		counted = games.Genuine(ms)
	}
	if err := db.Populate(ms, aggregator.Compute(counted)); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
