package storage

import (
	"fmt"

	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
)

// Round is one row of the rounds table.
type Round struct {
	ID          int64
	RoundDate   int64
	RoundLength float64
	MapName     string
	WinningTeam model.Team
	ServerName  string
	Genuine     bool
}

// InsertRounds stores each record with its per-side player rows and kill feed
// in one transaction. Round ids are assigned in input order starting at 1.
func (db *DB) InsertRounds(ms []model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	roundStmt, err := tx.Prepare(`
		INSERT INTO rounds(round_date, round_length, map_name, winning_team, server_name, genuine)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer roundStmt.Close()

	playerStmt, err := tx.Prepare(`
		INSERT INTO round_players(
			round_id, steam_id, name, side,
			kills, deaths, assists, score, hits, misses,
			time_played, commander_time, player_damage
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	killStmt, err := tx.Prepare(`
		INSERT INTO kills(round_id, game_time, killer_id, killer_class, killer_team, victim_id, victim_class, weapon)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer killStmt.Close()

	for i := range ms {
		m := &ms[i]
		ri := m.RoundInfo
		res, err := roundStmt.Exec(ri.RoundDate, ri.RoundLength, ri.MapName, ri.WinningTeam.String(),
			m.ServerInfo.Name, boolInt(games.IsGenuine(m)))
		if err != nil {
			return fmt.Errorf("insert round %d: %w", ri.RoundDate, err)
		}
		roundID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, id := range games.SortedPlayerIDs(m) {
			ps := m.PlayerStats[id]
			for _, side := range []model.Team{model.TeamMarines, model.TeamAliens} {
				s := ps.Side(side)
				if s.TimePlayed <= 0 {
					continue
				}
				_, err = playerStmt.Exec(
					roundID, int64(id), ps.PlayerName, side.String(),
					s.Kills, s.Deaths, s.Assists, s.Score, s.Hits, s.Misses,
					s.TimePlayed, s.CommanderTime, s.PlayerDamage,
				)
				if err != nil {
					return fmt.Errorf("insert round_players for %d: %w", id, err)
				}
			}
		}

		for _, k := range m.KillFeed {
			var killer, class any
			if k.KillerSteamID != nil {
				killer = int64(*k.KillerSteamID)
			}
			if k.KillerClass != nil {
				class = string(*k.KillerClass)
			}
			_, err = killStmt.Exec(roundID, k.GameTime, killer, class, k.KillerTeam.String(),
				int64(k.VictimSteamID), string(k.VictimClass), k.KillerWeapon)
			if err != nil {
				return fmt.Errorf("insert kill: %w", err)
			}
		}
	}
	return tx.Commit()
}

// InsertSnapshot writes the aggregated player and map counters, replacing any
// previous rows for the same keys.
func (db *DB) InsertSnapshot(s model.Snapshot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	playerStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO player_totals(
			steam_id, name, side, games, commander, wins,
			kills, assists, deaths, score, hits, misses
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()

	sides := []struct {
		name string
		team model.Team
	}{{"total", model.TeamNone}, {"marines", model.TeamMarines}, {"aliens", model.TeamAliens}}

	for _, p := range s.SortedPlayers() {
		for _, side := range sides {
			t := side.team
			_, err = playerStmt.Exec(
				int64(p.ID), p.Name, side.name,
				p.Games.Get(t), p.Commander.Get(t), p.Wins.Get(t),
				p.Kills.Get(t), p.Assists.Get(t), p.Deaths.Get(t),
				p.Score.Get(t), p.Hits.Get(t), p.Misses.Get(t),
			)
			if err != nil {
				return fmt.Errorf("insert player_totals for %d: %w", p.ID, err)
			}
		}
	}

	mapStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO maps(map_name, total_games, marine_wins, alien_wins)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer mapStmt.Close()

	for name, m := range s.Maps {
		if _, err = mapStmt.Exec(name, m.TotalGames, m.MarineWins, m.AlienWins); err != nil {
			return fmt.Errorf("insert map %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// ListRounds returns every stored round, newest first.
func (db *DB) ListRounds() ([]Round, error) {
	rows, err := db.conn.Query(`
		SELECT id, round_date, round_length, map_name, winning_team, server_name, genuine
		FROM rounds ORDER BY round_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Round
	for rows.Next() {
		var r Round
		var teamStr string
		var genuineInt int
		if err := rows.Scan(&r.ID, &r.RoundDate, &r.RoundLength, &r.MapName,
			&teamStr, &r.ServerName, &genuineInt); err != nil {
			return nil, err
		}
		r.WinningTeam = parseTeam(teamStr)
		r.Genuine = genuineInt != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTeam(s string) model.Team {
	switch s {
	case "Marines":
		return model.TeamMarines
	case "Aliens":
		return model.TeamAliens
	default:
		return model.TeamNone
	}
}

// Populate loads rounds and the snapshot computed from them.
func (db *DB) Populate(ms []model.MatchRecord, s model.Snapshot) error {
	if err := db.InsertRounds(ms); err != nil {
		return fmt.Errorf("insert rounds: %w", err)
	}
	if err := db.InsertSnapshot(s); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}
