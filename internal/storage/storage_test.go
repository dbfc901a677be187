package storage

import (
	"testing"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func pid(id model.PlayerID) *model.PlayerID { return &id }

func testRound(date int64, mapName string, winner model.Team) model.MatchRecord {
	players := make(map[model.PlayerID]model.PlayerStat)
	for i := 1; i <= 6; i++ {
		ps := model.PlayerStat{PlayerName: "p" + string(rune('0'+i))}
		if i <= 3 {
			ps.Marines = model.TeamStats{Kills: uint32(i), Deaths: 1, TimePlayed: 600}
		} else {
			ps.Aliens = model.TeamStats{Kills: 1, Deaths: uint32(i), TimePlayed: 600}
		}
		players[model.PlayerID(i)] = ps
	}
	return model.MatchRecord{
		KillFeed: []model.KillEvent{
			{KillerSteamID: pid(1), VictimSteamID: 4, VictimClass: model.ClassSkulk, KillerWeapon: "Rifle"},
			{KillerSteamID: nil, VictimSteamID: 5, VictimClass: model.ClassGorge, KillerWeapon: "Turret"},
		},
		PlayerStats: players,
		RoundInfo:   model.RoundInfo{RoundDate: date, RoundLength: 900, MapName: mapName, WinningTeam: winner},
		ServerInfo:  model.ServerInfo{Name: "srv"},
	}
}

func TestInsertAndListRounds(t *testing.T) {
	db := openMemDB(t)

	short := testRound(300, "ns2_tram", model.TeamAliens)
	short.RoundInfo.RoundLength = 120
	ms := []model.MatchRecord{testRound(100, "ns2_veil", model.TeamMarines), short}

	if err := db.InsertRounds(ms); err != nil {
		t.Fatalf("InsertRounds: %v", err)
	}

	rounds, err := db.ListRounds()
	if err != nil {
		t.Fatalf("ListRounds: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	// Newest first.
	if rounds[0].MapName != "ns2_tram" {
		t.Errorf("expected ns2_tram first, got %s", rounds[0].MapName)
	}
	if rounds[0].WinningTeam != model.TeamAliens {
		t.Errorf("expected Aliens, got %s", rounds[0].WinningTeam)
	}
	if rounds[0].Genuine {
		t.Error("a 120 second round must not be genuine")
	}
	if !rounds[1].Genuine {
		t.Error("expected the 900 second 3v3 round to be genuine")
	}
	if rounds[1].ServerName != "srv" {
		t.Errorf("expected server name srv, got %q", rounds[1].ServerName)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	ms := []model.MatchRecord{testRound(100, "ns2_veil", model.TeamMarines)}
	if err := db.InsertRounds(ms); err != nil {
		t.Fatalf("InsertRounds: %v", err)
	}

	cols, rows, err := db.QueryRaw(`SELECT side, COUNT(*) FROM round_players GROUP BY side ORDER BY side`)
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[0] != "side" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Aliens" || rows[0][1] != "3" {
		t.Errorf("expected [Aliens 3], got %v", rows[0])
	}

	_, rows, err = db.QueryRaw(`SELECT killer_id FROM kills ORDER BY rowid`)
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "1" || rows[1][0] != "NULL" {
		t.Errorf("unexpected killer ids %v", rows)
	}

	if _, _, err := db.QueryRaw(`SELECT * FROM no_such_table`); err == nil {
		t.Error("expected an error for an unknown table")
	}
}

func TestPopulateSnapshot(t *testing.T) {
	db := openMemDB(t)
	ms := []model.MatchRecord{
		testRound(100, "ns2_veil", model.TeamMarines),
		testRound(200, "ns2_veil", model.TeamAliens),
	}
	snap := aggregator.Compute(ms)

	if err := db.Populate(ms, snap); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	_, rows, err := db.QueryRaw(`SELECT total_games, marine_wins, alien_wins FROM maps WHERE map_name = ?`, "ns2_veil")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "2" || rows[0][1] != "1" || rows[0][2] != "1" {
		t.Errorf("unexpected map row %v", rows)
	}

	_, rows, err = db.QueryRaw(`SELECT side, games, kills FROM player_totals WHERE steam_id = 3 ORDER BY side`)
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	// aliens, marines, total
	want := [][]string{{"aliens", "0", "0"}, {"marines", "2", "6"}, {"total", "2", "6"}}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d: expected %s, got %s", i, j, want[i][j], rows[i][j])
			}
		}
	}
}
