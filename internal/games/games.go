// Package games classifies and summarizes completed NS2 rounds.
package games

import (
	"sort"

	"github.com/pable/ns2-stats/internal/model"
)

const (
	// MinRoundLength is the shortest round, in seconds, counted as a real game.
	MinRoundLength = 300.0
	// MinPlayersPerSide must be exceeded on both sides; fewer means a bot or practice round.
	MinPlayersPerSide = 2
)

// IsGenuine reports whether a round is long enough and was not a bot game.
func IsGenuine(m *model.MatchRecord) bool {
	return m.RoundInfo.RoundLength >= MinRoundLength && !isBotGame(m)
}

// isBotGame counts players with time on each side; both sides need more than
// MinPlayersPerSide. A round without players is a bot game.
func isBotGame(m *model.MatchRecord) bool {
	marines, aliens := 0, 0
	for _, p := range m.PlayerStats {
		if p.Marines.TimePlayed > 0 {
			marines++
		}
		if p.Aliens.TimePlayed > 0 {
			aliens++
		}
	}
	return marines <= MinPlayersPerSide || aliens <= MinPlayersPerSide
}

// Genuine returns the genuine rounds in their original order.
func Genuine(matches []model.MatchRecord) []model.MatchRecord {
	return filter(matches, IsGenuine)
}

// FilterByLength keeps rounds whose length (seconds) satisfies keep.
func FilterByLength(matches []model.MatchRecord, keep func(length float64) bool) []model.MatchRecord {
	return filter(matches, func(m *model.MatchRecord) bool {
		return keep(m.RoundInfo.RoundLength)
	})
}

// FilterBotGames drops rounds that were likely played against bots.
func FilterBotGames(matches []model.MatchRecord) []model.MatchRecord {
	return filter(matches, func(m *model.MatchRecord) bool { return !isBotGame(m) })
}

// Between keeps rounds whose date lies in [from, to]; a zero bound is open.
func Between(matches []model.MatchRecord, from, to int64) []model.MatchRecord {
	return filter(matches, func(m *model.MatchRecord) bool {
		d := m.RoundInfo.RoundDate
		return (from == 0 || d >= from) && (to == 0 || d <= to)
	})
}

func filter(matches []model.MatchRecord, keep func(*model.MatchRecord) bool) []model.MatchRecord {
	out := make([]model.MatchRecord, 0, len(matches))
	for i := range matches {
		if keep(&matches[i]) {
			out = append(out, matches[i])
		}
	}
	return out
}

// SortedPlayerIDs returns the ids in a round in ascending order, so every
// per-round scan visits players the same way on every run.
func SortedPlayerIDs(m *model.MatchRecord) []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(m.PlayerStats))
	for id := range m.PlayerStats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AttributionSide is the side a player is credited to for games, wins and
// commander counts: the one with more time played, marines on an exact tie.
func AttributionSide(p *model.PlayerStat) model.Team {
	if p.Aliens.TimePlayed > p.Marines.TimePlayed {
		return model.TeamAliens
	}
	return model.TeamMarines
}

// Commander returns the player with the most commander time on the given side.
// Ties go to the lowest id. ok is false when nobody commanded that side.
func Commander(m *model.MatchRecord, side model.Team) (id model.PlayerID, ok bool) {
	best := 0.0
	for _, pid := range SortedPlayerIDs(m) {
		p := m.PlayerStats[pid]
		t := p.Side(side).CommanderTime
		if t > best {
			best, id, ok = t, pid, true
		}
	}
	return id, ok
}
