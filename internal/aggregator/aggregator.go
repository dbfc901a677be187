package aggregator

import (
	"sort"

	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
)

// Compute folds rounds into a Snapshot. Callers filter first (games.Genuine)
// when they want only genuine rounds. No input gives the zero snapshot.
func Compute(matches []model.MatchRecord) model.Snapshot {
	snap := model.NewSnapshot()
	for i := range matches {
		accumulate(&snap, &matches[i])
	}
	return snap
}

// FromMatch builds the snapshot of a single round.
func FromMatch(m *model.MatchRecord) model.Snapshot {
	snap := model.NewSnapshot()
	accumulate(&snap, m)
	return snap
}

// accumulate adds one round to snap. Only Compute and FromMatch call it, on a
// snapshot they own and have not yet returned.
func accumulate(snap *model.Snapshot, m *model.MatchRecord) {
	winner := m.RoundInfo.WinningTeam
	date := m.RoundInfo.RoundDate

	// ---- Pass 1: per-player counters. ----
	for _, id := range games.SortedPlayerIDs(m) {
		ps := m.PlayerStats[id]
		agg, ok := snap.Players[id]
		if !ok {
			agg = model.PlayerAggregate{ID: id}
		}
		// Same (date, name) ordering as PlayerAggregate.Plus so Compute and Merge agree.
		if !ok || date > agg.LastSeen || (date == agg.LastSeen && ps.PlayerName > agg.Name) {
			agg.Name = ps.PlayerName
			agg.LastSeen = date
		}

		side := games.AttributionSide(&ps)
		agg.Games.Add(side, 1)
		if winner == side {
			agg.Wins.Add(side, 1)
		}

		// Raw counters go to the side they were recorded on, whatever the attribution.
		for _, team := range []model.Team{model.TeamMarines, model.TeamAliens} {
			st := ps.Side(team)
			agg.Kills.Add(team, st.Kills)
			agg.Assists.Add(team, st.Assists)
			agg.Deaths.Add(team, st.Deaths)
			agg.Score.Add(team, st.Score)
			agg.Hits.Add(team, st.Hits)
			agg.Misses.Add(team, st.Misses)
		}
		snap.Players[id] = agg
	}

	// ---- Pass 2: commanders. ----
	for _, team := range []model.Team{model.TeamMarines, model.TeamAliens} {
		id, ok := games.Commander(m, team)
		if !ok {
			continue
		}
		agg := snap.Players[id]
		agg.Commander.Add(team, 1)
		snap.Players[id] = agg
	}

	// ---- Pass 3: map and global outcome. ----
	mp := snap.Maps[m.RoundInfo.MapName]
	mp.TotalGames++
	switch winner {
	case model.TeamMarines:
		mp.MarineWins++
		snap.MarineWins++
	case model.TeamAliens:
		mp.AlienWins++
		snap.AlienWins++
	}
	snap.Maps[m.RoundInfo.MapName] = mp

	if date > snap.LatestGame {
		snap.LatestGame = date
	}
	snap.TotalGames++
}

// Merge returns the field-wise sum of two snapshots. Neither input is modified;
// keys missing on one side count as zero aggregates.
func Merge(a, b model.Snapshot) model.Snapshot {
	out := model.Snapshot{
		LatestGame: max(a.LatestGame, b.LatestGame),
		Players:    make(map[model.PlayerID]model.PlayerAggregate, max(len(a.Players), len(b.Players))),
		Maps:       make(map[string]model.MapAggregate, max(len(a.Maps), len(b.Maps))),
		TotalGames: a.TotalGames + b.TotalGames,
		MarineWins: a.MarineWins + b.MarineWins,
		AlienWins:  a.AlienWins + b.AlienWins,
	}
	for id, p := range a.Players {
		out.Players[id] = p.Plus(b.Players[id])
	}
	for id, p := range b.Players {
		if _, done := a.Players[id]; !done {
			out.Players[id] = model.PlayerAggregate{}.Plus(p)
		}
	}
	for name, m := range a.Maps {
		out.Maps[name] = m.Plus(b.Maps[name])
	}
	for name, m := range b.Maps {
		if _, done := a.Maps[name]; !done {
			out.Maps[name] = m
		}
	}
	return out
}

// MergeAll folds any number of snapshots; the order does not matter.
func MergeAll(snaps ...model.Snapshot) model.Snapshot {
	out := model.NewSnapshot()
	for _, s := range snaps {
		out = Merge(out, s)
	}
	return out
}

// Entry is the cumulative snapshot after the round played at Date.
type Entry struct {
	Date  int64          `json:"date"`
	Stats model.Snapshot `json:"stats"`
}

// Continuous returns one cumulative snapshot per distinct round date, in date
// order. Each step merges the new round into the previous snapshot instead of
// recomputing the whole prefix.
func Continuous(matches []model.MatchRecord) []Entry {
	ordered := make([]*model.MatchRecord, len(matches))
	for i := range matches {
		ordered[i] = &matches[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RoundInfo.RoundDate < ordered[j].RoundInfo.RoundDate
	})

	out := make([]Entry, 0, len(ordered))
	running := model.NewSnapshot()
	for _, m := range ordered {
		running = Merge(running, FromMatch(m))
		date := m.RoundInfo.RoundDate
		if n := len(out); n > 0 && out[n-1].Date == date {
			out[n-1].Stats = running
			continue
		}
		out = append(out, Entry{Date: date, Stats: running})
	}
	return out
}
