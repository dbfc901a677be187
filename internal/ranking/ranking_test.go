package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/ns2-stats/internal/model"
)

func id(p model.PlayerID) *model.PlayerID { return &p }

func class(c model.PlayerClass) *model.PlayerClass { return &c }

// kills appends n kills of victim by killer to the feed.
func kills(feed []model.KillEvent, killer, victim model.PlayerID, n int) []model.KillEvent {
	for i := 0; i < n; i++ {
		feed = append(feed, model.KillEvent{
			KillerSteamID: id(killer),
			KillerClass:   class(model.ClassRifle),
			VictimSteamID: victim,
			VictimClass:   model.ClassSkulk,
		})
	}
	return feed
}

func match(date int64, names map[model.PlayerID]string, feed []model.KillEvent) model.MatchRecord {
	ps := make(map[model.PlayerID]model.PlayerStat, len(names))
	for id, n := range names {
		ps[id] = model.PlayerStat{PlayerName: n}
	}
	return model.MatchRecord{
		KillFeed:    feed,
		PlayerStats: ps,
		RoundInfo:   model.RoundInfo{RoundDate: date, RoundLength: 900, MapName: "ns2_tram"},
	}
}

func loose() Options {
	return Options{MinEncounters: 1, MinPairEncounters: 1, EncounterSlack: -1}
}

func TestRank_TwoPlayers(t *testing.T) {
	const a, b model.PlayerID = 1, 2
	feed := kills(nil, a, b, 30)
	feed = kills(feed, b, a, 5)
	ms := []model.MatchRecord{match(100, map[model.PlayerID]string{a: "A", b: "B"}, feed)}

	m := BuildMatrix(CountKills(ms), loose())
	require.Equal(t, []model.PlayerID{a, b}, m.Players)
	assert.InDelta(t, 5.0/30.0, m.S[0][1], 1e-12)
	assert.InDelta(t, 30.0/5.0, m.S[1][0], 1e-12)
	assert.Zero(t, m.S[0][0])

	got, err := Rank(ms, loose())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].ID)
	assert.Equal(t, "A", got[0].Name)
	assert.Greater(t, got[0].Weight, got[1].Weight)
}

func TestRank_Deterministic(t *testing.T) {
	names := map[model.PlayerID]string{1: "one", 2: "two", 3: "three"}
	var feed []model.KillEvent
	feed = kills(feed, 1, 2, 12)
	feed = kills(feed, 2, 1, 8)
	feed = kills(feed, 2, 3, 9)
	feed = kills(feed, 3, 2, 6)
	feed = kills(feed, 1, 3, 7)
	feed = kills(feed, 3, 1, 7)
	ms := []model.MatchRecord{match(1, names, feed)}

	first, err := Rank(ms, loose())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Rank(ms, loose())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRank_IterationCap(t *testing.T) {
	feed := kills(nil, 1, 2, 30)
	feed = kills(feed, 2, 1, 5)
	ms := []model.MatchRecord{match(1, map[model.PlayerID]string{1: "A", 2: "B"}, feed)}

	opts := loose()
	opts.MaxIterations = 1
	opts.Tolerance = 1e-15
	_, err := Rank(ms, opts)
	assert.ErrorIs(t, err, ErrRankingUndefined)
}

func TestRank_NoSignal(t *testing.T) {
	_, err := Rank(nil, Options{})
	assert.ErrorIs(t, err, ErrRankingUndefined)

	// One-sided kills leave every ratio undefined.
	ms := []model.MatchRecord{match(1, map[model.PlayerID]string{1: "A", 2: "B"}, kills(nil, 1, 2, 40))}
	_, err = Rank(ms, loose())
	assert.ErrorIs(t, err, ErrRankingUndefined)
}

func TestCountKills_SkipsCommanderAndWorldKills(t *testing.T) {
	feed := []model.KillEvent{
		{KillerSteamID: id(1), KillerClass: class(model.ClassCommander), VictimSteamID: 2},
		{KillerSteamID: nil, VictimSteamID: 2},
		{KillerSteamID: id(1), KillerClass: class(model.ClassFade), VictimSteamID: 2},
	}
	k := CountKills([]model.MatchRecord{{KillFeed: feed}})
	assert.Equal(t, uint32(1), k.Kills(1, 2))
	assert.Equal(t, uint32(1), k.Deaths(2))
	assert.Equal(t, []model.PlayerID{2}, k.Victims())
}

func TestBuildMatrix_Pruning(t *testing.T) {
	k := CountKills(nil)
	add := func(a, b model.PlayerID, n int) {
		for i := 0; i < n; i++ {
			k.Add(a, b)
		}
	}
	// 1, 2 and 3 all meet each other; 4 only ever dies to 1.
	add(1, 2, 5)
	add(2, 1, 5)
	add(2, 3, 5)
	add(3, 2, 5)
	add(1, 3, 5)
	add(3, 1, 5)
	add(1, 4, 10)
	// 5 has too few deaths to be considered at all.
	add(1, 5, 2)
	add(5, 1, 2)

	m := BuildMatrix(k, Options{MinEncounters: 5, MinPairEncounters: 4, EncounterSlack: 1})
	assert.Equal(t, []model.PlayerID{1, 2, 3}, m.Players)
	for i := range m.S {
		for j := range m.S[i] {
			if i == j {
				assert.Zero(t, m.S[i][j])
			} else {
				assert.InDelta(t, 1.0, m.S[i][j], 1e-12)
			}
		}
	}

	// Pair threshold above every pair: nobody scores.
	m = BuildMatrix(k, Options{MinEncounters: 5, MinPairEncounters: 100, EncounterSlack: -1})
	assert.False(t, m.HasSignal())
}

func TestPowerIteration_Converges(t *testing.T) {
	s := [][]float64{
		{0, 0.5},
		{2, 0},
	}
	v, iters, err := PowerIteration(s, 1e-9, 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, iters, 100)
	assert.InDelta(t, 2*v[1], v[0], 1e-6)

	_, _, err = PowerIteration(nil, 1e-9, 100)
	assert.ErrorIs(t, err, ErrRankingUndefined)
}

func TestRank_LatestName(t *testing.T) {
	feed := kills(nil, 1, 2, 10)
	feed = kills(feed, 2, 1, 10)
	ms := []model.MatchRecord{
		match(200, map[model.PlayerID]string{1: "new", 2: "B"}, feed),
		match(100, map[model.PlayerID]string{1: "old", 2: "B"}, nil),
	}
	got, err := Rank(ms, loose())
	require.NoError(t, err)
	for _, r := range got {
		if r.ID == 1 {
			assert.Equal(t, "new", r.Name)
		}
	}
}

// genuineMatch is a 3v3 round long enough to pass games.IsGenuine: ids 1-3
// play marines, 4-6 aliens.
func genuineMatch(date int64, length float64, feed []model.KillEvent) model.MatchRecord {
	ps := make(map[model.PlayerID]model.PlayerStat, 6)
	for id := model.PlayerID(1); id <= 6; id++ {
		p := model.PlayerStat{PlayerName: string(rune('a' + id - 1))}
		if id <= 3 {
			p.Marines.TimePlayed = length
		} else {
			p.Aliens.TimePlayed = length
		}
		ps[id] = p
	}
	return model.MatchRecord{
		KillFeed:    feed,
		PlayerStats: ps,
		RoundInfo:   model.RoundInfo{RoundDate: date, RoundLength: length, MapName: "ns2_tram"},
	}
}

func TestRank_GenuineFilter(t *testing.T) {
	// 1 beats 4 in the real round, 4 farms 1 in a 2 minute one.
	feed := kills(nil, 1, 4, 30)
	feed = kills(feed, 4, 1, 5)
	ms := []model.MatchRecord{
		genuineMatch(100, 900, feed),
		genuineMatch(200, 120, kills(nil, 4, 1, 100)),
	}

	all, err := Rank(ms, loose())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, model.PlayerID(4), all[0].ID)

	opts := loose()
	opts.Genuine = true
	genuine, err := Rank(ms, opts)
	require.NoError(t, err)
	require.Len(t, genuine, 2)
	assert.Equal(t, model.PlayerID(1), genuine[0].ID)
	assert.Equal(t, "a", genuine[0].Name)
}
