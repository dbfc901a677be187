package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/ns2-stats/internal/model"
)

func round(date int64, length float64, marines, aliens int) model.MatchRecord {
	players := make(map[model.PlayerID]model.PlayerStat)
	id := model.PlayerID(1)
	for i := 0; i < marines; i++ {
		players[id] = model.PlayerStat{PlayerName: "m" + string(rune('a'+i)), Marines: model.TeamStats{TimePlayed: length}}
		id++
	}
	for i := 0; i < aliens; i++ {
		players[id] = model.PlayerStat{PlayerName: "a" + string(rune('a'+i)), Aliens: model.TeamStats{TimePlayed: length}}
		id++
	}
	return model.MatchRecord{
		PlayerStats: players,
		RoundInfo:   model.RoundInfo{RoundDate: date, RoundLength: length, MapName: "ns2_summit"},
	}
}

func TestIsGenuine(t *testing.T) {
	cases := []struct {
		name string
		m    model.MatchRecord
		want bool
	}{
		{"6v5 long round", round(1, 900, 6, 5), true},
		{"exactly minimum length", round(1, MinRoundLength, 3, 3), true},
		{"too short", round(1, 299.9, 6, 6), false},
		{"two marines only", round(1, 900, 2, 6), false},
		{"two aliens only", round(1, 900, 6, 2), false},
		{"no players", round(1, 900, 0, 0), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsGenuine(&c.m), c.name)
	}
}

func TestIsGenuine_SideSwitcherCountsOnBothSides(t *testing.T) {
	m := round(1, 900, 3, 2)
	p := m.PlayerStats[1]
	p.Aliens.TimePlayed = 10
	m.PlayerStats[1] = p
	assert.True(t, IsGenuine(&m))
}

func TestGenuine_IdempotentAndOrdered(t *testing.T) {
	ms := []model.MatchRecord{
		round(3, 900, 4, 4),
		round(1, 100, 4, 4),
		round(2, 900, 4, 4),
		round(4, 900, 1, 4),
	}
	once := Genuine(ms)
	require.Len(t, once, 2)
	assert.Equal(t, int64(3), once[0].RoundInfo.RoundDate)
	assert.Equal(t, int64(2), once[1].RoundInfo.RoundDate)
	assert.Equal(t, once, Genuine(once))

	assert.Len(t, FilterBotGames(ms), 3)
	assert.Len(t, FilterByLength(ms, func(l float64) bool { return l < 300 }), 1)
}

func TestBetween(t *testing.T) {
	ms := []model.MatchRecord{round(10, 900, 3, 3), round(20, 900, 3, 3), round(30, 900, 3, 3)}
	assert.Len(t, Between(ms, 0, 0), 3)
	assert.Len(t, Between(ms, 20, 0), 2)
	assert.Len(t, Between(ms, 0, 20), 2)
	assert.Len(t, Between(ms, 15, 25), 1)
	assert.Empty(t, Between(ms, 31, 0))
}

func TestCommanderAndSummary(t *testing.T) {
	m := round(50, 900, 3, 3)
	m.RoundInfo.WinningTeam = model.TeamAliens
	p := m.PlayerStats[2]
	p.Marines.CommanderTime = 800
	m.PlayerStats[2] = p

	id, ok := Commander(&m, model.TeamMarines)
	require.True(t, ok)
	assert.Equal(t, model.PlayerID(2), id)
	_, ok = Commander(&m, model.TeamAliens)
	assert.False(t, ok)

	s := Summarize(&m)
	assert.Equal(t, []string{"ma", "mb", "mc"}, s.Marines.Players)
	assert.Equal(t, []string{"aa", "ab", "ac"}, s.Aliens.Players)
	assert.Equal(t, "mb", s.Marines.Commander)
	assert.Empty(t, s.Aliens.Commander)
	assert.Equal(t, model.TeamAliens, s.WinningTeam)
	assert.True(t, s.Marines.Has("mc"))
	assert.False(t, s.Marines.Has("aa"))
}
