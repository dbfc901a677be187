package games

import (
	"sort"

	"github.com/pable/ns2-stats/internal/model"
)

// Summarize builds the listing record for one round. Players are assigned to
// the side they spent most time on and listed by name.
func Summarize(m *model.MatchRecord) model.GameSummary {
	s := model.GameSummary{
		RoundDate:   m.RoundInfo.RoundDate,
		RoundLength: m.RoundInfo.RoundLength,
		MapName:     m.RoundInfo.MapName,
		WinningTeam: m.RoundInfo.WinningTeam,
		Marines:     model.TeamSummary{Players: []string{}},
		Aliens:      model.TeamSummary{Players: []string{}},
	}
	for _, id := range SortedPlayerIDs(m) {
		p := m.PlayerStats[id]
		if p.Marines.TimePlayed == 0 && p.Aliens.TimePlayed == 0 {
			continue
		}
		if AttributionSide(&p) == model.TeamAliens {
			s.Aliens.Players = append(s.Aliens.Players, p.PlayerName)
		} else {
			s.Marines.Players = append(s.Marines.Players, p.PlayerName)
		}
	}
	sort.Strings(s.Marines.Players)
	sort.Strings(s.Aliens.Players)
	if id, ok := Commander(m, model.TeamMarines); ok {
		s.Marines.Commander = m.PlayerStats[id].PlayerName
	}
	if id, ok := Commander(m, model.TeamAliens); ok {
		s.Aliens.Commander = m.PlayerStats[id].PlayerName
	}
	return s
}

// SummarizeAll summarizes every round, keeping input order.
func SummarizeAll(matches []model.MatchRecord) []model.GameSummary {
	out := make([]model.GameSummary, 0, len(matches))
	for i := range matches {
		out = append(out, Summarize(&matches[i]))
	}
	return out
}
