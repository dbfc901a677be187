package ranking

import (
	"sort"

	"github.com/pable/ns2-stats/internal/model"
)

// KillMatrix counts how often each player killed each other player.
type KillMatrix struct {
	kills  map[model.PlayerID]map[model.PlayerID]uint32
	deaths map[model.PlayerID]uint32
}

// CountKills builds the kill matrix from the kill feeds of matches. Kills with
// no known killer, and kills credited to a commander (turrets, abilities), are
// skipped.
func CountKills(matches []model.MatchRecord) KillMatrix {
	k := KillMatrix{
		kills:  make(map[model.PlayerID]map[model.PlayerID]uint32),
		deaths: make(map[model.PlayerID]uint32),
	}
	for i := range matches {
		for _, ev := range matches[i].KillFeed {
			if ev.KillerSteamID == nil {
				continue
			}
			if ev.KillerClass != nil && *ev.KillerClass == model.ClassCommander {
				continue
			}
			k.Add(*ev.KillerSteamID, ev.VictimSteamID)
		}
	}
	return k
}

// Add records one kill.
func (k *KillMatrix) Add(killer, victim model.PlayerID) {
	row := k.kills[killer]
	if row == nil {
		row = make(map[model.PlayerID]uint32)
		k.kills[killer] = row
	}
	row[victim]++
	k.deaths[victim]++
}

// Kills returns how many times killer killed victim.
func (k KillMatrix) Kills(killer, victim model.PlayerID) uint32 {
	return k.kills[killer][victim]
}

// Deaths is the column sum for p: every recorded kill of p.
func (k KillMatrix) Deaths(p model.PlayerID) uint32 {
	return k.deaths[p]
}

// Victims returns every player who died at least once, ordered by id.
func (k KillMatrix) Victims() []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(k.deaths))
	for id := range k.deaths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Matrix is the pairwise score matrix S over Players (same order as rows and
// columns). S[i][j] is how often j killed i per kill of i on j.
type Matrix struct {
	Players []model.PlayerID
	S       [][]float64
}

// BuildMatrix keeps players with at least MinEncounters deaths, fills S for
// every pair that met at least MinPairEncounters times with kills both ways,
// then drops players whose number of scored opponents is more than
// EncounterSlack below the best-connected player.
func BuildMatrix(k KillMatrix, opts Options) Matrix {
	opts = opts.withDefaults()

	var players []model.PlayerID
	for _, id := range k.Victims() {
		if k.Deaths(id) >= opts.MinEncounters {
			players = append(players, id)
		}
	}

	n := len(players)
	s := newSquare(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a := k.Kills(players[i], players[j])
			b := k.Kills(players[j], players[i])
			// Both ratios are finite only when each player killed the other.
			if a == 0 || b == 0 || a+b < opts.MinPairEncounters {
				continue
			}
			s[i][j] = float64(b) / float64(a)
			s[j][i] = float64(a) / float64(b)
		}
	}

	encounters := make([]int, n)
	most := 0
	for i := range s {
		for _, v := range s[i] {
			if v != 0 {
				encounters[i]++
			}
		}
		most = max(most, encounters[i])
	}

	var keep []int
	for i := range players {
		if encounters[i] >= most-opts.EncounterSlack {
			keep = append(keep, i)
		}
	}

	m := Matrix{Players: make([]model.PlayerID, len(keep)), S: newSquare(len(keep))}
	for r, i := range keep {
		m.Players[r] = players[i]
		for c, j := range keep {
			m.S[r][c] = s[i][j]
		}
	}
	return m
}

// HasSignal reports whether any pair in the matrix carries a score.
func (m Matrix) HasSignal() bool {
	for _, row := range m.S {
		for _, v := range row {
			if v != 0 {
				return true
			}
		}
	}
	return false
}

func newSquare(n int) [][]float64 {
	s := make([][]float64, n)
	for i := range s {
		s[i] = make([]float64, n)
	}
	return s
}
