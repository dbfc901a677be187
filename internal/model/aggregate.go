package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownPlayer is wrapped by LookupError.
var ErrUnknownPlayer = errors.New("unknown player")

// ---- Aggregated metrics ----

// PlayerAggregate holds one player's counters summed across all processed rounds.
// Ratios are computed on read so merging two aggregates never has to fix them up.
type PlayerAggregate struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`      // latest display name
	LastSeen int64    `json:"last_seen"` // round date Name was taken from

	Games     Stat[uint32] `json:"games"`
	Commander Stat[uint32] `json:"commander"`
	Wins      Stat[uint32] `json:"wins"`
	Kills     Stat[uint32] `json:"kills"`
	Assists   Stat[uint32] `json:"assists"`
	Deaths    Stat[uint32] `json:"deaths"`
	Score     Stat[uint32] `json:"score"`
	Hits      Stat[uint32] `json:"hits"`
	Misses    Stat[uint32] `json:"misses"`
}

func (a PlayerAggregate) KD() Stat[float64] {
	return Ratio(a.Kills, a.Deaths)
}

func (a PlayerAggregate) KDA() Stat[float64] {
	return Ratio(a.Kills.Plus(a.Assists), a.Deaths)
}

// Accuracy is hits / (hits + misses).
func (a PlayerAggregate) Accuracy() Stat[float64] {
	return Ratio(a.Hits, a.Hits.Plus(a.Misses))
}

func (a PlayerAggregate) WinRate() Stat[float64] {
	return Ratio(a.Wins, a.Games)
}

func (a PlayerAggregate) ScorePerGame() Stat[float64] {
	return Ratio(a.Score, a.Games)
}

// Plus returns the sum of two aggregates for the same player. The display name
// comes from whichever side saw the player last.
func (a PlayerAggregate) Plus(o PlayerAggregate) PlayerAggregate {
	out := PlayerAggregate{
		ID:        a.ID,
		Name:      a.Name,
		LastSeen:  a.LastSeen,
		Games:     a.Games.Plus(o.Games),
		Commander: a.Commander.Plus(o.Commander),
		Wins:      a.Wins.Plus(o.Wins),
		Kills:     a.Kills.Plus(o.Kills),
		Assists:   a.Assists.Plus(o.Assists),
		Deaths:    a.Deaths.Plus(o.Deaths),
		Score:     a.Score.Plus(o.Score),
		Hits:      a.Hits.Plus(o.Hits),
		Misses:    a.Misses.Plus(o.Misses),
	}
	if out.ID == 0 {
		out.ID = o.ID
	}
	if o.LastSeen > a.LastSeen || (o.LastSeen == a.LastSeen && o.Name > a.Name) {
		out.Name = o.Name
		out.LastSeen = o.LastSeen
	}
	return out
}

// MapAggregate holds round outcomes for one map.
type MapAggregate struct {
	TotalGames uint32 `json:"total_games"`
	MarineWins uint32 `json:"marine_wins"`
	AlienWins  uint32 `json:"alien_wins"`
}

func (m MapAggregate) Plus(o MapAggregate) MapAggregate {
	return MapAggregate{
		TotalGames: m.TotalGames + o.TotalGames,
		MarineWins: m.MarineWins + o.MarineWins,
		AlienWins:  m.AlienWins + o.AlienWins,
	}
}

// MarineWinRate is marine wins over all games on the map; NaN with no games.
func (m MapAggregate) MarineWinRate() float64 {
	return float64(m.MarineWins) / float64(m.TotalGames)
}

// Snapshot is the root aggregate. It is treated as an immutable value: every
// producer returns a fresh Snapshot and nothing mutates one after it is built.
type Snapshot struct {
	LatestGame int64                        `json:"latest_game"`
	Players    map[PlayerID]PlayerAggregate `json:"players"`
	Maps       map[string]MapAggregate      `json:"maps"`
	TotalGames uint32                       `json:"total_games"`
	MarineWins uint32                       `json:"marine_wins"`
	AlienWins  uint32                       `json:"alien_wins"`
}

// NewSnapshot returns the zero state: no games, no players, no maps.
func NewSnapshot() Snapshot {
	return Snapshot{
		Players: make(map[PlayerID]PlayerAggregate),
		Maps:    make(map[string]MapAggregate),
	}
}

// MarineWinRate is NaN when no games were processed.
func (s *Snapshot) MarineWinRate() float64 {
	return float64(s.MarineWins) / float64(s.TotalGames)
}

// SortedPlayers returns the player aggregates ordered by id.
func (s *Snapshot) SortedPlayers() []PlayerAggregate {
	out := make([]PlayerAggregate, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LookupError lists every identifier that could not be resolved to exactly one player.
type LookupError struct {
	Unknown   []string
	Ambiguous []string
}

func (e *LookupError) Error() string {
	var parts []string
	if len(e.Unknown) > 0 {
		parts = append(parts, "not found: "+strings.Join(e.Unknown, ", "))
	}
	if len(e.Ambiguous) > 0 {
		parts = append(parts, "ambiguous name: "+strings.Join(e.Ambiguous, ", "))
	}
	return fmt.Sprintf("%v (%s)", ErrUnknownPlayer, strings.Join(parts, "; "))
}

func (e *LookupError) Unwrap() error { return ErrUnknownPlayer }

// Resolve maps each identifier (numeric player id or current display name) to a
// player id. All failures are collected into a single *LookupError.
func (s *Snapshot) Resolve(idents []string) ([]PlayerID, error) {
	byName := make(map[string][]PlayerID)
	for id, p := range s.Players {
		byName[p.Name] = append(byName[p.Name], id)
	}

	ids := make([]PlayerID, 0, len(idents))
	lerr := &LookupError{}
	for _, ident := range idents {
		if n, err := strconv.ParseInt(ident, 10, 64); err == nil {
			if _, ok := s.Players[PlayerID(n)]; ok {
				ids = append(ids, PlayerID(n))
				continue
			}
		}
		switch matches := byName[ident]; len(matches) {
		case 0:
			lerr.Unknown = append(lerr.Unknown, ident)
		case 1:
			ids = append(ids, matches[0])
		default:
			lerr.Ambiguous = append(lerr.Ambiguous, ident)
		}
	}
	if len(lerr.Unknown) > 0 || len(lerr.Ambiguous) > 0 {
		return nil, lerr
	}
	return ids, nil
}

// Name returns the display name for id, or the id itself when the player is unknown.
func (s *Snapshot) Name(id PlayerID) string {
	if p, ok := s.Players[id]; ok && p.Name != "" {
		return p.Name
	}
	return strconv.FormatInt(int64(id), 10)
}
