package report

import (
	"encoding/json"
	"io"
	"math"
	"sort"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/model"
)

// Float marshals NaN and ±Inf as null.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func nullable(s model.Stat[float64]) model.Stat[Float] {
	return model.Stat[Float]{Total: Float(s.Total), Marines: Float(s.Marines), Aliens: Float(s.Aliens)}
}

// PlayerView is a player aggregate with its derived ratios.
type PlayerView struct {
	ID        model.PlayerID     `json:"id"`
	Name      string             `json:"name"`
	Games     model.Stat[uint32] `json:"games"`
	Commander model.Stat[uint32] `json:"commander"`
	Wins      model.Stat[uint32] `json:"wins"`
	Kills     model.Stat[uint32] `json:"kills"`
	Assists   model.Stat[uint32] `json:"assists"`
	Deaths    model.Stat[uint32] `json:"deaths"`
	Score     model.Stat[uint32] `json:"score"`
	Hits      model.Stat[uint32] `json:"hits"`
	Misses    model.Stat[uint32] `json:"misses"`
	KD        model.Stat[Float]  `json:"kd"`
	KDA       model.Stat[Float]  `json:"kda"`
	Accuracy  model.Stat[Float]  `json:"accuracy"`
	WinRate   model.Stat[Float]  `json:"win_rate"`
	ScorePer  model.Stat[Float]  `json:"score_per_game"`
}

func NewPlayerView(p model.PlayerAggregate) PlayerView {
	return PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		Games:     p.Games,
		Commander: p.Commander,
		Wins:      p.Wins,
		Kills:     p.Kills,
		Assists:   p.Assists,
		Deaths:    p.Deaths,
		Score:     p.Score,
		Hits:      p.Hits,
		Misses:    p.Misses,
		KD:        nullable(p.KD()),
		KDA:       nullable(p.KDA()),
		Accuracy:  nullable(p.Accuracy()),
		WinRate:   nullable(p.WinRate()),
		ScorePer:  nullable(p.ScorePerGame()),
	}
}

type MapView struct {
	Name          string `json:"name"`
	TotalGames    uint32 `json:"total_games"`
	MarineWins    uint32 `json:"marine_wins"`
	AlienWins     uint32 `json:"alien_wins"`
	MarineWinRate Float  `json:"marine_win_rate"`
}

// StatsView is the JSON form of a snapshot. Players are ordered by id and maps
// by name.
type StatsView struct {
	LatestGame    int64        `json:"latest_game"`
	TotalGames    uint32       `json:"total_games"`
	MarineWins    uint32       `json:"marine_wins"`
	AlienWins     uint32       `json:"alien_wins"`
	MarineWinRate Float        `json:"marine_win_rate"`
	Players       []PlayerView `json:"players"`
	Maps          []MapView    `json:"maps"`
}

func NewStatsView(s model.Snapshot) StatsView {
	v := StatsView{
		LatestGame:    s.LatestGame,
		TotalGames:    s.TotalGames,
		MarineWins:    s.MarineWins,
		AlienWins:     s.AlienWins,
		MarineWinRate: Float(s.MarineWinRate()),
		Players:       make([]PlayerView, 0, len(s.Players)),
		Maps:          make([]MapView, 0, len(s.Maps)),
	}
	for _, p := range s.SortedPlayers() {
		v.Players = append(v.Players, NewPlayerView(p))
	}
	for name, m := range s.Maps {
		v.Maps = append(v.Maps, MapView{
			Name:          name,
			TotalGames:    m.TotalGames,
			MarineWins:    m.MarineWins,
			AlienWins:     m.AlienWins,
			MarineWinRate: Float(m.MarineWinRate()),
		})
	}
	sort.Slice(v.Maps, func(i, j int) bool { return v.Maps[i].Name < v.Maps[j].Name })
	return v
}

type ContinuousView struct {
	Date  int64     `json:"date"`
	Stats StatsView `json:"stats"`
}

func NewContinuousView(entries []aggregator.Entry) []ContinuousView {
	out := make([]ContinuousView, len(entries))
	for i, e := range entries {
		out[i] = ContinuousView{Date: e.Date, Stats: NewStatsView(e.Stats)}
	}
	return out
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
