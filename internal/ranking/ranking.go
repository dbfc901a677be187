// Package ranking orders players by who beats whom in direct encounters,
// independent of raw kill and death totals.
package ranking

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
)

// ErrRankingUndefined means no dominant eigenvector could be determined.
var ErrRankingUndefined = errors.New("ranking undefined")

// Defaults for Options fields left at zero.
const (
	DefaultMinEncounters     = 50
	DefaultMinPairEncounters = 20
	DefaultEncounterSlack    = 3
	DefaultTolerance         = 1e-4
	DefaultMaxIterations     = 1000
)

// Options configures Rank. Zero values take the defaults above; a negative
// EncounterSlack disables pruning by connectivity.
type Options struct {
	Genuine           bool // only use rounds that pass games.IsGenuine
	MinEncounters     uint32
	MinPairEncounters uint32
	EncounterSlack    int
	Tolerance         float64
	MaxIterations     int
}

func (o Options) withDefaults() Options {
	if o.MinEncounters == 0 {
		o.MinEncounters = DefaultMinEncounters
	}
	if o.MinPairEncounters == 0 {
		o.MinPairEncounters = DefaultMinPairEncounters
	}
	if o.EncounterSlack == 0 {
		o.EncounterSlack = DefaultEncounterSlack
	} else if o.EncounterSlack < 0 {
		o.EncounterSlack = int(^uint(0) >> 1)
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// Ranked is one player's relative weight. Weights only compare within one run.
type Ranked struct {
	ID     model.PlayerID `json:"id"`
	Name   string         `json:"name"`
	Weight float64        `json:"weight"`
}

// Rank builds the pairwise matrix from the kill feeds and returns players
// ordered by descending weight.
func Rank(matches []model.MatchRecord, opts Options) ([]Ranked, error) {
	opts = opts.withDefaults()
	if opts.Genuine {
		matches = games.Genuine(matches)
	}

	m := BuildMatrix(CountKills(matches), opts)
	if len(m.Players) == 0 {
		return nil, fmt.Errorf("%w: no player has %d recorded deaths", ErrRankingUndefined, opts.MinEncounters)
	}
	if !m.HasSignal() {
		return nil, fmt.Errorf("%w: no pair met %d times", ErrRankingUndefined, opts.MinPairEncounters)
	}

	v, _, err := PowerIteration(m.S, opts.Tolerance, opts.MaxIterations)
	if err != nil {
		return nil, err
	}

	names := latestNames(matches)
	out := make([]Ranked, len(m.Players))
	for i, id := range m.Players {
		name, ok := names[id]
		if !ok {
			name = strconv.FormatInt(int64(id), 10)
		}
		out[i] = Ranked{ID: id, Name: name, Weight: v[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// latestNames maps every player to the name of their most recent round.
func latestNames(matches []model.MatchRecord) map[model.PlayerID]string {
	names := make(map[model.PlayerID]string)
	seen := make(map[model.PlayerID]int64)
	for i := range matches {
		date := matches[i].RoundInfo.RoundDate
		for id, p := range matches[i].PlayerStats {
			if last, ok := seen[id]; !ok || date >= last {
				names[id] = p.PlayerName
				seen[id] = date
			}
		}
	}
	return names
}
