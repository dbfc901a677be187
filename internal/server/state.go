package server

import (
	"time"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/model"
)

// State is everything the handlers read. A State is never modified after
// NewState returns; a reload publishes a new one.
type State struct {
	All        []model.MatchRecord // every loaded round, by date
	Genuine    []model.MatchRecord
	Snapshot   model.Snapshot
	Continuous []aggregator.Entry
	Games      []model.GameSummary // genuine rounds, by date
	LoadedAt   time.Time
}

func NewState(all []model.MatchRecord) *State {
	genuine := games.Genuine(all)
	return &State{
		All:        all,
		Genuine:    genuine,
		Snapshot:   aggregator.Compute(genuine),
		Continuous: aggregator.Continuous(genuine),
		Games:      games.SummarizeAll(genuine),
		LoadedAt:   time.Now(),
	}
}
