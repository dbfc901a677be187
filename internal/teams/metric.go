package teams

import (
	"fmt"
	"strings"

	"github.com/pable/ns2-stats/internal/model"
)

// Metric picks the per-player statistic the balancer sums.
type Metric string

const (
	MetricKD       Metric = "kd"
	MetricKDA      Metric = "kda"
	MetricWinRate  Metric = "winrate"
	MetricScore    Metric = "score"
	MetricAccuracy Metric = "accuracy"
)

var metrics = []Metric{MetricKD, MetricKDA, MetricWinRate, MetricScore, MetricAccuracy}

func ParseMetric(s string) (Metric, error) {
	if s == "" {
		return MetricKD, nil
	}
	for _, m := range metrics {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q (want one of %v)", s, metrics)
}

// ScoreFunc reads metric for each player from the snapshot. A side whose ratio
// is undefined (never played it, or never died on it) falls back to the
// player's total, and an undefined total to 0, so every score is finite.
// Unknown players score zero on every side.
func ScoreFunc(s model.Snapshot, metric Metric) func(model.PlayerID) model.Stat[float64] {
	return func(id model.PlayerID) model.Stat[float64] {
		raw, ok := rawScore(s, metric, id)
		if !ok {
			return model.Stat[float64]{}
		}
		total := finiteOr(raw.Total, 0)
		return model.Stat[float64]{
			Total:   total,
			Marines: finiteOr(raw.Marines, total),
			Aliens:  finiteOr(raw.Aliens, total),
		}
	}
}

// Substituted lists the players whose score under scoring needed a fallback
// value from ScoreFunc, in the order given.
func Substituted(s model.Snapshot, ids []model.PlayerID, metric Metric, scoring Scoring) []model.PlayerID {
	var out []model.PlayerID
	for _, id := range ids {
		raw, ok := rawScore(s, metric, id)
		if !ok {
			continue
		}
		if scoring == SideAware {
			if !isFinite(raw.Marines) || !isFinite(raw.Aliens) {
				out = append(out, id)
			}
		} else if !isFinite(raw.Total) {
			out = append(out, id)
		}
	}
	return out
}

func rawScore(s model.Snapshot, metric Metric, id model.PlayerID) (model.Stat[float64], bool) {
	p, ok := s.Players[id]
	if !ok {
		return model.Stat[float64]{}, false
	}
	switch metric {
	case MetricKDA:
		return p.KDA(), true
	case MetricWinRate:
		return p.WinRate(), true
	case MetricScore:
		return p.ScorePerGame(), true
	case MetricAccuracy:
		return p.Accuracy(), true
	default:
		return p.KD(), true
	}
}

func finiteOr(v, fallback float64) float64 {
	if isFinite(v) {
		return v
	}
	return fallback
}

// Suggestion is the result of Suggest. Substituted holds the roster players
// scored with a fallback value (see ScoreFunc).
type Suggestion struct {
	Assignments []Assignment
	Substituted []model.PlayerID
}

// Suggest resolves idents against the snapshot and returns up to
// opts.MaxSuggestions splits.
func Suggest(s model.Snapshot, idents []string, metric Metric, opts Options) (Suggestion, error) {
	if len(idents) > MaxRoster {
		return Suggestion{}, fmt.Errorf("%w: got %d", ErrInputTooLarge, len(idents))
	}
	ids, err := s.Resolve(idents)
	if err != nil {
		return Suggestion{}, err
	}
	seq, err := Balance(ids, ScoreFunc(s, metric), opts)
	if err != nil {
		return Suggestion{}, err
	}
	out := Suggestion{Substituted: Substituted(s, ids, metric, opts.Scoring)}
	for a := range seq {
		out.Assignments = append(out.Assignments, a)
	}
	return out, nil
}
