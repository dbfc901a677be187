package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pable/ns2-stats/internal/aggregator"
	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/ranking"
	"github.com/pable/ns2-stats/internal/report"
	"github.com/pable/ns2-stats/internal/teams"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	st := s.State()
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"rounds":    len(st.All),
		"genuine":   len(st.Genuine),
		"loaded_at": st.LoadedAt,
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, report.NewStatsView(s.State().Snapshot))
}

func (s *Server) continuous(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var entries []aggregator.Entry
	for _, e := range s.State().Continuous {
		if (from == 0 || e.Date >= from) && (to == 0 || e.Date <= to) {
			entries = append(entries, e)
		}
	}
	respondJSON(w, http.StatusOK, report.NewContinuousView(entries))
}

func (s *Server) games(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := []model.GameSummary{}
	for _, g := range s.State().Games {
		if (from == 0 || g.RoundDate >= from) && (to == 0 || g.RoundDate <= to) {
			out = append(out, g)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) latestGame(w http.ResponseWriter, r *http.Request) {
	gs := s.State().Games
	if len(gs) == 0 {
		respondError(w, http.StatusNotFound, "no games")
		return
	}
	respondJSON(w, http.StatusOK, gs[len(gs)-1])
}

type suggestion struct {
	Marines   []string `json:"marines"`
	Aliens    []string `json:"aliens"`
	SignedSum float64  `json:"diff"`
}

// teamsResponse lists the splits; Substituted names the players whose
// undefined ratio was replaced by their total or 0.
type teamsResponse struct {
	Suggestions []suggestion `json:"suggestions"`
	Substituted []string     `json:"substituted"`
}

func (s *Server) teams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var idents []string
	for _, p := range strings.Split(q.Get("players"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			idents = append(idents, p)
		}
	}
	scoring, err := teams.ParseScoring(q.Get("scoring"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	metric, err := teams.ParseMetric(q.Get("metric"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := 4
	if v := q.Get("max"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, "max must be a positive integer")
			return
		}
	}

	snap := s.State().Snapshot
	got, err := teams.Suggest(snap, idents, metric, teams.Options{
		Scoring:        scoring,
		MaxSuggestions: limit,
		Workers:        s.opts.Workers,
	})
	switch {
	case errors.Is(err, model.ErrUnknownPlayer),
		errors.Is(err, teams.ErrEmptyRoster),
		errors.Is(err, teams.ErrDuplicatePlayer),
		errors.Is(err, teams.ErrInputTooLarge):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, teams.ErrInvalidScore):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := teamsResponse{
		Suggestions: make([]suggestion, len(got.Assignments)),
		Substituted: names(snap, got.Substituted),
	}
	for i, a := range got.Assignments {
		out.Suggestions[i] = suggestion{Marines: names(snap, a.GroupA), Aliens: names(snap, a.GroupB), SignedSum: a.SignedSum}
	}
	respondJSON(w, http.StatusOK, out)
}

func names(snap model.Snapshot, ids []model.PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = snap.Name(id)
	}
	return out
}

func (s *Server) rank(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := ranking.Options{
		MinEncounters:     s.opts.MinEncounters,
		MinPairEncounters: s.opts.MinPairEncounters,
	}
	if v := q.Get("min_encounters"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			respondError(w, http.StatusBadRequest, "min_encounters must be a positive integer")
			return
		}
		opts.MinEncounters = uint32(n)
	}
	if v := q.Get("genuine"); v != "" {
		g, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "genuine must be a boolean")
			return
		}
		opts.Genuine = g
	}

	ranked, err := ranking.Rank(s.State().All, opts)
	if errors.Is(err, ranking.ErrRankingUndefined) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ranked)
}

// dateRange parses the optional from/to unix-second bounds.
func dateRange(r *http.Request) (from, to int64, err error) {
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		if from, err = strconv.ParseInt(v, 10, 64); err != nil {
			return 0, 0, fmt.Errorf("from: %q is not a unix timestamp", v)
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err = strconv.ParseInt(v, 10, 64); err != nil {
			return 0, 0, fmt.Errorf("to: %q is not a unix timestamp", v)
		}
	}
	return from, to, nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
