// Package server exposes the aggregated statistics over a read-only HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/pable/ns2-stats/internal/model"
)

// Source produces the full set of round records, e.g. loader.Load on a directory.
type Source func(ctx context.Context) ([]model.MatchRecord, error)

type Options struct {
	MinEncounters     uint32
	MinPairEncounters uint32
	Workers           int
	AllowedOrigins    []string
	RequestTimeout    time.Duration
}

type Server struct {
	source Source
	opts   Options
	state  atomic.Pointer[State]
	reload sync.Mutex
	log    *log.Entry
}

// New returns a server with an empty state; call Reload before serving.
func New(source Source, opts Options) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	s := &Server{
		source: source,
		opts:   opts,
		log:    log.WithField("component", "server"),
	}
	s.state.Store(NewState(nil))
	return s
}

// State returns the currently published state.
func (s *Server) State() *State {
	return s.state.Load()
}

// Reload reads every round from the source, builds a new state and swaps it
// in. On error the previous state stays published. Concurrent reloads run one
// at a time; readers never wait.
func (s *Server) Reload(ctx context.Context) error {
	s.reload.Lock()
	defer s.reload.Unlock()

	start := time.Now()
	all, err := s.source(ctx)
	if err != nil {
		s.log.WithError(err).Error("reload failed, keeping previous state")
		return fmt.Errorf("reload: %w", err)
	}
	st := NewState(all)
	s.state.Store(st)
	s.log.WithFields(log.Fields{
		"rounds":  len(st.All),
		"genuine": len(st.Genuine),
		"players": len(st.Snapshot.Players),
		"took":    time.Since(start).Round(time.Millisecond),
	}).Info("state reloaded")
	return nil
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Route("/stats", func(r chi.Router) {
		r.Get("/", s.stats)
		r.Get("/continuous", s.continuous)
	})
	r.Route("/games", func(r chi.Router) {
		r.Get("/", s.games)
		r.Get("/latest", s.latestGame)
	})
	r.Get("/teams", s.teams)
	r.Get("/rank", s.rank)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"took":       time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}
