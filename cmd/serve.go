package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/loader"
	"github.com/pable/ns2-stats/internal/model"
	"github.com/pable/ns2-stats/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the statistics over a read-only HTTP API",
	Long: `Serve the statistics over HTTP:

  GET /health
  GET /stats
  GET /stats/continuous?from=&to=
  GET /games?from=&to=
  GET /games/latest
  GET /teams?players=a,b,...&metric=&scoring=&max=
  GET /rank?min_encounters=&genuine=

Send SIGHUP to reload the data directory without restarting.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $NS2STAT_HTTP_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := cfg.Server.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}
	dir := cfg.DataDir

	srv := server.New(func(ctx context.Context) ([]model.MatchRecord, error) {
		return loader.Load(ctx, dir)
	}, server.Options{
		MinEncounters:     cfg.MinEncounters,
		MinPairEncounters: cfg.MinPairEncounters,
		Workers:           cfg.Workers,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RequestTimeout:    cfg.Server.WriteTimeout,
	})
	if err := srv.Reload(cmd.Context()); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"addr": addr, "data": dir}).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				// A failed reload keeps serving the previous state.
				_ = srv.Reload(cmd.Context())
				continue
			}
			log.WithField("signal", sig.String()).Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(ctx)
		}
	}
}
