package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pable/ns2-stats/internal/config"
	"github.com/pable/ns2-stats/internal/games"
	"github.com/pable/ns2-stats/internal/loader"
	"github.com/pable/ns2-stats/internal/model"
)

var (
	cfg       *config.Config
	dataDir   string
	logLevel  string
	allRounds bool
)

var rootCmd = &cobra.Command{
	Use:   "ns2stat",
	Short: "NS2 round statistics tool",
	Long: `Aggregate Natural Selection 2 round records into player and map statistics,
suggest balanced teams and rank players by head-to-head results.

Settings are read from NS2STAT_* environment variables (and .env); flags win.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "directory of round JSON files (default $NS2STAT_DATA or test_data)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&allRounds, "all", false, "include rounds that are too short or were played against bots")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		c.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-level") {
		if _, err := log.ParseLevel(logLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		c.LogLevel = logLevel
	}
	c.ConfigureLogging()
	cfg = c
	return nil
}

// loadRounds reads every round in the data directory, sorted by date.
func loadRounds(ctx context.Context) ([]model.MatchRecord, error) {
	ms, err := loader.Load(ctx, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load rounds: %w", err)
	}
	return ms, nil
}

// loadSelected is loadRounds restricted to genuine rounds unless --all is set.
func loadSelected(ctx context.Context) ([]model.MatchRecord, error) {
	ms, err := loadRounds(ctx)
	if err != nil {
		return nil, err
	}
	if allRounds {
		return ms, nil
	}
	genuine := games.Genuine(ms)
	log.WithFields(log.Fields{"rounds": len(ms), "genuine": len(genuine)}).Debug("filtered rounds")
	return genuine, nil
}
