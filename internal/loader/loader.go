// Package loader reads round records written by the NS2 server stats mod.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pable/ns2-stats/internal/model"
)

// Load decodes every *.json file directly inside dir. Records come back sorted
// by round date, ties broken by file name. The first unreadable file aborts the
// load and is named in the error.
func Load(ctx context.Context, dir string) ([]model.MatchRecord, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	sort.Strings(paths)

	logger := log.WithField("dir", dir)
	logger.WithField("files", len(paths)).Debug("loading rounds")

	records := make([]model.MatchRecord, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := LoadFile(path)
			if err != nil {
				return err
			}
			records[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// paths is sorted, so a stable sort by date keeps file order on ties.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RoundInfo.RoundDate < records[j].RoundInfo.RoundDate
	})
	logger.WithField("rounds", len(records)).Info("rounds loaded")
	return records, nil
}

// LoadFile decodes a single round file.
func LoadFile(path string) (model.MatchRecord, error) {
	var m model.MatchRecord
	f, err := os.Open(path)
	if err != nil {
		return m, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return m, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}
