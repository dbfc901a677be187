// Package teams suggests balanced marine/alien splits for a roster.
package teams

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pable/ns2-stats/internal/model"
)

// MaxRoster is the largest roster the exhaustive search accepts (2^n masks side-aware).
const MaxRoster = 20

var (
	ErrInputTooLarge   = fmt.Errorf("roster larger than %d players", MaxRoster)
	ErrEmptyRoster     = errors.New("empty roster")
	ErrDuplicatePlayer = errors.New("player listed twice")
	ErrInvalidScore    = errors.New("score is not a finite number")
)

// Scoring selects how a split's signed sum is computed.
type Scoring int

const (
	// Symmetric uses each player's total score on both sides.
	Symmetric Scoring = iota
	// SideAware uses the marine score for group A and the alien score for group B.
	SideAware
)

func (s Scoring) String() string {
	if s == SideAware {
		return "side-aware"
	}
	return "symmetric"
}

// ParseScoring accepts "symmetric" or "side-aware".
func ParseScoring(s string) (Scoring, error) {
	switch s {
	case "", "symmetric":
		return Symmetric, nil
	case "side-aware", "sideaware":
		return SideAware, nil
	}
	return Symmetric, fmt.Errorf("unknown scoring %q (want symmetric or side-aware)", s)
}

// Options configures Balance.
type Options struct {
	Scoring        Scoring
	MaxSuggestions int // <= 0 means every valid split
	Workers        int // <= 0 means GOMAXPROCS
}

// Assignment is one candidate split. GroupA plays marines, GroupB aliens.
type Assignment struct {
	GroupA    []model.PlayerID
	GroupB    []model.PlayerID
	Mask      uint32  // bit i set: players[i] is in GroupB
	SignedSum float64 // score(A) - score(B)
	Imbalance float64 // |SignedSum|
}

type candidate struct {
	mask uint32
	sum  float64
}

func less(a, b candidate) bool {
	da, db := math.Abs(a.sum), math.Abs(b.sum)
	if da != db {
		return da < db
	}
	return a.mask < b.mask
}

// Balance enumerates every split of players into two groups whose sizes differ
// by at most one and yields them from most to least even. With Symmetric
// scoring a split and its mirror image score the same, so the last player is
// kept in group A and only half the masks are searched. SideAware scores a
// mirror differently and searches all of them.
//
// The roster is validated and all scores are read before anything is enumerated.
func Balance(players []model.PlayerID, score func(model.PlayerID) model.Stat[float64], opts Options) (iter.Seq[Assignment], error) {
	n := len(players)
	if n == 0 {
		return nil, ErrEmptyRoster
	}
	if n > MaxRoster {
		return nil, fmt.Errorf("%w: got %d", ErrInputTooLarge, n)
	}

	seen := make(map[model.PlayerID]struct{}, n)
	forA := make([]float64, n)
	forB := make([]float64, n)
	for i, p := range players {
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePlayer, p)
		}
		seen[p] = struct{}{}

		s := score(p)
		switch opts.Scoring {
		case SideAware:
			forA[i], forB[i] = s.Marines, s.Aliens
		default:
			forA[i], forB[i] = s.Total, s.Total
		}
		if !isFinite(forA[i]) || !isFinite(forB[i]) {
			return nil, fmt.Errorf("%w: player %d", ErrInvalidScore, p)
		}
	}

	best, err := search(n, forA, forB, opts)
	if err != nil {
		return nil, err
	}

	return func(yield func(Assignment) bool) {
		for _, c := range best {
			if !yield(assignment(players, c)) {
				return
			}
		}
	}, nil
}

// search splits the mask range into contiguous chunks, one worker per chunk.
// Each worker keeps only its best k candidates; the merge re-sorts the union.
func search(n int, forA, forB []float64, opts Options) ([]candidate, error) {
	total := maskCount(n, opts.Scoring)
	k := opts.MaxSuggestions
	if k <= 0 {
		k = int(total)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if uint32(workers) > total {
		workers = int(total)
	}

	chunk := (total + uint32(workers) - 1) / uint32(workers)
	results := make([][]candidate, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := uint32(w) * chunk
		hi := min(lo+chunk, total)
		g.Go(func() error {
			var local []candidate
			for mask := lo; mask < hi; mask++ {
				if !sizesBalanced(n, mask) {
					continue
				}
				local = append(local, candidate{mask: mask, sum: signedSum(mask, forA, forB)})
			}
			sort.Slice(local, func(i, j int) bool { return less(local[i], local[j]) })
			if len(local) > k {
				local = local[:k]
			}
			results[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []candidate
	for _, r := range results {
		merged = append(merged, r...)
	}
	sort.Slice(merged, func(i, j int) bool { return less(merged[i], merged[j]) })
	if len(merged) > k {
		merged = merged[:k]
	}
	return merged, nil
}

// maskCount is 2^(n-1) for Symmetric (last bit pinned to 0) and 2^n for SideAware.
func maskCount(n int, scoring Scoring) uint32 {
	if scoring == SideAware {
		return uint32(1) << n
	}
	return uint32(1) << (n - 1)
}

func sizesBalanced(n int, mask uint32) bool {
	d := n - 2*bits.OnesCount32(mask)
	return d >= -1 && d <= 1
}

func signedSum(mask uint32, forA, forB []float64) float64 {
	sum := 0.0
	for i := range forA {
		if mask&(1<<i) == 0 {
			sum += forA[i]
		} else {
			sum -= forB[i]
		}
	}
	return sum
}

func assignment(players []model.PlayerID, c candidate) Assignment {
	a := Assignment{
		GroupA:    make([]model.PlayerID, 0, len(players)/2+1),
		GroupB:    make([]model.PlayerID, 0, len(players)/2+1),
		Mask:      c.mask,
		SignedSum: c.sum,
		Imbalance: math.Abs(c.sum),
	}
	for i, p := range players {
		if c.mask&(1<<i) == 0 {
			a.GroupA = append(a.GroupA, p)
		} else {
			a.GroupB = append(a.GroupB, p)
		}
	}
	return a
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
