package teams

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/ns2-stats/internal/model"
)

func scalarScores(values map[model.PlayerID]float64) func(model.PlayerID) model.Stat[float64] {
	return func(id model.PlayerID) model.Stat[float64] {
		v := values[id]
		return model.Stat[float64]{Total: v, Marines: v, Aliens: v}
	}
}

func roster(n int) ([]model.PlayerID, map[model.PlayerID]float64) {
	ids := make([]model.PlayerID, n)
	scores := make(map[model.PlayerID]float64, n)
	for i := range ids {
		ids[i] = model.PlayerID(100 + i)
		scores[ids[i]] = float64((i*37)%11) + 0.5*float64(i)
	}
	return ids, scores
}

func collect(t *testing.T, players []model.PlayerID, score func(model.PlayerID) model.Stat[float64], opts Options) []Assignment {
	t.Helper()
	seq, err := Balance(players, score, opts)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestScenario_ZeroImbalanceSplitFirst(t *testing.T) {
	players := []model.PlayerID{0, 1, 2, 3}
	scores := scalarScores(map[model.PlayerID]float64{0: 10, 1: 10, 2: -10, 3: -10})

	got := collect(t, players, scores, Options{Scoring: Symmetric, MaxSuggestions: 4})
	require.NotEmpty(t, got)

	top := got[0]
	assert.Equal(t, 0.0, top.Imbalance)
	require.Len(t, top.GroupA, 2)
	require.Len(t, top.GroupB, 2)
	sum := func(g []model.PlayerID) float64 {
		s := 0.0
		for _, p := range g {
			s += scores(p).Total
		}
		return s
	}
	assert.Equal(t, sum(top.GroupA), sum(top.GroupB))
}

func TestBalance_GroupSizeConstraint(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8, 11} {
		players, scores := roster(n)
		for _, a := range collect(t, players, scalarScores(scores), Options{}) {
			diff := len(a.GroupA) - len(a.GroupB)
			assert.LessOrEqual(t, math.Abs(float64(diff)), 1.0, "n=%d mask=%b", n, a.Mask)
			assert.Equal(t, n, len(a.GroupA)+len(a.GroupB))
		}
	}
}

// TestBalance_NoMirrorImages: the last player is pinned to group A, so a mask
// and its complement never both appear.
func TestBalance_NoMirrorImages(t *testing.T) {
	players, scores := roster(10)
	all := collect(t, players, scalarScores(scores), Options{})

	full := uint32(1)<<len(players) - 1
	seen := make(map[uint32]bool, len(all))
	for _, a := range all {
		assert.Zero(t, a.Mask&(1<<(len(players)-1)), "last player must stay in group A")
		assert.False(t, seen[full^a.Mask], "mask %b and its complement both returned", a.Mask)
		seen[a.Mask] = true
		assert.Contains(t, a.GroupA, players[len(players)-1])
	}
	// C(10,5)/2 splits of five against five.
	assert.Len(t, all, 126)
}

func TestBalance_SwapKeepsImbalance(t *testing.T) {
	players, scores := roster(8)
	score := scalarScores(scores)
	for _, a := range collect(t, players, score, Options{MaxSuggestions: 10}) {
		var sumA, sumB float64
		for _, p := range a.GroupA {
			sumA += score(p).Total
		}
		for _, p := range a.GroupB {
			sumB += score(p).Total
		}
		assert.InDelta(t, a.Imbalance, math.Abs(sumA-sumB), 1e-9)
		assert.InDelta(t, a.Imbalance, math.Abs(sumB-sumA), 1e-9)
	}
}

func TestBalance_AscendingImbalanceAndTruncation(t *testing.T) {
	players, scores := roster(12)
	got := collect(t, players, scalarScores(scores), Options{MaxSuggestions: 25})
	require.Len(t, got, 25)
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		ok := prev.Imbalance < cur.Imbalance || (prev.Imbalance == cur.Imbalance && prev.Mask < cur.Mask)
		assert.True(t, ok, "entry %d out of order", i)
	}
}

func TestBalance_WorkerCountDoesNotChangeResult(t *testing.T) {
	players, scores := roster(14)
	want := collect(t, players, scalarScores(scores), Options{MaxSuggestions: 40, Workers: 1})
	for _, w := range []int{2, 3, 7, 64} {
		got := collect(t, players, scalarScores(scores), Options{MaxSuggestions: 40, Workers: w})
		assert.Equal(t, want, got, "workers=%d", w)
	}
}

func TestBalance_LazyStopsEarly(t *testing.T) {
	players, scores := roster(6)
	seq, err := Balance(players, scalarScores(scores), Options{})
	require.NoError(t, err)
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestBalance_SideAware(t *testing.T) {
	// p0 is strong on both sides, p1 is useless as a marine.
	scores := map[model.PlayerID]model.Stat[float64]{
		0: {Marines: 10, Aliens: 10, Total: 10},
		1: {Marines: 0, Aliens: 5, Total: 2.5},
	}
	score := func(id model.PlayerID) model.Stat[float64] { return scores[id] }

	got := collect(t, []model.PlayerID{0, 1}, score, Options{Scoring: SideAware})
	// Both orientations are searched; putting p1 on marines would cost 10.
	require.Len(t, got, 2)
	assert.Equal(t, []model.PlayerID{0}, got[0].GroupA)
	assert.Equal(t, []model.PlayerID{1}, got[0].GroupB)
	assert.Equal(t, 5.0, got[0].Imbalance) // marines(0)=10 - aliens(1)=5
	assert.Equal(t, []model.PlayerID{1}, got[1].GroupA)
	assert.Equal(t, 10.0, got[1].Imbalance)

	sym := collect(t, []model.PlayerID{0, 1}, score, Options{Scoring: Symmetric})
	require.Len(t, sym, 1)
	assert.Equal(t, 7.5, sym[0].Imbalance)
}

func TestBalance_SideAwareSearchesMirrors(t *testing.T) {
	players, scores := roster(6)
	score := func(id model.PlayerID) model.Stat[float64] {
		v := scores[id]
		return model.Stat[float64]{Total: v, Marines: v, Aliens: 2 * v}
	}
	all := collect(t, players, score, Options{Scoring: SideAware})
	// C(6,3) splits of three against three, each orientation counted.
	assert.Len(t, all, 20)

	same := collect(t, players, score, Options{Scoring: SideAware, Workers: 1})
	assert.Equal(t, same, all)
}

func TestBalance_Errors(t *testing.T) {
	_, err := Balance(nil, scalarScores(nil), Options{})
	assert.ErrorIs(t, err, ErrEmptyRoster)

	big, scores := roster(MaxRoster + 1)
	called := false
	_, err = Balance(big, func(id model.PlayerID) model.Stat[float64] {
		called = true
		return scalarScores(scores)(id)
	}, Options{})
	assert.ErrorIs(t, err, ErrInputTooLarge)
	assert.False(t, called, "oversized roster must be rejected before scoring")

	_, err = Balance([]model.PlayerID{1, 2, 1}, scalarScores(nil), Options{})
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	_, err = Balance([]model.PlayerID{1, 2}, scalarScores(map[model.PlayerID]float64{1: math.NaN()}), Options{})
	assert.ErrorIs(t, err, ErrInvalidScore)

	_, err = Balance([]model.PlayerID{1, 2}, scalarScores(map[model.PlayerID]float64{2: math.Inf(1)}), Options{})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestParseScoring(t *testing.T) {
	s, err := ParseScoring("side-aware")
	require.NoError(t, err)
	assert.Equal(t, SideAware, s)

	s, err = ParseScoring("")
	require.NoError(t, err)
	assert.Equal(t, Symmetric, s)

	_, err = ParseScoring("random")
	assert.Error(t, err)
}
