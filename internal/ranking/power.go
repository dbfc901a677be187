package ranking

import (
	"fmt"
	"math"
)

// PowerIteration approximates the dominant left eigenvector of s, starting
// from the normalized all-ones vector. Each step computes v·(S+I) and
// renormalizes to unit Euclidean length. The identity shift leaves the
// eigenvectors unchanged but stops the ±λ oscillation that zero-diagonal
// reciprocal matrices otherwise show.
//
// It returns the vector and the number of iterations used, or
// ErrRankingUndefined when the step size is still >= tol after maxIter steps.
func PowerIteration(s [][]float64, tol float64, maxIter int) ([]float64, int, error) {
	n := len(s)
	if n == 0 {
		return nil, 0, fmt.Errorf("%w: empty matrix", ErrRankingUndefined)
	}

	v := make([]float64, n)
	for i := range v {
		v[i] = 1 / math.Sqrt(float64(n))
	}
	next := make([]float64, n)

	for iter := 1; iter <= maxIter; iter++ {
		for j := range next {
			next[j] = v[j]
		}
		for i, row := range s {
			for j, x := range row {
				next[j] += v[i] * x
			}
		}

		norm := 0.0
		for _, x := range next {
			norm += x * x
		}
		norm = math.Sqrt(norm)
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			return nil, iter, fmt.Errorf("%w: degenerate vector at iteration %d", ErrRankingUndefined, iter)
		}

		delta := 0.0
		for j := range next {
			next[j] /= norm
			d := next[j] - v[j]
			delta += d * d
		}
		v, next = next, v

		if math.Sqrt(delta) < tol {
			return v, iter, nil
		}
	}
	return nil, maxIter, fmt.Errorf("%w: no convergence after %d iterations", ErrRankingUndefined, maxIter)
}
