package summarize

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ScoreMap maps sentence positions to scores. Missing positions score 0.
type ScoreMap map[int]float64

// RankOptions controls the power iteration of the centrality ranker.
type RankOptions struct {
	Damping       float64
	Tolerance     float64
	MaxIterations int
}

// DefaultRankOptions returns damping 0.85, tolerance 1e-6 and 100 iterations.
func DefaultRankOptions() RankOptions {
	return RankOptions{Damping: 0.85, Tolerance: 1e-6, MaxIterations: 100}
}

// CentralityScores runs weighted PageRank over the similarity graph in sim.
// Edges exist where similarity is positive. A node without edges spreads its
// score uniformly. Scores sum to 1.
//
// Every failure wraps ErrRankingComputation.
func CentralityScores(ctx context.Context, sim *mat.SymDense, opts RankOptions) (ScoreMap, error) {
	if sim == nil {
		return nil, fmt.Errorf("%w: no sentences", ErrRankingComputation)
	}
	n := sim.SymmetricDim()
	if n == 0 {
		return nil, fmt.Errorf("%w: no sentences", ErrRankingComputation)
	}

	outWeight := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			w := sim.At(i, j)
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("%w: non-finite similarity at (%d,%d)", ErrRankingComputation, i, j)
			}
			if w > 0 {
				outWeight[i] += w
			}
		}
		total += outWeight[i]
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: similarity graph has no edges", ErrRankingComputation)
	}

	d := opts.Damping
	nf := float64(n)
	x := make([]float64, n)
	for i := range x {
		x[i] = 1 / nf
	}
	next := make([]float64, n)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRankingComputation, err)
		}

		dangling := 0.0
		for j := 0; j < n; j++ {
			if outWeight[j] == 0 {
				dangling += x[j]
			}
		}
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if i == j || outWeight[j] == 0 {
					continue
				}
				if w := sim.At(j, i); w > 0 {
					sum += x[j] * w / outWeight[j]
				}
			}
			next[i] = d*(sum+dangling/nf) + (1-d)/nf
		}

		delta := 0.0
		for i := range x {
			delta += math.Abs(next[i] - x[i])
		}
		x, next = next, x

		if delta < nf*opts.Tolerance {
			return toScoreMap(x)
		}
	}
	return nil, fmt.Errorf("%w: no convergence after %d iterations", ErrRankingComputation, opts.MaxIterations)
}

func toScoreMap(x []float64) (ScoreMap, error) {
	sum := 0.0
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite score at %d", ErrRankingComputation, i)
		}
		sum += v
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: scores sum to %v", ErrRankingComputation, sum)
	}
	scores := make(ScoreMap, len(x))
	for i, v := range x {
		scores[i] = v / sum
	}
	return scores, nil
}
