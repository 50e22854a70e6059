package summarize

import "errors"

// Sentinel errors recorded on failed attempts of the fallback chain.
// Summarize never returns them; they are visible through Result.Attempts.
var (
	// ErrRankingComputation means the centrality ranker could not produce
	// scores: degenerate graph, non-finite values, no convergence within the
	// iteration cap, or a cancelled context.
	ErrRankingComputation = errors.New("ranking computation failed")

	// ErrExternalService wraps any failure of the neural summarizer.
	ErrExternalService = errors.New("external summarizer failed")

	// ErrDegenerateOutput marks a summary rejected by the length gate.
	ErrDegenerateOutput = errors.New("summary too short")
)
