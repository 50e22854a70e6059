package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"summary-service/internal/observability/logging"
	"summary-service/internal/observability/tracing"
)

// Method names the algorithm that produced a summary.
type Method string

const (
	MethodNeural     Method = "neural"
	MethodCentrality Method = "centrality"
	MethodFrequency  Method = "frequency"
	MethodHead       Method = "head"
	// MethodVerbatim is used when the document has no more sentences than
	// the target, so the normalized document is returned as is.
	MethodVerbatim Method = "verbatim"
)

// Summarizer is an external abstractive summarizer tried before the
// extractive rankers.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Options tunes the engine. Zero values are replaced by DefaultOptions.
type Options struct {
	Rank RankOptions

	// MinSummaryWords and DegenerateGateWords define the length gate: a
	// summary shorter than MinSummaryWords words is rejected when the raw
	// document has more than DegenerateGateWords words.
	MinSummaryWords     int
	DegenerateGateWords int

	// HeadSentences is the size of the last-resort summary.
	HeadSentences int

	// NeuralInputCap truncates the text sent to the neural summarizer (runes).
	NeuralInputCap int
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		Rank:                DefaultRankOptions(),
		MinSummaryWords:     10,
		DegenerateGateWords: 50,
		HeadSentences:       3,
		NeuralInputCap:      1024,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Rank.Damping <= 0 || o.Rank.Damping >= 1 {
		o.Rank.Damping = d.Rank.Damping
	}
	if o.Rank.Tolerance <= 0 {
		o.Rank.Tolerance = d.Rank.Tolerance
	}
	if o.Rank.MaxIterations <= 0 {
		o.Rank.MaxIterations = d.Rank.MaxIterations
	}
	if o.MinSummaryWords <= 0 {
		o.MinSummaryWords = d.MinSummaryWords
	}
	if o.DegenerateGateWords <= 0 {
		o.DegenerateGateWords = d.DegenerateGateWords
	}
	if o.HeadSentences <= 0 {
		o.HeadSentences = d.HeadSentences
	}
	if o.NeuralInputCap <= 0 {
		o.NeuralInputCap = d.NeuralInputCap
	}
	return o
}

// Attempt records one step of the fallback chain.
type Attempt struct {
	Method Method
	Err    error
}

// Result is the outcome of Engine.Summarize.
type Result struct {
	Summary         string
	Method          Method
	TargetSentences int
	SentenceCount   int
	// Positions of the selected sentences. Nil for neural summaries.
	Positions []int
	// Attempts lists every step tried, the accepted one last.
	Attempts []Attempt
}

// Engine orchestrates the summarization fallback chain.
// It is safe for concurrent use.
type Engine struct {
	opts   Options
	neural Summarizer
	stop   StopwordSet
}

// NewEngine creates an Engine. neural may be nil, in which case the chain
// starts with the centrality ranker.
func NewEngine(opts Options, neural Summarizer) *Engine {
	return &Engine{
		opts:   opts.withDefaults(),
		neural: neural,
		stop:   Stopwords(),
	}
}

// WithStopwords returns a copy of e that filters with stop instead of the
// process-wide set.
func (e *Engine) WithStopwords(stop StopwordSet) *Engine {
	cp := *e
	cp.stop = stop
	return &cp
}

// document is the prepared input shared by every step.
type document struct {
	raw        string
	wordCount  int
	normalized string
	sentences  []Sentence
	k          int
}

// step is one entry of the fallback chain. final steps skip the length gate.
type step struct {
	method Method
	final  bool
	run    func(ctx context.Context, doc *document) (string, []int, error)
}

func (e *Engine) chain() []step {
	steps := make([]step, 0, 4)
	if e.neural != nil {
		steps = append(steps, step{method: MethodNeural, run: e.runNeural})
	}
	return append(steps,
		step{method: MethodCentrality, run: e.runCentrality},
		step{method: MethodFrequency, run: e.runFrequency},
		step{method: MethodHead, final: true, run: e.runHead},
	)
}

// Summarize produces a summary of text. Every failure inside the chain is
// absorbed and recorded in Result.Attempts; the head step always succeeds.
// Callers must reject documents that normalize to the empty string.
func (e *Engine) Summarize(ctx context.Context, text string) Result {
	logger := logging.FromContext(ctx)
	ctx, span := tracing.GetTracer().Start(ctx, "summarize.Engine.Summarize")
	defer span.End()

	doc := e.prepare(text)
	span.SetAttributes(
		attribute.Int("summarize.words", doc.wordCount),
		attribute.Int("summarize.sentences", len(doc.sentences)),
		attribute.Int("summarize.target", doc.k),
	)

	res := Result{TargetSentences: doc.k, SentenceCount: len(doc.sentences)}

	if len(doc.sentences) <= doc.k {
		res.Summary = doc.normalized
		res.Method = MethodVerbatim
		res.Positions = allPositions(doc.sentences)
		span.SetAttributes(attribute.String("summarize.method", string(res.Method)))
		return res
	}

	for _, st := range e.chain() {
		start := time.Now()
		summary, positions, err := st.run(ctx, doc)
		if err == nil && !st.final && !e.acceptable(summary, doc) {
			err = fmt.Errorf("%w: %d words", ErrDegenerateOutput, WordCount(summary))
		}
		res.Attempts = append(res.Attempts, Attempt{Method: st.method, Err: err})

		if err != nil {
			logger.Info("summarizer step failed, falling back",
				slog.String("method", string(st.method)),
				slog.Duration("elapsed", time.Since(start)),
				slog.Any("error", err))
			span.AddEvent("fallback", trace.WithAttributes(
				attribute.String("method", string(st.method)),
				attribute.String("error", err.Error()),
			))
			continue
		}

		res.Summary = summary
		res.Method = st.method
		res.Positions = positions
		span.SetAttributes(attribute.String("summarize.method", string(st.method)))
		logger.Debug("summary produced",
			slog.String("method", string(st.method)),
			slog.Int("target_sentences", doc.k),
			slog.Int("sentences", len(doc.sentences)),
			slog.Duration("elapsed", time.Since(start)))
		return res
	}

	// unreachable while the chain ends with a final step
	span.SetStatus(codes.Error, "fallback chain exhausted")
	return res
}

func (e *Engine) prepare(text string) *document {
	wc := WordCount(text)
	normalized := Normalize(text)
	return &document{
		raw:        text,
		wordCount:  wc,
		normalized: normalized,
		sentences:  Segment(normalized),
		k:          TargetSentences(wc),
	}
}

func (e *Engine) acceptable(summary string, doc *document) bool {
	if strings.TrimSpace(summary) == "" {
		return false
	}
	return WordCount(summary) >= e.opts.MinSummaryWords || doc.wordCount <= e.opts.DegenerateGateWords
}

func (e *Engine) runNeural(ctx context.Context, doc *document) (string, []int, error) {
	input := truncateRunes(doc.raw, e.opts.NeuralInputCap)
	out, err := e.neural.Summarize(ctx, input)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", nil, fmt.Errorf("%w: empty response", ErrExternalService)
	}
	return out, nil, nil
}

func (e *Engine) runCentrality(ctx context.Context, doc *document) (string, []int, error) {
	sim := SimilarityMatrix(TokenSets(doc.sentences, e.stop))
	scores, err := CentralityScores(ctx, sim, e.opts.Rank)
	if err != nil {
		return "", nil, err
	}
	positions := Select(doc.sentences, scores, doc.k)
	return Join(doc.sentences, positions), positions, nil
}

func (e *Engine) runFrequency(_ context.Context, doc *document) (string, []int, error) {
	scores := FrequencyScores(doc.sentences, e.stop)
	positions := Select(doc.sentences, scores, doc.k)
	return Join(doc.sentences, positions), positions, nil
}

func (e *Engine) runHead(_ context.Context, doc *document) (string, []int, error) {
	n := min(e.opts.HeadSentences, len(doc.sentences))
	positions := make([]int, n)
	for i := range positions {
		positions[i] = doc.sentences[i].Position
	}
	return Join(doc.sentences, positions), positions, nil
}

func allPositions(sentences []Sentence) []int {
	out := make([]int, len(sentences))
	for i, s := range sentences {
		out[i] = s.Position
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// FailedWith reports whether any attempt in r failed with target.
func (r Result) FailedWith(target error) bool {
	for _, a := range r.Attempts {
		if a.Err != nil && errors.Is(a.Err, target) {
			return true
		}
	}
	return false
}
