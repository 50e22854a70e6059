package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"summary-service/internal/infra/summarizer"
	"summary-service/internal/summarize"
)

// SummarizerConfig tunes the summarization engine and its optional neural
// provider. It is read from YAML and then overridden by SUMMARY_* variables.
type SummarizerConfig struct {
	Engine        EngineConfig `yaml:"engine"`
	Neural        NeuralConfig `yaml:"neural"`
	StopwordsFile string       `yaml:"stopwords_file"`
	// CacheSize is the number of summaries kept in memory. Zero disables
	// the cache.
	CacheSize int `yaml:"cache_size"`
}

type EngineConfig struct {
	Damping             float64 `yaml:"damping"`
	Tolerance           float64 `yaml:"tolerance"`
	MaxIterations       int     `yaml:"max_iterations"`
	MinSummaryWords     int     `yaml:"min_summary_words"`
	DegenerateGateWords int     `yaml:"degenerate_gate_words"`
	HeadSentences       int     `yaml:"head_sentences"`
	NeuralInputCap      int     `yaml:"neural_input_cap"`
}

type NeuralConfig struct {
	// Provider is none, claude or openai.
	Provider  string        `yaml:"provider"`
	Model     string        `yaml:"model"`
	WordLimit int           `yaml:"word_limit"`
	Timeout   time.Duration `yaml:"timeout"`
	RPS       float64       `yaml:"rps"`
}

// DefaultSummarizerConfig returns the built-in tuning.
func DefaultSummarizerConfig() SummarizerConfig {
	opts := summarize.DefaultOptions()
	neural := summarizer.DefaultConfig(summarizer.ProviderNone)
	return SummarizerConfig{
		Engine: EngineConfig{
			Damping:             opts.Rank.Damping,
			Tolerance:           opts.Rank.Tolerance,
			MaxIterations:       opts.Rank.MaxIterations,
			MinSummaryWords:     opts.MinSummaryWords,
			DegenerateGateWords: opts.DegenerateGateWords,
			HeadSentences:       opts.HeadSentences,
			NeuralInputCap:      opts.NeuralInputCap,
		},
		Neural: NeuralConfig{
			Provider:  string(summarizer.ProviderNone),
			WordLimit: neural.WordLimit,
			Timeout:   neural.Timeout,
			RPS:       neural.RequestsPerSecond,
		},
		CacheSize: 1024,
	}
}

// LoadSummarizerConfig reads path (when non-empty) over the defaults, then
// applies environment overrides and validates the result.
func LoadSummarizerConfig(path string) (*SummarizerConfig, error) {
	cfg := DefaultSummarizerConfig()

	if path != "" {
		// #nosec G304 -- path comes from a flag or environment variable
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}
	return &cfg, nil
}

func (c *SummarizerConfig) applyEnv() {
	c.Engine.Damping = GetEnvFloat("SUMMARY_DAMPING", c.Engine.Damping)
	c.Engine.Tolerance = GetEnvFloat("SUMMARY_TOLERANCE", c.Engine.Tolerance)
	c.Engine.MaxIterations = GetEnvInt("SUMMARY_MAX_ITERATIONS", c.Engine.MaxIterations)
	c.Engine.MinSummaryWords = GetEnvInt("SUMMARY_MIN_WORDS", c.Engine.MinSummaryWords)
	c.Engine.DegenerateGateWords = GetEnvInt("SUMMARY_GATE_WORDS", c.Engine.DegenerateGateWords)
	c.Engine.HeadSentences = GetEnvInt("SUMMARY_HEAD_SENTENCES", c.Engine.HeadSentences)
	c.Engine.NeuralInputCap = GetEnvInt("SUMMARY_NEURAL_INPUT_CAP", c.Engine.NeuralInputCap)
	c.Neural.Provider = GetEnvOrDefault("SUMMARY_NEURAL_PROVIDER", c.Neural.Provider)
	c.StopwordsFile = GetEnvOrDefault("STOPWORDS_FILE", c.StopwordsFile)
	c.CacheSize = GetEnvInt("SUMMARY_CACHE_SIZE", c.CacheSize)
}

// Validate rejects out-of-range values.
func (c *SummarizerConfig) Validate() error {
	var errs []error
	e := c.Engine
	if e.Damping <= 0 || e.Damping >= 1 {
		errs = append(errs, fmt.Errorf("damping must be in (0, 1), got %v", e.Damping))
	}
	if e.Tolerance <= 0 || e.Tolerance > 0.1 {
		errs = append(errs, fmt.Errorf("tolerance must be in (0, 0.1], got %v", e.Tolerance))
	}
	if e.MaxIterations < 1 || e.MaxIterations > 10000 {
		errs = append(errs, fmt.Errorf("max_iterations must be between 1 and 10000, got %d", e.MaxIterations))
	}
	if e.MinSummaryWords < 1 {
		errs = append(errs, fmt.Errorf("min_summary_words must be positive, got %d", e.MinSummaryWords))
	}
	if e.DegenerateGateWords < 1 {
		errs = append(errs, fmt.Errorf("degenerate_gate_words must be positive, got %d", e.DegenerateGateWords))
	}
	if e.HeadSentences < 1 {
		errs = append(errs, fmt.Errorf("head_sentences must be positive, got %d", e.HeadSentences))
	}
	if e.NeuralInputCap < 1 {
		errs = append(errs, fmt.Errorf("neural_input_cap must be positive, got %d", e.NeuralInputCap))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize))
	}
	switch summarizer.Provider(c.Neural.Provider) {
	case summarizer.ProviderNone, summarizer.ProviderClaude, summarizer.ProviderOpenAI, "":
	default:
		errs = append(errs, fmt.Errorf("unknown neural provider %q", c.Neural.Provider))
	}
	return errors.Join(errs...)
}

// EngineOptions converts the engine section to summarize.Options.
func (c *SummarizerConfig) EngineOptions() summarize.Options {
	return summarize.Options{
		Rank: summarize.RankOptions{
			Damping:       c.Engine.Damping,
			Tolerance:     c.Engine.Tolerance,
			MaxIterations: c.Engine.MaxIterations,
		},
		MinSummaryWords:     c.Engine.MinSummaryWords,
		DegenerateGateWords: c.Engine.DegenerateGateWords,
		HeadSentences:       c.Engine.HeadSentences,
		NeuralInputCap:      c.Engine.NeuralInputCap,
	}
}

// SummarizerProviderConfig builds the neural provider configuration. API
// keys and the remaining SUMMARIZER_* variables come from the environment;
// values set in YAML take precedence over the provider defaults.
func (c *SummarizerConfig) SummarizerProviderConfig() summarizer.Config {
	cfg := summarizer.LoadConfigFromEnv(summarizer.Provider(c.Neural.Provider))
	if c.Neural.Model != "" && os.Getenv("SUMMARIZER_MODEL") == "" {
		cfg.Model = c.Neural.Model
	}
	if c.Neural.WordLimit > 0 && os.Getenv("SUMMARIZER_WORD_LIMIT") == "" {
		cfg.WordLimit = c.Neural.WordLimit
	}
	if c.Neural.Timeout > 0 && os.Getenv("SUMMARIZER_TIMEOUT") == "" {
		cfg.Timeout = c.Neural.Timeout
	}
	if os.Getenv("SUMMARIZER_RPS") == "" {
		cfg.RequestsPerSecond = c.Neural.RPS
	}
	return cfg
}
