// Command summarize prints an extractive summary of a file or stdin.
//
//	summarize article.txt
//	curl -s https://example.com/post.txt | summarize --json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"summary-service/internal/config"
	"summary-service/internal/infra/fetcher"
	"summary-service/internal/infra/summarizer"
	"summary-service/internal/observability/logging"
	"summary-service/internal/summarize"
)

// output is the --json format.
type output struct {
	Summary         string   `json:"summary"`
	Method          string   `json:"method"`
	TargetSentences int      `json:"target_sentences"`
	SentenceCount   int      `json:"sentence_count"`
	Positions       []int    `json:"positions"`
	Fallbacks       []string `json:"fallbacks,omitempty"`
}

type options struct {
	jsonOut    bool
	noColor    bool
	neural     bool
	stopwords  string
	configFile string
	timeout    time.Duration
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "summarize [file]",
		Short:         "Summarize a text document",
		Long:          "Summarize reads a document from file, or stdin when no file or \"-\" is given, and prints its summary.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSummarize(cmd, args, opts)
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.BoolVar(&opts.neural, "neural", false, "try the configured neural provider first")
	f.StringVar(&opts.stopwords, "stopwords", "", "stopword file, one word per line (default: built-in English list)")
	f.StringVar(&opts.configFile, "config", os.Getenv("SUMMARY_CONFIG_FILE"), "summarizer YAML config")
	f.DurationVar(&opts.timeout, "timeout", 60*time.Second, "overall time limit")
	return cmd
}

func runSummarize(cmd *cobra.Command, args []string, opts options) error {
	logger := logging.New(cmd.ErrOrStderr(), "text", logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	slog.SetDefault(logger)
	if opts.noColor {
		color.NoColor = true
	}

	doc, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if fetcher.LooksLikeHTML(doc) {
		if doc, err = fetcher.HTMLToText(doc); err != nil {
			return fmt.Errorf("extract text from HTML: %w", err)
		}
	}
	if summarize.Normalize(doc) == "" {
		return fmt.Errorf("document is empty")
	}

	cfg, err := config.LoadSummarizerConfig(opts.configFile)
	if err != nil {
		return err
	}
	var neural summarize.Summarizer
	if opts.neural {
		if neural, err = summarizer.New(cfg.SummarizerProviderConfig()); err != nil {
			return err
		}
		if neural == nil {
			return fmt.Errorf("--neural needs SUMMARY_NEURAL_PROVIDER set to claude or openai")
		}
	}

	engine := summarize.NewEngine(cfg.EngineOptions(), neural)
	stopFile := opts.stopwords
	if stopFile == "" {
		stopFile = cfg.StopwordsFile
	}
	if stopFile != "" {
		stop, err := summarize.LoadStopwordsFile(stopFile)
		if err != nil {
			return err
		}
		engine = engine.WithStopwords(stop)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	res := engine.Summarize(logging.WithLogger(ctx, logger), doc)

	if opts.jsonOut {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	writeText(cmd.OutOrStdout(), res)
	return nil
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	// #nosec G304 -- the file is chosen by the user running the command
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fallbacks(res summarize.Result) []string {
	var out []string
	for _, a := range res.Attempts {
		if a.Err != nil {
			out = append(out, fmt.Sprintf("%s: %v", a.Method, a.Err))
		}
	}
	return out
}

func writeJSON(w io.Writer, res summarize.Result) error {
	positions := res.Positions
	if positions == nil {
		positions = []int{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Summary:         res.Summary,
		Method:          string(res.Method),
		TargetSentences: res.TargetSentences,
		SentenceCount:   res.SentenceCount,
		Positions:       positions,
		Fallbacks:       fallbacks(res),
	})
}

func writeText(w io.Writer, res summarize.Result) {
	label := color.New(color.Bold).SprintFunc()
	method := color.New(color.FgGreen).SprintFunc()
	if res.Method == summarize.MethodHead || res.Method == summarize.MethodFrequency {
		method = color.New(color.FgYellow).SprintFunc()
	}

	fmt.Fprintf(w, "%s\n%s\n\n", label("Summary:"), res.Summary)
	fmt.Fprintf(w, "%s %s\n", label("Method:"), method(res.Method))
	fmt.Fprintf(w, "%s %d (document has %d)\n", label("Target sentences:"), res.TargetSentences, res.SentenceCount)
	if len(res.Positions) > 0 {
		pos := make([]string, len(res.Positions))
		for i, p := range res.Positions {
			pos[i] = fmt.Sprint(p)
		}
		fmt.Fprintf(w, "%s %s\n", label("Positions:"), strings.Join(pos, ", "))
	}
	for _, fb := range fallbacks(res) {
		color.New(color.Faint).Fprintf(w, "  fallback %s\n", fb)
	}
}
