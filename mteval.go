// mteval.go
// Package mteval evaluates machine-translation output against a reference
// translation. Both texts are pushed through a language-specific
// preprocessing chain (Unicode punctuation replacement, punctuation
// normalization, Romanian cedilla canonicalization, diacritic removal,
// Moses-style tokenization) and the tokenized pair is scored with corpus
// BLEU in the multi-bleu convention, on the 0-100 scale.
//
// This package is a thin facade; pkg/pipeline and pkg/bleu expose the
// configurable building blocks.
package mteval

import (
	"context"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_mt_eval/internal/adapters/filters"
	adapterlogger "github.com/baditaflorin/go_mt_eval/internal/adapters/logger"
	"github.com/baditaflorin/go_mt_eval/internal/adapters/stream"
	"github.com/baditaflorin/go_mt_eval/internal/core/bleu"
	"github.com/baditaflorin/go_mt_eval/internal/core/domain"
	"github.com/baditaflorin/go_mt_eval/internal/ports"
	"github.com/baditaflorin/go_mt_eval/pkg/pipeline"
	"github.com/baditaflorin/l"
)

// Result is the outcome of an evaluation run.
type Result = domain.Result

// Config holds configuration options for the evaluator.
type Config struct {
	Language  string
	Threshold float64
	// Logger for tracing pipeline steps.
	Logger l.Logger
}

// Option defines a functional option for configuring the evaluator.
type Option func(*Config)

// WithLanguage sets the language code (default "ro").
func WithLanguage(lang string) Option {
	return func(cfg *Config) {
		cfg.Language = lang
	}
}

// WithThreshold sets the minimum passing score on the 0-100 scale.
func WithThreshold(th float64) Option {
	return func(cfg *Config) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// Evaluator scores translation output against references.
type Evaluator struct {
	config Config
	chain  ports.LineFilter
	scorer ports.TokenScorer
	logger ports.Logger
}

// New creates a new Evaluator with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*Evaluator, error) {
	cfg := Config{
		Language: pipeline.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		logger, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = logger
	}

	portLogger := adapterlogger.FromExisting(cfg.Logger)
	chain := filters.NewChainFactory().CreateChain(cfg.Language)
	scorer, err := bleu.NewScorer(bleu.ScorerConfig{
		MaxOrder:  4,
		Threshold: cfg.Threshold,
	}, portLogger)
	if err != nil {
		return nil, err
	}

	return &Evaluator{config: cfg, chain: chain, scorer: scorer, logger: portLogger}, nil
}

// ScoreFiles runs the full file pipeline: both files are filtered into .tok
// temporaries in the current working directory, scored, and the temporaries
// removed on success.
func (e *Evaluator) ScoreFiles(ctx context.Context, systemPath, referencePath string) (Result, error) {
	runner, err := pipeline.NewRunner(
		pipeline.WithLanguage(e.config.Language),
		pipeline.WithThreshold(e.config.Threshold),
		pipeline.WithLogger(e.config.Logger),
	)
	if err != nil {
		return Result{}, err
	}
	return runner.Run(ctx, systemPath, referencePath)
}

// ScoreText preprocesses and scores two newline separated text blocks. The
// texts are streamed through the filter chain line by line; a single trailing
// newline is ignored, interior empty lines count as sentences.
func (e *Evaluator) ScoreText(ctx context.Context, systemText, referenceText string) (Result, error) {
	proc := stream.NewProcessor(e.logger, e.chain)

	sysLines, err := proc.CollectStream(ctx, strings.NewReader(systemText))
	if err != nil {
		return Result{}, fmt.Errorf("preprocess system output: %w", err)
	}
	refLines, err := proc.CollectStream(ctx, strings.NewReader(referenceText))
	if err != nil {
		return Result{}, fmt.Errorf("preprocess reference: %w", err)
	}
	if len(sysLines) != len(refLines) {
		return Result{}, fmt.Errorf("sentence count mismatch: system has %d lines, reference has %d", len(sysLines), len(refLines))
	}

	hyp := make([][]string, len(sysLines))
	ref := make([][]string, len(refLines))
	for i := range sysLines {
		hyp[i] = strings.Fields(sysLines[i])
		ref[i] = strings.Fields(refLines[i])
	}
	return e.scorer.Score(ctx, hyp, ref), nil
}

// ScoreLines preprocesses and scores in-memory sentence pairs without
// touching the filesystem.
func (e *Evaluator) ScoreLines(ctx context.Context, systemLines, referenceLines []string) Result {
	hyp := e.tokenizeLines(systemLines)
	ref := e.tokenizeLines(referenceLines)
	return e.scorer.Score(ctx, hyp, ref)
}

func (e *Evaluator) tokenizeLines(lines []string) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Fields(e.chain.Apply(line))
	}
	return out
}

// ScoreLinesWithDefaults evaluates sentence pairs using the default Romanian
// configuration.
func ScoreLinesWithDefaults(systemLines, referenceLines []string) (Result, error) {
	e, err := New()
	if err != nil {
		return Result{}, err
	}
	return e.ScoreLines(context.Background(), systemLines, referenceLines), nil
}
