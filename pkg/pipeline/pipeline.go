// Package pipeline runs the full evaluation workflow: each input file is
// pushed through the preprocessing filter chain into a .tok temporary next to
// the working directory, the two tokenized files are scored with corpus BLEU,
// and the temporaries are removed on success. Failures abort immediately and
// may leave .tok files behind, matching the fail-fast contract of the
// original workflow.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/baditaflorin/go_mt_eval/internal/adapters/filters"
	"github.com/baditaflorin/go_mt_eval/internal/adapters/logger"
	"github.com/baditaflorin/go_mt_eval/internal/adapters/stream"
	"github.com/baditaflorin/go_mt_eval/internal/core/bleu"
	"github.com/baditaflorin/go_mt_eval/internal/core/domain"
	"github.com/baditaflorin/go_mt_eval/internal/ports"
	"github.com/baditaflorin/go_mt_eval/internal/warmup"
	"github.com/baditaflorin/l"
)

// DefaultLanguage is the language the evaluation workflow was built for.
const DefaultLanguage = "ro"

// TokSuffix is appended to each input's base name to form its temporary.
const TokSuffix = ".tok"

// Runner executes the preprocessing and scoring pipeline.
type Runner struct {
	language string
	workDir  string
	keepTemp bool
	chain    ports.LineFilter
	scorer   ports.TokenScorer
	logger   ports.Logger
}

// RunnerOption defines a functional option for configuring the Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	Language     string
	WorkDir      string
	KeepTemp     bool
	MaxOrder     int
	Smooth       bool
	Threshold    float64
	Chain        ports.LineFilter
	Logger       ports.Logger
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithLanguage sets the language code driving filter selection (default "ro").
func WithLanguage(lang string) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.Language = lang
	}
}

// WithWorkDir sets the directory receiving the .tok temporaries (default the
// current working directory).
func WithWorkDir(dir string) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.WorkDir = dir
	}
}

// WithKeepTemporaries retains the .tok files after scoring, for inspection.
func WithKeepTemporaries() RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.KeepTemp = true
	}
}

// WithMaxOrder sets the highest n-gram order used by the scorer.
func WithMaxOrder(n int) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.MaxOrder = n
	}
}

// WithSmoothing enables add-one smoothing on higher-order precisions.
func WithSmoothing() RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.Smooth = true
	}
}

// WithThreshold sets the minimum passing score on the 0-100 scale.
func WithThreshold(th float64) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.Threshold = th
	}
}

// WithFilterChain overrides the language-derived filter chain.
func WithFilterChain(chain ports.LineFilter) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.Chain = chain
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithWarmUp exercises the filter chain and scorer during construction so the
// first real run does not pay for cold pools and lazy regexp state.
func WithWarmUp() RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.WarmUp = true
	}
}

// WithWarmUpConfig sets a custom warm-up configuration and enables warm-up.
func WithWarmUpConfig(wc warmup.WarmupConfig) RunnerOption {
	return func(cfg *runnerConfig) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// NewRunner creates a pipeline runner.
func NewRunner(opts ...RunnerOption) (*Runner, error) {
	defaultScorer := bleu.DefaultConfig()

	config := &runnerConfig{
		Language:     DefaultLanguage,
		WorkDir:      ".",
		MaxOrder:     defaultScorer.MaxOrder,
		Smooth:       defaultScorer.Smooth,
		Threshold:    defaultScorer.Threshold,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Chain == nil {
		config.Chain = filters.NewChainFactory().CreateChain(config.Language)
	}

	scorer, err := bleu.NewScorer(bleu.ScorerConfig{
		MaxOrder:  config.MaxOrder,
		Smooth:    config.Smooth,
		Threshold: config.Threshold,
	}, config.Logger)
	if err != nil {
		return nil, err
	}

	if config.WarmUp {
		mgr := warmup.NewManager(config.Logger, config.WarmUpConfig)
		mgr.RegisterFilter(config.Chain)
		mgr.RegisterScorer(scorer)
		mgr.WarmUp(context.Background())
	}

	return &Runner{
		language: config.Language,
		workDir:  config.WorkDir,
		keepTemp: config.KeepTemp,
		chain:    config.Chain,
		scorer:   scorer,
		logger:   config.Logger,
	}, nil
}

// Run preprocesses the system output and reference files, scores the
// tokenized pair, and removes the temporaries. The files are processed
// sequentially, system output first. On error the run aborts immediately;
// already-written .tok files are left in place.
func (r *Runner) Run(ctx context.Context, systemPath, referencePath string) (domain.Result, error) {
	r.logger.Info("Starting evaluation pipeline",
		"system", systemPath,
		"reference", referencePath,
		"language", r.language,
	)

	sysTok, err := r.filterFile(ctx, systemPath)
	if err != nil {
		return domain.Result{}, fmt.Errorf("preprocess system output: %w", err)
	}

	refTok, err := r.filterFile(ctx, referencePath)
	if err != nil {
		return domain.Result{}, fmt.Errorf("preprocess reference: %w", err)
	}

	hyp, err := readTokenized(sysTok)
	if err != nil {
		return domain.Result{}, fmt.Errorf("read tokenized system output: %w", err)
	}
	ref, err := readTokenized(refTok)
	if err != nil {
		return domain.Result{}, fmt.Errorf("read tokenized reference: %w", err)
	}

	if len(hyp) != len(ref) {
		return domain.Result{}, fmt.Errorf("sentence count mismatch: system has %d lines, reference has %d", len(hyp), len(ref))
	}

	result := r.scorer.Score(ctx, hyp, ref)
	if msg, ok := result.Details["error"]; ok {
		return result, fmt.Errorf("scoring failed: %v", msg)
	}

	if !r.keepTemp {
		if err := os.Remove(sysTok); err != nil {
			return result, fmt.Errorf("remove temporary %s: %w", sysTok, err)
		}
		if err := os.Remove(refTok); err != nil {
			return result, fmt.Errorf("remove temporary %s: %w", refTok, err)
		}
	}

	r.logger.Info("Evaluation pipeline completed",
		"score", result.Score,
		"hyp_len", result.HypLength,
		"ref_len", result.RefLength,
	)

	return result, nil
}

// TokPath returns the temporary path the runner uses for an input file.
func (r *Runner) TokPath(inputPath string) string {
	return filepath.Join(r.workDir, filepath.Base(inputPath)+TokSuffix)
}

// filterFile pushes one input file through the filter chain into its .tok
// temporary and returns the temporary's path.
func (r *Runner) filterFile(ctx context.Context, inputPath string) (string, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return "", err
	}
	defer in.Close()

	tokPath := r.TokPath(inputPath)
	out, err := os.Create(tokPath)
	if err != nil {
		return "", err
	}

	proc := stream.NewProcessor(r.logger, r.chain)
	lines, err := proc.FilterStream(ctx, in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}

	r.logger.Debug("Filtered input file",
		"input", inputPath,
		"tok", tokPath,
		"lines", lines,
	)

	return tokPath, nil
}

// readTokenized loads a .tok file as one token slice per line. A line whose
// content filtered down to nothing still counts as a sentence; only a file
// with no lines at all yields an empty corpus.
func readTokenized(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	sentences := make([][]string, len(lines))
	for i, line := range lines {
		sentences[i] = strings.Fields(line)
	}
	return sentences, nil
}
