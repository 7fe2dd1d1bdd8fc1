// Package bleu provides a configurable corpus BLEU scorer for tokenized
// machine-translation output.
package bleu

import (
	"context"

	"github.com/baditaflorin/go_mt_eval/internal/adapters/logger"
	corebleu "github.com/baditaflorin/go_mt_eval/internal/core/bleu"
	"github.com/baditaflorin/go_mt_eval/internal/core/domain"
	"github.com/baditaflorin/go_mt_eval/internal/ports"
	"github.com/baditaflorin/go_mt_eval/internal/warmup"
	"github.com/baditaflorin/l"
)

// Scorer computes corpus BLEU over tokenized sentence pairs.
type Scorer struct {
	scorer ports.TokenScorer
	logger ports.Logger
	warmed bool
}

// ScorerOption defines a functional option for configuring the Scorer.
type ScorerOption func(*scorerConfig)

type scorerConfig struct {
	MaxOrder     int
	Smooth       bool
	Threshold    float64
	Logger       ports.Logger
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithMaxOrder sets the highest n-gram order (default 4).
func WithMaxOrder(n int) ScorerOption {
	return func(cfg *scorerConfig) {
		cfg.MaxOrder = n
	}
}

// WithSmoothing enables add-one smoothing on higher-order precisions.
func WithSmoothing() ScorerOption {
	return func(cfg *scorerConfig) {
		cfg.Smooth = true
	}
}

// WithThreshold sets the minimum passing score on the 0-100 scale.
func WithThreshold(th float64) ScorerOption {
	return func(cfg *scorerConfig) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) ScorerOption {
	return func(cfg *scorerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) ScorerOption {
	return func(cfg *scorerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) ScorerOption {
	return func(cfg *scorerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Scorer.
func New(opts ...ScorerOption) (*Scorer, error) {
	defaultConfig := corebleu.DefaultConfig()

	config := &scorerConfig{
		MaxOrder:     defaultConfig.MaxOrder,
		Smooth:       defaultConfig.Smooth,
		Threshold:    defaultConfig.Threshold,
		WarmUp:       false,
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

	coreConfig := corebleu.ScorerConfig{
		MaxOrder:  config.MaxOrder,
		Smooth:    config.Smooth,
		Threshold: config.Threshold,
	}
	scorer, err := corebleu.NewScorer(coreConfig, config.Logger)
	if err != nil {
		return nil, err
	}

	s := &Scorer{
		scorer: scorer,
		logger: config.Logger,
		warmed: false,
	}

	if config.WarmUp {
		s.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return s, nil
}

// Score computes corpus BLEU for the hypothesis sentences against the
// reference sentences.
func (s *Scorer) Score(ctx context.Context, hypothesis, reference [][]string) domain.Result {
	return s.scorer.Score(ctx, hypothesis, reference)
}

// WarmUp performs system warm-up to optimize performance.
func (s *Scorer) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	if s.warmed {
		s.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(s.logger, config)
	warmupMgr.RegisterScorer(s.scorer)

	warmupMgr.WarmUp(ctx)
	s.warmed = true
}
