package bleu

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/baditaflorin/go_mt_eval/internal/core/domain"
	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// ScorerConfig holds configuration for the BLEU calculator.
type ScorerConfig struct {
	// MaxOrder is the highest n-gram order used, 4 for standard BLEU.
	MaxOrder int
	// Smooth enables add-one smoothing on higher-order precisions, useful for
	// sentence-level scoring. Corpus scoring leaves it off to match multi-bleu.
	Smooth bool
	// Threshold is the minimum score (0-100) considered a pass. Zero accepts
	// every score.
	Threshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() ScorerConfig {
	return ScorerConfig{
		MaxOrder:  4,
		Smooth:    false,
		Threshold: 0,
	}
}

// Validate checks if the configuration is valid.
func (c ScorerConfig) Validate() error {
	if c.MaxOrder < 1 {
		return errors.New("max order must be at least 1")
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return errors.New("threshold must be between 0 and 100")
	}
	return nil
}

// Scorer implements corpus-level BLEU over tokenized sentences.
type Scorer struct {
	config ScorerConfig
	logger ports.Logger
}

// NewScorer creates a new BLEU scorer.
func NewScorer(config ScorerConfig, logger ports.Logger) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Scorer{
		config: config,
		logger: logger,
	}, nil
}

// Score computes corpus BLEU for the hypothesis against the reference.
// Sentence counts must match; extra sentences on either side are an error
// recorded in the result details with a zero score.
func (s *Scorer) Score(ctx context.Context, hypothesis, reference [][]string) domain.Result {
	s.logger.Debug("Starting BLEU computation",
		"hyp_sentences", len(hypothesis),
		"ref_sentences", len(reference),
	)

	details := make(map[string]interface{})

	if len(hypothesis) != len(reference) {
		s.logger.Error("Sentence count mismatch",
			"hyp_sentences", len(hypothesis),
			"ref_sentences", len(reference),
		)
		details["error"] = "sentence count mismatch"
		return domain.Result{
			Name:       "bleu",
			Score:      0,
			Passed:     false,
			Precisions: make([]float64, s.config.MaxOrder),
			Details:    details,
		}
	}

	// Check for context cancellation.
	select {
	case <-ctx.Done():
		s.logger.Error("Computation cancelled", "error", ctx.Err())
		details["error"] = "computation cancelled"
		return domain.Result{
			Name:       "bleu",
			Score:      0,
			Passed:     false,
			Precisions: make([]float64, s.config.MaxOrder),
			Details:    details,
		}
	default:
		// continue
	}

	matches := make([]int, s.config.MaxOrder)
	totals := make([]int, s.config.MaxOrder)
	hypLen := 0
	refLen := 0

	for i := range hypothesis {
		hyp := hypothesis[i]
		ref := reference[i]
		hypLen += len(hyp)
		refLen += len(ref)

		for n := 1; n <= s.config.MaxOrder; n++ {
			hypCounts := countNgrams(hyp, n)
			if len(hypCounts) == 0 {
				continue
			}
			refCounts := countNgrams(ref, n)
			for gram, count := range hypCounts {
				totals[n-1] += count
				if rc, ok := refCounts[gram]; ok {
					if count < rc {
						matches[n-1] += count
					} else {
						matches[n-1] += rc
					}
				}
			}
		}
	}

	s.logger.Debug("Accumulated n-gram statistics",
		"matches", matches,
		"totals", totals,
		"hyp_len", hypLen,
		"ref_len", refLen,
	)

	precisions := make([]float64, s.config.MaxOrder)
	for n := 0; n < s.config.MaxOrder; n++ {
		switch {
		case s.config.Smooth && n > 0:
			precisions[n] = (float64(matches[n]) + 1) / (float64(totals[n]) + 1)
		case totals[n] > 0:
			precisions[n] = float64(matches[n]) / float64(totals[n])
		}
	}

	details["sentences"] = len(hypothesis)
	details["max_order"] = s.config.MaxOrder
	details["smooth"] = s.config.Smooth

	// A hypothesis with no tokens scores zero with BP 0, like multi-bleu.
	if hypLen == 0 {
		s.logger.Warn("Hypothesis corpus has zero tokens")
		return domain.Result{
			Name:           "bleu",
			Score:          0,
			Passed:         s.config.Threshold == 0,
			Precisions:     precisions,
			BrevityPenalty: 0,
			HypLength:      0,
			RefLength:      refLen,
			Ratio:          0,
			Threshold:      s.config.Threshold,
			Details:        details,
		}
	}

	// Geometric mean of the precisions. Any zero precision zeroes the score
	// unless smoothing is on.
	logSum := 0.0
	zeroPrecision := false
	for _, p := range precisions {
		if p == 0 {
			zeroPrecision = true
			break
		}
		logSum += math.Log(p)
	}

	brevityPenalty := 1.0
	if hypLen < refLen {
		brevityPenalty = math.Exp(1 - float64(refLen)/float64(hypLen))
	}

	var score float64
	if !zeroPrecision {
		score = brevityPenalty * math.Exp(logSum/float64(s.config.MaxOrder)) * 100
	}

	ratio := 0.0
	if refLen > 0 {
		ratio = float64(hypLen) / float64(refLen)
	}
	passed := score >= s.config.Threshold

	s.logger.Debug("Computed BLEU",
		"score", score,
		"brevity_penalty", brevityPenalty,
		"ratio", ratio,
		"passed", passed,
	)

	return domain.Result{
		Name:           "bleu",
		Score:          score,
		Passed:         passed,
		Precisions:     precisions,
		BrevityPenalty: brevityPenalty,
		HypLength:      hypLen,
		RefLength:      refLen,
		Ratio:          ratio,
		Threshold:      s.config.Threshold,
		Details:        details,
	}
}

// countNgrams returns the occurrence counts of all n-grams of the given order.
// N-grams are keyed by their space-joined form; tokens never contain spaces
// after tokenization, so the key is unambiguous.
func countNgrams(tokens []string, n int) map[string]int {
	if len(tokens) < n {
		return nil
	}
	counts := make(map[string]int, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}
