package ports

import (
	"context"

	"github.com/baditaflorin/go_mt_eval/internal/core/domain"
)

// TokenScorer defines the interface for scoring tokenized translation output
// against tokenized reference sentences.
type TokenScorer interface {
	// Score computes a corpus-level score. hypothesis and reference must hold
	// the same number of sentences, each a slice of tokens.
	Score(ctx context.Context, hypothesis, reference [][]string) domain.Result
}
