package domain

import (
	"fmt"
	"strings"
)

// Result holds the outcome of a corpus scoring run.
type Result struct {
	Name string
	// Score is the corpus BLEU score on the 0-100 scale.
	Score float64
	// Passed indicates whether the score meets or exceeds the threshold.
	Passed bool
	// Precisions holds the modified n-gram precisions for orders 1..MaxOrder,
	// each on the 0-1 scale.
	Precisions []float64
	// BrevityPenalty is 1.0 when the hypothesis is at least as long as the
	// reference, exp(1-ref/hyp) otherwise.
	BrevityPenalty float64
	// HypLength and RefLength are total token counts over the corpus.
	HypLength int
	RefLength int
	// Ratio is HypLength / RefLength.
	Ratio float64
	// Threshold used to determine pass/fail.
	Threshold float64
	// Details holds additional diagnostic information.
	Details map[string]interface{}
}

// String renders the result in the classic multi-bleu line format, e.g.
//
//	BLEU = 28.11, 61.2/34.2/21.6/14.2 (BP=0.978, ratio=0.978, hyp_len=62307, ref_len=63714)
func (r Result) String() string {
	precs := make([]string, len(r.Precisions))
	for i, p := range r.Precisions {
		precs[i] = fmt.Sprintf("%.1f", p*100)
	}
	return fmt.Sprintf("BLEU = %.2f, %s (BP=%.3f, ratio=%.3f, hyp_len=%d, ref_len=%d)",
		r.Score, strings.Join(precs, "/"), r.BrevityPenalty, r.Ratio, r.HypLength, r.RefLength)
}
