package benchmark

import (
	"context"
	"strings"
	"testing"

	"github.com/baditaflorin/go_mt_eval/internal/adapters/filters"
	"github.com/baditaflorin/go_mt_eval/pkg/bleu"
)

// generateCorpus builds n sentence pairs with a small amount of drift between
// hypothesis and reference.
func generateCorpus(n int) (hyp, ref []string) {
	base := "Comisia Europeană a anunțat astăzi noi măsuri pentru piața unică, după discuții îndelungate."
	alt := "Comisia Europeană anunță astăzi măsuri noi pentru piața unică, după discuții lungi."

	hyp = make([]string, n)
	ref = make([]string, n)
	for i := 0; i < n; i++ {
		hyp[i] = alt
		ref[i] = base
	}
	return hyp, ref
}

func BenchmarkFilterChainRomanian(b *testing.B) {
	chain := filters.NewChainFactory().CreateChain("ro")
	line := "Dl. Popescu a declarat: „Preţurile vor creşte cu 3,5 % până în decembrie”…"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = chain.Apply(line)
	}
}

func BenchmarkFilterChainASCII(b *testing.B) {
	chain := filters.NewChainFactory().CreateChain("ro")
	line := "The quick brown fox jumps over the lazy dog, again and again."

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = chain.Apply(line)
	}
}

func BenchmarkCorpusScoring(b *testing.B) {
	scorer, err := bleu.New()
	if err != nil {
		b.Fatal(err)
	}

	hypLines, refLines := generateCorpus(100)
	chain := filters.NewChainFactory().CreateChain("ro")

	tokenize := func(lines []string) [][]string {
		out := make([][]string, len(lines))
		for i, line := range lines {
			out[i] = strings.Fields(chain.Apply(line))
		}
		return out
	}
	hyp := tokenize(hypLines)
	ref := tokenize(refLines)

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = scorer.Score(ctx, hyp, ref)
	}
}
