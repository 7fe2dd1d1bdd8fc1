package filters

import (
	"github.com/baditaflorin/go_mt_eval/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// ChainFactory assembles the preprocessing chain for a language.
type ChainFactory struct{}

// NewChainFactory creates a new chain factory.
func NewChainFactory() *ChainFactory {
	return &ChainFactory{}
}

// CreateChain builds the full preprocessing chain for the given language.
// Romanian gets the five-stage chain used for WMT-style evaluation:
// Unicode punctuation replacement, punctuation normalization, cedilla
// canonicalization, diacritic removal, tokenization. Other languages skip
// the two Romanian-specific stages.
func (f *ChainFactory) CreateChain(lang string) *Chain {
	stages := []ports.LineFilter{
		NewUnicodePunctFilter(),
		NewPunctNormFilter(lang),
	}
	if lang == "ro" {
		stages = append(stages,
			NewRomanianFilter(),
			NewDiacriticsFilter(),
		)
	}
	stages = append(stages, tokenizer.New(lang))
	return NewChain(stages...)
}
