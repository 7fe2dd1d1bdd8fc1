package filters

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// DiacriticsFilter strips diacritical marks, mapping ă/â/î/ș/ț and friends to
// their base letters. It decomposes to NFD, removes combining marks, and
// recomposes.
type DiacriticsFilter struct {
	chain transform.Transformer
}

// NewDiacriticsFilter creates a new diacritic removal filter.
func NewDiacriticsFilter() ports.LineFilter {
	return &DiacriticsFilter{
		chain: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Name returns the filter identifier.
func (f *DiacriticsFilter) Name() string { return "remove-diacritics" }

// Apply strips combining marks from the line.
func (f *DiacriticsFilter) Apply(line string) string {
	if isASCII(line) {
		return line
	}
	out, _, err := transform.String(f.chain, line)
	if err != nil {
		// Malformed input passes through unchanged.
		return line
	}
	return out
}
