package filters

import (
	"strings"

	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// Romanian s and t with cedilla (legacy encodings) folded to the correct
// comma-below forms, including the decomposed combining-cedilla sequences.
var romanianReplacer = strings.NewReplacer(
	"Ş", "Ș", // Ş -> Ș
	"ş", "ș", // ş -> ș
	"Ţ", "Ț", // Ţ -> Ț
	"ţ", "ț", // ţ -> ț
	"Ş", "Ș",
	"ş", "ș",
	"Ţ", "Ț",
	"ţ", "ț",
)

// RomanianFilter canonicalizes Romanian diacritic encodings.
type RomanianFilter struct{}

// NewRomanianFilter creates a new Romanian normalization filter.
func NewRomanianFilter() ports.LineFilter {
	return &RomanianFilter{}
}

// Name returns the filter identifier.
func (f *RomanianFilter) Name() string { return "ro-norm" }

// Apply rewrites cedilla letters to their comma-below equivalents.
func (f *RomanianFilter) Apply(line string) string {
	if isASCII(line) {
		return line
	}
	return romanianReplacer.Replace(line)
}
