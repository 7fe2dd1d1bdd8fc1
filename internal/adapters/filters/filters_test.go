package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnicodePunctFilter(t *testing.T) {
	f := NewUnicodePunctFilter()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ascii passthrough", input: "plain ascii, nothing to do.", want: "plain ascii, nothing to do."},
		{name: "cjk comma and stop", input: "unu，doi。trei", want: "unu,doi. trei"},
		{name: "full-width digits", input: "０１２３４５６７８９", want: "0123456789"},
		{name: "curly quotes", input: "a “b” c", want: "a \"b\" c"},
		{name: "ellipsis and brackets", input: "gata…【x】", want: "gata...[x]"},
		{name: "full-width percent", input: "５０％", want: "50%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Apply(tc.input))
		})
	}
}

func TestPunctNormFilter(t *testing.T) {
	f := NewPunctNormFilter("ro")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bracket spacing", input: "vezi( aici )text", want: "vezi (aici) text"},
		{name: "low-high quotes", input: "„citat”", want: "\"citat\""},
		{name: "em dash", input: "a—b", want: "a - b"},
		{name: "inner curly apostrophe", input: "it’s", want: "it's"},
		{name: "guillemets", input: "«citat»", want: "\"citat\""},
		{name: "space before percent", input: "50 %", want: "50%"},
		{name: "nbsp thousands separator", input: "10 000", want: "10.000"},
		{name: "collapse spaces", input: "a    b", want: "a b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Apply(tc.input))
		})
	}
}

func TestPunctNormFilterEnglishNumbers(t *testing.T) {
	f := NewPunctNormFilter("en")
	assert.Equal(t, "10,000", f.Apply("10 000"))
}

func TestRomanianFilter(t *testing.T) {
	f := NewRomanianFilter()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "cedilla s", input: "aşa", want: "așa"},
		{name: "cedilla t", input: "ţară", want: "țară"},
		{name: "uppercase forms", input: "Şcoală Ţară", want: "Școală Țară"},
		{name: "comma-below untouched", input: "și țară", want: "și țară"},
		{name: "ascii passthrough", input: "fara diacritice", want: "fara diacritice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Apply(tc.input))
		})
	}
}

func TestDiacriticsFilter(t *testing.T) {
	f := NewDiacriticsFilter()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "romanian vowels", input: "mămăligă până", want: "mamaliga pana"},
		{name: "comma-below consonants", input: "și țară", want: "si tara"},
		{name: "circumflex", input: "România", want: "Romania"},
		{name: "ascii passthrough", input: "already plain", want: "already plain"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, f.Apply(tc.input))
		})
	}
}

func TestChainAppliesInOrder(t *testing.T) {
	chain := NewChain(NewRomanianFilter(), NewDiacriticsFilter())
	// Cedilla form canonicalized first, then stripped.
	assert.Equal(t, "si", chain.Apply("şi"))
}

func TestChainFactoryRomanian(t *testing.T) {
	chain := NewChainFactory().CreateChain("ro")
	require.Len(t, chain.Filters(), 5)

	// The full five-stage chain: CJK punctuation, typographic quotes,
	// cedilla canonicalization, diacritic stripping, tokenization.
	got := chain.Apply("Dl. Popescu a zis: „mămăligă”…")
	assert.Equal(t, "Dl. Popescu a zis : \" mamaliga \" ...", got)
}

func TestChainFactoryOtherLanguage(t *testing.T) {
	chain := NewChainFactory().CreateChain("de")
	require.Len(t, chain.Filters(), 3)

	// Diacritics survive outside the Romanian chain.
	assert.Equal(t, "über alles !", chain.Apply("über alles!"))
}
