package filters

import (
	"regexp"
	"strings"

	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// Spacing and quote rules applied by the punctuation normalizer, in order.
// The rule set follows the Moses normalize-punctuation conventions: tidy
// bracket spacing, fold typographic quotes and dashes to ASCII, drop the
// pseudo-spaces (non-breaking spaces) that show up before percent signs and
// punctuation in newswire data.
var (
	reMultiSpace      = regexp.MustCompile(` +`)
	reParenOpenSpace  = regexp.MustCompile(`\( `)
	reParenCloseSpace = regexp.MustCompile(` \)`)
	reParenPunct      = regexp.MustCompile(`\) ([.!:?;,])`)
	rePercentSpace    = regexp.MustCompile(`([0-9]) %`)
	reInnerQuoteLeft  = regexp.MustCompile(`([a-zA-Z])‘([a-zA-Z])`)
	reInnerQuoteRight = regexp.MustCompile(`([a-zA-Z])’([a-zA-Z])`)
	reDigitSpaceDigit = regexp.MustCompile(`([0-9])\x{00A0}([0-9])`)

	punctQuoteReplacer = strings.NewReplacer(
		"`", "'",
		"''", " \" ",
		"„", "\"",
		"“", "\"",
		"”", "\"",
		"–", "-",
		"—", " - ",
		"´´", "\"",
		"´", "'",
		"‘", "\"",
		"‚", "\"",
		"’", "\"",
		"…", "...",
	)

	// French-style guillemets, with or without surrounding spaces.
	guillemetReplacer = strings.NewReplacer(
		" « ", " \"",
		"« ", "\"",
		"«", "\"",
		" » ", "\" ",
		" »", "\"",
		"»", "\"",
	)

	// Pseudo-space cleanup: a non-breaking space glued before punctuation or
	// units is dropped together with the glue.
	pseudoSpaceReplacer = strings.NewReplacer(
		" %", "%",
		"nº ", "nº ",
		" :", ":",
		" ºC", " ºC",
		" cm", " cm",
		" ?", "?",
		" !", "!",
		" ;", ";",
		", ", ", ",
	)
)

// PunctNormFilter normalizes punctuation spacing and typographic characters.
type PunctNormFilter struct {
	lang string
}

// NewPunctNormFilter creates a punctuation normalization filter for the given
// language code.
func NewPunctNormFilter(lang string) ports.LineFilter {
	return &PunctNormFilter{lang: lang}
}

// Name returns the filter identifier.
func (f *PunctNormFilter) Name() string { return "punct-norm" }

// Apply normalizes punctuation in a single line.
func (f *PunctNormFilter) Apply(line string) string {
	s := strings.ReplaceAll(line, "\r", "")

	// Bracket spacing.
	s = strings.ReplaceAll(s, "(", " (")
	s = strings.ReplaceAll(s, ")", ") ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reParenPunct.ReplaceAllString(s, ")$1")
	s = reParenOpenSpace.ReplaceAllString(s, "(")
	s = reParenCloseSpace.ReplaceAllString(s, ")")
	s = rePercentSpace.ReplaceAllString(s, "$1%")
	s = strings.ReplaceAll(s, " :", ":")
	s = strings.ReplaceAll(s, " ;", ";")

	// Typographic quotes and dashes. Apostrophes inside words survive as
	// apostrophes; lone curly quotes become double quotes.
	s = reInnerQuoteLeft.ReplaceAllString(s, "$1'$2")
	s = reInnerQuoteRight.ReplaceAllString(s, "$1'$2")
	s = punctQuoteReplacer.Replace(s)
	s = guillemetReplacer.Replace(s)

	// Pseudo-spaces.
	s = pseudoSpaceReplacer.Replace(s)

	// A non-breaking space between digits is a thousands separator. English
	// uses a comma there, everything else a period.
	if f.lang == "en" {
		s = reDigitSpaceDigit.ReplaceAllString(s, "$1,$2")
	} else {
		s = reDigitSpaceDigit.ReplaceAllString(s, "$1.$2")
	}

	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
