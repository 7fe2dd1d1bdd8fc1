// Package tokenizer implements a Moses-style word tokenizer: punctuation is
// split from words, with protection for abbreviations, multi-dot ellipses,
// and decimal separators.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_mt_eval/internal/pool"
	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// Placeholder for protected dot runs. Private-use rune, never present in
// normal text.
const dotRun = ''

var (
	reMultiSpace = regexp.MustCompile(` +`)
	reMultiDots  = regexp.MustCompile(`\.{2,}`)
	// A comma splits off unless both neighbours are digits.
	reCommaBefore = regexp.MustCompile(`([^0-9]),`)
	reCommaAfter  = regexp.MustCompile(`,([^0-9])`)
)

// Ensure Tokenizer slots into filter chains.
var _ ports.LineFilter = (*Tokenizer)(nil)

// Tokenizer splits a line into word and punctuation tokens.
type Tokenizer struct {
	lang        string
	prefixes    map[string]int
	builderPool *pool.StringBuilderPool
}

// New creates a tokenizer for the given language code.
func New(lang string) *Tokenizer {
	return &Tokenizer{
		lang:        lang,
		prefixes:    prefixesForLanguage(lang),
		builderPool: pool.NewStringBuilderPool(),
	}
}

// Name returns the filter identifier.
func (t *Tokenizer) Name() string { return "tokenizer" }

// Apply tokenizes the line and rejoins the tokens with single spaces, so the
// tokenizer slots into a filter chain like the other stages.
func (t *Tokenizer) Apply(line string) string {
	return strings.Join(t.Tokenize(line), " ")
}

// Tokenize splits a single line into tokens.
func (t *Tokenizer) Tokenize(line string) []string {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil
	}

	// Protect runs of two or more dots so the symbol padding below leaves
	// ellipses intact as single tokens.
	s = reMultiDots.ReplaceAllStringFunc(s, func(m string) string {
		return " " + strings.Repeat(string(dotRun), len(m)) + " "
	})

	// Pad every symbol that is not a letter, digit, whitespace, or one of the
	// protected characters (period, apostrophe, comma, hyphen).
	s = t.padSymbols(s)

	// Commas split off unless they sit between digits (decimal separators).
	s = reCommaBefore.ReplaceAllString(s, "$1 , ")
	s = reCommaAfter.ReplaceAllString(s, " , $1")

	// Outside of English-style contractions, the apostrophe is its own token.
	if t.lang != "en" {
		s = strings.ReplaceAll(s, "'", " ' ")
	} else {
		s = splitEnglishContractions(s)
	}

	s = reMultiSpace.ReplaceAllString(s, " ")
	words := strings.Fields(s)

	// Word-final periods: split them off unless the word is a nonbreaking
	// prefix or an acronym like U.S.
	out := make([]string, 0, len(words)+8)
	for i, w := range words {
		if !strings.HasSuffix(w, ".") || len(w) == 1 {
			out = append(out, restoreDots(w))
			continue
		}
		pre := w[:len(w)-1]
		switch {
		case strings.Contains(pre, ".") && containsLetter(pre):
			// Acronym, keep attached.
			out = append(out, w)
		case t.prefixes[pre] == prefixAny:
			out = append(out, w)
		case t.prefixes[pre] == prefixNumericOnly && i+1 < len(words) && startsWithDigit(words[i+1]):
			out = append(out, w)
		default:
			out = append(out, restoreDots(pre), ".")
		}
	}

	return out
}

// padSymbols surrounds unprotected symbol runes with spaces.
func (t *Tokenizer) padSymbols(s string) string {
	sb := t.builderPool.Get()
	defer t.builderPool.Put(sb)
	sb.Grow(len(s) + 16)

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r):
			sb.WriteRune(r)
		case r == '.' || r == '\'' || r == ',' || r == '-' || r == dotRun:
			sb.WriteRune(r)
		default:
			sb.WriteByte(' ')
			sb.WriteRune(r)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// restoreDots converts a protected dot-run token back to literal dots.
func restoreDots(w string) string {
	if !strings.ContainsRune(w, dotRun) {
		return w
	}
	return strings.Map(func(r rune) rune {
		if r == dotRun {
			return '.'
		}
		return r
	}, w)
}

// splitEnglishContractions separates apostrophes the way Moses does for
// English: "don't" -> "don 't", "cats'" -> "cats '".
func splitEnglishContractions(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	prev := rune(0)
	rest := s
	for len(rest) > 0 {
		r, size := utf8.DecodeRuneInString(rest)
		next, _ := utf8.DecodeRuneInString(rest[size:])
		if r == '\'' {
			if unicode.IsLetter(prev) && unicode.IsLetter(next) {
				// Contraction: break before the apostrophe.
				sb.WriteByte(' ')
				sb.WriteRune(r)
			} else {
				sb.WriteByte(' ')
				sb.WriteRune(r)
				sb.WriteByte(' ')
			}
		} else {
			sb.WriteRune(r)
		}
		prev = r
		rest = rest[size:]
	}
	return sb.String()
}

// containsLetter reports whether the string contains at least one letter.
func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// startsWithDigit reports whether the string starts with a decimal digit.
func startsWithDigit(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}
