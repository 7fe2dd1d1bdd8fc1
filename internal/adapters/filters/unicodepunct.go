package filters

import (
	"strings"

	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// unicodePunctReplacer maps CJK and typographic punctuation to its ASCII
// equivalent. Full-width sentence terminators pick up a trailing space so the
// following word stays separated; the extra space is collapsed downstream.
var unicodePunctReplacer = strings.NewReplacer(
	"，", ",",
	"。", ". ",
	"、", ",",
	"”", "\"",
	"“", "\"",
	"∶", ":",
	"：", ":",
	"？", "?",
	"《", "\"",
	"》", "\"",
	"）", ")",
	"！", "!",
	"（", "(",
	"；", ";",
	"」", "\"",
	"「", "\"",
	"０", "0",
	"１", "1",
	"２", "2",
	"３", "3",
	"４", "4",
	"５", "5",
	"６", "6",
	"７", "7",
	"８", "8",
	"９", "9",
	"．", ". ",
	"～", "~",
	"’", "'",
	"…", "...",
	"━", "-",
	"〈", "<",
	"〉", ">",
	"【", "[",
	"】", "]",
	"％", "%",
)

// UnicodePunctFilter rewrites Unicode punctuation to ASCII equivalents.
type UnicodePunctFilter struct{}

// NewUnicodePunctFilter creates a new Unicode punctuation filter.
func NewUnicodePunctFilter() ports.LineFilter {
	return &UnicodePunctFilter{}
}

// Name returns the filter identifier.
func (f *UnicodePunctFilter) Name() string { return "unicode-punct" }

// Apply replaces Unicode punctuation in the line with ASCII punctuation.
func (f *UnicodePunctFilter) Apply(line string) string {
	// Fast path for pure ASCII lines, which have nothing to replace.
	if isASCII(line) {
		return line
	}
	return unicodePunctReplacer.Replace(line)
}

// isASCII reports whether the string contains only ASCII bytes.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 128 {
			return false
		}
	}
	return true
}
