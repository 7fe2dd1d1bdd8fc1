package tokenizer

// Nonbreaking prefix classes. A word-final period after one of these is part
// of the abbreviation, not a sentence boundary, and stays attached.
const (
	prefixAny = iota + 1
	// prefixNumericOnly prefixes keep their period only when a digit follows.
	prefixNumericOnly
)

// nonbreakingPrefixes holds per-language abbreviation sets. Single letters
// (initials) are added for every language at construction time.
var nonbreakingPrefixes = map[string]map[string]int{
	"ro": {
		"dl":   prefixAny,
		"Dl":   prefixAny,
		"d-l":  prefixAny,
		"dna":  prefixAny,
		"Dna":  prefixAny,
		"d-na": prefixAny,
		"dvs":  prefixAny,
		"dr":   prefixAny,
		"Dr":   prefixAny,
		"ing":  prefixAny,
		"prof": prefixAny,
		"Prof": prefixAny,
		"acad": prefixAny,
		"cf":   prefixAny,
		"ex":   prefixAny,
		"etc":  prefixAny,
		"str":  prefixAny,
		"Str":  prefixAny,
		"jud":  prefixAny,
		"sec":  prefixAny,
		"cap":  prefixAny,
		"vol":  prefixAny,
		"nr":   prefixNumericOnly,
		"Nr":   prefixNumericOnly,
		"art":  prefixNumericOnly,
		"alin": prefixNumericOnly,
		"pag":  prefixNumericOnly,
		"pct":  prefixNumericOnly,
	},
	"en": {
		"Mr":   prefixAny,
		"Mrs":  prefixAny,
		"Ms":   prefixAny,
		"Dr":   prefixAny,
		"Prof": prefixAny,
		"St":   prefixAny,
		"Jr":   prefixAny,
		"Sr":   prefixAny,
		"vs":   prefixAny,
		"etc":  prefixAny,
		"e.g":  prefixAny,
		"i.e":  prefixAny,
		"No":   prefixNumericOnly,
		"Nos":  prefixNumericOnly,
		"pp":   prefixNumericOnly,
	},
}

// prefixesForLanguage returns the nonbreaking prefix table for a language,
// extended with single-letter initials. Unknown languages get initials only.
func prefixesForLanguage(lang string) map[string]int {
	table := make(map[string]int, 64)
	for p, class := range nonbreakingPrefixes[lang] {
		table[p] = class
	}
	for r := 'A'; r <= 'Z'; r++ {
		table[string(r)] = prefixAny
		table[string(r+'a'-'A')] = prefixAny
	}
	return table
}
