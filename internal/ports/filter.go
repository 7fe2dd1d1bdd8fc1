package ports

// LineFilter defines the interface for a single text preprocessing stage.
// Filters operate on one line at a time and never fail; malformed input is
// passed through unchanged.
type LineFilter interface {
	// Apply transforms a single line of text.
	Apply(line string) string

	// Name returns a short identifier for the filter, used in logs.
	Name() string
}
