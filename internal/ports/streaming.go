package ports

import (
	"context"
	"io"
)

// StreamProcessor defines the interface for pushing a text stream through a
// filter chain, line by line.
type StreamProcessor interface {
	// FilterStream reads lines from reader, applies the configured filters to
	// each, and writes the filtered lines to writer. It returns the number of
	// lines processed.
	FilterStream(ctx context.Context, reader io.Reader, writer io.Writer) (int, error)

	// CollectStream reads lines from reader, applies the configured filters,
	// and returns the filtered lines.
	CollectStream(ctx context.Context, reader io.Reader) ([]string, error)
}
