package stream

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/baditaflorin/go_mt_eval/internal/pool"
	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

const (
	// MaxScannerBufferSize caps the line scanner buffer. Corpus files can
	// carry very long sentences; the default bufio limit is too small.
	MaxScannerBufferSize = 1024 * 1024 // 1MB
)

// Ensure Processor implements the port.
var _ ports.StreamProcessor = (*Processor)(nil)

// Processor pushes a text stream through a filter chain, line by line.
type Processor struct {
	logger     ports.Logger
	filter     ports.LineFilter
	bufferPool *pool.BufferPool
}

// NewProcessor creates a stream processor over the given filter.
func NewProcessor(logger ports.Logger, filter ports.LineFilter) *Processor {
	return &Processor{
		logger:     logger,
		filter:     filter,
		bufferPool: pool.NewBufferPool(MaxScannerBufferSize),
	}
}

// FilterStream reads lines from reader, filters each, and writes the results
// to writer, one line per input line. It returns the number of lines written.
func (p *Processor) FilterStream(ctx context.Context, reader io.Reader, writer io.Writer) (int, error) {
	startTime := time.Now()

	if reader == nil || writer == nil {
		p.logger.Error("Nil reader or writer provided")
		return 0, io.ErrUnexpectedEOF
	}

	bw := bufio.NewWriter(writer)
	lines := 0
	var totalBytes int64

	err := p.scanLines(ctx, reader, func(line string) error {
		totalBytes += int64(len(line))
		if _, werr := bw.WriteString(p.filter.Apply(line)); werr != nil {
			return werr
		}
		if werr := bw.WriteByte('\n'); werr != nil {
			return werr
		}
		lines++
		return nil
	})
	if err != nil {
		p.logger.Error("Stream filtering error", "error", err, "lines", lines)
		return lines, err
	}
	if err := bw.Flush(); err != nil {
		p.logger.Error("Error flushing filtered output", "error", err)
		return lines, err
	}

	p.logger.Debug("Stream filtering completed",
		"filter", p.filter.Name(),
		"lines", lines,
		"bytes_processed", totalBytes,
		"duration", time.Since(startTime),
	)

	return lines, nil
}

// CollectStream reads lines from reader, filters each, and returns the
// filtered lines.
func (p *Processor) CollectStream(ctx context.Context, reader io.Reader) ([]string, error) {
	if reader == nil {
		p.logger.Error("Nil reader provided")
		return nil, io.ErrUnexpectedEOF
	}

	var out []string
	err := p.scanLines(ctx, reader, func(line string) error {
		out = append(out, p.filter.Apply(line))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scanLines drives a line scanner with cancellation checks.
func (p *Processor) scanLines(ctx context.Context, reader io.Reader, fn func(string) error) error {
	scanner := bufio.NewScanner(reader)

	// Increase scanner buffer size to handle longer lines. The buffer comes
	// from a pool so back-to-back file runs reuse the allocation.
	buffer := p.bufferPool.Get()
	defer p.bufferPool.Put(buffer)
	if cap(*buffer) < MaxScannerBufferSize {
		*buffer = make([]byte, 0, MaxScannerBufferSize)
	}
	scanner.Buffer((*buffer)[:MaxScannerBufferSize], MaxScannerBufferSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			p.logger.Warn("Processing cancelled by context", "error", ctx.Err())
			return ctx.Err()
		default:
			// continue
		}

		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
