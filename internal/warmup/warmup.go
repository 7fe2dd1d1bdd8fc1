package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Sample sentence exercising every stage: Unicode punctuation, cedilla forms,
// diacritics, abbreviations, numbers.
const sampleLine = "Dl. Ionescu a plătit 1,5 mil. lei — „preţul corect”, a spus el… (vezi art. 12)"

// Manager handles system warmup operations
type Manager struct {
	logger  ports.Logger
	filters []ports.LineFilter
	scorers []ports.TokenScorer
	config  WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterFilter adds a filter to be warmed up
func (wm *Manager) RegisterFilter(f ports.LineFilter) {
	wm.filters = append(wm.filters, f)
}

// RegisterScorer adds a scorer to be warmed up
func (wm *Manager) RegisterScorer(s ports.TokenScorer) {
	wm.scorers = append(wm.scorers, s)
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.filters)+len(wm.scorers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	sample := strings.Fields(sampleLine)
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := 0; it < wm.config.Iterations; it++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
				}
				for _, f := range wm.filters {
					_ = f.Apply(sampleLine)
				}
				for _, s := range wm.scorers {
					_ = s.Score(warmupCtx, [][]string{sample}, [][]string{sample})
				}
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		runtime.GC()
	}

	wm.logger.Info("System warmup completed", "duration", time.Since(startTime))
}
