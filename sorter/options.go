package sorter

import (
	"runtime"

	"github.com/go-logr/logr"
)

// DefaultParallelThreshold is the partition size at or below which parallel
// quicksort recurses on the calling goroutine instead of forking.
const DefaultParallelThreshold = 1000

// debugV is the logr verbosity of dispatch summaries.
const debugV = 4

// Option configures a single sort call.
type Option func(*config)

type config struct {
	stable    bool
	metrics   *Metrics
	threshold int
	hasThresh bool
	workers   int
	logger    logr.Logger
}

func newConfig(opts []Option) config {
	c := config{
		workers: runtime.GOMAXPROCS(0),
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithStable requests a stable sort. The flag is advisory: stable algorithms
// are always stable and unstable ones stay unstable.
func WithStable(stable bool) Option {
	return func(c *config) { c.stable = stable }
}

// WithMetrics makes the call fill m with a fresh record. Previous contents of
// m are discarded.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithThreshold overrides the parallel quicksort threshold for one call.
// Other algorithms ignore it.
func WithThreshold(n int) Option {
	return func(c *config) {
		c.threshold = n
		c.hasThresh = true
	}
}

// WithWorkers bounds the number of forked branches running concurrently.
// n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
	}
}

// WithLogger attaches a logger for parallel dispatch summaries.
func WithLogger(l logr.Logger) Option {
	return func(c *config) { c.logger = l }
}
