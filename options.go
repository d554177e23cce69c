package clusters

import (
	"math/rand"
	"time"
)

type options struct {
	rng     *rand.Rand
	logger  *Logger
	metrics MetricsCollector
}

func defaultOptions() options {
	return options{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  NewLogger(nil),
		metrics: NoopMetricsCollector{},
	}
}

func newOptions(opts ...Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Option configures algorithm construction.
//
// Randomness is the only source of non-determinism in this package, so a
// fixed seed reproduces identical initial centroids and, through the
// deterministic tie-breaking of the assignment steps, identical partitions.
type Option func(*options)

// WithSeed seeds the algorithm's random generator, making runs reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a random generator. The algorithm takes ownership; do not
// share one generator between concurrently running fits.
//
// If nil is passed, the time-seeded default is kept.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithLogger configures the logger used for iteration-level debug output.
//
// If nil is passed, the default stderr logger is kept.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics configures the metrics collector notified after every fit run.
//
// If nil is passed, the no-op collector is kept.
func WithMetrics(collector MetricsCollector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}
