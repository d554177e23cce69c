package clusters

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordFit is called after each fit run. iterations is the number of
	// iterations actually executed, duration the total time taken, err is
	// nil if the run produced a partition.
	RecordFit(algorithm string, k, iterations int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

// RecordFit implements MetricsCollector.
func (NoopMetricsCollector) RecordFit(string, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount      atomic.Int64
	FitErrors     atomic.Int64
	FitIterations atomic.Int64
	FitTotalNanos atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(_ string, _ int, iterations int, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitIterations.Add(int64(iterations))
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector counters.
type BasicMetricsStats struct {
	FitCount      int64
	FitErrors     int64
	FitIterations int64
	FitAvgNanos   int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.FitCount.Load()
	var avg int64
	if count > 0 {
		avg = b.FitTotalNanos.Load() / count
	}
	return BasicMetricsStats{
		FitCount:      count,
		FitErrors:     b.FitErrors.Load(),
		FitIterations: b.FitIterations.Load(),
		FitAvgNanos:   avg,
	}
}
