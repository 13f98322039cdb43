package orderedmap

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    insertCounter prometheus.Counter
//	    sortHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordInsert() {
//	    p.insertCounter.Inc()
//	}
type MetricsCollector interface {
	// RecordInsert is called when an upsert appends a new entry.
	RecordInsert()

	// RecordUpdate is called when an upsert overwrites an existing entry.
	RecordUpdate()

	// RecordErase is called after each erase. found is false for absent keys.
	RecordErase(found bool)

	// RecordLookup is called after each lookup by key.
	RecordLookup(hit bool)

	// RecordSort is called after each sort of n entries.
	RecordSort(n int, duration time.Duration)

	// RecordMerge is called after merging n entries from another map.
	RecordMerge(n int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert()                 {}
func (NoopMetricsCollector) RecordUpdate()                 {}
func (NoopMetricsCollector) RecordErase(bool)              {}
func (NoopMetricsCollector) RecordLookup(bool)             {}
func (NoopMetricsCollector) RecordSort(int, time.Duration) {}
func (NoopMetricsCollector) RecordMerge(int)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// The counters are atomic so one collector may be shared by several maps
// owned by different goroutines.
type BasicMetricsCollector struct {
	InsertCount    atomic.Int64
	UpdateCount    atomic.Int64
	EraseCount     atomic.Int64
	EraseMisses    atomic.Int64
	LookupCount    atomic.Int64
	LookupMisses   atomic.Int64
	SortCount      atomic.Int64
	SortedEntries  atomic.Int64
	SortTotalNanos atomic.Int64
	MergeCount     atomic.Int64
	MergedEntries  atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert() {
	b.InsertCount.Add(1)
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate() {
	b.UpdateCount.Add(1)
}

// RecordErase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordErase(found bool) {
	b.EraseCount.Add(1)
	if !found {
		b.EraseMisses.Add(1)
	}
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(hit bool) {
	b.LookupCount.Add(1)
	if !hit {
		b.LookupMisses.Add(1)
	}
}

// RecordSort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSort(n int, duration time.Duration) {
	b.SortCount.Add(1)
	b.SortedEntries.Add(int64(n))
	b.SortTotalNanos.Add(duration.Nanoseconds())
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(n int) {
	b.MergeCount.Add(1)
	b.MergedEntries.Add(int64(n))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:   b.InsertCount.Load(),
		UpdateCount:   b.UpdateCount.Load(),
		EraseCount:    b.EraseCount.Load(),
		EraseMisses:   b.EraseMisses.Load(),
		LookupCount:   b.LookupCount.Load(),
		LookupMisses:  b.LookupMisses.Load(),
		SortCount:     b.SortCount.Load(),
		SortedEntries: b.SortedEntries.Load(),
		SortAvgNanos:  b.getAvgSortNanos(),
		MergeCount:    b.MergeCount.Load(),
		MergedEntries: b.MergedEntries.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSortNanos() int64 {
	count := b.SortCount.Load()
	if count == 0 {
		return 0
	}
	return b.SortTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount   int64
	UpdateCount   int64
	EraseCount    int64
	EraseMisses   int64
	LookupCount   int64
	LookupMisses  int64
	SortCount     int64
	SortedEntries int64
	SortAvgNanos  int64
	MergeCount    int64
	MergedEntries int64
}
