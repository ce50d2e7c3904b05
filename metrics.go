package genarena

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordInsert is called after each successful insert.
	// grew is true when the insert had to grow capacity first.
	RecordInsert(grew bool)

	// RecordRemove is called after each remove attempt.
	// removed is false when the handle was stale or out of range.
	RecordRemove(removed bool)

	// RecordGrow is called after each capacity growth step with the
	// number of slots added.
	RecordGrow(added int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(bool) {}
func (NoopMetricsCollector) RecordRemove(bool) {}
func (NoopMetricsCollector) RecordGrow(int)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount atomic.Int64
	InsertGrows atomic.Int64
	RemoveCount atomic.Int64
	RemoveStale atomic.Int64
	GrowCount   atomic.Int64
	SlotsAdded  atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(grew bool) {
	b.InsertCount.Add(1)
	if grew {
		b.InsertGrows.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(removed bool) {
	b.RemoveCount.Add(1)
	if !removed {
		b.RemoveStale.Add(1)
	}
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(added int) {
	b.GrowCount.Add(1)
	b.SlotsAdded.Add(int64(added))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount: b.InsertCount.Load(),
		InsertGrows: b.InsertGrows.Load(),
		RemoveCount: b.RemoveCount.Load(),
		RemoveStale: b.RemoveStale.Load(),
		GrowCount:   b.GrowCount.Load(),
		SlotsAdded:  b.SlotsAdded.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount int64
	InsertGrows int64
	RemoveCount int64
	RemoveStale int64
	GrowCount   int64
	SlotsAdded  int64
}
