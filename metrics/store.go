package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/workflow"
)

// StoreConfig configures the Store.
type StoreConfig struct {
	// HistoryCapacity is the max number of operations retained in history
	HistoryCapacity int
	// Version is the application version string reported in SystemStatus
	Version string
}

// DefaultStoreConfig returns a default configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		HistoryCapacity: 100,
		Version:         "0.0.0",
	}
}

// Store is thread-safe in-memory storage for operation records. Recent
// history sits in a circular buffer; totals and per-kind aggregates are kept
// incrementally. It implements workflow.EventSink, so wiring it as a
// controller sink is the only feed it needs.
type Store struct {
	mu sync.RWMutex

	history []OperationRecord
	cap     int
	head    int
	size    int

	totalOps     int64
	totalSuccess int64
	totalErrors  int64
	byKind       map[string]*kindStats

	startTime time.Time
	version   string
	lastOp    time.Time
}

type kindStats struct {
	count         int64
	successCount  int64
	totalDuration time.Duration
}

// NewStore creates a Store; startTime seeds the uptime calculation.
func NewStore(config StoreConfig, startTime time.Time) *Store {
	capacity := config.HistoryCapacity
	if capacity < 1 {
		capacity = 100
	}
	return &Store{
		history:   make([]OperationRecord, capacity),
		cap:       capacity,
		byKind:    make(map[string]*kindStats),
		startTime: startTime,
		version:   config.Version,
	}
}

// WorkflowEvent implements workflow.EventSink. Only settled operations are
// recorded; in-flight markers like generate_requested are ignored.
func (s *Store) WorkflowEvent(_ context.Context, ev workflow.Event) {
	rec := OperationRecord{
		Model:    ev.Model,
		Workflow: ev.Workflow,
		Duration: ev.Elapsed,
		At:       ev.At,
	}

	switch ev.Kind {
	case workflow.EventGenerateSucceeded:
		rec.Kind, rec.Status = OpGenerate, StatusSuccess
	case workflow.EventGenerateFailed:
		rec.Kind, rec.Status = OpGenerate, StatusError
		rec.ErrorMsg = ev.Message
	case workflow.EventApplySucceeded:
		rec.Kind, rec.Status = OpApply, StatusSuccess
	case workflow.EventApplyFailed:
		rec.Kind, rec.Status = OpApply, StatusError
		rec.ErrorMsg = ev.Message
	case workflow.EventRefresh:
		rec.Kind, rec.Status = OpRefresh, StatusSuccess
	default:
		return
	}

	s.Record(rec)
}

// Record logs a completed operation.
func (s *Store) Record(rec OperationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	s.history[s.head] = rec
	s.head = (s.head + 1) % s.cap
	if s.size < s.cap {
		s.size++
	}

	s.totalOps++
	if rec.Status == StatusSuccess {
		s.totalSuccess++
	} else {
		s.totalErrors++
	}

	stats, ok := s.byKind[rec.Kind]
	if !ok {
		stats = &kindStats{}
		s.byKind[rec.Kind] = stats
	}
	stats.count++
	if rec.Status == StatusSuccess {
		stats.successCount++
	}
	stats.totalDuration += rec.Duration

	s.lastOp = rec.At
}

// Metrics returns the aggregate across all recorded operations.
func (s *Store) Metrics() OperationMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := OperationMetrics{
		TotalOperations: s.totalOps,
		TotalSuccess:    s.totalSuccess,
		TotalErrors:     s.totalErrors,
		ByKind:          make(map[string]*KindMetrics, len(s.byKind)),
	}
	if s.totalOps > 0 {
		m.SuccessRate = float64(s.totalSuccess) / float64(s.totalOps) * 100
	}
	for kind, stats := range s.byKind {
		km := &KindMetrics{Count: stats.count, SuccessCount: stats.successCount}
		if stats.count > 0 {
			km.AvgDuration = stats.totalDuration / time.Duration(stats.count)
		}
		m.ByKind[kind] = km
	}
	return m
}

// Recent returns up to limit operation records, newest first.
func (s *Store) Recent(limit int) []OperationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.size
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]OperationRecord, 0, n)
	for i := 0; i < n; i++ {
		// Walk backwards from the most recent write
		idx := (s.head - 1 - i + s.cap*2) % s.cap
		out = append(out, s.history[idx])
	}
	return out
}

// SystemStatus returns the dashboard health summary. The system counts as
// healthy while the process is up; there is no external dependency to probe.
func (s *Store) SystemStatus() SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SystemStatus{
		Healthy:       true,
		Version:       s.version,
		StartTime:     s.startTime,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		LastOperation: s.lastOp,
	}
}
