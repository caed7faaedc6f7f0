package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/logging"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/workflow"

	"go.uber.org/zap"
)

// DefaultQueueCapacity buffers this many events before writes start dropping.
const DefaultQueueCapacity = 100

// DefaultDrainTimeout bounds how long Close waits for queued writes.
const DefaultDrainTimeout = 10 * time.Second

// Entry is one persisted workflow event.
type Entry struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Model     string    `json:"model,omitempty"`
	Workflow  string    `json:"workflow,omitempty"`
	Strength  int       `json:"strength"`
	Message   string    `json:"message,omitempty"`
	ElapsedMS int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Journal is an append-only event log backed by SQLite. It implements
// workflow.EventSink with a non-blocking enqueue: inserts happen on a single
// background goroutine so the dispatch path never waits on disk. When the
// queue is full the event is dropped and counted, never blocked on.
type Journal struct {
	db     *sql.DB
	logger *logging.Logger

	queue chan workflow.Event
	wg    sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	dropped int64
}

// Open opens (creating if needed) the journal database at path, applies
// pending migrations from migrationsPath and starts the background writer.
func Open(path, migrationsPath string, logger *logging.Logger) (*Journal, error) {
	db, err := openConnection(DefaultConnectionConfig(path))
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db, migrationsPath); err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{
		db:     db,
		logger: logger.Named("journal"),
		queue:  make(chan workflow.Event, DefaultQueueCapacity),
	}
	j.wg.Add(1)
	go j.writeLoop()
	return j, nil
}

// WorkflowEvent implements workflow.EventSink. The lock is held through the
// enqueue so Close cannot close the queue mid-send.
func (j *Journal) WorkflowEvent(_ context.Context, ev workflow.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}

	select {
	case j.queue <- ev:
	default:
		j.dropped++
		j.logger.Warn("journal queue full, event dropped",
			zap.String("kind", string(ev.Kind)),
			zap.Int64("dropped_total", j.dropped))
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (j *Journal) Dropped() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.dropped
}

// writeLoop is the single writer goroutine. It exits when the queue is
// closed and drained.
func (j *Journal) writeLoop() {
	defer j.wg.Done()
	for ev := range j.queue {
		if err := j.insert(ev); err != nil {
			j.logger.Error("journal insert failed", zap.String("kind", string(ev.Kind)), zap.Error(err))
		}
	}
}

func (j *Journal) insert(ev workflow.Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.Exec(
		`INSERT INTO workflow_events (kind, model, workflow, strength, message, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(ev.Kind), ev.Model, ev.Workflow, ev.Strength, ev.Message,
		ev.Elapsed.Milliseconds(), at.UTC(),
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, kind, model, workflow, strength, message, elapsed_ms, created_at
		 FROM workflow_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Model, &e.Workflow, &e.Strength, &e.Message, &e.ElapsedMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close stops accepting events, drains queued writes (bounded by
// DefaultDrainTimeout) and closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	j.mu.Unlock()

	close(j.queue)

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(DefaultDrainTimeout):
		j.logger.Warn("journal drain timed out, pending events lost")
	}

	return j.db.Close()
}
