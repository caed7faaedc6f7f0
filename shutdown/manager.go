package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds the whole cleanup sequence.
const DefaultTimeout = 30 * time.Second

// Manager coordinates graceful shutdown. Register cleanup handlers, call
// Start to begin signal handling, then Wait; a SIGINT or SIGTERM (or a
// Shutdown call) cancels Context and runs the handlers in priority order.
// A second signal force-exits without waiting for cleanup.
//
// Usage:
//
//	manager := NewManager(logger)
//	manager.Register("journal", 10, func(ctx context.Context) error {
//	    return journal.Close()
//	})
//	manager.Start()
//	<-manager.Context().Done()
//	manager.Wait()
type Manager struct {
	logger  *zap.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	registry registry
	sigChan  chan os.Signal

	mu       sync.Mutex
	started  bool
	finished chan struct{}
	once     sync.Once

	// exit is swappable for tests; defaults to os.Exit
	exit func(code int)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTimeout sets the cleanup timeout. Default is DefaultTimeout.
func WithTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) { m.timeout = timeout }
}

// NewManager creates a manager ready to coordinate shutdown.
func NewManager(logger *zap.Logger, opts ...ManagerOption) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		logger:   logger,
		timeout:  DefaultTimeout,
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  make(chan os.Signal, 2),
		finished: make(chan struct{}),
		exit:     os.Exit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Context returns the process context, cancelled when shutdown begins.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Register adds a cleanup handler. Lower priority runs first.
func (m *Manager) Register(name string, priority int, fn CleanupFunc) {
	m.registry.add(name, priority, fn)
}

// Start begins listening for SIGINT and SIGTERM. Safe to call once;
// subsequent calls are no-ops.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	signal.Notify(m.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go m.watchSignals()
}

func (m *Manager) watchSignals() {
	sig, ok := <-m.sigChan
	if !ok {
		return
	}
	m.logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	go m.Shutdown()

	// Second signal forces exit without cleanup
	if _, ok := <-m.sigChan; ok {
		m.logger.Warn("second signal received, forcing exit")
		m.exit(1)
	}
}

// Shutdown cancels the context and runs all cleanup handlers in priority
// order, bounded by the configured timeout. Safe to call multiple times;
// cleanup runs once.
func (m *Manager) Shutdown() {
	m.once.Do(func() {
		m.cancel()

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		for _, entry := range m.registry.ordered() {
			if ctx.Err() != nil {
				m.logger.Error("shutdown timeout, skipping remaining cleanup",
					zap.String("next", entry.name))
				break
			}
			start := time.Now()
			if err := entry.fn(ctx); err != nil {
				m.logger.Error("cleanup failed",
					zap.String("name", entry.name), zap.Error(err))
			} else {
				m.logger.Info("cleanup complete",
					zap.String("name", entry.name),
					zap.Duration("elapsed", time.Since(start)))
			}
		}

		signal.Stop(m.sigChan)
		close(m.finished)
	})
}

// Wait blocks until the cleanup sequence has finished.
func (m *Manager) Wait() {
	<-m.finished
}
