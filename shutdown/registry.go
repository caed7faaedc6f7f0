// Package shutdown coordinates graceful teardown: ordered cleanup handlers,
// OS signal handling with a force-exit second signal, and a process-wide
// context that components watch for cancellation.
package shutdown

import (
	"sort"
	"sync"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/core"
)

// CleanupFunc releases one resource during shutdown.
type CleanupFunc = core.ShutdownFunc

type cleanupEntry struct {
	name     string
	priority int
	fn       CleanupFunc
	order    int
}

// registry holds cleanup handlers ordered by priority (lower runs first);
// ties run in registration order.
type registry struct {
	mu      sync.Mutex
	entries []cleanupEntry
}

func (r *registry) add(name string, priority int, fn CleanupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, cleanupEntry{
		name:     name,
		priority: priority,
		fn:       fn,
		order:    len(r.entries),
	})
}

// ordered returns a sorted copy of the entries.
func (r *registry) ordered() []cleanupEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]cleanupEntry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority < out[j].priority
		}
		return out[i].order < out[j].order
	})
	return out
}
