// Package core provides shared configuration, errors, and contracts for the
// panel bridge components.
package core

import "context"

// ShutdownFunc is a cleanup function executed during graceful shutdown.
// The context carries the remaining shutdown deadline; implementations should
// abandon work and return promptly once it is cancelled.
type ShutdownFunc func(ctx context.Context) error
