// Package inspector reads the host's active document into a Document Summary.
// Every metadata field comes from a separate, independently-failable host
// call, so each is carried as an explicit tri-state rather than a bare nil:
// tests and the panel can tell "the host does not expose this" apart from
// "the host call failed".
package inspector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/hostdoc"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/logging"

	"go.uber.org/zap"
)

// FieldStatus is the tri-state of one optional summary field.
type FieldStatus int

const (
	// FieldPresent means the host call succeeded and Value is meaningful.
	FieldPresent FieldStatus = iota
	// FieldUnsupported means the host does not expose this capability.
	FieldUnsupported
	// FieldFailed means the host call failed; the failure was logged and
	// absorbed here rather than failing the whole summary.
	FieldFailed
)

// String returns the string representation of a field status.
func (s FieldStatus) String() string {
	switch s {
	case FieldPresent:
		return "present"
	case FieldUnsupported:
		return "unsupported"
	case FieldFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Dimension is an optional numeric summary field (pixels or ppi).
type Dimension struct {
	Value  float64
	Status FieldStatus
}

// LayerTally is the optional layer-count field from the descriptor query.
type LayerTally struct {
	Value  int
	Status FieldStatus
}

// Summary is a read-only snapshot of the active document. A nil *Summary
// means no document is open; a non-nil Summary always has a name, while the
// numeric fields degrade individually.
type Summary struct {
	Name       string
	WidthPx    Dimension
	HeightPx   Dimension
	Resolution Dimension
	LayerCount LayerTally
	FetchedAt  time.Time
}

// Hint returns the one-line document description embedded into previews and
// shown in the panel readout. Degraded fields render as "unknown".
func (s *Summary) Hint() string {
	if s == nil {
		return "No document open"
	}

	var b strings.Builder
	b.WriteString(s.Name)

	if s.WidthPx.Status == FieldPresent && s.HeightPx.Status == FieldPresent {
		fmt.Fprintf(&b, ", %.0fx%.0f px", s.WidthPx.Value, s.HeightPx.Value)
	} else {
		b.WriteString(", size unknown")
	}

	if s.Resolution.Status == FieldPresent {
		fmt.Fprintf(&b, " @ %.0f ppi", s.Resolution.Value)
	}

	if s.LayerCount.Status == FieldPresent {
		fmt.Fprintf(&b, ", %d layer(s)", s.LayerCount.Value)
	}

	return b.String()
}

// Inspector fetches Document Summaries from a host. It performs read-only
// host queries only and never mutates the document.
type Inspector struct {
	host   hostdoc.Host
	logger *logging.Logger
}

// New creates an Inspector over the given host.
func New(host hostdoc.Host, logger *logging.Logger) *Inspector {
	return &Inspector{
		host:   host,
		logger: logger.Named("inspector"),
	}
}

// FetchSummary reads the active document. Returns (nil, nil) when no document
// is open; a failed existence check counts as "no document". Individual field
// failures are logged and recorded in the field status, never propagated.
// The only returned error is context cancellation.
func (i *Inspector) FetchSummary(ctx context.Context) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	open, err := i.host.DocumentOpen(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		// A failed existence check is treated as "no document"
		i.logger.Warn("document existence check failed", zap.Error(err))
		return nil, nil
	}
	if !open {
		return nil, nil
	}

	summary := &Summary{FetchedAt: time.Now()}

	name, err := i.host.DocumentName(ctx)
	if err != nil {
		i.logger.Warn("document name query failed", zap.Error(err))
		name = "Untitled"
	}
	summary.Name = name

	width, height, err := i.host.PixelDimensions(ctx)
	switch {
	case err == nil:
		summary.WidthPx = Dimension{Value: width, Status: FieldPresent}
		summary.HeightPx = Dimension{Value: height, Status: FieldPresent}
	case errors.Is(err, hostdoc.ErrUnsupported):
		summary.WidthPx.Status = FieldUnsupported
		summary.HeightPx.Status = FieldUnsupported
	default:
		i.logger.Warn("pixel dimension query failed", zap.Error(err))
		summary.WidthPx.Status = FieldFailed
		summary.HeightPx.Status = FieldFailed
	}

	resolution, err := i.host.Resolution(ctx)
	switch {
	case err == nil:
		summary.Resolution = Dimension{Value: resolution, Status: FieldPresent}
	case errors.Is(err, hostdoc.ErrUnsupported):
		summary.Resolution.Status = FieldUnsupported
	default:
		i.logger.Warn("resolution query failed", zap.Error(err))
		summary.Resolution.Status = FieldFailed
	}

	count, err := i.host.LayerCount(ctx)
	if err != nil {
		// Descriptor query failures never fail the summary
		i.logger.Warn("layer count descriptor query failed", zap.Error(err))
		summary.LayerCount.Status = FieldFailed
	} else {
		summary.LayerCount = LayerTally{Value: count, Status: FieldPresent}
	}

	return summary, nil
}
