package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/hostdoc"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/inspector"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/logging"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/preview"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the controller's workflow state.
type State string

const (
	StateIdle         State = "idle"
	StateGenerating   State = "generating"
	StatePreviewReady State = "preview_ready"
	StateApplying     State = "applying"
)

// View is the immutable readout the panel renders from. Every dispatch
// returns the view that resulted from it.
type View struct {
	State          State   `json:"state"`
	Status         Status  `json:"status"`
	Busy           bool    `json:"busy"`
	ApplyEnabled   bool    `json:"applyEnabled"`
	HasPreview     bool    `json:"hasPreview"`
	PreviewDataURI string  `json:"previewDataUri,omitempty"`
	DocumentHint   string  `json:"documentHint"`
	GeneratedAt    *string `json:"generatedAt,omitempty"`
}

// Controller is the single writer of workflow state. Panel actions dispatch
// into Generate, Apply and Refresh; each settles fully before the returned
// View is valid. At most one generate-or-apply operation is in flight at a
// time, enforced by rejecting dispatches while busy.
type Controller struct {
	host     hostdoc.Host
	insp     *inspector.Inspector
	provider preview.Provider
	labels   *preview.Labels
	logger   *logging.Logger
	sinks    []EventSink

	mu          sync.Mutex
	state       State
	status      Status
	record      *Record
	lastSummary *inspector.Summary
}

// NewController wires a controller over its collaborators. Sinks receive
// workflow events in registration order.
func NewController(host hostdoc.Host, insp *inspector.Inspector, provider preview.Provider, labels *preview.Labels, logger *logging.Logger, sinks ...EventSink) *Controller {
	return &Controller{
		host:     host,
		insp:     insp,
		provider: provider,
		labels:   labels,
		logger:   logger.Named("workflow"),
		sinks:    sinks,
		state:    StateIdle,
		status:   infoStatus("Ready"),
	}
}

// View returns the current panel view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Record returns the current Preview Record, or nil. The returned record
// must be treated as read-only.
func (c *Controller) Record() *Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// Generate validates and captures snap, then runs the document fetch and the
// provider call concurrently and joins them. Both must succeed: on any
// failure the attempt fails as a whole, the previous Preview Record is
// cleared and the state returns to Idle.
func (c *Controller) Generate(ctx context.Context, snap Snapshot) View {
	c.mu.Lock()
	if c.busyLocked() {
		return c.rejectBusyLocked("generate")
	}
	if err := snap.Validate(); err != nil {
		// No provider or host call is made for an invalid snapshot
		c.status = warningStatus(err.Error())
		defer c.mu.Unlock()
		return c.viewLocked()
	}

	c.state = StateGenerating
	c.status = infoStatus("Generating preview...")
	hint := c.lastSummary.Hint()
	c.mu.Unlock()

	start := time.Now()
	c.emit(ctx, Event{Kind: EventGenerateRequested, Model: snap.Model, Workflow: snap.Workflow, Strength: snap.Strength})

	type summaryResult struct {
		summary *inspector.Summary
		err     error
	}
	type artifactResult struct {
		artifact *preview.Artifact
		err      error
	}
	summaryCh := make(chan summaryResult, 1)
	artifactCh := make(chan artifactResult, 1)

	go func() {
		s, err := c.insp.FetchSummary(ctx)
		summaryCh <- summaryResult{summary: s, err: err}
	}()
	go func() {
		a, err := c.provider.Generate(ctx, preview.Request{
			Prompt:          snap.Prompt,
			ModelLabel:      c.labels.ModelLabel(snap.Model),
			WorkflowLabel:   c.labels.WorkflowLabel(snap.Workflow),
			Strength:        snap.Strength,
			PreserveSubject: snap.PreserveSubject,
			RespectMask:     snap.RespectMask,
			SummaryHint:     hint,
		})
		artifactCh <- artifactResult{artifact: a, err: err}
	}()

	// Join both calls before touching state; there is no cancellation of the
	// surviving call when its sibling fails.
	sres := <-summaryCh
	ares := <-artifactCh
	elapsed := time.Since(start)

	c.mu.Lock()
	defer c.mu.Unlock()

	if sres.err == nil {
		c.lastSummary = sres.summary
	}

	if err := firstError(sres.err, ares.err); err != nil {
		c.logger.Error("generate failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		c.record = nil
		c.state = StateIdle
		c.status = errorStatus(fmt.Sprintf("Preview generation failed: %v", err))
		c.emit(ctx, Event{Kind: EventGenerateFailed, Model: snap.Model, Workflow: snap.Workflow, Strength: snap.Strength, Message: err.Error(), Elapsed: elapsed})
		return c.viewLocked()
	}

	c.record = &Record{
		Artifact:    ares.artifact,
		Snapshot:    snap,
		Summary:     sres.summary,
		GeneratedAt: time.Now(),
	}
	c.state = StatePreviewReady
	c.status = successStatus("Preview ready")
	c.logger.Info("preview generated",
		zap.String("model", snap.Model),
		zap.String("workflow", snap.Workflow),
		zap.Duration("elapsed", elapsed))
	c.emit(ctx, Event{Kind: EventGenerateSucceeded, Model: snap.Model, Workflow: snap.Workflow, Strength: snap.Strength, Elapsed: elapsed})
	return c.viewLocked()
}

// Apply creates one new layer from the current Preview Record inside a
// scoped, undo-grouped host mutation. It requires a record and an open
// document; a rejected apply changes nothing and triggers no refresh. An
// attempted apply is always followed by exactly one summary refresh,
// whether the mutation succeeded or not.
func (c *Controller) Apply(ctx context.Context) View {
	c.mu.Lock()
	if c.busyLocked() {
		return c.rejectBusyLocked("apply")
	}
	if c.record == nil {
		c.status = warningStatus("Generate a preview before applying")
		defer c.mu.Unlock()
		return c.viewLocked()
	}
	rec := c.record
	c.state = StateApplying
	c.mu.Unlock()

	open, err := c.host.DocumentOpen(ctx)
	if err != nil || !open {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.state = c.settledStateLocked()
		c.status = warningStatus("Open a document before applying")
		return c.viewLocked()
	}

	layerName := applyLayerName(rec)
	start := time.Now()
	applyErr := c.host.RunScoped(ctx, "Apply AI preview", func(mut hostdoc.Mutator) error {
		return mut.CreateLayer(layerName)
	})
	elapsed := time.Since(start)

	// Unconditional refresh after an attempted apply
	summary, sumErr := c.insp.FetchSummary(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if sumErr == nil {
		c.lastSummary = summary
	}
	c.state = c.settledStateLocked()

	if applyErr != nil {
		c.logger.Error("apply failed", zap.String("layer", layerName), zap.Error(applyErr))
		c.status = errorStatus(fmt.Sprintf("Apply failed: %v", applyErr))
		c.emit(ctx, Event{Kind: EventApplyFailed, Model: rec.Snapshot.Model, Workflow: rec.Snapshot.Workflow, Strength: rec.Snapshot.Strength, Message: applyErr.Error(), Elapsed: elapsed})
		return c.viewLocked()
	}

	c.logger.Info("preview applied", zap.String("layer", layerName), zap.Duration("elapsed", elapsed))
	c.status = successStatus(fmt.Sprintf("Created layer %q", layerName))
	c.emit(ctx, Event{Kind: EventApplySucceeded, Model: rec.Snapshot.Model, Workflow: rec.Snapshot.Workflow, Strength: rec.Snapshot.Strength, Message: layerName, Elapsed: elapsed})
	return c.viewLocked()
}

// Refresh re-reads the document summary and updates the readout.
func (c *Controller) Refresh(ctx context.Context) View {
	c.mu.Lock()
	if c.busyLocked() {
		return c.rejectBusyLocked("refresh")
	}
	c.mu.Unlock()

	summary, err := c.insp.FetchSummary(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = errorStatus(fmt.Sprintf("Refresh failed: %v", err))
		return c.viewLocked()
	}
	c.lastSummary = summary
	c.status = infoStatus(summary.Hint())
	c.emit(ctx, Event{Kind: EventRefresh, Message: summary.Hint()})
	return c.viewLocked()
}

// busyLocked reports whether an operation is in flight. Callers hold c.mu.
func (c *Controller) busyLocked() bool {
	return c.state == StateGenerating || c.state == StateApplying
}

// settledStateLocked is the resting state once no operation is in flight:
// PreviewReady while a record exists, Idle otherwise.
func (c *Controller) settledStateLocked() State {
	if c.record != nil {
		return StatePreviewReady
	}
	return StateIdle
}

// rejectBusyLocked returns a view with a transient busy warning without
// touching the stored status, then releases the lock.
func (c *Controller) rejectBusyLocked(action string) View {
	defer c.mu.Unlock()
	v := c.viewLocked()
	v.Status = warningStatus(fmt.Sprintf("Cannot %s while another operation is in progress", action))
	return v
}

func (c *Controller) viewLocked() View {
	v := View{
		State:        c.state,
		Status:       c.status,
		Busy:         c.busyLocked(),
		ApplyEnabled: c.record != nil && !c.busyLocked(),
		HasPreview:   c.record != nil,
		DocumentHint: c.lastSummary.Hint(),
	}
	if c.record != nil {
		v.PreviewDataURI = c.record.Artifact.DataURI
		ts := c.record.GeneratedAt.Format(time.RFC3339)
		v.GeneratedAt = &ts
	}
	return v
}

func (c *Controller) emit(ctx context.Context, ev Event) {
	ev.At = time.Now()
	for _, sink := range c.sinks {
		sink.WorkflowEvent(ctx, ev)
	}
}

// applyLayerName derives the new layer's name from the record's labels plus
// a short unique suffix, so repeated applies never collide.
func applyLayerName(rec *Record) string {
	return fmt.Sprintf("AI Preview: %s / %s [%s]",
		rec.Artifact.ModelLabel, rec.Artifact.WorkflowLabel, uuid.NewString()[:8])
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
