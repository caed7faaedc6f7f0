package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/logging"

	"go.uber.org/zap"
)

// DefaultLatency models asynchronous provider round-trip time. It is fixed
// and independent of input size.
const DefaultLatency = 500 * time.Millisecond

// SimulatedProvider renders previews locally after a fixed delay. Output is
// fully determined by the request: same request, same artifact (modulo the
// GeneratedAt timestamp).
type SimulatedProvider struct {
	latency time.Duration
	logger  *logging.Logger
}

// NewSimulatedProvider creates a provider with the given simulated latency.
// A non-positive latency is replaced with DefaultLatency.
func NewSimulatedProvider(latency time.Duration, logger *logging.Logger) *SimulatedProvider {
	if latency <= 0 {
		latency = DefaultLatency
	}
	return &SimulatedProvider{
		latency: latency,
		logger:  logger.Named("preview"),
	}
}

// Generate implements Provider. The artifact embeds the request's labels,
// strength, toggles, prompt and document hint as text lines on a preview card.
func (p *SimulatedProvider) Generate(ctx context.Context, req Request) (*Artifact, error) {
	start := time.Now()

	timer := time.NewTimer(p.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	lines := []string{
		fmt.Sprintf("Model: %s", req.ModelLabel),
		fmt.Sprintf("Workflow: %s", req.WorkflowLabel),
		fmt.Sprintf("Strength: %d%%", req.Strength),
		fmt.Sprintf("Preserve subject: %s", onOff(req.PreserveSubject)),
		fmt.Sprintf("Respect mask: %s", onOff(req.RespectMask)),
		"",
		fmt.Sprintf("Prompt: %s", req.Prompt),
		"",
		fmt.Sprintf("Document: %s", req.SummaryHint),
	}

	svg := BuildSVG("AI Preview", lines)
	artifact := &Artifact{
		DataURI:       DataURI(svg),
		ModelLabel:    req.ModelLabel,
		WorkflowLabel: req.WorkflowLabel,
		GeneratedAt:   time.Now(),
	}

	p.logger.Debug("preview generated",
		zap.String("model", req.ModelLabel),
		zap.String("workflow", req.WorkflowLabel),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("uri_bytes", len(artifact.DataURI)))
	return artifact, nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
