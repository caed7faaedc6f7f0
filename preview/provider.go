package preview

import (
	"context"
	"time"
)

// Request carries everything a provider needs to produce one preview.
// Label resolution happens before the request is built, so providers work
// with display labels only and never consult the key tables themselves.
type Request struct {
	Prompt          string
	ModelLabel      string
	WorkflowLabel   string
	Strength        int
	PreserveSubject bool
	RespectMask     bool

	// SummaryHint is the one-line document description rendered into the
	// preview, e.g. "Poster, 1024x768 px @ 72 ppi, 3 layer(s)".
	SummaryHint string
}

// Artifact is a completed preview: a self-contained displayable reference
// plus the labels it was rendered with, which the apply path reuses for
// layer naming.
type Artifact struct {
	DataURI       string
	ModelLabel    string
	WorkflowLabel string
	GeneratedAt   time.Time
}

// Provider produces a preview artifact for a request. Generate blocks until
// the artifact is ready or ctx is done; implementations must honor ctx even
// when the underlying work cannot be interrupted.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Artifact, error)
}
