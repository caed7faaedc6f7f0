package workflow

import (
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/inspector"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/preview"
)

// Record is the most recent successful generation: the artifact, the
// snapshot that produced it, and the document summary at generation time.
// Owned exclusively by the Controller; the apply path reads it but never
// mutates it. A failed generation clears the record, so apply can never
// reference a preview the user just watched fail to regenerate.
type Record struct {
	Artifact    *preview.Artifact
	Snapshot    Snapshot
	Summary     *inspector.Summary
	GeneratedAt time.Time
}
