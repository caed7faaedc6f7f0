// Package preview turns a Configuration Snapshot and a document hint into a
// displayable preview artifact. The prototype provider builds a deterministic
// SVG data URI after a simulated provider delay; a real image provider would
// implement the same Provider contract.
package preview

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fallback labels used when a model or workflow key has no mapping.
const (
	FallbackModelLabel    = "Custom model"
	FallbackWorkflowLabel = "Custom workflow"
)

// Labels maps model and workflow keys to their display labels.
// The zero value is not usable; construct via DefaultLabels or LoadLabels.
type Labels struct {
	Models    map[string]string `yaml:"models"`
	Workflows map[string]string `yaml:"workflows"`
}

// DefaultLabels returns the built-in label tables.
func DefaultLabels() *Labels {
	return &Labels{
		Models: map[string]string{
			"qwen":        "Qwen Image",
			"nano-banana": "Google Nano Banana",
			"grok":        "xAI Grok",
			"meta":        "Meta Imagine",
		},
		Workflows: map[string]string{
			"generate": "Generate new image",
			"edit":     "Edit current selection",
			"expand":   "Expand beyond canvas",
		},
	}
}

// LoadLabels returns the built-in tables with entries from the YAML file at
// path layered on top. Overrides replace or add individual keys; keys absent
// from the file keep their defaults.
//
// Example override file:
//
//	models:
//	  qwen: "Qwen Image v2"
//	workflows:
//	  inpaint: "Inpaint selection"
func LoadLabels(path string) (*Labels, error) {
	labels := DefaultLabels()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels file: %w", err)
	}

	var overrides Labels
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing labels file %s: %w", path, err)
	}

	for key, label := range overrides.Models {
		labels.Models[key] = label
	}
	for key, label := range overrides.Workflows {
		labels.Workflows[key] = label
	}
	return labels, nil
}

// ModelLabel resolves a model key to its display label, falling back to
// FallbackModelLabel for unrecognized keys.
func (l *Labels) ModelLabel(key string) string {
	if label, ok := l.Models[key]; ok {
		return label
	}
	return FallbackModelLabel
}

// WorkflowLabel resolves a workflow key to its display label, falling back to
// FallbackWorkflowLabel for unrecognized keys.
func (l *Labels) WorkflowLabel(key string) string {
	if label, ok := l.Workflows[key]; ok {
		return label
	}
	return FallbackWorkflowLabel
}
