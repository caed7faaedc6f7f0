package preview

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLabels(t *testing.T) {
	labels := DefaultLabels()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"model qwen", labels.ModelLabel("qwen"), "Qwen Image"},
		{"model nano-banana", labels.ModelLabel("nano-banana"), "Google Nano Banana"},
		{"model grok", labels.ModelLabel("grok"), "xAI Grok"},
		{"model meta", labels.ModelLabel("meta"), "Meta Imagine"},
		{"model fallback", labels.ModelLabel("dalle"), FallbackModelLabel},
		{"workflow generate", labels.WorkflowLabel("generate"), "Generate new image"},
		{"workflow edit", labels.WorkflowLabel("edit"), "Edit current selection"},
		{"workflow expand", labels.WorkflowLabel("expand"), "Expand beyond canvas"},
		{"workflow fallback", labels.WorkflowLabel("inpaint"), FallbackWorkflowLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestLoadLabels_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	content := `models:
  qwen: "Qwen Image v2"
  flux: "Black Forest Flux"
workflows:
  inpaint: "Inpaint selection"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing labels file: %v", err)
	}

	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels() error = %v", err)
	}

	// Overridden key
	if got := labels.ModelLabel("qwen"); got != "Qwen Image v2" {
		t.Errorf("ModelLabel(qwen) = %q, want override", got)
	}
	// Added key
	if got := labels.ModelLabel("flux"); got != "Black Forest Flux" {
		t.Errorf("ModelLabel(flux) = %q, want added label", got)
	}
	if got := labels.WorkflowLabel("inpaint"); got != "Inpaint selection" {
		t.Errorf("WorkflowLabel(inpaint) = %q, want added label", got)
	}
	// Untouched defaults survive
	if got := labels.ModelLabel("grok"); got != "xAI Grok" {
		t.Errorf("ModelLabel(grok) = %q, want default preserved", got)
	}
	if got := labels.WorkflowLabel("edit"); got != "Edit current selection" {
		t.Errorf("WorkflowLabel(edit) = %q, want default preserved", got)
	}
}

func TestLoadLabels_MissingFile(t *testing.T) {
	if _, err := LoadLabels(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadLabels() error = nil, want error for missing file")
	}
}

func TestLoadLabels_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	if err := os.WriteFile(path, []byte("models: [not, a, map"), 0o644); err != nil {
		t.Fatalf("writing labels file: %v", err)
	}
	if _, err := LoadLabels(path); err == nil {
		t.Error("LoadLabels() error = nil, want parse error")
	}
}
