package validation

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PSAI_PANEL_HOST", "PSAI_PANEL_PORT", "PSAI_PANEL_PASSWORD",
		"PSAI_PREVIEW_LATENCY", "PSAI_JOURNAL_PATH", "PSAI_SIM_DOCUMENT",
		"PSAI_LABELS_FILE", "PSAI_MIGRATIONS_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestSuite_AllPass(t *testing.T) {
	clearEnv(t)
	t.Setenv("PSAI_JOURNAL_PATH", filepath.Join(t.TempDir(), "journal.db"))

	var out bytes.Buffer
	result := NewSuite().WithOutput(&out).Validate()

	if !result.Success {
		t.Fatalf("Validate() failed: %+v", result.Steps)
	}
	if result.FailedSteps != 0 {
		t.Errorf("FailedSteps = %d, want 0", result.FailedSteps)
	}
	// Labels check is skipped when no override file is configured
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if !strings.Contains(out.String(), "Startup validation passed") {
		t.Errorf("output missing pass summary:\n%s", out.String())
	}
}

func TestSuite_InvalidPortFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("PSAI_PANEL_PORT", "99999")

	result := NewSuite().WithShowProgress(false).Validate()

	if result.Success {
		t.Fatal("Validate() succeeded with an invalid panel port")
	}
	if result.Steps[0].Status != StepFailed {
		t.Errorf("configuration step status = %v, want failed", result.Steps[0].Status)
	}
}

func TestSuite_LabelsFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantPass bool
	}{
		{
			name:     "valid overrides",
			content:  "models:\n  grok: xAI Grok Imagine\nworkflows:\n  edit: Edit selection\n",
			wantPass: true,
		},
		{
			name:     "malformed yaml",
			content:  "models: [unclosed",
			wantPass: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			labels := filepath.Join(dir, "labels.yaml")
			if err := os.WriteFile(labels, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			t.Setenv("PSAI_JOURNAL_PATH", filepath.Join(dir, "journal.db"))
			t.Setenv("PSAI_LABELS_FILE", labels)

			result := NewSuite().WithShowProgress(false).Validate()
			if result.Success != tt.wantPass {
				t.Errorf("Success = %v, want %v (steps: %+v)", result.Success, tt.wantPass, result.Steps)
			}
		})
	}
}

func TestSuite_MissingLabelsFileFails(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("PSAI_JOURNAL_PATH", filepath.Join(dir, "journal.db"))
	t.Setenv("PSAI_LABELS_FILE", filepath.Join(dir, "does-not-exist.yaml"))

	result := NewSuite().WithShowProgress(false).Validate()
	if result.Success {
		t.Fatal("Validate() succeeded with a missing labels file")
	}
}
