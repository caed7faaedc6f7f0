package core

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// t.Setenv clears conflicting values set by the environment
	for _, key := range []string{
		"PSAI_PANEL_HOST", "PSAI_PANEL_PORT", "PSAI_PANEL_PASSWORD",
		"PSAI_PREVIEW_LATENCY", "PSAI_JOURNAL_PATH", "PSAI_SIM_DOCUMENT",
		"PSAI_DEV_MODE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.PanelHost != DefaultPanelHost {
		t.Errorf("PanelHost = %q, want %q", cfg.PanelHost, DefaultPanelHost)
	}
	if cfg.PanelPort != DefaultPanelPort {
		t.Errorf("PanelPort = %d, want %d", cfg.PanelPort, DefaultPanelPort)
	}
	if cfg.PreviewLatency != DefaultPreviewLatency {
		t.Errorf("PreviewLatency = %v, want %v", cfg.PreviewLatency, DefaultPreviewLatency)
	}
	if cfg.JournalPath != DefaultJournalPath {
		t.Errorf("JournalPath = %q, want %q", cfg.JournalPath, DefaultJournalPath)
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true with no password configured")
	}
	if cfg.SimDocument != nil {
		t.Errorf("SimDocument = %+v, want nil", cfg.SimDocument)
	}
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	t.Setenv("PSAI_PANEL_PORT", "70000")

	_, err := LoadConfig()
	cfgErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("LoadConfig() error = %v, want *ConfigError", err)
	}
	if cfgErr.Code != ErrCodeInvalidPanelPort {
		t.Errorf("Code = %q, want %q", cfgErr.Code, ErrCodeInvalidPanelPort)
	}
	if cfgErr.Action == "" {
		t.Error("ConfigError.Action is empty, want remediation text")
	}
}

func TestLoadConfig_PreviewLatency(t *testing.T) {
	t.Setenv("PSAI_PANEL_PORT", "")
	t.Setenv("PSAI_PREVIEW_LATENCY", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.PreviewLatency != 250*time.Millisecond {
		t.Errorf("PreviewLatency = %v, want 250ms", cfg.PreviewLatency)
	}
}

func TestParseSimulatedDocument(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *SimulatedDocument
		wantErr bool
	}{
		{
			name: "full form with resolution",
			raw:  "Poster:1024x768@72",
			want: &SimulatedDocument{Name: "Poster", WidthPx: 1024, HeightPx: 768, Resolution: 72, Layers: 1},
		},
		{
			name: "resolution defaults to 72",
			raw:  "Untitled-1:800x600",
			want: &SimulatedDocument{Name: "Untitled-1", WidthPx: 800, HeightPx: 600, Resolution: 72, Layers: 1},
		},
		{
			name: "fractional resolution",
			raw:  "Scan:640x480@300.5",
			want: &SimulatedDocument{Name: "Scan", WidthPx: 640, HeightPx: 480, Resolution: 300.5, Layers: 1},
		},
		{name: "missing name", raw: ":1024x768", wantErr: true},
		{name: "missing dimensions", raw: "Poster", wantErr: true},
		{name: "garbage dimensions", raw: "Poster:widexhigh", wantErr: true},
		{name: "zero width", raw: "Poster:0x768", wantErr: true},
		{name: "negative resolution", raw: "Poster:100x100@-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSimulatedDocument(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSimulatedDocument(%q) = %+v, want error", tt.raw, got)
				}
				if _, ok := err.(*ConfigError); !ok {
					t.Errorf("error type = %T, want *ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSimulatedDocument(%q) error = %v", tt.raw, err)
			}
			if *got != *tt.want {
				t.Errorf("ParseSimulatedDocument(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPanelAddr(t *testing.T) {
	cfg := &Config{PanelHost: "localhost", PanelPort: 3800}
	if got := cfg.PanelAddr(); got != "localhost:3800" {
		t.Errorf("PanelAddr() = %q, want %q", got, "localhost:3800")
	}
}
