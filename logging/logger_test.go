package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newBufferLogger returns a Logger whose output is captured in the buffer.
func newBufferLogger(t *testing.T, level zapcore.Level) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(NewEncoderConfig()),
		zapcore.AddSync(&buf),
		level,
	)
	return NewTestLogger(core), &buf
}

func TestLogger_FieldNames(t *testing.T) {
	logger, buf := newBufferLogger(t, zapcore.InfoLevel)

	logger.Info("panel server started", zap.String("addr", "localhost:3800"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if entry[FieldMessage] != "panel server started" {
		t.Errorf("message = %v, want %q", entry[FieldMessage], "panel server started")
	}
	if entry[FieldLevel] != "info" {
		t.Errorf("level = %v, want info", entry[FieldLevel])
	}
	if _, ok := entry[FieldTimestamp]; !ok {
		t.Error("entry missing timestamp field")
	}
	if entry["addr"] != "localhost:3800" {
		t.Errorf("addr = %v, want localhost:3800", entry["addr"])
	}
}

func TestLogger_RedactsSensitiveFields(t *testing.T) {
	logger, buf := newBufferLogger(t, zapcore.InfoLevel)

	logger.Info("configuration loaded",
		zap.String("PSAI_PANEL_PASSWORD", "hunter22"),
		zap.String("host", "localhost"),
	)

	out := buf.String()
	if strings.Contains(out, "hunter22") {
		t.Errorf("log output leaked password:\n%s", out)
	}
	if !strings.Contains(out, RedactedPlaceholder) {
		t.Errorf("log output missing redaction placeholder:\n%s", out)
	}
	if !strings.Contains(out, "localhost") {
		t.Errorf("non-sensitive field was altered:\n%s", out)
	}
}

func TestLogger_Named(t *testing.T) {
	logger, buf := newBufferLogger(t, zapcore.DebugLevel)

	logger.Named("controller").Debug("dispatching command")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry[FieldSource] != "controller" {
		t.Errorf("source = %v, want controller", entry[FieldSource])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, zapcore.WarnLevel)

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("info entry logged at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn entry missing at warn level")
	}
}

func TestParseLogLevelString(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"Warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{" info ", zapcore.InfoLevel},
		{"verbose", zapcore.ErrorLevel}, // falls back to default
		{"", zapcore.ErrorLevel},        // falls back to default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevelString(tt.input, zapcore.ErrorLevel); got != tt.want {
				t.Errorf("ParseLogLevelString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSyncNilSafe(t *testing.T) {
	var l *Logger
	if err := l.Sync(); err != nil {
		t.Errorf("nil Logger Sync() = %v, want nil", err)
	}
}
