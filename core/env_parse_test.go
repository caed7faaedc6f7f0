package core

import (
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("PSAI_TEST_STRING", "value")
	if got := GetEnvOrDefault("PSAI_TEST_STRING", "fallback"); got != "value" {
		t.Errorf("GetEnvOrDefault() = %q, want %q", got, "value")
	}
	if got := GetEnvOrDefault("PSAI_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnvOrDefault() = %q, want %q", got, "fallback")
	}
}

func TestParseIntEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   int
		want  int
	}{
		{"valid integer", "42", 7, 42},
		{"negative integer", "-3", 7, -3},
		{"unset uses default", "", 7, 7},
		{"garbage uses default", "abc", 7, 7},
		{"float uses default", "4.2", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PSAI_TEST_INT", tt.value)
			if got := ParseIntEnv("PSAI_TEST_INT", tt.def); got != tt.want {
				t.Errorf("ParseIntEnv(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"", true, true},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PSAI_TEST_BOOL", tt.value)
			if got := ParseBoolEnv("PSAI_TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestParseDurationEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		def   time.Duration
		want  time.Duration
	}{
		{"duration string", "500ms", time.Second, 500 * time.Millisecond},
		{"compound duration", "1m30s", time.Second, 90 * time.Second},
		{"bare integer is seconds", "45", time.Second, 45 * time.Second},
		{"unset uses default", "", 2 * time.Second, 2 * time.Second},
		{"garbage uses default", "soon", 2 * time.Second, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PSAI_TEST_DURATION", tt.value)
			if got := ParseDurationEnv("PSAI_TEST_DURATION", tt.def); got != tt.want {
				t.Errorf("ParseDurationEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
