package core

import (
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeEnvFileMissing        = "ENV_FILE_MISSING"
	ErrCodeInvalidPanelPort      = "INVALID_PANEL_PORT"
	ErrCodeMissingJournalPath    = "MISSING_JOURNAL_PATH"
	ErrCodeInvalidSimDocument    = "INVALID_SIM_DOCUMENT"
	ErrCodeInvalidPreviewLatency = "INVALID_PREVIEW_LATENCY"
	ErrCodeInvalidLabelsFile     = "INVALID_LABELS_FILE"
)

// ErrEnvFileMissing returns an error for a missing .env file.
func ErrEnvFileMissing(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvFileMissing,
		Message: fmt.Sprintf("Configuration file not found: %s", path),
		Action:  "Copy example.env to .env and configure the required values",
	}
}

// ErrInvalidPanelPort returns an error for an out-of-range panel port.
func ErrInvalidPanelPort(port int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidPanelPort,
		Message: fmt.Sprintf("Invalid panel port %d", port),
		Action:  "Set PSAI_PANEL_PORT to a value between 1 and 65535",
	}
}

// ErrMissingJournalPath returns an error for an empty journal path.
func ErrMissingJournalPath() *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingJournalPath,
		Message: "Journal database path is empty",
		Action:  "Set PSAI_JOURNAL_PATH to a writable file path (e.g., data/journal.db)",
	}
}

// ErrInvalidSimDocument returns an error for a malformed PSAI_SIM_DOCUMENT value.
func ErrInvalidSimDocument(value, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidSimDocument,
		Message: fmt.Sprintf("Invalid PSAI_SIM_DOCUMENT %q: %s", value, reason),
		Action:  "Use the form name:WIDTHxHEIGHT@RESOLUTION (e.g., Poster:1024x768@72)",
	}
}

// ErrInvalidPreviewLatency returns an error for a negative preview latency.
func ErrInvalidPreviewLatency(value string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidPreviewLatency,
		Message: fmt.Sprintf("Invalid preview latency %q", value),
		Action:  "Set PSAI_PREVIEW_LATENCY to a non-negative duration (e.g., 500ms)",
	}
}

// ErrInvalidLabelsFile returns an error for an unreadable or malformed labels file.
func ErrInvalidLabelsFile(path string, reason error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidLabelsFile,
		Message: fmt.Sprintf("Cannot use label overrides from %s: %v", path, reason),
		Action:  "Fix the YAML file or unset PSAI_LABELS_FILE",
	}
}
