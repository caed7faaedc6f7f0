// Package metrics provides in-memory operation statistics for the panel
// dashboard. This file contains the pure data types; aggregation lives in
// store.go.
package metrics

import "time"

// Operation kinds tracked by the store.
const (
	OpGenerate = "generate"
	OpApply    = "apply"
	OpRefresh  = "refresh"
)

// Operation statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OperationRecord is a single completed workflow operation.
type OperationRecord struct {
	// Kind is the operation kind: "generate", "apply" or "refresh"
	Kind string `json:"kind"`

	// Status is "success" or "error"
	Status string `json:"status"`

	// Model and Workflow are the snapshot keys for generate/apply operations
	Model    string `json:"model,omitempty"`
	Workflow string `json:"workflow,omitempty"`

	// Duration is the operation's wall-clock time
	Duration time.Duration `json:"duration"`

	// ErrorMsg contains failure details when Status is "error"
	ErrorMsg string `json:"error_msg,omitempty"`

	// At is when the operation settled
	At time.Time `json:"at"`
}

// KindMetrics is the per-kind aggregate.
type KindMetrics struct {
	Count        int64         `json:"count"`
	SuccessCount int64         `json:"success_count"`
	AvgDuration  time.Duration `json:"avg_duration"`
}

// OperationMetrics is the aggregate across all recorded operations.
type OperationMetrics struct {
	TotalOperations int64                   `json:"total_operations"`
	TotalSuccess    int64                   `json:"total_success"`
	TotalErrors     int64                   `json:"total_errors"`
	SuccessRate     float64                 `json:"success_rate"`
	ByKind          map[string]*KindMetrics `json:"by_kind"`
}

// SystemStatus is the dashboard's health summary.
type SystemStatus struct {
	Healthy       bool      `json:"healthy"`
	Version       string    `json:"version"`
	StartTime     time.Time `json:"start_time"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	LastOperation time.Time `json:"last_operation,omitempty"`
}
