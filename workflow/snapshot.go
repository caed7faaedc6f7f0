// Package workflow owns the generate/apply state machine. The Controller is
// the single writer of workflow state; panel actions dispatch into it and
// read back an immutable View.
package workflow

import (
	"fmt"
	"strings"
)

// Snapshot captures the panel's input state at the moment Generate is
// invoked. It is an immutable value: later edits to the form never affect a
// snapshot already taken.
type Snapshot struct {
	Prompt          string `json:"prompt"`
	Model           string `json:"model"`
	Workflow        string `json:"workflow"`
	Strength        int    `json:"strength"`
	PreserveSubject bool   `json:"preserveSubject"`
	RespectMask     bool   `json:"respectMask"`
}

// Validate checks the snapshot before any generation work starts. A
// validation failure surfaces as a warning in the panel, not an error, and
// causes no host or provider call.
func (s Snapshot) Validate() error {
	if strings.TrimSpace(s.Prompt) == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	// Out-of-range strength is rejected, not clamped
	if s.Strength < 0 || s.Strength > 100 {
		return fmt.Errorf("strength must be between 0 and 100, got %d", s.Strength)
	}
	return nil
}
