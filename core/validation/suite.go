// Package validation provides the startup validation suite for the panel
// bridge. It checks the environment before any server or journal is started
// and prints step-by-step progress so misconfiguration is obvious on launch.
package validation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/core"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// StepStatus represents the status of a validation step.
type StepStatus int

const (
	StepPassed StepStatus = iota
	StepFailed
	StepSkipped
)

// String returns the string representation of a step status.
func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Step records the outcome of a single validation step.
type Step struct {
	Name    string
	Status  StepStatus
	Message string
	Error   error
}

// SuiteResult aggregates the outcome of a full validation run.
type SuiteResult struct {
	Steps       []Step
	PassedSteps int
	FailedSteps int
	Skipped     int
	Duration    time.Duration
	Success     bool
}

// Suite validates panel bridge configuration before startup.
//
// Steps, in order:
//  1. Configuration parse (env values well-formed)
//  2. Panel port range
//  3. Journal directory exists or can be created, and is writable
//  4. Label-override YAML parses (skipped when PSAI_LABELS_FILE is unset)
type Suite struct {
	output       io.Writer
	showProgress bool
}

// NewSuite creates a Suite with progress output to stdout.
func NewSuite() *Suite {
	return &Suite{
		output:       os.Stdout,
		showProgress: true,
	}
}

// WithOutput sets the writer used for progress messages.
func (s *Suite) WithOutput(w io.Writer) *Suite {
	s.output = w
	return s
}

// WithShowProgress enables or disables progress output.
func (s *Suite) WithShowProgress(show bool) *Suite {
	s.showProgress = show
	return s
}

// Validate runs all validation steps and returns the aggregated result.
// Steps keep running after a failure so the operator sees every problem at once.
func (s *Suite) Validate() SuiteResult {
	start := time.Now()
	result := SuiteResult{}

	cfg, cfgErr := core.LoadConfig()
	s.record(&result, s.checkConfig(cfgErr))

	if cfg != nil {
		s.record(&result, s.checkPanelPort(cfg))
		s.record(&result, s.checkJournalDir(cfg))
		s.record(&result, s.checkLabelsFile(cfg))
	}

	result.Duration = time.Since(start)
	result.Success = result.FailedSteps == 0

	if s.showProgress {
		s.printSummary(result)
	}
	return result
}

func (s *Suite) checkConfig(err error) Step {
	if err != nil {
		return Step{Name: "configuration", Status: StepFailed, Message: err.Error(), Error: err}
	}
	return Step{Name: "configuration", Status: StepPassed, Message: "environment values parsed"}
}

func (s *Suite) checkPanelPort(cfg *core.Config) Step {
	// LoadConfig already range-checks; this catches programmatic misuse
	if cfg.PanelPort < 1 || cfg.PanelPort > 65535 {
		err := core.ErrInvalidPanelPort(cfg.PanelPort)
		return Step{Name: "panel port", Status: StepFailed, Message: err.Message, Error: err}
	}
	return Step{Name: "panel port", Status: StepPassed, Message: fmt.Sprintf("panel binds %s", cfg.PanelAddr())}
}

func (s *Suite) checkJournalDir(cfg *core.Config) Step {
	dir := filepath.Dir(cfg.JournalPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Step{Name: "journal directory", Status: StepFailed,
			Message: fmt.Sprintf("cannot create %s", dir), Error: err}
	}

	probe := filepath.Join(dir, ".write-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o644); err != nil {
		return Step{Name: "journal directory", Status: StepFailed,
			Message: fmt.Sprintf("%s is not writable", dir), Error: err}
	}
	os.Remove(probe)

	return Step{Name: "journal directory", Status: StepPassed, Message: dir + " is writable"}
}

func (s *Suite) checkLabelsFile(cfg *core.Config) Step {
	if cfg.LabelsPath == "" {
		return Step{Name: "label overrides", Status: StepSkipped, Message: "PSAI_LABELS_FILE not set"}
	}

	data, err := os.ReadFile(cfg.LabelsPath)
	if err != nil {
		cErr := core.ErrInvalidLabelsFile(cfg.LabelsPath, err)
		return Step{Name: "label overrides", Status: StepFailed, Message: cErr.Message, Error: cErr}
	}

	var doc struct {
		Models    map[string]string `yaml:"models"`
		Workflows map[string]string `yaml:"workflows"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		cErr := core.ErrInvalidLabelsFile(cfg.LabelsPath, err)
		return Step{Name: "label overrides", Status: StepFailed, Message: cErr.Message, Error: cErr}
	}

	total := len(doc.Models) + len(doc.Workflows)
	return Step{Name: "label overrides", Status: StepPassed,
		Message: fmt.Sprintf("%d override(s) from %s", total, cfg.LabelsPath)}
}

func (s *Suite) record(result *SuiteResult, step Step) {
	result.Steps = append(result.Steps, step)
	switch step.Status {
	case StepPassed:
		result.PassedSteps++
	case StepFailed:
		result.FailedSteps++
	case StepSkipped:
		result.Skipped++
	}

	if !s.showProgress {
		return
	}
	switch step.Status {
	case StepPassed:
		fmt.Fprintf(s.output, "  %s %s: %s\n", color.GreenString("✓"), step.Name, step.Message)
	case StepFailed:
		fmt.Fprintf(s.output, "  %s %s: %s\n", color.RedString("✗"), step.Name, step.Message)
	case StepSkipped:
		fmt.Fprintf(s.output, "  %s %s: %s\n", color.YellowString("-"), step.Name, step.Message)
	}
}

func (s *Suite) printSummary(result SuiteResult) {
	if result.Success {
		fmt.Fprintf(s.output, "%s %d check(s) passed in %s\n",
			color.GreenString("Startup validation passed:"),
			result.PassedSteps, result.Duration.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(s.output, "%s %d of %d check(s) failed\n",
		color.RedString("Startup validation failed:"),
		result.FailedSteps, len(result.Steps))
}
