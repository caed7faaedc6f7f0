package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/logging"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/workflow"

	"go.uber.org/zap/zaptest"
)

// Tests run from the package directory, so the migration source is the
// sibling migrations/ directory.
const testMigrations = "file://migrations"

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path, testMigrations, logging.NewTestLogger(zaptest.NewLogger(t).Core()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

// waitForEntries polls Recent until count entries are visible or the
// deadline passes. Writes are asynchronous, so tests must wait.
func waitForEntries(t *testing.T, j *Journal, count int) []Entry {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		entries, err := j.Recent(context.Background(), 100)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(entries) >= count {
			return entries
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("journal never reached %d entries", count)
	return nil
}

func TestJournal_RecordsEvents(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	j.WorkflowEvent(ctx, workflow.Event{
		Kind: workflow.EventGenerateRequested, Model: "grok", Workflow: "edit", Strength: 40,
	})
	j.WorkflowEvent(ctx, workflow.Event{
		Kind: workflow.EventGenerateSucceeded, Model: "grok", Workflow: "edit", Strength: 40,
		Elapsed: 512 * time.Millisecond,
	})

	entries := waitForEntries(t, j, 2)

	// Newest first
	if entries[0].Kind != string(workflow.EventGenerateSucceeded) {
		t.Errorf("entries[0].Kind = %q, want generate_succeeded", entries[0].Kind)
	}
	if entries[0].ElapsedMS != 512 {
		t.Errorf("entries[0].ElapsedMS = %d, want 512", entries[0].ElapsedMS)
	}
	if entries[1].Kind != string(workflow.EventGenerateRequested) {
		t.Errorf("entries[1].Kind = %q, want generate_requested", entries[1].Kind)
	}
	if entries[1].Model != "grok" || entries[1].Workflow != "edit" || entries[1].Strength != 40 {
		t.Errorf("entries[1] metadata = %+v", entries[1])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not persisted")
	}
}

func TestJournal_RecentLimit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		j.WorkflowEvent(ctx, workflow.Event{Kind: workflow.EventRefresh})
	}
	waitForEntries(t, j, 5)

	entries, err := j.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Recent(3) returned %d entries", len(entries))
	}
}

func TestJournal_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	logger := logging.NewTestLogger(zaptest.NewLogger(t).Core())

	j, err := Open(path, testMigrations, logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	j.WorkflowEvent(context.Background(), workflow.Event{Kind: workflow.EventApplySucceeded, Message: "AI Preview: test"})
	waitForEntries(t, j, 1)
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening runs migrations again (no-op) and sees prior entries
	j2, err := Open(path, testMigrations, logger)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer j2.Close()

	entries, err := j2.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() after reopen error = %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "AI Preview: test" {
		t.Errorf("entries after reopen = %+v", entries)
	}
}

func TestJournal_CloseIsIdempotentAndStopsIntake(t *testing.T) {
	j := openTestJournal(t)
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	// Events after close are ignored, not panicked on
	j.WorkflowEvent(context.Background(), workflow.Event{Kind: workflow.EventRefresh})
}
