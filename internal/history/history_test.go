package history

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/spiralbot/spiralbot/internal/element"
)

func TestTrackerWritesRunRecord(t *testing.T) {
	dir := t.TempDir()
	tr := NewTracker(dir)

	if tr.RunID() == "" {
		t.Fatal("empty run ID")
	}

	tr.RecordModule("launch", element.SkipResult("already running"), 120*time.Millisecond)
	tr.RecordModule("login", element.SuccessResult("logged in", nil), 3*time.Second)

	path, err := tr.Finish(element.SuccessResult("2 modules completed", nil))
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatal(err)
	}

	if rec.ID != tr.RunID() {
		t.Errorf("ID = %q, want %q", rec.ID, tr.RunID())
	}
	if rec.Outcome != element.StatusSuccess {
		t.Errorf("outcome = %s, want success", rec.Outcome)
	}
	if len(rec.Modules) != 2 {
		t.Fatalf("modules = %d, want 2", len(rec.Modules))
	}
	if rec.Modules[0].Name != "launch" || rec.Modules[0].Status != element.StatusSkip {
		t.Errorf("module[0] = %+v", rec.Modules[0])
	}
	if rec.EndedAt.Before(rec.StartedAt) {
		t.Error("ended before it started")
	}
}

func TestListReturnsNewestFirst(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 3; i++ {
		tr := NewTracker(dir)
		tr.record.StartedAt = time.Date(2026, 8, 1+i, 12, 0, 0, 0, time.UTC)
		if _, err := tr.Finish(element.SuccessResult("ok", nil)); err != nil {
			t.Fatal(err)
		}
	}

	records, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].StartedAt.After(records[i-1].StartedAt) {
			t.Error("records not sorted newest first")
		}
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	records, err := List("/nonexistent/history")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestListSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/garbage.json", []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	tr := NewTracker(dir)
	if _, err := tr.Finish(element.FailureResult("boom", nil)); err != nil {
		t.Fatal(err)
	}

	records, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}
}
