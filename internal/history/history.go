// Package history records bot runs as JSON files, one per run, under a state
// directory. The detection core never reads these; they exist for operators
// and external schedulers.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spiralbot/spiralbot/internal/element"
)

// ModuleRecord summarizes one workflow module inside a run.
type ModuleRecord struct {
	Name    string         `json:"name"`
	Status  element.Status `json:"status"`
	Message string         `json:"message,omitempty"`
	Elapsed float64        `json:"elapsed_seconds"`
}

// Record is one complete bot run.
type Record struct {
	ID        string         `json:"id"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
	Outcome   element.Status `json:"outcome"`
	Message   string         `json:"message,omitempty"`
	Modules   []ModuleRecord `json:"modules,omitempty"`
}

// Duration returns the run's wall-clock length.
func (r Record) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Tracker accumulates one run's record and writes it out at the end.
type Tracker struct {
	dir    string
	record Record
}

// NewTracker starts tracking a run with a fresh run ID.
func NewTracker(dir string) *Tracker {
	return &Tracker{
		dir: dir,
		record: Record{
			ID:        uuid.NewString(),
			StartedAt: time.Now().UTC(),
		},
	}
}

// RunID returns the run's identifier.
func (t *Tracker) RunID() string { return t.record.ID }

// RecordModule appends one module outcome to the run.
func (t *Tracker) RecordModule(name string, res element.ActionResult, elapsed time.Duration) {
	t.record.Modules = append(t.record.Modules, ModuleRecord{
		Name:    name,
		Status:  res.Status,
		Message: res.Message,
		Elapsed: elapsed.Seconds(),
	})
}

// Finish stamps the run's end time and outcome and writes the record as
// <start-timestamp>-<run-id>.json under the tracker's directory.
func (t *Tracker) Finish(final element.ActionResult) (string, error) {
	t.record.EndedAt = time.Now().UTC()
	t.record.Outcome = final.Status
	t.record.Message = final.Message

	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating history dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json",
		t.record.StartedAt.Format("20060102T150405Z"), t.record.ID)
	path := filepath.Join(t.dir, name)

	data, err := json.MarshalIndent(t.record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding run record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing run record: %w", err)
	}
	return path, nil
}

// List reads every run record under dir, newest first. Files that fail to
// parse are skipped.
func List(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history dir: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records, nil
}
