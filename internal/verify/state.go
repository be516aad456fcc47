package verify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run is the persisted record of one verification run.
type Run struct {
	ID        string       `json:"id"`
	StartedAt time.Time    `json:"started_at"`
	Status    string       `json:"status"` // "pass" or "fail"
	Results   []StepResult `json:"results"`
}

// Failed returns the IDs of steps that failed in this run.
func (r *Run) Failed() []string {
	var failed []string
	for _, res := range r.Results {
		if res.Status == StatusFail {
			failed = append(failed, res.Step)
		}
	}
	return failed
}

// StateStore persists run records under the repo state directory:
// runs/<id>.json per run, plus last-run.json pointing at the most
// recent one.
type StateStore struct {
	dir string
}

// NewStateStore creates a store rooted at the given state directory
// (normally <repo>/.hooksmith).
func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

// RunsDir returns the directory holding per-run records.
func (s *StateStore) RunsDir() string {
	return filepath.Join(s.dir, "runs")
}

// lastRunPath is the file recording the most recent run.
func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.dir, "last-run.json")
}

// NewRun creates an empty run record with a fresh ID.
func (s *StateStore) NewRun() *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Status:    "pass",
	}
}

// Save writes the run to runs/<id>.json and updates last-run.json.
func (s *StateStore) Save(run *Run) error {
	if err := os.MkdirAll(s.RunsDir(), 0o755); err != nil {
		return fmt.Errorf("creating runs dir: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}

	runPath := filepath.Join(s.RunsDir(), run.ID+".json")
	if err := os.WriteFile(runPath, data, 0o644); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	if err := os.WriteFile(s.lastRunPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing last-run record: %w", err)
	}
	return nil
}

// LoadLastRun reads the most recent run record. Returns (nil, nil) when
// no run has been recorded yet.
func (s *StateStore) LoadLastRun() (*Run, error) {
	data, err := os.ReadFile(s.lastRunPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading last-run record: %w", err)
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing last-run record: %w", err)
	}
	return &run, nil
}
