package review

import (
	"sync"
	"time"

	"github.com/acarvalho/docaudit/internal/annotated"
	"github.com/acarvalho/docaudit/internal/findings"
)

// RunStatus represents the state of a review run.
type RunStatus string

const (
	StatusQueued     RunStatus = "queued"
	StatusExtracting RunStatus = "extracting"
	StatusReviewing  RunStatus = "reviewing"
	StatusCompleted  RunStatus = "completed"
	StatusPartial    RunStatus = "partial"
	StatusFailed     RunStatus = "failed"
)

// Run tracks the state of a single document review. The annotated text
// and the aggregated findings stay on the run for its whole lifetime so
// the report and the corrected document can be rendered on demand,
// repeatedly, without re-running extraction or review.
type Run struct {
	mu sync.Mutex

	ID       string    `json:"run_id"`
	Filename string    `json:"filename"`
	Model    string    `json:"model"`
	Status   RunStatus `json:"status"`
	Phase    string    `json:"phase"`

	// ChunkBudget overrides the configured per-chunk character budget
	// when positive. Set before Submit, read-only after.
	ChunkBudget int `json:"-"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	text     annotated.Text
	results  []findings.Finding
}

// Progress tracks per-chunk review progress.
type Progress struct {
	TotalChunks     int      `json:"total_chunks"`
	ChunksProcessed int      `json:"chunks_processed"`
	Findings        int      `json:"findings"`
	Warnings        []string `json:"warnings"`
}

// SetStatus updates run status atomically.
func (r *Run) SetStatus(status RunStatus, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

// AddWarning records a non-fatal per-chunk failure.
func (r *Run) AddWarning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.Warnings = append(r.Progress.Warnings, msg)
	r.UpdatedAt = time.Now()
}

// SetTotalChunks records how many chunks the run will review.
func (r *Run) SetTotalChunks(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.TotalChunks = n
	r.UpdatedAt = time.Now()
}

// MarkChunkDone increments the processed counter after each chunk.
func (r *Run) MarkChunkDone() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.ChunksProcessed++
	r.UpdatedAt = time.Now()
}

// AppendFindings extends the run's aggregate findings list in order.
func (r *Run) AppendFindings(list []findings.Finding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, list...)
	r.Progress.Findings = len(r.results)
	r.UpdatedAt = time.Now()
}

// SetFileData sets the raw upload bytes for processing.
func (r *Run) SetFileData(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fileData = data
}

// FileData returns the raw upload bytes.
func (r *Run) FileData() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fileData
}

// SetText stores the extracted annotated text, releasing the raw
// upload bytes that are no longer needed.
func (r *Run) SetText(text annotated.Text) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.fileData = nil
}

// Text returns the extracted annotated text.
func (r *Run) Text() annotated.Text {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// Findings returns a copy of the aggregated findings.
func (r *Run) Findings() []findings.Finding {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]findings.Finding, len(r.results))
	copy(out, r.results)
	return out
}

// RunSnapshot is a read-only, JSON-safe copy of run state.
type RunSnapshot struct {
	ID       string    `json:"run_id"`
	Filename string    `json:"filename"`
	Model    string    `json:"model"`
	Status   RunStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the run state.
func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	warnings := r.Progress.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return RunSnapshot{
		ID:       r.ID,
		Filename: r.Filename,
		Model:    r.Model,
		Status:   r.Status,
		Phase:    r.Phase,
		Progress: Progress{
			TotalChunks:     r.Progress.TotalChunks,
			ChunksProcessed: r.Progress.ChunksProcessed,
			Findings:        r.Progress.Findings,
			Warnings:        warnings,
		},
	}
}

// RunStore is a thread-safe in-memory run registry with TTL eviction.
type RunStore struct {
	mu   sync.Mutex
	runs map[string]*Run
	ttl  time.Duration
}

func NewRunStore(ttl time.Duration) *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
		ttl:  ttl,
	}
}

func (s *RunStore) Put(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}

func (s *RunStore) Get(id string) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[id]
}

// Cleanup removes expired runs.
func (s *RunStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, run := range s.runs {
		run.mu.Lock()
		updated := run.UpdatedAt
		run.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.runs, id)
		}
	}
}
