package review

import (
	"context"
	"testing"
	"time"

	"github.com/acarvalho/docaudit/internal/gemini"
)

func testOrchestrator(workers, queueSize int) *Orchestrator {
	cfg := testConfig()
	cfg.WorkerCount = workers
	cfg.MaxQueueSize = queueSize
	return NewOrchestrator(cfg, gemini.NewClient("test-key", "models/gemini-1.5-flash"), testLogger())
}

func TestSubmit_AfterStopDoesNotPanic(t *testing.T) {
	orch := testOrchestrator(1, 4)
	orch.Start(context.Background())
	orch.Stop()

	run := &Run{ID: "late", Filename: "doc.txt", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := orch.Submit(run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orch.GetRun("late") != run {
		t.Error("run must still be registered in the store")
	}
}

func TestSubmit_QueueFullFailsRun(t *testing.T) {
	// No Start: nothing drains the queue.
	orch := testOrchestrator(1, 1)

	first := &Run{ID: "a", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := orch.Submit(first); err != nil {
		t.Fatalf("first submit should fit the queue: %v", err)
	}

	second := &Run{ID: "b", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := orch.Submit(second); err == nil {
		t.Fatal("expected an error when the queue is full")
	}
	if got := second.Snapshot().Status; got != StatusFailed {
		t.Errorf("overflowed run should be failed, got %s", got)
	}
	if orch.QueueDepth() != 1 {
		t.Errorf("queue depth = %d, want 1", orch.QueueDepth())
	}
}
