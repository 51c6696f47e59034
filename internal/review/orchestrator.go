package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/acarvalho/docaudit/internal/config"
	"github.com/acarvalho/docaudit/internal/gemini"
)

// Orchestrator owns the run store and the worker pool that drains the
// run queue. Runs execute concurrently with each other, but each run's
// chunks are reviewed strictly one at a time.
type Orchestrator struct {
	runs   *RunStore
	queue  chan *Run
	client *gemini.Client
	log    *slog.Logger
	cfg    config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(cfg config.Config, client *gemini.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		runs:   NewRunStore(cfg.RunTTL),
		queue:  make(chan *Run, cfg.MaxQueueSize),
		client: client,
		log:    log,
		cfg:    cfg,
	}
}

// Start launches worker goroutines and the store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			p := NewPipeline(o.cfg, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case run := <-o.queue:
					fn := GeminiReviewFunc(o.client.WithModel(run.Model))
					p.Process(workerCtx, run, fn)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.runs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the worker pool. The queue channel is
// never closed: a Submit racing shutdown must not panic, it just
// leaves the run in the store unprocessed.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit registers a run and queues it for processing.
func (o *Orchestrator) Submit(run *Run) error {
	o.runs.Put(run)
	select {
	case o.queue <- run:
		return nil
	default:
		run.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("run queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetRun returns a run by ID.
func (o *Orchestrator) GetRun(id string) *Run {
	return o.runs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Client returns the Gemini client for direct use by API handlers.
func (o *Orchestrator) Client() *gemini.Client {
	return o.client
}
