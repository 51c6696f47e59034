package review

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/acarvalho/docaudit/internal/chunker"
	"github.com/acarvalho/docaudit/internal/config"
	"github.com/acarvalho/docaudit/internal/extractor"
	"github.com/acarvalho/docaudit/internal/findings"
	"github.com/acarvalho/docaudit/internal/gemini"
)

// ReviewFunc submits one chunk of annotated text for review and returns
// the raw model response. It is the opaque external boundary: tests
// substitute a stub, production wires Gemini.
type ReviewFunc func(ctx context.Context, chunk string) (string, error)

// GeminiReviewFunc adapts a Gemini client into a ReviewFunc, embedding
// the legal library into the system instruction.
func GeminiReviewFunc(client *gemini.Client) ReviewFunc {
	system := SystemInstruction()
	return func(ctx context.Context, chunk string) (string, error) {
		return client.Generate(ctx, system, BuildChunkPrompt(chunk))
	}
}

// Pipeline runs a single review: extract, chunk, review each chunk in
// strict sequence, aggregate findings. Chunks are deliberately not
// fanned out in parallel; the external service is rate limited and the
// fixed pause after each chunk keeps us under it.
type Pipeline struct {
	log *slog.Logger
	cfg config.Config
}

func NewPipeline(cfg config.Config, log *slog.Logger) *Pipeline {
	return &Pipeline{log: log, cfg: cfg}
}

// Process executes the full review for a run. Extraction failure is the
// only hard stop; every per-chunk failure is recorded as a warning and
// the run continues, so large documents yield partial results instead
// of nothing.
func (p *Pipeline) Process(ctx context.Context, run *Run, reviewFn ReviewFunc) {
	log := p.log.With("run_id", run.ID, "filename", run.Filename)

	run.SetStatus(StatusExtracting, "extracting")
	text, err := extractor.Extract(
		bytes.NewReader(run.FileData()),
		run.Filename,
		p.cfg.MinTextChars,
		extractor.Options{
			MarkerInterval:    p.cfg.MarkerInterval,
			FallbackPdftotext: p.cfg.PDFFallbackPdftotext,
		},
	)
	if err != nil {
		log.Error("extraction failed", "error", err)
		run.AddWarning(err.Error())
		run.SetStatus(StatusFailed, "extracting")
		return
	}
	run.SetText(text)

	budget := run.ChunkBudget
	if budget <= 0 {
		budget = p.cfg.ChunkBudget
	}
	chunks := chunker.Split(string(text), budget)
	run.SetTotalChunks(len(chunks))
	log.Info("chunked document", "chunks", len(chunks), "budget", budget)

	run.SetStatus(StatusReviewing, "reviewing")
	failed := 0
	for i, chunk := range chunks {
		raw, err := reviewFn(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				log.Warn("run canceled", "chunk", i+1)
				run.SetStatus(StatusFailed, "canceled")
				return
			}
			log.Warn("chunk review failed", "chunk", i+1, "total", len(chunks), "error", err)
			run.AddWarning(fmt.Sprintf("chunk %d/%d: %s", i+1, len(chunks), err))
			failed++
		} else {
			list, perr := findings.Parse(raw)
			if perr != nil {
				log.Warn("chunk response unparsable", "chunk", i+1, "total", len(chunks), "error", perr)
				run.AddWarning(fmt.Sprintf("chunk %d/%d: %s", i+1, len(chunks), perr))
				failed++
			} else {
				run.AppendFindings(list)
			}
		}
		run.MarkChunkDone()
		log.Info("chunk processed", "chunk", i+1, "total", len(chunks))

		// The pause follows every chunk, the last one included, so
		// back-to-back runs keep the same pacing toward the service.
		if p.cfg.ChunkPause > 0 {
			select {
			case <-time.After(p.cfg.ChunkPause):
			case <-ctx.Done():
				// Cancellation on the terminal pause must not throw
				// away a fully reviewed run.
				if i < len(chunks)-1 {
					run.SetStatus(StatusFailed, "canceled")
					return
				}
			}
		}
	}

	switch {
	case failed == 0:
		run.SetStatus(StatusCompleted, "done")
	case failed >= len(chunks):
		run.SetStatus(StatusFailed, "reviewing")
	default:
		run.SetStatus(StatusPartial, "done")
	}
	log.Info("review complete", "findings", len(run.Findings()), "failed_chunks", failed)
}
