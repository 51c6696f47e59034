package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/acarvalho/docaudit/internal/extractor"
	"github.com/acarvalho/docaudit/internal/review"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extractor.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	model := r.FormValue("model")
	if model == "" {
		model = s.cfg.GeminiModel
	}

	chunkBudget := 0
	if v := r.FormValue("chunk_budget"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			chunkBudget = n
		}
	}

	now := time.Now()
	run := &review.Run{
		ID:          uuid.NewString(),
		Filename:    filename,
		Model:       model,
		Status:      review.StatusQueued,
		Phase:       "queued",
		ChunkBudget: chunkBudget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	run.SetFileData(data)

	if err := s.orchestrator.Submit(run); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	// A worker may already own the run; no field reads past this point.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":   run.ID,
		"status":   review.StatusQueued,
		"poll_url": fmt.Sprintf("/api/reviews/%s", run.ID),
	})
}

func (s *Server) handleReviewStatus(w http.ResponseWriter, r *http.Request) {
	run := s.lookupRun(w, r)
	if run == nil {
		return
	}
	snap := run.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) *review.Run {
	runID := chi.URLParam(r, "runID")
	run := s.orchestrator.GetRun(runID)
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return nil
	}
	return run
}

// hasResults gates artifact endpoints: results exist once the run has
// finished reviewing, even partially.
func hasResults(status review.RunStatus) bool {
	switch status {
	case review.StatusCompleted, review.StatusPartial:
		return true
	}
	return false
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	models := s.orchestrator.Client().ListModels(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"models": models})
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	client := s.orchestrator.Client()
	if client == nil || client.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": client.Model(),
		"stats": client.Stats.Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
