package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/acarvalho/docaudit/internal/findings"
	"github.com/acarvalho/docaudit/internal/report"
)

const correctedTitle = "PTF - Versão com Correções Sugeridas"

func (s *Server) handleFindings(w http.ResponseWriter, r *http.Request) {
	run := s.lookupRun(w, r)
	if run == nil {
		return
	}
	snap := run.Snapshot()
	if !hasResults(snap.Status) {
		jsonError(w, fmt.Sprintf("run is %s, findings not ready", snap.Status), http.StatusConflict)
		return
	}

	list := run.Findings()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id":   snap.ID,
		"status":   snap.Status,
		"summary":  findings.Summarize(list),
		"findings": list,
	})
}

func (s *Server) handleAuditReport(w http.ResponseWriter, r *http.Request) {
	run := s.lookupRun(w, r)
	if run == nil {
		return
	}
	snap := run.Snapshot()
	if !hasResults(snap.Status) {
		jsonError(w, fmt.Sprintf("run is %s, report not ready", snap.Status), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="auditoria_lista.pdf"`)
	if err := report.WriteAudit(w, run.Findings()); err != nil {
		s.log.Error("audit render failed", "run_id", snap.ID, "error", err)
	}
}

func (s *Server) handleCorrectedDocument(w http.ResponseWriter, r *http.Request) {
	run := s.lookupRun(w, r)
	if run == nil {
		return
	}
	snap := run.Snapshot()
	if !hasResults(snap.Status) {
		jsonError(w, fmt.Sprintf("run is %s, document not ready", snap.Status), http.StatusConflict)
		return
	}

	paragraphs := report.Reconstruct(run.Text(), run.Findings())

	name := strings.TrimSuffix(snap.Filename, ".pdf")
	name = strings.TrimSuffix(name, ".docx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"_corrigido.docx"))
	if err := report.WriteCorrectedDOCX(w, correctedTitle, paragraphs); err != nil {
		s.log.Error("document render failed", "run_id", snap.ID, "error", err)
	}
}
