package report

import (
	"fmt"
	"io"

	"github.com/acarvalho/docaudit/internal/findings"
	"github.com/go-pdf/fpdf"
)

// WriteAudit renders the findings list as a paginated PDF audit report:
// fixed header/footer, a summary block, then one delimited block per
// finding. Text goes through a cp1252 translator that substitutes
// characters the core fonts cannot encode, so exotic input degrades
// instead of failing.
func WriteAudit(w io.Writer, list []findings.Finding) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Relatorio de Auditoria PTF", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Pag. %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	writeSummary(pdf, tr, findings.Summarize(list))

	for _, f := range list {
		writeFinding(pdf, tr, f)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render audit pdf: %w", err)
	}
	return nil
}

func writeSummary(pdf *fpdf.Fpdf, tr func(string) string, s findings.Summary) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total de correcoes: %d", s.Total)), "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Gravidade Alta: %d | Legislação: %d | Gralhas: %d | Sintaxe: %d",
		s.High, s.Legal, s.Typos, s.Syntax)), "", 1, "", false, 0, "")
	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)
}

func writeFinding(pdf *fpdf.Fpdf, tr func(string) string, f findings.Finding) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Local: %s | Tipo: %s", f.Location, f.Category)), "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	setSeverityColor(pdf, f.Severity)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Gravidade: %s", f.Severity)), "", "", false)
	pdf.SetTextColor(0, 0, 0)

	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Erro: %s", f.Detected)), "", "", false)
	if f.Problem != "" {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("Problema: %s", f.Problem)), "", "", false)
	}

	pdf.SetTextColor(200, 0, 0)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Sugestao: %s", f.Suggestion)), "", "", false)
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(2)
}

func setSeverityColor(pdf *fpdf.Fpdf, severity string) {
	switch findings.SeverityRank(severity) {
	case 3:
		pdf.SetTextColor(200, 0, 0)
	case 2:
		pdf.SetTextColor(200, 120, 0)
	default:
		pdf.SetTextColor(90, 90, 90)
	}
}
