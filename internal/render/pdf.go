// Package render turns a markdown report into a paginated PDF. Pagination
// is best-effort: when it fails the markdown text itself is written to the
// target path so the run still produces a document.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
)

type Renderer interface {
	Render(markdown string, path string) error
}

type PDFRenderer struct{}

func NewPDFRenderer() PDFRenderer {
	return PDFRenderer{}
}

func (PDFRenderer) Render(markdown string, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	inCode := false
	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		switch {
		case inCode:
			pdf.SetFont("Courier", "", 8)
			pdf.MultiCell(0, 4, line, "", "L", false)
		case strings.HasPrefix(line, "# "):
			pdf.SetFont("Helvetica", "B", 16)
			pdf.MultiCell(0, 8, strings.TrimPrefix(line, "# "), "", "L", false)
			pdf.Ln(2)
		case strings.HasPrefix(line, "## "):
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, strings.TrimPrefix(line, "## "), "", "L", false)
			pdf.Ln(1)
		case strings.TrimSpace(line) == "":
			pdf.Ln(3)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// WriteDocument renders markdown to path through the renderer. A nil
// renderer or a render failure degrades to writing the markdown bytes at
// the same path; the returned note describes the degradation and is empty
// on the happy path.
func WriteDocument(markdown string, path string, renderer Renderer) (string, error) {
	if renderer != nil {
		if err := renderer.Render(markdown, path); err == nil {
			return "", nil
		} else {
			note := fmt.Sprintf("pdf rendering failed, wrote markdown instead: %v", err)
			if writeErr := os.WriteFile(path, []byte(markdown), 0o644); writeErr != nil {
				return note, fmt.Errorf("failed to write fallback document: %w", writeErr)
			}
			return note, nil
		}
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return "pdf renderer unavailable, wrote markdown text", nil
}
