package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Section is one block of a study-sheet export: a heading plus body text.
type Section struct {
	Heading string
	Body    string
	Link    string
}

// PDFExporter renders study sheets as PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF with a title page header followed by one block
// per section, in the order given.
func (e *PDFExporter) Render(title string, sections []Section) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.MultiCell(0, 9, title, "", "L", false)
		pdf.Ln(4)
	}

	for _, section := range sections {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 7, section.Heading, "", "L", false)
		if section.Body != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5.5, section.Body, "", "L", false)
		}
		if section.Link != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.SetTextColor(40, 70, 160)
			pdf.MultiCell(0, 5, section.Link, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
