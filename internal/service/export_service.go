package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eduboost/course-portal-api/pkg/export"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

// ExportFormat selects the rendering of a notes export.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes plus the response metadata the
// handler needs to serve them as a download.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders a course's notes, in display order, as a CSV
// table or a PDF study sheet.
type ExportService struct {
	notes *NoteService
	csv   *export.CSVExporter
	pdf   *export.PDFExporter
}

// NewExportService constructs the service.
func NewExportService(notes *NoteService) *ExportService {
	return &ExportService{
		notes: notes,
		csv:   export.NewCSVExporter(),
		pdf:   export.NewPDFExporter(),
	}
}

// ExportNotes lists the course's notes through the ordering merge and
// renders them in the requested format.
func (s *ExportService) ExportNotes(ctx context.Context, courseID string, format ExportFormat) (ExportResult, error) {
	notes, err := s.notes.List(ctx, courseID)
	if err != nil {
		return ExportResult{}, err
	}
	if len(notes) == 0 {
		return ExportResult{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %q has no notes to export", courseID))
	}

	stamp := time.Now().UTC().Format("2006-01-02")
	switch format {
	case ExportFormatCSV:
		dataset := export.Dataset{
			Headers: []string{"id", "title", "content", "link", "createdAt"},
		}
		for _, note := range notes {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"id":        note.ID,
				"title":     note.Title,
				"content":   note.Content,
				"link":      note.Link,
				"createdAt": note.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		content, err := s.csv.Render(dataset)
		if err != nil {
			return ExportResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV export")
		}
		return ExportResult{
			Content:     content,
			ContentType: "text/csv; charset=utf-8",
			Filename:    fmt.Sprintf("notes-%s-%s.csv", courseID, stamp),
		}, nil

	case ExportFormatPDF:
		sections := make([]export.Section, 0, len(notes))
		for _, note := range notes {
			sections = append(sections, export.Section{
				Heading: note.Title,
				Body:    note.Content,
				Link:    note.Link,
			})
		}
		content, err := s.pdf.Render(fmt.Sprintf("Notes de cours - %s", courseID), sections)
		if err != nil {
			return ExportResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render PDF export")
		}
		return ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("notes-%s-%s.pdf", courseID, stamp),
		}, nil

	default:
		return ExportResult{}, appErrors.Clone(appErrors.ErrInvalidInput, `query parameter "format" must be "csv" or "pdf"`)
	}
}
