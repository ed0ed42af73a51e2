// Package export serializes JSON report data into downloadable files.
package export

import (
	"encoding/json"
	"time"

	"github.com/hyperjump/inspekt/internal/models"
)

// DefaultTitle heads every rendered PDF unless overridden.
const DefaultTitle = "Home Inspection Analysis Report"

// File is a rendered export ready to be sent as an attachment.
type File struct {
	Body        []byte
	ContentType string
	Filename    string
}

// Exporter converts report data to the requested format.
type Exporter struct {
	title string
	now   func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTitle sets the PDF title line.
func WithTitle(title string) Option {
	return func(e *Exporter) {
		if title != "" {
			e.title = title
		}
	}
}

// WithClock sets the clock used for PDF creation dates. PDFs rendered with the same
// clock reading and data are byte-identical.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter returns an Exporter with the given options applied.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{title: DefaultTitle, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders data as typ. Callers validate the request first; an unsupported type
// yields models.ErrInvalidExportType.
func (e *Exporter) Export(typ models.ExportType, data json.RawMessage) (*File, error) {
	switch typ {
	case models.ExportCSV:
		body, err := renderCSV(data)
		if err != nil {
			return nil, err
		}
		return &File{Body: body, ContentType: "text/csv", Filename: "report.csv"}, nil
	case models.ExportPDF:
		body, err := renderPDF(data, e.title, e.now())
		if err != nil {
			return nil, err
		}
		return &File{Body: body, ContentType: "application/pdf", Filename: "report.pdf"}, nil
	case models.ExportXLSX:
		body, err := renderXLSX(data)
		if err != nil {
			return nil, err
		}
		return &File{
			Body:        body,
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    "report.xlsx",
		}, nil
	default:
		return nil, models.ErrInvalidExportType
	}
}
