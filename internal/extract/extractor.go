// Package extract turns uploaded documents into plain text for analysis.
package extract

import (
	"fmt"

	"github.com/hyperjump/inspekt/internal/models"
)

// Extractor extracts plain text from uploaded documents.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of doc. The path is chosen by declared media type:
// PDF, then DOCX (media type or .docx filename), and anything else is decoded as UTF-8.
func (e *Extractor) Extract(doc *models.UploadedDocument) (string, error) {
	switch {
	case doc.IsPDF():
		text, err := extractPDF(doc.Content)
		if err != nil {
			return "", fmt.Errorf("extract %q: %w", doc.Filename, err)
		}
		return text, nil
	case doc.IsDOCX():
		text, err := extractDOCX(doc.Content)
		if err != nil {
			return "", fmt.Errorf("extract %q: %w", doc.Filename, err)
		}
		return text, nil
	default:
		return extractPlain(doc.Content), nil
	}
}
