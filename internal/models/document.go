// Package models defines the transient values passed between the analysis and export handlers.
package models

import "strings"

// Media types that select a text extraction path.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// docxExtension selects DOCX extraction regardless of the declared media type.
const docxExtension = ".docx"

// UploadedDocument is a file received by the analysis endpoint. It lives for one request.
type UploadedDocument struct {
	Filename  string `json:"filename"`
	MediaType string `json:"media_type"`
	Content   []byte `json:"-"`
}

// IsPDF reports whether the declared media type is PDF.
func (d *UploadedDocument) IsPDF() bool {
	return d.MediaType == MediaTypePDF
}

// IsDOCX reports whether the document should be read as a word-processing file:
// either the declared media type says so or the filename ends in .docx.
func (d *UploadedDocument) IsDOCX() bool {
	return d.MediaType == MediaTypeDOCX || strings.HasSuffix(d.Filename, docxExtension)
}
