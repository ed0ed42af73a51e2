package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Layout in millimetres on A4 portrait.
const (
	pdfMargin     = 10.0
	pdfTitleY     = 10.0
	pdfBodyY      = 20.0
	pdfLineHeight = 5.0
	pdfTitleSize  = 16.0
	pdfBodySize   = 10.0
)

// renderPDF draws title and the indented JSON of data, breaking onto new pages as needed.
func renderPDF(data json.RawMessage, title string, created time.Time) ([]byte, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, fmt.Errorf("pdf export: %w", err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCatalogSort(true)
	doc.SetCreationDate(created)
	doc.SetModificationDate(created)
	doc.SetTitle(title, true)
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "", pdfTitleSize)
	doc.Text(pdfMargin, pdfTitleY, tr(title))

	doc.SetFont("Courier", "", pdfBodySize)
	doc.SetY(pdfBodyY)
	width, _ := doc.GetPageSize()
	for _, line := range strings.Split(pretty.String(), "\n") {
		doc.MultiCell(width-2*pdfMargin, pdfLineHeight, tr(line), "", "L", false)
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("pdf export: %w", err)
	}
	return out.Bytes(), nil
}
