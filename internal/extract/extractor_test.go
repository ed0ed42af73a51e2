package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/hyperjump/inspekt/internal/models"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// minimalDocx returns .docx zip bytes whose word/document.xml holds the given body XML.
func minimalDocx(body string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("word/document.xml")
	_, _ = fw.Write([]byte(`<w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func paragraph(text string) string {
	return `<w:p w:rsidR="00A1"><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

// minimalPDF renders text onto a single uncompressed page.
func minimalPDF(t *testing.T, text string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(10, 20, text)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("render PDF: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_plain(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract(&models.UploadedDocument{
		Filename:  "notes.txt",
		MediaType: "text/plain",
		Content:   []byte("Hello world\nLine 2"),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Hello world\nLine 2" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_plainInvalidUTF8(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract(&models.UploadedDocument{
		Filename: "notes.bin",
		Content:  []byte("hello\x80world"),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "hello\ufffdworld" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_unknownMediaTypeIsPlain(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract(&models.UploadedDocument{
		Filename:  "photo.jpg",
		MediaType: "image/jpeg",
		Content:   []byte("raw content"),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "raw content" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_docxByMediaType(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract(&models.UploadedDocument{
		Filename:  "upload",
		MediaType: models.MediaTypeDOCX,
		Content:   minimalDocx(paragraph("Roof leaking") + paragraph("Cracked foundation")),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Roof leaking\n\nCracked foundation" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_docxByFilename(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract(&models.UploadedDocument{
		Filename:  "inspection.docx",
		MediaType: "application/octet-stream",
		Content:   minimalDocx(paragraph("Searchable docx content")),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Searchable docx content" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_docxTabsAndBreaks(t *testing.T) {
	body := `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
		`<w:r><w:t>Item</w:t><w:tab/><w:t>Status</w:t><w:br/><w:t>Next line</w:t></w:r></w:p>`
	got, err := extractDOCX(minimalDocx(body))
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "Item\tStatus\nNext line" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_docxContentTypesOverride(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	ct, _ := w.Create("[Content_Types].xml")
	_, _ = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml" PartName="/word/document2.xml"/>
</Types>`))
	fw, _ := w.Create("word/document2.xml")
	_, _ = fw.Write([]byte(`<w:document ` + wordNS + `><w:body>` + paragraph("Content from document2") + `</w:body></w:document>`))
	_ = w.Close()

	got, err := extractDOCX(buf.Bytes())
	if err != nil {
		t.Fatalf("extractDOCX: %v", err)
	}
	if got != "Content from document2" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_docxNotZip(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(&models.UploadedDocument{
		Filename: "broken.docx",
		Content:  []byte("not a zip"),
	})
	if err == nil {
		t.Error("expected error for invalid docx")
	}
}

func TestExtract_docxDocumentMissing(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	_, _ = w.Create("docProps/core.xml")
	_ = w.Close()
	if _, err := extractDOCX(buf.Bytes()); err == nil {
		t.Error("expected error when word/document.xml is missing")
	}
}

func TestExtract_pdf(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract(&models.UploadedDocument{
		Filename:  "report.pdf",
		MediaType: models.MediaTypePDF,
		Content:   minimalPDF(t, "Roof leaking"),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(got, "Roof leaking") {
		t.Errorf("got %q, want it to contain %q", got, "Roof leaking")
	}
}

func TestExtract_pdfInvalid(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(&models.UploadedDocument{
		Filename:  "report.pdf",
		MediaType: models.MediaTypePDF,
		Content:   []byte("definitely not a pdf"),
	})
	if err == nil {
		t.Error("expected error for invalid PDF")
	}
}
