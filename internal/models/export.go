package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ExportType selects the output format of the export endpoint.
type ExportType string

const (
	// ExportCSV is comma-separated text.
	ExportCSV ExportType = "csv"
	// ExportPDF is a rendered report document.
	ExportPDF ExportType = "pdf"
	// ExportXLSX is a single-sheet workbook.
	ExportXLSX ExportType = "xlsx"
)

// Valid reports whether t is a supported export format.
func (t ExportType) Valid() bool {
	switch t {
	case ExportCSV, ExportPDF, ExportXLSX:
		return true
	}
	return false
}

// UnmarshalJSON accepts any JSON value; non-strings decode to the empty, invalid type so
// that they are reported as an invalid export type rather than a malformed body.
func (t *ExportType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ""
		return nil
	}
	*t = ExportType(s)
	return nil
}

// ExportRequest is the body of the export endpoint. Data is kept raw so that key order
// survives into the exported file.
type ExportRequest struct {
	Data json.RawMessage `json:"data"`
	Type ExportType      `json:"type"`
}

// falsyData lists the non-numeric JSON literals treated as "no data".
var falsyData = [][]byte{
	[]byte("null"),
	[]byte("false"),
	[]byte(`""`),
}

// HasData reports whether Data is present and not a falsy literal.
func (r *ExportRequest) HasData() bool {
	d := bytes.TrimSpace(r.Data)
	if len(d) == 0 {
		return false
	}
	for _, f := range falsyData {
		if bytes.Equal(d, f) {
			return false
		}
	}
	if d[0] == '-' || (d[0] >= '0' && d[0] <= '9') {
		if v, err := strconv.ParseFloat(string(d), 64); err == nil && v == 0 {
			return false
		}
	}
	return true
}

// Validate returns ErrNoData or ErrInvalidExportType when the request cannot be exported.
func (r *ExportRequest) Validate() error {
	if !r.HasData() {
		return ErrNoData
	}
	if !r.Type.Valid() {
		return ErrInvalidExportType
	}
	return nil
}
