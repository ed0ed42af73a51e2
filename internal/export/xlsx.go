package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Report"

func renderXLSX(data json.RawMessage) ([]byte, error) {
	t, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("xlsx export: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("xlsx export: %w", err)
	}

	for i, h := range t.header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx export: header %q: %w", h, err)
		}
	}
	for r, rec := range t.rows {
		for c, v := range t.cells(rec) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(xlsxSheet, cell, cellValue(v)); err != nil {
				return nil, fmt.Errorf("xlsx export: cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx export: write: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

// cellValue keeps numbers and booleans typed so spreadsheets can compute with them.
func cellValue(v json.RawMessage) any {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}
	switch string(v) {
	case "true":
		return true
	case "false":
		return false
	}
	if v[0] == '-' || (v[0] >= '0' && v[0] <= '9') {
		if n, err := strconv.ParseFloat(string(v), 64); err == nil {
			return n
		}
	}
	return cellText(v)
}
