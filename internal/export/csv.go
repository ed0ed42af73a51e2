package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
)

func renderCSV(data json.RawMessage) ([]byte, error) {
	t, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.header); err != nil {
		return nil, fmt.Errorf("csv export: write header: %w", err)
	}
	row := make([]string, len(t.header))
	for i, rec := range t.rows {
		for j, v := range t.cells(rec) {
			row[j] = cellText(v)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv export: write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv export: %w", err)
	}
	return buf.Bytes(), nil
}
