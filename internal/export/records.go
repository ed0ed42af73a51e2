package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// record is one row of tabular output, keyed by column in first-seen order.
type record = orderedmap.OrderedMap[string, json.RawMessage]

// table is a list of records with the union of their keys as header.
type table struct {
	header []string
	rows   []*record
}

// parseTable reads data as an array of objects. A single object is a one-row table.
func parseTable(data json.RawMessage) (*table, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no records")
	}
	var items []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
	case '{':
		items = []json.RawMessage{data}
	default:
		return nil, fmt.Errorf("data must be an object or an array of objects")
	}

	t := &table{rows: make([]*record, 0, len(items))}
	seen := make(map[string]struct{})
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		rec := orderedmap.New[string, json.RawMessage]()
		if err := rec.UnmarshalJSON(item); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		for pair := rec.Oldest(); pair != nil; pair = pair.Next() {
			if _, ok := seen[pair.Key]; !ok {
				seen[pair.Key] = struct{}{}
				t.header = append(t.header, pair.Key)
			}
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// cellText renders a JSON value the way it appears in a spreadsheet cell: strings
// unquoted, null empty, nested values as compact JSON, everything else literal.
func cellText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return ""
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	case 'n':
		return ""
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err == nil {
			return buf.String()
		}
	}
	return string(v)
}

// cells returns the row's values aligned with header; missing keys are empty.
func (t *table) cells(rec *record) []json.RawMessage {
	out := make([]json.RawMessage, len(t.header))
	for i, key := range t.header {
		if v, ok := rec.Get(key); ok {
			out[i] = v
		}
	}
	return out
}
