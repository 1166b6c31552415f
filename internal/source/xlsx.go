package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// decodeXLSX reads the first sheet of a workbook. The first row names the fields using the
// same keys as the JSON documents; nested fields use dotted names such as "details.date".
// Every following non-empty row becomes one report.
func decodeXLSX[T any](data []byte) ([]T, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var (
		header []string
		items  []T
		line   int
	)
	for rows.Next() {
		line++
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		if header == nil {
			header = trimAll(cells)
			continue
		}

		record := rowRecord(header, cells)
		if len(record) == 0 {
			continue
		}

		payload, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("encode row %d: %w", line, err)
		}
		var item T
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", line, err)
		}
		items = append(items, item)
	}

	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in %s: %w", sheet, err)
	}

	return items, nil
}

func rowRecord(header, cells []string) map[string]any {
	record := make(map[string]any)
	for i, cell := range cells {
		if i >= len(header) || header[i] == "" {
			continue
		}
		value := strings.TrimSpace(cell)
		if value == "" {
			continue
		}
		setPath(record, strings.Split(header[i], "."), value)
	}
	return record
}

func setPath(record map[string]any, keys []string, value string) {
	current := record
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[key] = next
		}
		current = next
	}
	last := keys[len(keys)-1]
	if _, nested := current[last].(map[string]any); nested {
		return
	}
	current[last] = value
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
