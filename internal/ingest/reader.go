package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadDelimited parses CSV bytes using the first row as header labels. Values
// that look numeric become float64, blank rows are skipped, and ragged rows
// are tolerated (missing cells read as absent).
func ReadDelimited(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read delimited data: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		values := make([]any, len(record))
		blank := true
		for i, cell := range record {
			if n, ok := parseNumber(cell); ok {
				values[i] = n
				blank = false
				continue
			}
			values[i] = cell
			if toString(cell) != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, NewRow(header, values))
	}
	return rows, nil
}

// ReadWorkbook decodes the first sheet of an XLSX container into a grid of
// raw cell strings. No header row is assumed; discovery is the header
// resolver's job.
func ReadWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return grid, nil
}
