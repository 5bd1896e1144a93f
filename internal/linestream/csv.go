package linestream

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files: each data row becomes one
// "header: value" line on a single page.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]Page, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	headers := records[0]
	page := Page{Number: 1}
	for _, row := range records[1:] {
		var cells []string
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if j < len(headers) {
				cells = append(cells, headers[j]+": "+cell)
			} else {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			page.Lines = append(page.Lines, strings.Join(cells, ", "))
		}
	}

	if len(page.Lines) == 0 {
		return nil, nil
	}
	return []Page{page}, nil
}
