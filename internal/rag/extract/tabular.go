package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

func extractCSV(content []byte) (string, error) {
	decoded, _ := extractTxt(content)
	reader := csv.NewReader(strings.NewReader(decoded))
	reader.FieldsPerRecord = -1 //ragged rows are fine

	var lines []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse csv: %w", err)
		}
		if line := joinCells(record); line != "" {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// extractWorkbook handles xlsx and xls tags. Legacy binary .xls workbooks the
// reader cannot open surface as an extraction failure; most files carrying
// the xls tag today are OOXML underneath and parse fine.
func extractWorkbook(content []byte) (string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}

	// First sheet only, matching how these workbooks were indexed before.
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read workbook rows: %w", err)
	}

	var lines []string
	for i, row := range rows {
		if line := joinCells(row); line != "" {
			lines = append(lines, fmt.Sprintf("Row %d: %s", i+1, line))
		}
	}

	return strings.Join(lines, "\n"), nil
}

func joinCells(cells []string) string {
	var kept []string
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			kept = append(kept, cell)
		}
	}
	return strings.Join(kept, " | ")
}
