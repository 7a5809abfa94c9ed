package fileloader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXRows returns all rows of the first sheet of an XLSX file. The
// first row is the header; cells are returned untrimmed so that the
// analysis pipeline applies the same trimming rules it applies to CSV
// input.
func ReadXLSXRows(filePath string) ([][]string, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is empty")
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows found in XLSX file")
	}

	return rows, nil
}

// JoinRowsAsText reconstructs a semicolon-joined textual view of a table.
// Used to hand XLSX content to the advisory service, which expects raw
// file text.
func JoinRowsAsText(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ";")
	}
	return strings.Join(lines, "\n")
}
