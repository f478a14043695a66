package submission

import (
	"bytes"
	"strings"

	"go-recruit/internal/apperr"

	"github.com/xuri/excelize/v2"
)

// Keywords that identify a header row. A row qualifies when at least
// headerThreshold of its cells contain one of these, case-insensitively.
var headerKeywords = []string{
	"name", "email", "phone", "contact", "dob", "gender",
	"batch", "s.no", "sr.no", "roll no", "indos",
}

const (
	headerThreshold = 2
	headerScanRows  = 20
)

// Header is the located header row of a roster sheet.
type Header struct {
	Index  int
	Labels []string
}

// Parse reads the first sheet of an xlsx workbook into rows of strings.
func Parse(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Validation("Unable to read the uploaded workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("Workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Validation("Unable to read rows from the workbook")
	}
	return rows, nil
}

// LocateHeader scans the first headerScanRows rows for the header. Real
// rosters often open with title and letterhead rows, so the first
// qualifying row wins, not row zero.
func LocateHeader(rows [][]string) (*Header, error) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for i := 0; i < limit; i++ {
		matches := 0
		for _, cell := range rows[i] {
			lower := strings.ToLower(strings.TrimSpace(cell))
			if lower == "" {
				continue
			}
			for _, kw := range headerKeywords {
				if strings.Contains(lower, kw) {
					matches++
					break
				}
			}
		}
		if matches >= headerThreshold {
			return &Header{Index: i, Labels: rows[i]}, nil
		}
	}
	return nil, apperr.HeaderNotFound("Could not locate a header row in the spreadsheet")
}

// isBlankRow reports whether every cell is empty after trimming.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
