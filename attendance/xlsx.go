package attendance

import (
	"fmt"
	"io"

	"github.com/warp/payroll-engine/payroll"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads attendance records off the first sheet of an XLSX
// workbook. The first non-blank row is the header; blank rows are skipped.
func ReadWorkbook(r io.Reader) ([]payroll.AttendanceRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return recordsFromRows(rows)
}

func recordsFromRows(rows [][]string) ([]payroll.AttendanceRecord, error) {
	// Locate the header row, tolerating leading blank rows.
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start >= len(rows) {
		return nil, ErrEmptySheet
	}

	idx, err := indexHeader(rows[start])
	if err != nil {
		return nil, err
	}

	var records []payroll.AttendanceRecord
	for _, row := range rows[start+1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, idx.recordFromRow(row))
	}
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}
	return records, nil
}
