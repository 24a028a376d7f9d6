/*
Package attendance turns uploaded attendance workbooks and holiday text into
the engine's input types.

PURPOSE:
  The payroll engine consumes already-shaped AttendanceRecord values. This
  package owns the messy edge: locating the header row of an XLSX sheet,
  matching the expected columns by name, and carrying cell values through
  raw so the engine's Hours Parser can normalize them.

EXPECTED COLUMNS:
  Employee ID, Employee Name, Date        (required)
  In time, Out time,
  Total Working hours, Extra Working Time (optional)

  Header matching is case-insensitive and whitespace-tolerant, so
  "employee id" and "Employee ID " both work.

SEE ALSO:
  - xlsx.go:     Workbook reading via excelize
  - holidays.go: Holiday list parsing
*/
package attendance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptySheet is returned when the workbook has no data rows.
	ErrEmptySheet = errors.New("attendance sheet is empty")

	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
)

// MissingColumnError names the column that could not be found.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// =============================================================================
// COLUMN MAPPING
// =============================================================================

const (
	colEmployeeID   = "employee id"
	colEmployeeName = "employee name"
	colDate         = "date"
	colInTime       = "in time"
	colOutTime      = "out time"
	colTotalHours   = "total working hours"
	colExtraTime    = "extra working time"
)

var requiredColumns = []string{colEmployeeID, colEmployeeName, colDate}

// columnIndex maps normalized header names to their position in the row.
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[normalizeHeader(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}
	return idx, nil
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// cell returns the raw cell under the given column, or "" when the row is
// short or the column is absent. Sheets routinely truncate trailing blanks.
func (idx columnIndex) cell(row []string, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// recordFromRow maps one data row into an AttendanceRecord. Duration cells
// stay raw strings; empty duration cells become nil so the parser treats
// them as absent rather than malformed.
func (idx columnIndex) recordFromRow(row []string) payroll.AttendanceRecord {
	return payroll.AttendanceRecord{
		EmployeeID:        payroll.EmployeeID(strings.TrimSpace(idx.cell(row, colEmployeeID))),
		EmployeeName:      strings.TrimSpace(idx.cell(row, colEmployeeName)),
		Date:              payroll.ParseDate(idx.cell(row, colDate)),
		InTime:            strings.TrimSpace(idx.cell(row, colInTime)),
		OutTime:           strings.TrimSpace(idx.cell(row, colOutTime)),
		TotalWorkingHours: rawCell(idx.cell(row, colTotalHours)),
		ExtraWorkingTime:  rawCell(idx.cell(row, colExtraTime)),
	}
}

func rawCell(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// isBlankRow reports whether every cell in the row is empty.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
