/*
Package export renders pay-run tables as CSV for downstream payroll systems.

The row structs mirror the engine's output tables one-to-one; money columns
are fixed to two decimal places, hour columns keep their natural precision.
*/
package export

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/warp/payroll-engine/payroll"
)

// DailyRow is one line of the daily-breakdown CSV.
type DailyRow struct {
	EmployeeID   string `csv:"employee_id"`
	EmployeeName string `csv:"employee_name"`
	Date         string `csv:"date"`
	InTime       string `csv:"in_time"`
	OutTime      string `csv:"out_time"`
	TotalHours   string `csv:"total_hours"`
	ExtraHours   string `csv:"extra_hours"`
	DailyPay     string `csv:"daily_pay"`
}

// MonthlyRow is one line of the monthly-totals CSV.
type MonthlyRow struct {
	EmployeeID      string `csv:"employee_id"`
	EmployeeName    string `csv:"employee_name"`
	TotalHours      string `csv:"total_hours"`
	ExtraHours      string `csv:"extra_hours"`
	DailyPaySum     string `csv:"daily_pay_sum"`
	FixedMonthlyPay string `csv:"fixed_monthly_pay"`
	FinalMonthlyPay string `csv:"final_monthly_pay"`
}

// WriteDailyCSV writes the daily breakdown to w.
func WriteDailyCSV(w io.Writer, daily []payroll.DailyPayEntry) error {
	rows := make([]DailyRow, 0, len(daily))
	for _, e := range daily {
		rows = append(rows, DailyRow{
			EmployeeID:   string(e.EmployeeID),
			EmployeeName: e.EmployeeName,
			Date:         e.Date.String(),
			InTime:       e.InTime,
			OutTime:      e.OutTime,
			TotalHours:   e.TotalHours.String(),
			ExtraHours:   e.ExtraHours.String(),
			DailyPay:     e.DailyPay.StringFixed(2),
		})
	}
	return gocsv.Marshal(rows, w)
}

// WriteMonthlyCSV writes the monthly totals to w.
func WriteMonthlyCSV(w io.Writer, monthly []payroll.MonthlyTotal) error {
	rows := make([]MonthlyRow, 0, len(monthly))
	for _, m := range monthly {
		rows = append(rows, MonthlyRow{
			EmployeeID:      string(m.EmployeeID),
			EmployeeName:    m.EmployeeName,
			TotalHours:      m.TotalHoursSum.String(),
			ExtraHours:      m.ExtraHoursSum.String(),
			DailyPaySum:     m.DailyPaySum.StringFixed(2),
			FixedMonthlyPay: m.FixedMonthlyPay.StringFixed(2),
			FinalMonthlyPay: m.FinalMonthlyPay.StringFixed(2),
		})
	}
	return gocsv.Marshal(rows, w)
}
