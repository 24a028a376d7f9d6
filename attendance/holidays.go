package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// ParseHolidays parses a comma-separated list of YYYY-MM-DD dates into a
// holiday set. Empty input yields the empty set. Unlike duration cells,
// a bad holiday entry is a configuration mistake and is reported.
func ParseHolidays(input string) (payroll.HolidaySet, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return payroll.NewHolidaySet(), nil
	}

	var dates []payroll.Date
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", token)
		if err != nil {
			return payroll.HolidaySet{}, fmt.Errorf("invalid holiday date %q: expected YYYY-MM-DD", token)
		}
		dates = append(dates, payroll.DateOf(t))
	}
	return payroll.NewHolidaySet(dates...), nil
}
