/*
Package factory provides JSON to Go rate-policy conversion.

PURPOSE:
  Converts JSON rate-policy definitions into payroll.RatePolicy values.
  The annualization basis, day divisor, workday length, and rest-day rule
  are policy, not code - an operator can define an alternative policy in
  JSON without a deploy.

JSON SCHEMA:
  {
    "annualization_months": 12,
    "days_per_year": 365,
    "hours_per_day": 8,
    "rest_day": "friday",
    "rest_day_multiplier": 1.5
  }

  Every field is optional; omitted fields take the default policy's value.

USAGE:
  policy, err := factory.ParseRatePolicy(jsonString)

SEE ALSO:
  - payroll/rates.go: RatePolicy definition and validation
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// RatePolicyJSON is the JSON representation of a rate policy.
type RatePolicyJSON struct {
	AnnualizationMonths *int     `json:"annualization_months,omitempty"`
	DaysPerYear         *int     `json:"days_per_year,omitempty"`
	HoursPerDay         *int     `json:"hours_per_day,omitempty"`
	RestDay             string   `json:"rest_day,omitempty"`
	RestDayMultiplier   *float64 `json:"rest_day_multiplier,omitempty"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseRatePolicy builds a validated RatePolicy from JSON, filling omitted
// fields from the default policy.
func ParseRatePolicy(data string) (payroll.RatePolicy, error) {
	var cfg RatePolicyJSON
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return payroll.RatePolicy{}, fmt.Errorf("parse rate policy: %w", err)
	}
	return BuildRatePolicy(cfg)
}

// BuildRatePolicy applies defaults and validates.
func BuildRatePolicy(cfg RatePolicyJSON) (payroll.RatePolicy, error) {
	policy := payroll.DefaultRatePolicy()

	if cfg.AnnualizationMonths != nil {
		policy.AnnualizationMonths = *cfg.AnnualizationMonths
	}
	if cfg.DaysPerYear != nil {
		policy.DaysPerYear = *cfg.DaysPerYear
	}
	if cfg.HoursPerDay != nil {
		policy.HoursPerDay = *cfg.HoursPerDay
	}
	if cfg.RestDay != "" {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(cfg.RestDay))]
		if !ok {
			return payroll.RatePolicy{}, fmt.Errorf("parse rate policy: unknown rest day %q", cfg.RestDay)
		}
		policy.RestDay = day
	}
	if cfg.RestDayMultiplier != nil {
		policy.RestDayMultiplier = decimal.NewFromFloat(*cfg.RestDayMultiplier)
	}

	if err := policy.Validate(); err != nil {
		return payroll.RatePolicy{}, err
	}
	return policy, nil
}
