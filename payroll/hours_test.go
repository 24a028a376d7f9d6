package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/payroll-engine/payroll"
)

// ParseHours is total: every input maps to a decimal, nothing panics.
func TestParseHours_Totality(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  string
	}{
		{"nil is zero", nil, "0"},
		{"empty string is zero", "", "0"},
		{"blank string is zero", "   ", "0"},
		{"int passes through", 7, "7"},
		{"int64 passes through", int64(9), "9"},
		{"float passes through", 7.25, "7.25"},
		{"decimal passes through", decimal.NewFromFloat(6.5), "6.5"},
		{"clock form", "8:30", "8.5"},
		{"clock form with padding", " 9:15 ", "9.25"},
		{"clock form on the hour", "8:00", "8"},
		{"plain decimal string", "7.75", "7.75"},
		{"plain integer string", "8", "8"},
		{"garbage is zero", "garbage", "0"},
		{"too many colons is zero", "1:2:3", "0"},
		{"bad minutes is zero", "8:xx", "0"},
		{"bad hours is zero", "x:30", "0"},
		{"unsupported type is zero", true, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := payroll.ParseHours(tc.input)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

// ParseHours is pure: repeated calls on the same value agree.
func TestParseHours_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.True(t, payroll.ParseHours("8:30").Equal(decimal.NewFromFloat(8.5)))
	}
}
