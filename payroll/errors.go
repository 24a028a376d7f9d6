/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All engine error types in one place. Parsing problems inside a row never
  become errors - they degrade per the Hours Parser contract and surface in
  Diagnostics. Errors here are for configuration problems that abort a run
  before any row is processed.

USAGE:
  if errors.Is(err, payroll.ErrInvalidConfiguration) {
      // 4xx to the caller, nothing was computed
  }
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidConfiguration is returned when salary inputs or the rate
	// policy are unusable. The engine never computes with negative rates.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidConfigurationError explains which input made the run impossible.
type InvalidConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s %s (got %s)", e.Field, e.Reason, e.Value)
}

func (e *InvalidConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}
