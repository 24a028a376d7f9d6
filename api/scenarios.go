/*
scenarios.go - Demo datasets for testing and demonstrations

PURPOSE:
  Provides pre-built attendance datasets that exercise the engine's rules
  without needing a workbook upload: rest-day multipliers, declared
  holidays, clock-form hours, and degraded rows.

AVAILABLE SCENARIOS:
  small-team-march: Three employees over a week of March 2025, including a
                    Friday and a declared holiday
  messy-sheet:      Rows with garbage hours and an unparseable date, showing
                    the diagnostics surface

USAGE VIA API:
  POST /api/scenarios/load
  {"scenario_id": "small-team-march"}

Each load computes the scenario fresh and archives it like a real upload.

SEE ALSO:
  - handlers.go: ListScenarios, LoadScenario handlers
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team-march",
		Name:        "Small Team, March 2025",
		Description: "Three employees over one week, with a Friday and a declared holiday",
	},
	{
		ID:          "messy-sheet",
		Name:        "Messy Sheet",
		Description: "Garbage duration values and an unparseable date, surfaced as diagnostics",
	},
}

// ListScenarios handles GET /api/scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario handles POST /api/scenarios/load: computes the selected demo
// dataset and archives it like a normal run.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	var in payroll.PayRunInput
	switch req.ScenarioID {
	case "small-team-march":
		in = smallTeamMarch()
	case "messy-sheet":
		in = messySheet()
	default:
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown scenario %q", req.ScenarioID))
		return
	}

	result, err := h.Engine.Compute(in)
	if err != nil {
		h.writeConfigError(w, err)
		return
	}

	dto, err := h.archiveRun(r, in, result)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, dto)
}

// =============================================================================
// SCENARIO DATA
// =============================================================================

func scenarioRecord(id, name string, date payroll.Date, in, out string, total, extra any) payroll.AttendanceRecord {
	return payroll.AttendanceRecord{
		EmployeeID:        payroll.EmployeeID(id),
		EmployeeName:      name,
		Date:              date,
		InTime:            in,
		OutTime:           out,
		TotalWorkingHours: total,
		ExtraWorkingTime:  extra,
	}
}

// smallTeamMarch covers 2025-03-10 (Mon) through 2025-03-14 (Fri) with
// 2025-03-12 declared a holiday.
func smallTeamMarch() payroll.PayRunInput {
	mon := payroll.NewDate(2025, time.March, 10)
	tue := payroll.NewDate(2025, time.March, 11)
	wed := payroll.NewDate(2025, time.March, 12)
	fri := payroll.NewDate(2025, time.March, 14)

	return payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			scenarioRecord("E1", "Asha Rao", mon, "09:00", "17:30", "8:30", nil),
			scenarioRecord("E1", "Asha Rao", tue, "09:05", "17:05", "8", "1"),
			scenarioRecord("E1", "Asha Rao", wed, "09:00", "17:00", "8", nil),
			scenarioRecord("E1", "Asha Rao", fri, "09:00", "17:00", "8", nil),
			scenarioRecord("E2", "Ben Kim", mon, "10:00", "18:00", "8", nil),
			scenarioRecord("E2", "Ben Kim", wed, "10:00", "19:00", "8", "1:30"),
			scenarioRecord("E2", "Ben Kim", fri, "10:00", "14:00", "4", nil),
			scenarioRecord("E3", "Carla Mendes", tue, "08:30", "16:30", "8", nil),
			scenarioRecord("E3", "Carla Mendes", fri, "08:30", "17:30", "8", "0:45"),
		},
		BasicSalary: decimal.NewFromInt(30000),
		Allowance:   decimal.NewFromInt(5000),
		Holidays:    payroll.NewHolidaySet(wed),
	}
}

// messySheet exercises the degradation paths.
func messySheet() payroll.PayRunInput {
	mon := payroll.NewDate(2025, time.March, 10)

	return payroll.PayRunInput{
		Records: []payroll.AttendanceRecord{
			scenarioRecord("E1", "Asha Rao", mon, "09:00", "17:00", "8", nil),
			scenarioRecord("E1", "Asha Rao", payroll.InvalidDate(), "", "", "8", nil),
			scenarioRecord("E2", "Ben Kim", mon, "", "", "not hours", "1:2:3"),
		},
		BasicSalary: decimal.NewFromInt(30000),
		Allowance:   decimal.NewFromInt(5000),
	}
}
