/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the wage-computation engine over REST. Handlers own HTTP parsing,
  JSON serialization, and persistence of computed runs; all pay math lives
  in the payroll package.

ENDPOINTS:
  Pay runs:
    POST   /api/payruns             Upload an XLSX sheet, compute + archive
    POST   /api/payruns/compute     Compute from JSON records (no archive)
    GET    /api/payruns             List archived runs
    GET    /api/payruns/{id}        Fetch an archived run with both tables
    GET    /api/payruns/{id}/daily.csv    Daily breakdown as CSV
    GET    /api/payruns/{id}/monthly.csv  Monthly totals as CSV

  Scenarios:
    GET    /api/scenarios           List demo scenarios
    POST   /api/scenarios/load      Compute + archive a demo dataset

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed request (bad JSON, unreadable workbook, bad holiday list)
  - 404: Unknown pay run
  - 422: Valid request, unusable configuration (negative salary, bad policy)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response shapes
  - scenarios.go: Demo dataset loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/payroll-engine/attendance"
	"github.com/warp/payroll-engine/export"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// maxUploadBytes caps attendance workbook uploads.
const maxUploadBytes = 16 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine payroll.Engine
	Log    *logrus.Logger
}

// NewHandler creates a handler backed by the given store.
func NewHandler(store *sqlite.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Store: store, Log: log}
}

// =============================================================================
// PAY RUN HANDLERS
// =============================================================================

// CreatePayRun handles POST /api/payruns: a multipart upload carrying the
// attendance workbook plus the salary figures the original form collected.
//
// Form fields:
//
//	file          the XLSX workbook (required)
//	basic_salary  decimal, required
//	allowance     decimal, defaults to 0
//	holidays      comma-separated YYYY-MM-DD list, optional
//	invalid_dates "keep_row" (default) or "exclude_row"
//	rate_policy   JSON rate-policy override, optional
func (h *Handler) CreatePayRun(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, errors.New("missing attendance file"))
		return
	}
	defer file.Close()

	records, err := attendance.ReadWorkbook(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	basic, err := parseMoneyField(r.FormValue("basic_salary"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("basic_salary: %w", err))
		return
	}
	allowance := decimal.Zero
	if v := strings.TrimSpace(r.FormValue("allowance")); v != "" {
		if allowance, err = parseMoneyField(v); err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Errorf("allowance: %w", err))
			return
		}
	}

	holidays, err := attendance.ParseHolidays(r.FormValue("holidays"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	invalidDates, err := parseInvalidDatePolicy(r.FormValue("invalid_dates"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var rates payroll.RatePolicy
	if policyJSON := strings.TrimSpace(r.FormValue("rate_policy")); policyJSON != "" {
		if rates, err = factory.ParseRatePolicy(policyJSON); err != nil {
			h.writeConfigError(w, err)
			return
		}
	}

	in := payroll.PayRunInput{
		Records:      records,
		BasicSalary:  basic,
		Allowance:    allowance,
		Holidays:     holidays,
		Rates:        rates,
		InvalidDates: invalidDates,
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

// ComputePayRun handles POST /api/payruns/compute: records as JSON, result
// returned directly, nothing archived.
func (h *Handler) ComputePayRun(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("parse request: %w", err))
		return
	}

	holidays, err := attendance.ParseHolidays(strings.Join(req.Holidays, ","))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	invalidDates, err := parseInvalidDatePolicy(req.InvalidDatePolicy)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var rates payroll.RatePolicy
	if req.RatePolicy != nil {
		if rates, err = factory.BuildRatePolicy(*req.RatePolicy); err != nil {
			h.writeConfigError(w, err)
			return
		}
	}

	records := make([]payroll.AttendanceRecord, 0, len(req.Records))
	for _, dto := range req.Records {
		records = append(records, dto.toRecord())
	}

	basic := decimal.NewFromFloat(req.BasicSalary)
	allowance := decimal.NewFromFloat(req.Allowance)

	result, err := h.Engine.Compute(payroll.PayRunInput{
		Records:      records,
		BasicSalary:  basic,
		Allowance:    allowance,
		Holidays:     holidays,
		Rates:        rates,
		InvalidDates: invalidDates,
	})
	if err != nil {
		h.writeConfigError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resultDTO(basic, allowance, req.Holidays, result))
}

// ListPayRuns handles GET /api/payruns.
func (h *Handler) ListPayRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]RunSummaryDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunSummaryDTO{
			ID:          run.ID,
			CreatedAt:   run.CreatedAt.UTC().Format(time.RFC3339),
			BasicSalary: run.BasicSalary.StringFixed(2),
			Allowance:   run.Allowance.StringFixed(2),
			DailyWage:   run.Rates.DailyWage.StringFixed(2),
			HourlyWage:  run.Rates.HourlyWage.StringFixed(2),
			Employees:   run.Employees,
			DailyRows:   run.DailyRows,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// GetPayRun handles GET /api/payruns/{id}.
func (h *Handler) GetPayRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.loadRun(w, r)
	if run == nil || err != nil {
		return
	}
	h.writeJSON(w, http.StatusOK, storedRunDTO(run))
}

// ExportDailyCSV handles GET /api/payruns/{id}/daily.csv.
func (h *Handler) ExportDailyCSV(w http.ResponseWriter, r *http.Request) {
	run, err := h.loadRun(w, r)
	if run == nil || err != nil {
		return
	}
	writeCSVHeader(w, fmt.Sprintf("payrun-%s-daily.csv", run.ID))
	if err := export.WriteDailyCSV(w, run.Daily); err != nil {
		h.Log.WithError(err).Error("failed to stream daily CSV")
	}
}

// ExportMonthlyCSV handles GET /api/payruns/{id}/monthly.csv.
func (h *Handler) ExportMonthlyCSV(w http.ResponseWriter, r *http.Request) {
	run, err := h.loadRun(w, r)
	if run == nil || err != nil {
		return
	}
	writeCSVHeader(w, fmt.Sprintf("payrun-%s-monthly.csv", run.ID))
	if err := export.WriteMonthlyCSV(w, run.Monthly); err != nil {
		h.Log.WithError(err).Error("failed to stream monthly CSV")
	}
}

// =============================================================================
// SHARED PLUMBING
// =============================================================================

// archiveRun persists a computed run and returns its DTO.
func (h *Handler) archiveRun(r *http.Request, in payroll.PayRunInput, result *payroll.PayRunResult) (PayRunDTO, error) {
	holidayStrings := make([]string, 0, in.Holidays.Len())
	for _, d := range in.Holidays.Dates() {
		holidayStrings = append(holidayStrings, d.String())
	}

	run := sqlite.PayRun{
		ID:          uuid.NewString(),
		BasicSalary: in.BasicSalary,
		Allowance:   in.Allowance,
		Rates:       result.Rates,
		Holidays:    holidayStrings,
		Diagnostics: result.Diagnostics,
		CreatedAt:   time.Now().UTC(),
		Daily:       result.Daily,
		Monthly:     result.Monthly,
	}
	if err := h.Store.SaveRun(r.Context(), run); err != nil {
		return PayRunDTO{}, fmt.Errorf("archive pay run: %w", err)
	}

	h.Log.WithFields(logrus.Fields{
		"run_id":    run.ID,
		"records":   len(in.Records),
		"employees": len(result.Monthly),
		"clean":     result.Diagnostics.Clean(),
	}).Info("pay run archived")

	dto := resultDTO(in.BasicSalary, in.Allowance, holidayStrings, result)
	dto.ID = run.ID
	dto.CreatedAt = run.CreatedAt.Format(time.RFC3339)
	return dto, nil
}

// loadRun fetches the run in the URL, writing the error response itself.
func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*sqlite.PayRun, error) {
	id := chi.URLParam(r, "id")
	run, err := h.Store.GetRun(r.Context(), id)
	if errors.Is(err, sqlite.ErrRunNotFound) {
		h.writeError(w, http.StatusNotFound, err)
		return nil, err
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return nil, err
	}
	return run, nil
}

func parseMoneyField(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.New("expected a decimal amount")
	}
	return d, nil
}

func parseInvalidDatePolicy(s string) (payroll.InvalidDatePolicy, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "keep_row":
		return payroll.InvalidDateKeepRow, nil
	case "exclude_row":
		return payroll.InvalidDateExcludeRow, nil
	default:
		return 0, fmt.Errorf("unknown invalid-date policy %q", s)
	}
}

func writeCSVHeader(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.WithError(err).Error("failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.Log.WithError(err).Error("request failed")
	}
	h.writeJSON(w, status, ErrorDTO{Error: err.Error()})
}

// writeConfigError maps configuration problems to 422 and everything else
// to 500; compute itself has no other failure modes.
func (h *Handler) writeConfigError(w http.ResponseWriter, err error) {
	if errors.Is(err, payroll.ErrInvalidConfiguration) {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	h.writeError(w, http.StatusInternalServerError, err)
}
