/*
Package sqlite provides a SQLite-backed archive of computed pay runs.

PURPOSE:
  The engine itself is pure and keeps nothing between runs. This store
  archives each run so the API can list past runs and re-serve their tables
  without recomputation. A run is written once, atomically, and never
  updated: re-running the same inputs produces a new run.

KEY TABLES:
  pay_runs:        One row per run (inputs, derived rates, diagnostics)
  daily_entries:   The daily breakdown table of a run
  monthly_totals:  The monthly totals table of a run

STORAGE CONVENTIONS:
  - Money and hour quantities stored as decimal strings (TEXT), never REAL
  - Dates stored as "2006-01-02"; an invalid record date stored as ''
  - Diagnostics stored as a JSON blob

WAL MODE:
  SQLite is opened with WAL for better read concurrency. A sync.RWMutex
  serializes writers, matching the single-writer model SQLite enforces.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  ...
  err = store.SaveRun(ctx, run)

SEE ALSO:
  - payroll/engine.go: Produces the tables archived here
  - api/handlers.go:   The only caller
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// ErrRunNotFound is returned when the requested pay run does not exist.
var ErrRunNotFound = errors.New("pay run not found")

// Store archives pay runs in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given path. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pay_runs (
		id TEXT PRIMARY KEY,
		basic_salary TEXT NOT NULL,
		allowance TEXT NOT NULL,
		daily_wage TEXT NOT NULL,
		hourly_wage TEXT NOT NULL,
		holidays TEXT NOT NULL,
		diagnostics_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_entries (
		run_id TEXT NOT NULL REFERENCES pay_runs(id),
		position INTEGER NOT NULL,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date TEXT NOT NULL,
		in_time TEXT,
		out_time TEXT,
		total_hours TEXT NOT NULL,
		extra_hours TEXT NOT NULL,
		daily_pay TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_daily_entries_run
		ON daily_entries(run_id);
	CREATE INDEX IF NOT EXISTS idx_daily_entries_employee
		ON daily_entries(run_id, employee_id);

	CREATE TABLE IF NOT EXISTS monthly_totals (
		run_id TEXT NOT NULL REFERENCES pay_runs(id),
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		total_hours TEXT NOT NULL,
		extra_hours TEXT NOT NULL,
		daily_pay_sum TEXT NOT NULL,
		fixed_monthly_pay TEXT NOT NULL,
		final_monthly_pay TEXT NOT NULL,
		PRIMARY KEY (run_id, employee_id, employee_name)
	);

	CREATE INDEX IF NOT EXISTS idx_monthly_totals_run
		ON monthly_totals(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// PayRun is one archived run: the inputs that produced it and its tables.
type PayRun struct {
	ID          string
	BasicSalary decimal.Decimal
	Allowance   decimal.Decimal
	Rates       payroll.WageRates
	Holidays    []string // ISO dates, for display
	Diagnostics payroll.Diagnostics
	CreatedAt   time.Time

	Daily   []payroll.DailyPayEntry
	Monthly []payroll.MonthlyTotal
}

// RunSummary is the listing view of a run, without its tables.
type RunSummary struct {
	ID          string
	BasicSalary decimal.Decimal
	Allowance   decimal.Decimal
	Rates       payroll.WageRates
	CreatedAt   time.Time
	Employees   int
	DailyRows   int
}

// =============================================================================
// WRITES
// =============================================================================

// SaveRun archives a complete run atomically.
func (s *Store) SaveRun(ctx context.Context, run PayRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	diagJSON, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}
	holidaysJSON, err := json.Marshal(run.Holidays)
	if err != nil {
		return fmt.Errorf("failed to encode holidays: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pay_runs
		(id, basic_salary, allowance, daily_wage, hourly_wage, holidays, diagnostics_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.BasicSalary.String(),
		run.Allowance.String(),
		run.Rates.DailyWage.String(),
		run.Rates.HourlyWage.String(),
		string(holidaysJSON),
		string(diagJSON),
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pay run: %w", err)
	}

	for i, e := range run.Daily {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO daily_entries
			(run_id, position, employee_id, employee_name, date, in_time, out_time, total_hours, extra_hours, daily_pay)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, string(e.EmployeeID), e.EmployeeName, e.Date.String(),
			e.InTime, e.OutTime,
			e.TotalHours.String(), e.ExtraHours.String(), e.DailyPay.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert daily entry: %w", err)
		}
	}

	for _, m := range run.Monthly {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO monthly_totals
			(run_id, employee_id, employee_name, total_hours, extra_hours, daily_pay_sum, fixed_monthly_pay, final_monthly_pay)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, string(m.EmployeeID), m.EmployeeName,
			m.TotalHoursSum.String(), m.ExtraHoursSum.String(), m.DailyPaySum.String(),
			m.FixedMonthlyPay.String(), m.FinalMonthlyPay.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert monthly total: %w", err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// READS
// =============================================================================

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.basic_salary, r.allowance, r.daily_wage, r.hourly_wage, r.created_at,
		       (SELECT COUNT(*) FROM monthly_totals m WHERE m.run_id = r.id),
		       (SELECT COUNT(*) FROM daily_entries d WHERE d.run_id = r.id)
		FROM pay_runs r
		ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			sum                                      RunSummary
			basic, allowance, daily, hourly, created string
		)
		if err := rows.Scan(&sum.ID, &basic, &allowance, &daily, &hourly, &created, &sum.Employees, &sum.DailyRows); err != nil {
			return nil, fmt.Errorf("failed to scan pay run: %w", err)
		}
		if err := decodeRunHeader(&sum.BasicSalary, basic, &sum.Allowance, allowance, &sum.Rates, daily, hourly, &sum.CreatedAt, created); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetRun loads a full run, including both tables.
func (s *Store) GetRun(ctx context.Context, id string) (*PayRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		run                                                              PayRun
		basic, allowance, daily, hourly, holidaysJSON, diagJSON, created string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, basic_salary, allowance, daily_wage, hourly_wage, holidays, diagnostics_json, created_at
		FROM pay_runs WHERE id = ?`, id,
	).Scan(&run.ID, &basic, &allowance, &daily, &hourly, &holidaysJSON, &diagJSON, &created)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pay run: %w", err)
	}

	if err := decodeRunHeader(&run.BasicSalary, basic, &run.Allowance, allowance, &run.Rates, daily, hourly, &run.CreatedAt, created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(holidaysJSON), &run.Holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}
	if err := json.Unmarshal([]byte(diagJSON), &run.Diagnostics); err != nil {
		return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
	}

	if run.Daily, err = s.loadDaily(ctx, id); err != nil {
		return nil, err
	}
	if run.Monthly, err = s.loadMonthly(ctx, id); err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Store) loadDaily(ctx context.Context, runID string) ([]payroll.DailyPayEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, employee_name, date, in_time, out_time, total_hours, extra_hours, daily_pay
		FROM daily_entries WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily entries: %w", err)
	}
	defer rows.Close()

	var out []payroll.DailyPayEntry
	for rows.Next() {
		var (
			e                 payroll.DailyPayEntry
			id, date          string
			total, extra, pay string
		)
		if err := rows.Scan(&id, &e.EmployeeName, &date, &e.InTime, &e.OutTime, &total, &extra, &pay); err != nil {
			return nil, fmt.Errorf("failed to scan daily entry: %w", err)
		}
		e.EmployeeID = payroll.EmployeeID(id)
		e.Date = payroll.ParseDate(date) // '' round-trips to invalid
		if e.TotalHours, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("failed to decode total hours: %w", err)
		}
		if e.ExtraHours, err = decimal.NewFromString(extra); err != nil {
			return nil, fmt.Errorf("failed to decode extra hours: %w", err)
		}
		if e.DailyPay, err = decimal.NewFromString(pay); err != nil {
			return nil, fmt.Errorf("failed to decode daily pay: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) loadMonthly(ctx context.Context, runID string) ([]payroll.MonthlyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, employee_name, total_hours, extra_hours, daily_pay_sum, fixed_monthly_pay, final_monthly_pay
		FROM monthly_totals WHERE run_id = ? ORDER BY employee_id ASC, employee_name ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly totals: %w", err)
	}
	defer rows.Close()

	var out []payroll.MonthlyTotal
	for rows.Next() {
		var (
			m                               payroll.MonthlyTotal
			id                              string
			total, extra, pay, fixed, final string
		)
		if err := rows.Scan(&id, &m.EmployeeName, &total, &extra, &pay, &fixed, &final); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		m.EmployeeID = payroll.EmployeeID(id)
		if m.TotalHoursSum, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("failed to decode total hours: %w", err)
		}
		if m.ExtraHoursSum, err = decimal.NewFromString(extra); err != nil {
			return nil, fmt.Errorf("failed to decode extra hours: %w", err)
		}
		if m.DailyPaySum, err = decimal.NewFromString(pay); err != nil {
			return nil, fmt.Errorf("failed to decode daily pay sum: %w", err)
		}
		if m.FixedMonthlyPay, err = decimal.NewFromString(fixed); err != nil {
			return nil, fmt.Errorf("failed to decode fixed monthly pay: %w", err)
		}
		if m.FinalMonthlyPay, err = decimal.NewFromString(final); err != nil {
			return nil, fmt.Errorf("failed to decode final monthly pay: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func decodeRunHeader(basic *decimal.Decimal, basicStr string, allowance *decimal.Decimal, allowanceStr string,
	rates *payroll.WageRates, dailyStr, hourlyStr string, createdAt *time.Time, createdStr string) error {

	var err error
	if *basic, err = decimal.NewFromString(basicStr); err != nil {
		return fmt.Errorf("failed to decode basic salary: %w", err)
	}
	if *allowance, err = decimal.NewFromString(allowanceStr); err != nil {
		return fmt.Errorf("failed to decode allowance: %w", err)
	}
	if rates.DailyWage, err = decimal.NewFromString(dailyStr); err != nil {
		return fmt.Errorf("failed to decode daily wage: %w", err)
	}
	if rates.HourlyWage, err = decimal.NewFromString(hourlyStr); err != nil {
		return fmt.Errorf("failed to decode hourly wage: %w", err)
	}
	if *createdAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return fmt.Errorf("failed to decode created_at: %w", err)
	}
	return nil
}
