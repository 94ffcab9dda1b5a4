// Package history keeps a SQLite log of simulation runs.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id          TEXT PRIMARY KEY,
	mode            TEXT NOT NULL,
	source          TEXT,
	input           TEXT NOT NULL,
	verdict         TEXT NOT NULL,
	reason          TEXT,
	detail          TEXT,
	steps           INTEGER NOT NULL,
	budget_exceeded INTEGER NOT NULL,
	trace_json      TEXT,
	created_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
`

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// RunRecord is one stored run.
type RunRecord struct {
	RunID          string
	Mode           string
	Source         string // definition file, empty for ad-hoc runs
	Input          string
	Verdict        string
	Reason         string
	Detail         string
	Steps          int
	BudgetExceeded bool
	TraceJSON      string // optional encoded trace
	CreatedAt      time.Time
}

// ModeSummary aggregates the stored runs of one mode.
type ModeSummary struct {
	Mode           string
	Runs           int
	Accepted       int
	BudgetExceeded int
}

// Store manages the run log in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and creates the schema.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run. A missing RunID or CreatedAt is filled in, and the
// stored record is returned.
func (s *Store) Record(rec RunRecord) (RunRecord, error) {
	if rec.RunID == "" {
		rec.RunID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, mode, source, input, verdict, reason, detail, steps, budget_exceeded, trace_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Mode, rec.Source, rec.Input, rec.Verdict, rec.Reason, rec.Detail,
		rec.Steps, boolToInt(rec.BudgetExceeded), rec.TraceJSON, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}
	return rec, nil
}

const selectRun = `SELECT run_id, mode, source, input, verdict, reason, detail, steps, budget_exceeded, trace_json, created_at FROM runs`

// Get returns the run with the given ID.
func (s *Store) Get(runID string) (RunRecord, error) {
	row := s.db.QueryRow(selectRun+` WHERE run_id = ?`, runID)
	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run: %w", err)
	}
	return rec, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(selectRun+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summary aggregates all stored runs per mode, in mode order.
func (s *Store) Summary() ([]ModeSummary, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), SUM(verdict = 'ACCEPTED'), SUM(budget_exceeded)
		 FROM runs GROUP BY mode ORDER BY mode`)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var out []ModeSummary
	for rows.Next() {
		var m ModeSummary
		if err := rows.Scan(&m.Mode, &m.Runs, &m.Accepted, &m.BudgetExceeded); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var (
		rec                            RunRecord
		source, reason, detail, traceJ sql.NullString
		budget                         int
		created                        string
	)
	if err := sc.Scan(&rec.RunID, &rec.Mode, &source, &rec.Input, &rec.Verdict, &reason, &detail,
		&rec.Steps, &budget, &traceJ, &created); err != nil {
		return RunRecord{}, err
	}
	rec.Source = source.String
	rec.Reason = reason.String
	rec.Detail = detail.String
	rec.TraceJSON = traceJ.String
	rec.BudgetExceeded = budget != 0
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = t
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
