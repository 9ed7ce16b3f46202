package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"DealScout/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc queries can read while a run is being written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id     TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			input_path TEXT,
			listings   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS evaluations (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL,
			rank             INTEGER NOT NULL,
			address          TEXT,
			city             TEXT,
			state            TEXT,
			price            REAL,
			est_rent         REAL,
			rent_method      TEXT,
			rent_confidence  REAL,
			cap_rate         REAL,
			cash_on_cash     REAL,
			dscr             REAL,
			noi_annual       REAL,
			cash_flow_annual REAL,
			total_cash_in    REAL,
			in_buy_box       INTEGER,
			meets_targets    INTEGER,
			manual_check     INTEGER,
			manual_reasons   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_run ON evaluations(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun writes the run header and one row per evaluation in a single
// transaction.
func (r *SQLiteRecorder) RecordRun(run *Run, evals []*model.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs (run_id, timestamp, input_path, listings)
		VALUES (?,?,?,?)`,
		run.ID, run.StartedAt.Unix(), run.InputPath, run.ListingCount,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO evaluations
		(run_id, rank, address, city, state, price,
		 est_rent, rent_method, rent_confidence,
		 cap_rate, cash_on_cash, dscr, noi_annual, cash_flow_annual, total_cash_in,
		 in_buy_box, meets_targets, manual_check, manual_reasons)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare evaluations insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range evals {
		l := e.Listing
		s := e.Screening
		if _, err := stmt.Exec(
			run.ID, i+1, l.Address, l.City, l.State, l.Price,
			e.Estimate.Rent, e.Estimate.Method, e.Estimate.Confidence,
			capOf(e), cocOf(e), dscrOf(e), noiOf(e), cashFlowOf(e), cashInOf(e),
			s.InBuyBox, s.MeetsTargets, s.ManualCheck, strings.Join(s.Reasons, "; "),
		); err != nil {
			return fmt.Errorf("insert evaluation %q: %w", l.Address, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
