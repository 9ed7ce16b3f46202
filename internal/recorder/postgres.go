package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"DealScout/internal/model"
)

// PostgresRecorder persists run history to PostgreSQL.
type PostgresRecorder struct {
	db *sql.DB
}

// NewPostgresRecorder opens a connection, waits for the database to come up,
// and runs schema migrations.
func NewPostgresRecorder(dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	r := &PostgresRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	log.Println("[INFO] postgres recorder connected")
	return r, nil
}

func (r *PostgresRecorder) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id     UUID PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL,
			input_path TEXT,
			listings   INTEGER
		);

		CREATE TABLE IF NOT EXISTS evaluations (
			id               SERIAL PRIMARY KEY,
			run_id           UUID NOT NULL REFERENCES runs(run_id),
			rank             INTEGER NOT NULL,
			address          TEXT,
			city             TEXT,
			state            TEXT,
			price            NUMERIC(14,2),
			est_rent         NUMERIC(12,2),
			rent_method      VARCHAR(40),
			rent_confidence  NUMERIC(4,2),
			cap_rate         NUMERIC(10,6),
			cash_on_cash     NUMERIC(10,6),
			dscr             NUMERIC(10,4),
			noi_annual       NUMERIC(14,2),
			cash_flow_annual NUMERIC(14,2),
			total_cash_in    NUMERIC(14,2),
			in_buy_box       BOOLEAN,
			meets_targets    BOOLEAN,
			manual_check     BOOLEAN,
			manual_reasons   TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_evaluations_run  ON evaluations(run_id);
		CREATE INDEX IF NOT EXISTS idx_evaluations_rank ON evaluations(run_id, rank);
	`)
	return err
}

// RecordRun inserts the run header then the evaluations in batches.
func (r *PostgresRecorder) RecordRun(run *Run, evals []*model.Evaluation) error {
	if _, err := r.db.Exec(`INSERT INTO runs (run_id, started_at, input_path, listings)
		VALUES ($1,$2,$3,$4)`,
		run.ID, run.StartedAt, run.InputPath, run.ListingCount,
	); err != nil {
		return fmt.Errorf("postgres: insert run: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(evals); i += batchSize {
		end := i + batchSize
		if end > len(evals) {
			end = len(evals)
		}
		if err := r.insertBatch(run.ID, i, evals[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRecorder) insertBatch(runID string, offset int, batch []*model.Evaluation) error {
	const cols = 19
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, e := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for c := 0; c < cols; c++ {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		l := e.Listing
		s := e.Screening
		valueArgs = append(valueArgs,
			runID, offset+idx+1, l.Address, l.City, l.State, l.Price,
			e.Estimate.Rent, e.Estimate.Method, e.Estimate.Confidence,
			capOf(e), cocOf(e), dscrOf(e), noiOf(e), cashFlowOf(e), cashInOf(e),
			s.InBuyBox, s.MeetsTargets, s.ManualCheck, strings.Join(s.Reasons, "; "),
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO evaluations
		(run_id, rank, address, city, state, price,
		 est_rent, rent_method, rent_confidence,
		 cap_rate, cash_on_cash, dscr, noi_annual, cash_flow_annual, total_cash_in,
		 in_buy_box, meets_targets, manual_check, manual_reasons)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := r.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert evaluations: %w", err)
	}
	return nil
}

func (r *PostgresRecorder) Close() error {
	return r.db.Close()
}
