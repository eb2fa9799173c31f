package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"simlab/domain/core"
	"simlab/domain/simulation"
	"simlab/internal/errors"
	"simlab/ports"
)

// RunRepositoryImpl implements ports.RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// EnsureSchema creates the runs table if it does not exist
func (r *RunRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS simulation_runs (
			id         UUID PRIMARY KEY,
			params     JSONB NOT NULL,
			summaries  JSONB NOT NULL,
			elapsed_ns BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return errors.Wrap(err, "failed to create simulation_runs table")
	}
	return nil
}

// runRow mirrors the simulation_runs table
type runRow struct {
	ID        string    `db:"id"`
	Params    []byte    `db:"params"`
	Summaries []byte    `db:"summaries"`
	ElapsedNS int64     `db:"elapsed_ns"`
	CreatedAt time.Time `db:"created_at"`
}

// SaveRun stores a run's parameters and summaries. Trial-level series are
// not persisted; exports carry those.
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, run *simulation.Run) error {
	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal run params")
	}
	summariesJSON, err := json.Marshal(run.Summaries)
	if err != nil {
		return errors.Wrap(err, "failed to marshal run summaries")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO simulation_runs (id, params, summaries, elapsed_ns, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			params = EXCLUDED.params,
			summaries = EXCLUDED.summaries,
			elapsed_ns = EXCLUDED.elapsed_ns`,
		run.ID.String(), paramsJSON, summariesJSON, int64(run.Elapsed), run.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "failed to save simulation run")
	}
	return nil
}

// GetRun fetches a run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*simulation.Run, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, params, summaries, elapsed_ns, created_at
		FROM simulation_runs WHERE id = $1`, id.String())
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("simulation run")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load simulation run")
	}
	return row.toRun()
}

// ListRuns returns the most recent runs, newest first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*simulation.Run, error) {
	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, params, summaries, elapsed_ns, created_at
		FROM simulation_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list simulation runs")
	}

	runs := make([]*simulation.Run, 0, len(rows))
	for _, row := range rows {
		run, err := row.toRun()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (row runRow) toRun() (*simulation.Run, error) {
	run := &simulation.Run{
		ID:        core.RunID(row.ID),
		Elapsed:   time.Duration(row.ElapsedNS),
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal(row.Params, &run.Params); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal run params")
	}
	if err := json.Unmarshal(row.Summaries, &run.Summaries); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal run summaries")
	}
	return run, nil
}
