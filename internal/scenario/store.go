// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scenario persists simulation scenarios and their run artifacts
// in a local SQLite database, and imports/exports them as YAML, JSON,
// and CSV.
package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/vhivrap/pkg/types"
)

const dbFile = "vhivrap.db"

// ErrNotFound is returned when a named scenario does not exist.
var ErrNotFound = errors.New("scenario not found")

// Store manages the scenario SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the scenario database at dataDir/vhivrap.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("store data directory not configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scenarios (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			module TEXT NOT NULL,
			params TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scenarios_module ON scenarios(module)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
			module TEXT NOT NULL,
			artifacts TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_scenario_id ON runs(scenario_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save persists a scenario, assigning an ID and creation time on first
// save. Saving an existing name updates its module and parameters in
// place and keeps the original ID.
func (s *Store) Save(ctx context.Context, sc *types.Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("scenario name is empty")
	}
	if sc.Module == "" {
		return fmt.Errorf("scenario module is empty")
	}

	existing, err := s.Get(ctx, sc.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	paramsJSON, merr := json.Marshal(sc.Params)
	if merr != nil {
		return fmt.Errorf("marshaling params: %w", merr)
	}

	// Update in place when the name exists, keeping the original identity.
	if err == nil {
		sc.ID = existing.ID
		sc.CreatedAt = existing.CreatedAt
		_, err = s.db.ExecContext(ctx,
			`UPDATE scenarios SET module = ?, params = ? WHERE name = ?`,
			string(sc.Module), string(paramsJSON), sc.Name,
		)
		if err != nil {
			return fmt.Errorf("updating scenario %q: %w", sc.Name, err)
		}
		return nil
	}

	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, module, params, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sc.ID, sc.Name, string(sc.Module), string(paramsJSON),
		sc.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving scenario %q: %w", sc.Name, err)
	}
	return nil
}

// Get returns the scenario with the given name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (types.Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, module, params, created_at FROM scenarios WHERE name = ?`, name)

	sc, err := scanScenario(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return types.Scenario{}, fmt.Errorf("loading scenario %q: %w", name, err)
	}
	return sc, nil
}

// List returns stored scenarios ordered by name. A non-empty module
// restricts the listing to that module.
func (s *Store) List(ctx context.Context, module types.ModuleKind) ([]types.Scenario, error) {
	query := `SELECT id, name, module, params, created_at FROM scenarios`
	var args []any
	if module != "" {
		query += ` WHERE module = ?`
		args = append(args, string(module))
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []types.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scenario: %w", err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}

// Delete removes a scenario and, through the foreign key cascade, its runs.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting scenario %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// SaveRun attaches run artifacts to a stored scenario, assigning the run
// an ID and creation time when missing.
func (s *Store) SaveRun(ctx context.Context, run *types.RunResult) error {
	if run.ScenarioID == "" {
		return fmt.Errorf("run has no scenario ID")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	artifacts, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling run artifacts: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, scenario_id, module, artifacts, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.ScenarioID, string(run.Module), string(artifacts),
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving run for scenario %s: %w", run.ScenarioID, err)
	}
	return nil
}

// LatestRun returns the most recent run for a scenario ID, or ErrNotFound
// when the scenario has no runs.
func (s *Store) LatestRun(ctx context.Context, scenarioID string) (types.RunResult, error) {
	var artifacts string
	err := s.db.QueryRowContext(ctx,
		`SELECT artifacts FROM runs WHERE scenario_id = ? ORDER BY created_at DESC LIMIT 1`,
		scenarioID,
	).Scan(&artifacts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.RunResult{}, fmt.Errorf("%w: no runs for scenario %s", ErrNotFound, scenarioID)
		}
		return types.RunResult{}, fmt.Errorf("loading run: %w", err)
	}

	var run types.RunResult
	if err := json.Unmarshal([]byte(artifacts), &run); err != nil {
		return types.RunResult{}, fmt.Errorf("parsing run artifacts: %w", err)
	}
	return run, nil
}

// scanner abstracts sql.Row and sql.Rows for scanScenario.
type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(row scanner) (types.Scenario, error) {
	var (
		sc         types.Scenario
		module     string
		paramsJSON string
		createdAt  string
	)
	if err := row.Scan(&sc.ID, &sc.Name, &module, &paramsJSON, &createdAt); err != nil {
		return types.Scenario{}, err
	}

	sc.Module = types.ModuleKind(module)
	if err := json.Unmarshal([]byte(paramsJSON), &sc.Params); err != nil {
		return types.Scenario{}, fmt.Errorf("parsing params: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		sc.CreatedAt = t
	}
	return sc, nil
}
