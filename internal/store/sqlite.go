package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/collab-radar/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path, configures WAL mode,
// and applies the schema.
func NewSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	subject_company TEXT NOT NULL,
	results         TEXT NOT NULL,
	created_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_subject_company ON runs(subject_company);
`

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run model.ResearchRun) error {
	if run.ID == "" {
		return eris.New("sqlite: run ID is required")
	}
	resultsJSON, err := json.Marshal(run.Results)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal results")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, subject_company, results, created_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.SubjectCompany, string(resultsJSON), run.CreatedAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.ResearchRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, subject_company, results, created_at FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if eris.Is(err, sql.ErrNoRows) {
		return nil, eris.Errorf("sqlite: run not found: %s", id)
	}
	return run, err
}

func (s *SQLiteStore) LastRun(ctx context.Context) (*model.ResearchRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, subject_company, results, created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`,
	)
	run, err := scanRun(row)
	if eris.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	return run, err
}

func scanRun(row *sql.Row) (*model.ResearchRun, error) {
	var run model.ResearchRun
	var resultsJSON string
	if err := row.Scan(&run.ID, &run.SubjectCompany, &resultsJSON, &run.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, eris.Wrap(err, "sqlite: scan run")
	}
	if err := json.Unmarshal([]byte(resultsJSON), &run.Results); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal results")
	}
	return &run, nil
}
