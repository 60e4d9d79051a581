// Package store persists runs in SQLite: the nodes, the four networks and
// the score rows of each run, keyed by a random UUID.
//
// Matrices are not stored; they are recomputed from the nodes on demand.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/katalvlaran/railnet/score"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound indicates that no run matches.
	ErrNotFound = errors.New("store: run not found")

	// ErrNilResult indicates SaveRun was given no result.
	ErrNilResult = errors.New("store: nil result")
)

// Summary describes a stored run without its payload.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	NodeCount int       `json:"node_count"`
}

// Run is a stored run.
type Run struct {
	Summary
	Nodes    []pipeline.Node   `json:"nodes"`
	Networks []network.Network `json:"networks"`
	Scores   []score.Row       `json:"scores"`
}

// Table returns the score rows as a table.
func (r *Run) Table() *score.Table { return score.NewTable(r.Scores...) }

// Network returns the stored network for obj.
func (r *Run) Network(obj network.Objective) (network.Network, bool) {
	for _, nw := range r.Networks {
		if nw.Objective == obj {
			return nw, true
		}
	}

	return network.Network{}, false
}

// Store is a SQLite run store. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (creating if needed) the database at path and migrates it.
// ":memory:" gives a private in-memory database.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection: SQLite has a single writer, and an in-memory database
	// exists only on the connection that created it.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return s, nil
}

// dsn enables foreign keys on every connection the pool opens, so the
// ON DELETE CASCADE clauses hold regardless of which connection runs a delete.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return path + sep + "_pragma=foreign_keys(1)"
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		node_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS nodes (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		population INTEGER NOT NULL,
		PRIMARY KEY (run_id, idx),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS networks (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		objective TEXT NOT NULL,
		kind TEXT NOT NULL,
		cost REAL NOT NULL,
		truncated INTEGER NOT NULL DEFAULT 0,
		edges JSON NOT NULL,
		tour JSON,
		PRIMARY KEY (run_id, objective),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS scores (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		objective TEXT NOT NULL,
		ridership REAL NOT NULL,
		revenue REAL NOT NULL,
		length REAL NOT NULL,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)

	return err
}

// SaveRun stores res under a new id and returns it.
func (s *Store) SaveRun(ctx context.Context, res *pipeline.Result, label string) (uuid.UUID, error) {
	if res == nil {
		return uuid.Nil, ErrNilResult
	}
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, label, created_at, node_count) VALUES (?, ?, ?, ?)`,
		id.String(), label, s.now().UTC().Format(time.RFC3339Nano), len(res.Nodes),
	); err != nil {
		return uuid.Nil, fmt.Errorf("store: insert run: %w", err)
	}

	for _, n := range res.Nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (run_id, idx, code, name, lon, lat, x, y, population)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), n.Index, n.Code, n.Name,
			n.Location[0], n.Location[1], n.Projected[0], n.Projected[1], n.Population,
		); err != nil {
			return uuid.Nil, fmt.Errorf("store: insert node %s: %w", n.Code, err)
		}
	}

	for i, nw := range res.Networks {
		edges, err := json.Marshal(nw.Edges)
		if err != nil {
			return uuid.Nil, fmt.Errorf("store: encode %s edges: %w", nw.Objective, err)
		}
		var tour []byte
		if nw.Tour != nil {
			if tour, err = json.Marshal(nw.Tour); err != nil {
				return uuid.Nil, fmt.Errorf("store: encode %s tour: %w", nw.Objective, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO networks (run_id, position, objective, kind, cost, truncated, edges, tour)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), i, nw.Objective.Slug(), nw.Kind.String(), nw.Cost, boolToInt(nw.Truncated),
			string(edges), nullBytes(tour),
		); err != nil {
			return uuid.Nil, fmt.Errorf("store: insert network %s: %w", nw.Objective, err)
		}
	}

	if res.Table != nil {
		for i, r := range res.Table.Rows() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO scores (run_id, position, name, objective, ridership, revenue, length)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id.String(), i, r.Name, r.Objective.Slug(), r.Ridership, r.Revenue, r.Length,
			); err != nil {
				return uuid.Nil, fmt.Errorf("store: insert score %s: %w", r.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("store: commit: %w", err)
	}

	return id, nil
}

// ListRuns returns all run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, created_at, node_count
		FROM runs
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate runs: %w", err)
	}

	return out, nil
}

// LatestRun returns the newest run.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, created_at, node_count
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)

	return s.load(ctx, row)
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, created_at, node_count
		FROM runs
		WHERE id = ?
	`, id.String())

	return s.load(ctx, row)
}

// DeleteRun removes a run and everything stored with it.
func (s *Store) DeleteRun(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("store: delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	return nil
}

func (s *Store) load(ctx context.Context, row *sql.Row) (*Run, error) {
	sum, err := scanSummary(row)
	if err != nil {
		return nil, err
	}
	run := &Run{Summary: sum}
	if run.Nodes, err = s.loadNodes(ctx, sum.ID); err != nil {
		return nil, err
	}
	if run.Networks, err = s.loadNetworks(ctx, sum.ID); err != nil {
		return nil, err
	}
	if run.Scores, err = s.loadScores(ctx, sum.ID); err != nil {
		return nil, err
	}

	return run, nil
}
