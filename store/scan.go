package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/katalvlaran/railnet/score"
	"github.com/paulmach/orb"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(sc scanner) (Summary, error) {
	var (
		id, label, created string
		count              int
	)
	if err := sc.Scan(&id, &label, &created, &count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, fmt.Errorf("store: scan run: %w", err)
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return Summary{}, fmt.Errorf("store: run id %q: %w", id, err)
	}
	at, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Summary{}, fmt.Errorf("store: run %s created_at: %w", id, err)
	}

	return Summary{ID: uid, Label: label, CreatedAt: at, NodeCount: count}, nil
}

func (s *Store) loadNodes(ctx context.Context, id uuid.UUID) ([]pipeline.Node, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, code, name, lon, lat, x, y, population
		FROM nodes WHERE run_id = ? ORDER BY idx
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("store: query nodes: %w", err)
	}
	defer rows.Close()

	var out []pipeline.Node
	for rows.Next() {
		var (
			n              pipeline.Node
			lon, lat, x, y float64
		)
		if err := rows.Scan(&n.Index, &n.Code, &n.Name, &lon, &lat, &x, &y, &n.Population); err != nil {
			return nil, fmt.Errorf("store: scan node: %w", err)
		}
		n.Location = orb.Point{lon, lat}
		n.Projected = orb.Point{x, y}
		out = append(out, n)
	}

	return out, rows.Err()
}

func (s *Store) loadNetworks(ctx context.Context, id uuid.UUID) ([]network.Network, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT objective, kind, cost, truncated, edges, tour
		FROM networks WHERE run_id = ? ORDER BY position
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("store: query networks: %w", err)
	}
	defer rows.Close()

	var out []network.Network
	for rows.Next() {
		var (
			nw        network.Network
			obj, kind string
			truncated int
			edges     string
			tour      sql.NullString
		)
		if err := rows.Scan(&obj, &kind, &nw.Cost, &truncated, &edges, &tour); err != nil {
			return nil, fmt.Errorf("store: scan network: %w", err)
		}
		if err := nw.Objective.UnmarshalText([]byte(obj)); err != nil {
			return nil, fmt.Errorf("store: network objective: %w", err)
		}
		if err := nw.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, fmt.Errorf("store: network kind: %w", err)
		}
		nw.Truncated = truncated != 0
		if err := json.Unmarshal([]byte(edges), &nw.Edges); err != nil {
			return nil, fmt.Errorf("store: %s edges: %w", obj, err)
		}
		if tour.Valid && tour.String != "" {
			if err := json.Unmarshal([]byte(tour.String), &nw.Tour); err != nil {
				return nil, fmt.Errorf("store: %s tour: %w", obj, err)
			}
		}
		out = append(out, nw)
	}

	return out, rows.Err()
}

func (s *Store) loadScores(ctx context.Context, id uuid.UUID) ([]score.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, objective, ridership, revenue, length
		FROM scores WHERE run_id = ? ORDER BY position
	`, id.String())
	if err != nil {
		return nil, fmt.Errorf("store: query scores: %w", err)
	}
	defer rows.Close()

	var out []score.Row
	for rows.Next() {
		var (
			r   score.Row
			obj string
		)
		if err := rows.Scan(&r.Name, &obj, &r.Ridership, &r.Revenue, &r.Length); err != nil {
			return nil, fmt.Errorf("store: scan score: %w", err)
		}
		if err := r.Objective.UnmarshalText([]byte(obj)); err != nil {
			return nil, fmt.Errorf("store: score objective: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullBytes maps an empty payload to SQL NULL.
func nullBytes(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
