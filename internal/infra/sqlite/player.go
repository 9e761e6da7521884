package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Player Repository (C1) ─────────────────────────────────────────────────
// Each save slot is a full PlayerState blob keyed by id, named by Name; this
// mirrors the teacher's key-value node_info table but with a JSON payload
// column rather than a flat string, since PlayerState is a nested structure.

func (d *DB) GetPlayer(ctx context.Context, id domain.EntityID) (*domain.PlayerState, error) {
	row := d.db.QueryRowContext(ctx, `SELECT payload FROM players WHERE id = ?`, string(id))
	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrEntityNotFound
		}
		return nil, err
	}
	var p domain.PlayerState
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("unmarshal player: %w", err)
	}
	return &p, nil
}

func (d *DB) PutPlayer(ctx context.Context, p domain.PlayerState) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal player: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO players (id, name, payload) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, payload=excluded.payload`,
		string(p.ID), p.Name, string(payload),
	)
	return err
}

func (d *DB) ListSaves(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT name FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
