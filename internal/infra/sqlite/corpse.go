package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Corpse Repository (C14/C15) ────────────────────────────────────────────

func (d *DB) GetCorpse(ctx context.Context, id domain.CorpseID) (*domain.CorpseData, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, player_id, space_id, gold, decay_at, looted, inventory, equipment
		 FROM corpses WHERE id = ?`, string(id))
	c, err := scanCorpse(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCorpseNotFound
	}
	return c, err
}

func (d *DB) PutCorpse(ctx context.Context, c domain.CorpseData) error {
	inventory, err := json.Marshal(c.Inventory)
	if err != nil {
		return fmt.Errorf("marshal inventory: %w", err)
	}
	equipment, err := json.Marshal(c.Equipment)
	if err != nil {
		return fmt.Errorf("marshal equipment: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO corpses (id, player_id, space_id, gold, decay_at, looted, inventory, equipment)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			player_id=excluded.player_id, space_id=excluded.space_id, gold=excluded.gold,
			decay_at=excluded.decay_at, looted=excluded.looted,
			inventory=excluded.inventory, equipment=excluded.equipment`,
		string(c.ID), string(c.PlayerID), string(c.SpaceID), c.Gold, c.DecayTimer.Unix(), c.Looted,
		string(inventory), string(equipment),
	)
	return err
}

func (d *DB) DeleteCorpse(ctx context.Context, id domain.CorpseID) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM corpses WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrCorpseNotFound
	}
	return nil
}

func (d *DB) ExpiredCorpses(ctx context.Context, nowUnix int64) ([]domain.CorpseData, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, player_id, space_id, gold, decay_at, looted, inventory, equipment
		 FROM corpses WHERE decay_at <= ?`, nowUnix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CorpseData
	for rows.Next() {
		c, err := scanCorpse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCorpse(s scanner) (*domain.CorpseData, error) {
	var c domain.CorpseData
	var id, playerID, spaceID, inventory, equipment string
	var decayAt int64
	err := s.Scan(&id, &playerID, &spaceID, &c.Gold, &decayAt, &c.Looted, &inventory, &equipment)
	if err != nil {
		return nil, err
	}
	c.ID = domain.CorpseID(id)
	c.PlayerID = domain.EntityID(playerID)
	c.SpaceID = domain.SpaceID(spaceID)
	c.DecayTimer = time.Unix(decayAt, 0)
	if err := json.Unmarshal([]byte(inventory), &c.Inventory); err != nil {
		return nil, fmt.Errorf("unmarshal inventory: %w", err)
	}
	if err := json.Unmarshal([]byte(equipment), &c.Equipment); err != nil {
		return nil, fmt.Errorf("unmarshal equipment: %w", err)
	}
	return &c, nil
}
