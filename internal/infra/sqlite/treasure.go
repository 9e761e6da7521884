package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Treasure Room Repository (C19) ─────────────────────────────────────────
// One row per space, JSON payload, same shape as the player/corpse tables.

func (d *DB) GetTreasureRoom(ctx context.Context, spaceID domain.SpaceID) (*domain.TreasureRoomComponent, error) {
	row := d.db.QueryRowContext(ctx, `SELECT payload FROM treasure_rooms WHERE space_id = ?`, string(spaceID))
	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var room domain.TreasureRoomComponent
	if err := json.Unmarshal([]byte(payload), &room); err != nil {
		return nil, fmt.Errorf("unmarshal treasure room: %w", err)
	}
	return &room, nil
}

func (d *DB) PutTreasureRoom(ctx context.Context, room domain.TreasureRoomComponent) error {
	payload, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal treasure room: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO treasure_rooms (space_id, payload) VALUES (?, ?)
		 ON CONFLICT(space_id) DO UPDATE SET payload=excluded.payload`,
		string(room.SpaceID), string(payload),
	)
	return err
}
