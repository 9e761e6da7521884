package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Entity Repository (C1) ─────────────────────────────────────────────────
// Entities are a tagged variant (domain.EntityKind); the payload column
// holds the kind-specific JSON body so one table serves NPC/Item/Feature/Corpse.

func (d *DB) GetEntity(ctx context.Context, id domain.EntityID) (domain.Entity, error) {
	row := d.db.QueryRowContext(ctx, `SELECT kind, payload FROM entities WHERE id = ?`, string(id))
	var kind int
	var payload string
	if err := row.Scan(&kind, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrEntityNotFound
		}
		return nil, err
	}
	return decodeEntity(domain.EntityKind(kind), payload)
}

func (d *DB) PutEntity(ctx context.Context, e domain.Entity) error {
	return d.PutEntityIn(ctx, e, "")
}

// PutEntityIn stores e and records which space it currently occupies
// (empty spaceID for entities carried in an inventory rather than a room).
func (d *DB) PutEntityIn(ctx context.Context, e domain.Entity, spaceID domain.SpaceID) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO entities (id, kind, space_id, payload) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET kind=excluded.kind, space_id=excluded.space_id, payload=excluded.payload`,
		string(e.EntityID()), int(e.Kind()), string(spaceID), string(payload),
	)
	return err
}

func (d *DB) DeleteEntity(ctx context.Context, id domain.EntityID) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (d *DB) EntitiesInSpace(ctx context.Context, space domain.SpaceID) ([]domain.Entity, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT kind, payload FROM entities WHERE space_id = ?`, string(space))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Entity
	for rows.Next() {
		var kind int
		var payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, err
		}
		e, err := decodeEntity(domain.EntityKind(kind), payload)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func decodeEntity(kind domain.EntityKind, payload string) (domain.Entity, error) {
	switch kind {
	case domain.KindNPC:
		var n domain.NPC
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			return nil, fmt.Errorf("unmarshal npc: %w", err)
		}
		return &n, nil
	case domain.KindItem:
		var it domain.Item
		if err := json.Unmarshal([]byte(payload), &it); err != nil {
			return nil, fmt.Errorf("unmarshal item: %w", err)
		}
		return &it, nil
	case domain.KindFeature:
		var f domain.Feature
		if err := json.Unmarshal([]byte(payload), &f); err != nil {
			return nil, fmt.Errorf("unmarshal feature: %w", err)
		}
		return &f, nil
	case domain.KindCorpse:
		var c domain.Corpse
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("unmarshal corpse: %w", err)
		}
		return &c, nil
	default:
		return nil, fmt.Errorf("%w: unknown entity kind %d", domain.ErrParseFailed, kind)
	}
}
