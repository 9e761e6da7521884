package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Item Template Repository (C19/C20) ─────────────────────────────────────

func (d *DB) GetTemplate(ctx context.Context, id domain.ItemTemplateID) (*domain.ItemTemplate, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, name, description, item_type, rarity, base_price, weight,
		        weapon_bonus, armor_defense, resistances
		 FROM item_templates WHERE id = ?`, string(id))
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (d *DB) PutTemplate(ctx context.Context, t domain.ItemTemplate) error {
	resistances, err := json.Marshal(t.Resistances)
	if err != nil {
		return fmt.Errorf("marshal resistances: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO item_templates (id, name, description, item_type, rarity, base_price, weight,
		                             weapon_bonus, armor_defense, resistances)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, description=excluded.description, item_type=excluded.item_type,
			rarity=excluded.rarity, base_price=excluded.base_price, weight=excluded.weight,
			weapon_bonus=excluded.weapon_bonus, armor_defense=excluded.armor_defense,
			resistances=excluded.resistances`,
		string(t.ID), t.Name, t.Description, t.ItemType, int(t.Rarity), t.BasePrice, t.Weight,
		t.WeaponBonus, t.ArmorDefense, string(resistances),
	)
	return err
}

func (d *DB) ListTemplates(ctx context.Context) ([]domain.ItemTemplate, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, description, item_type, rarity, base_price, weight,
		        weapon_bonus, armor_defense, resistances FROM item_templates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ItemTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func scanTemplate(s scanner) (*domain.ItemTemplate, error) {
	var t domain.ItemTemplate
	var id, resistances string
	var rarity int
	err := s.Scan(&id, &t.Name, &t.Description, &t.ItemType, &rarity, &t.BasePrice, &t.Weight,
		&t.WeaponBonus, &t.ArmorDefense, &resistances)
	if err != nil {
		return nil, err
	}
	t.ID = domain.ItemTemplateID(id)
	t.Rarity = domain.Rarity(rarity)
	if err := json.Unmarshal([]byte(resistances), &t.Resistances); err != nil {
		return nil, fmt.Errorf("unmarshal resistances: %w", err)
	}
	return &t, nil
}
