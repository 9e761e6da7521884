package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Quest Repository (C18) ─────────────────────────────────────────────────
// Adapted from the teacher's engagement quest table: same id/status/reward
// shape, with Objectives carried as a JSON column instead of a flat counter
// since a quest here may require several distinct objectives (P9).

func (d *DB) GetQuest(ctx context.Context, id domain.QuestID) (*domain.Quest, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, giver_id, title, description, status, reward_xp, reward_gold, objectives
		 FROM quests WHERE id = ?`, string(id))
	q, err := scanQuest(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrQuestNotFound
	}
	return q, err
}

func (d *DB) PutQuest(ctx context.Context, q domain.Quest) error {
	objectives, err := json.Marshal(q.Objectives)
	if err != nil {
		return fmt.Errorf("marshal objectives: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO quests (id, giver_id, title, description, status, reward_xp, reward_gold, objectives)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			giver_id=excluded.giver_id, title=excluded.title, description=excluded.description,
			status=excluded.status, reward_xp=excluded.reward_xp, reward_gold=excluded.reward_gold,
			objectives=excluded.objectives`,
		string(q.ID), string(q.GiverID), q.Title, q.Description, int(q.Status), q.RewardXP, q.RewardGold, string(objectives),
	)
	return err
}

func (d *DB) ListByStatus(ctx context.Context, status domain.QuestStatus) ([]domain.Quest, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, giver_id, title, description, status, reward_xp, reward_gold, objectives
		 FROM quests WHERE status = ?`, int(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func scanQuest(s scanner) (*domain.Quest, error) {
	var q domain.Quest
	var id, giverID, objectives string
	var status int
	err := s.Scan(&id, &giverID, &q.Title, &q.Description, &status, &q.RewardXP, &q.RewardGold, &objectives)
	if err != nil {
		return nil, err
	}
	q.ID = domain.QuestID(id)
	q.GiverID = domain.EntityID(giverID)
	q.Status = domain.QuestStatus(status)
	if err := json.Unmarshal([]byte(objectives), &q.Objectives); err != nil {
		return nil, fmt.Errorf("unmarshal objectives: %w", err)
	}
	return &q, nil
}
