package sqlite

import (
	"context"
	"database/sql"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── World Seed Repository (C6) ─────────────────────────────────────────────
// A single-row table (CHECK id = 1) mirrors the teacher's node_info
// key-value singleton pattern, specialized to a fixed shape since WorldSeed
// is always exactly one record per save directory.

func (d *DB) GetSeed(ctx context.Context) (*domain.WorldSeed, error) {
	row := d.db.QueryRowContext(ctx, `SELECT starting_space_id, root_chunk_id, rng_seed FROM world_seed WHERE id = 1`)
	var s domain.WorldSeed
	var startingSpace, rootChunk string
	err := row.Scan(&startingSpace, &rootChunk, &s.RNGSeed)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSeedNotFound
	}
	if err != nil {
		return nil, err
	}
	s.StartingSpaceID = domain.SpaceID(startingSpace)
	s.RootChunkID = domain.ChunkID(rootChunk)
	return &s, nil
}

func (d *DB) SaveSeed(ctx context.Context, s domain.WorldSeed) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO world_seed (id, starting_space_id, root_chunk_id, rng_seed) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET starting_space_id=excluded.starting_space_id,
			root_chunk_id=excluded.root_chunk_id, rng_seed=excluded.rng_seed`,
		string(s.StartingSpaceID), string(s.RootChunkID), s.RNGSeed,
	)
	return err
}
