package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Chunk Repository (C1/C4) ───────────────────────────────────────────────

func (d *DB) GetChunk(ctx context.Context, id domain.ChunkID) (*domain.WorldChunk, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, level, parent_id, children, lore, biome_theme, size_estimate,
		        mob_density, difficulty_level, adjacency, boss_capable
		 FROM chunks WHERE id = ?`, string(id))
	c, err := scanChunk(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrChunkNotFound
	}
	return c, err
}

func (d *DB) PutChunk(ctx context.Context, c domain.WorldChunk) error {
	children, err := json.Marshal(c.Children)
	if err != nil {
		return fmt.Errorf("marshal children: %w", err)
	}
	adjacency, err := json.Marshal(c.Adjacency)
	if err != nil {
		return fmt.Errorf("marshal adjacency: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO chunks (id, level, parent_id, children, lore, biome_theme, size_estimate,
		                     mob_density, difficulty_level, adjacency, boss_capable)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			level=excluded.level, parent_id=excluded.parent_id, children=excluded.children,
			lore=excluded.lore, biome_theme=excluded.biome_theme, size_estimate=excluded.size_estimate,
			mob_density=excluded.mob_density, difficulty_level=excluded.difficulty_level,
			adjacency=excluded.adjacency, boss_capable=excluded.boss_capable`,
		string(c.ID), int(c.Level), string(c.ParentID), string(children), c.Lore, c.BiomeTheme,
		c.SizeEstimate, c.MobDensity, c.DifficultyLevel, string(adjacency), c.BossCapable,
	)
	return err
}

func (d *DB) ChildrenOf(ctx context.Context, parent domain.ChunkID) ([]domain.WorldChunk, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, level, parent_id, children, lore, biome_theme, size_estimate,
		        mob_density, difficulty_level, adjacency, boss_capable
		 FROM chunks WHERE parent_id = ?`, string(parent))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WorldChunk
	for rows.Next() {
		c, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanChunk(s scanner) (*domain.WorldChunk, error) {
	var c domain.WorldChunk
	var id, parentID string
	var children, adjacency string
	var level int
	err := s.Scan(&id, &level, &parentID, &children, &c.Lore, &c.BiomeTheme,
		&c.SizeEstimate, &c.MobDensity, &c.DifficultyLevel, &adjacency, &c.BossCapable)
	if err != nil {
		return nil, err
	}
	c.ID = domain.ChunkID(id)
	c.ParentID = domain.ChunkID(parentID)
	c.Level = domain.ChunkLevel(level)
	if err := json.Unmarshal([]byte(children), &c.Children); err != nil {
		return nil, fmt.Errorf("unmarshal children: %w", err)
	}
	if err := json.Unmarshal([]byte(adjacency), &c.Adjacency); err != nil {
		return nil, fmt.Errorf("unmarshal adjacency: %w", err)
	}
	return &c, nil
}

// ─── Graph Node Repository (C3) ─────────────────────────────────────────────

func (d *DB) GetGraphNode(ctx context.Context, id domain.ChunkID) (*domain.GraphNode, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, node_type, chunk_id, neighbors FROM graph_nodes WHERE id = ?`, string(id))
	n, err := scanGraphNode(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNodeNotFound
	}
	return n, err
}

func (d *DB) PutGraphNode(ctx context.Context, n domain.GraphNode) error {
	neighbors, err := json.Marshal(n.Neighbors)
	if err != nil {
		return fmt.Errorf("marshal neighbors: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO graph_nodes (id, node_type, chunk_id, neighbors) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET node_type=excluded.node_type, chunk_id=excluded.chunk_id, neighbors=excluded.neighbors`,
		string(n.ID), int(n.Type), string(n.ChunkID), string(neighbors),
	)
	return err
}

func scanGraphNode(s scanner) (*domain.GraphNode, error) {
	var n domain.GraphNode
	var id, chunkID, neighbors string
	var nodeType int
	if err := s.Scan(&id, &nodeType, &chunkID, &neighbors); err != nil {
		return nil, err
	}
	n.ID = domain.ChunkID(id)
	n.ChunkID = domain.ChunkID(chunkID)
	n.Type = domain.NodeType(nodeType)
	if err := json.Unmarshal([]byte(neighbors), &n.Neighbors); err != nil {
		return nil, fmt.Errorf("unmarshal neighbors: %w", err)
	}
	return &n, nil
}

// ─── Space Repository (C7/C8) ───────────────────────────────────────────────

func (d *DB) GetSpace(ctx context.Context, id domain.SpaceID) (*domain.Space, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, chunk_id, name, description, terrain_type, brightness,
		        resources, items_dropped, exits, description_stale
		 FROM spaces WHERE id = ?`, string(id))
	s, err := scanSpace(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSpaceNotFound
	}
	return s, err
}

func (d *DB) PutSpace(ctx context.Context, s domain.Space) error {
	resources, err := json.Marshal(s.Resources)
	if err != nil {
		return fmt.Errorf("marshal resources: %w", err)
	}
	items, err := json.Marshal(s.ItemsDropped)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	exits, err := json.Marshal(s.Exits)
	if err != nil {
		return fmt.Errorf("marshal exits: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO spaces (id, chunk_id, name, description, terrain_type, brightness,
		                     resources, items_dropped, exits, description_stale)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			chunk_id=excluded.chunk_id, name=excluded.name, description=excluded.description,
			terrain_type=excluded.terrain_type, brightness=excluded.brightness,
			resources=excluded.resources, items_dropped=excluded.items_dropped,
			exits=excluded.exits, description_stale=excluded.description_stale`,
		string(s.ID), string(s.ChunkID), s.Name, s.Description, string(s.TerrainType), s.Brightness,
		string(resources), string(items), string(exits), s.DescriptionStale,
	)
	return err
}

func (d *DB) SpacesInChunk(ctx context.Context, chunk domain.ChunkID) ([]domain.Space, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, chunk_id, name, description, terrain_type, brightness,
		        resources, items_dropped, exits, description_stale
		 FROM spaces WHERE chunk_id = ?`, string(chunk))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Space
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanSpace(row scanner) (*domain.Space, error) {
	var s domain.Space
	var id, chunkID, terrain, resources, items, exits string
	err := row.Scan(&id, &chunkID, &s.Name, &s.Description, &terrain, &s.Brightness,
		&resources, &items, &exits, &s.DescriptionStale)
	if err != nil {
		return nil, err
	}
	s.ID = domain.SpaceID(id)
	s.ChunkID = domain.ChunkID(chunkID)
	s.TerrainType = domain.TerrainType(terrain)
	if err := json.Unmarshal([]byte(resources), &s.Resources); err != nil {
		return nil, fmt.Errorf("unmarshal resources: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &s.ItemsDropped); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal([]byte(exits), &s.Exits); err != nil {
		return nil, fmt.Errorf("unmarshal exits: %w", err)
	}
	return &s, nil
}
