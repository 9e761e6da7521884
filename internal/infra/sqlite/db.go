// Package sqlite provides SQLite-based persistent storage for DeepWarren.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS world_seed (
			id                INTEGER PRIMARY KEY CHECK (id = 1),
			starting_space_id TEXT NOT NULL,
			root_chunk_id     TEXT NOT NULL,
			rng_seed          INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id               TEXT PRIMARY KEY,
			level            INTEGER NOT NULL,
			parent_id        TEXT NOT NULL DEFAULT '',
			children         TEXT NOT NULL DEFAULT '[]',
			lore             TEXT NOT NULL DEFAULT '',
			biome_theme      TEXT NOT NULL DEFAULT '',
			size_estimate    INTEGER NOT NULL DEFAULT 0,
			mob_density      REAL NOT NULL DEFAULT 0,
			difficulty_level INTEGER NOT NULL DEFAULT 1,
			adjacency        TEXT NOT NULL DEFAULT '{}',
			boss_capable     BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_parent ON chunks(parent_id)`,
		`CREATE TABLE IF NOT EXISTS graph_nodes (
			id        TEXT PRIMARY KEY,
			node_type INTEGER NOT NULL,
			chunk_id  TEXT NOT NULL,
			neighbors TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS spaces (
			id                TEXT PRIMARY KEY,
			chunk_id          TEXT NOT NULL,
			name              TEXT NOT NULL DEFAULT '',
			description       TEXT NOT NULL DEFAULT '',
			terrain_type      TEXT NOT NULL DEFAULT '',
			brightness        INTEGER NOT NULL DEFAULT 0,
			resources         TEXT NOT NULL DEFAULT '[]',
			items_dropped     TEXT NOT NULL DEFAULT '[]',
			exits             TEXT NOT NULL DEFAULT '[]',
			description_stale BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_spaces_chunk ON spaces(chunk_id)`,
		`CREATE TABLE IF NOT EXISTS entities (
			id       TEXT PRIMARY KEY,
			kind     INTEGER NOT NULL,
			space_id TEXT NOT NULL DEFAULT '',
			payload  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entities_space ON entities(space_id)`,
		`CREATE TABLE IF NOT EXISTS players (
			id      TEXT PRIMARY KEY,
			name    TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS quests (
			id          TEXT PRIMARY KEY,
			giver_id    TEXT NOT NULL DEFAULT '',
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status      INTEGER NOT NULL,
			reward_xp   INTEGER NOT NULL DEFAULT 0,
			reward_gold INTEGER NOT NULL DEFAULT 0,
			objectives  TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status)`,
		`CREATE TABLE IF NOT EXISTS corpses (
			id          TEXT PRIMARY KEY,
			player_id   TEXT NOT NULL,
			space_id    TEXT NOT NULL,
			gold        INTEGER NOT NULL DEFAULT 0,
			decay_at    INTEGER NOT NULL,
			looted      BOOLEAN NOT NULL DEFAULT 0,
			inventory   TEXT NOT NULL DEFAULT '[]',
			equipment   TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_corpses_decay ON corpses(decay_at)`,
		`CREATE TABLE IF NOT EXISTS item_templates (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			item_type     TEXT NOT NULL DEFAULT '',
			rarity        INTEGER NOT NULL DEFAULT 0,
			base_price    INTEGER NOT NULL DEFAULT 0,
			weight        REAL NOT NULL DEFAULT 0,
			weapon_bonus  INTEGER NOT NULL DEFAULT 0,
			armor_defense INTEGER NOT NULL DEFAULT 0,
			resistances   TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS treasure_rooms (
			space_id TEXT PRIMARY KEY,
			payload  TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
