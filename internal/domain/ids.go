package domain

// ─── Identifiers ────────────────────────────────────────────────────────────
// All ids are string-typed UUIDs (github.com/google/uuid) so repositories can
// treat them as opaque primary keys without a numeric auto-increment scheme.

type ChunkID string

type SpaceID string

type EntityID string

type QuestID string

type CorpseID string

type ItemTemplateID string

type ItemInstanceID string
