// Package repo defines the persistence contracts (C1) the application layer
// depends on. internal/infra/sqlite provides the concrete implementation;
// tests may satisfy these interfaces with in-memory fakes.
package repo

import (
	"context"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// WorldSeedRepository stores the single record identifying a bootstrapped
// world (C6).
type WorldSeedRepository interface {
	GetSeed(ctx context.Context) (*domain.WorldSeed, error)
	SaveSeed(ctx context.Context, seed domain.WorldSeed) error
}

// ChunkRepository stores the hierarchical world graph (WORLD→REGION→ZONE→
// SUBZONE→SPACE chunks). Grounded on dshills-dungo's contracts.Generator
// persistence boundary and VoidMesh's chunk Manager.
type ChunkRepository interface {
	GetChunk(ctx context.Context, id domain.ChunkID) (*domain.WorldChunk, error)
	PutChunk(ctx context.Context, chunk domain.WorldChunk) error
	ChildrenOf(ctx context.Context, parent domain.ChunkID) ([]domain.WorldChunk, error)
	GetGraphNode(ctx context.Context, id domain.ChunkID) (*domain.GraphNode, error)
	PutGraphNode(ctx context.Context, node domain.GraphNode) error
}

// SpaceRepository stores leaf-level rooms and their live entity/resource state.
type SpaceRepository interface {
	GetSpace(ctx context.Context, id domain.SpaceID) (*domain.Space, error)
	PutSpace(ctx context.Context, space domain.Space) error
	SpacesInChunk(ctx context.Context, chunk domain.ChunkID) ([]domain.Space, error)
}

// EntityRepository stores NPCs, items, features, and corpses that live in a
// space, keyed by their tagged-variant EntityKind (no virtual hierarchy).
type EntityRepository interface {
	GetEntity(ctx context.Context, id domain.EntityID) (domain.Entity, error)
	PutEntity(ctx context.Context, e domain.Entity) error
	PutEntityIn(ctx context.Context, e domain.Entity, spaceID domain.SpaceID) error
	DeleteEntity(ctx context.Context, id domain.EntityID) error
	EntitiesInSpace(ctx context.Context, space domain.SpaceID) ([]domain.Entity, error)
}

// PlayerRepository stores the single active player's session state.
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id domain.EntityID) (*domain.PlayerState, error)
	PutPlayer(ctx context.Context, p domain.PlayerState) error
	ListSaves(ctx context.Context) ([]string, error)
}

// QuestRepository stores quest definitions and progress, grounded on the
// teacher's engagement/quest.go persistence shape.
type QuestRepository interface {
	GetQuest(ctx context.Context, id domain.QuestID) (*domain.Quest, error)
	PutQuest(ctx context.Context, q domain.Quest) error
	ListByStatus(ctx context.Context, status domain.QuestStatus) ([]domain.Quest, error)
}

// CorpseRepository stores decaying corpses (C14/C15).
type CorpseRepository interface {
	GetCorpse(ctx context.Context, id domain.CorpseID) (*domain.CorpseData, error)
	PutCorpse(ctx context.Context, c domain.CorpseData) error
	DeleteCorpse(ctx context.Context, id domain.CorpseID) error
	ExpiredCorpses(ctx context.Context, nowUnix int64) ([]domain.CorpseData, error)
}

// ItemTemplateRepository stores the immutable catalog item templates are
// stamped from, including merchant-stock lookups (C20).
type ItemTemplateRepository interface {
	GetTemplate(ctx context.Context, id domain.ItemTemplateID) (*domain.ItemTemplate, error)
	PutTemplate(ctx context.Context, t domain.ItemTemplate) error
	ListTemplates(ctx context.Context) ([]domain.ItemTemplate, error)
}

// TreasureRoomRepository stores one pick-one treasure vault per space (C19).
type TreasureRoomRepository interface {
	GetTreasureRoom(ctx context.Context, spaceID domain.SpaceID) (*domain.TreasureRoomComponent, error)
	PutTreasureRoom(ctx context.Context, room domain.TreasureRoomComponent) error
}
