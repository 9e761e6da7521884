package sqlite_test

import (
	"context"
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestChunkRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	c := domain.WorldChunk{
		ID: "chunk-1", Level: domain.LevelZone, ParentID: "chunk-0",
		Lore: "a damp limestone cavern", BiomeTheme: "cave",
		DifficultyLevel: 3, BossCapable: true,
		Adjacency: map[domain.Direction]domain.ChunkID{domain.North: "chunk-2"},
	}
	if err := db.PutChunk(ctx, c); err != nil {
		t.Fatalf("put chunk: %v", err)
	}

	got, err := db.GetChunk(ctx, "chunk-1")
	if err != nil {
		t.Fatalf("get chunk: %v", err)
	}
	if got.Lore != c.Lore || got.DifficultyLevel != 3 || !got.BossCapable {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Adjacency[domain.North] != "chunk-2" {
		t.Fatalf("adjacency lost: %+v", got.Adjacency)
	}

	if _, err := db.GetChunk(ctx, "missing"); err != domain.ErrChunkNotFound {
		t.Fatalf("expected ErrChunkNotFound, got %v", err)
	}
}

func TestSpaceAndEntityRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	space := domain.Space{
		ID: "space-1", ChunkID: "chunk-1", Name: "Gloomy Hall",
		TerrainType: "stone", Brightness: 20,
		Exits: []domain.Exit{{Direction: domain.North, TargetID: "space-2"}},
	}
	if err := db.PutSpace(ctx, space); err != nil {
		t.Fatalf("put space: %v", err)
	}

	npc := &domain.NPC{
		ID: "npc-1", Name: "Grik", IsHostile: true, Health: 10, MaxHealth: 10,
		Components: map[domain.ComponentType]domain.Component{
			domain.ComponentSocial: domain.SocialComponent{Disposition: -40},
		},
	}
	if err := db.PutEntityIn(ctx, npc, space.ID); err != nil {
		t.Fatalf("put entity: %v", err)
	}

	got, err := db.GetSpace(ctx, "space-1")
	if err != nil {
		t.Fatalf("get space: %v", err)
	}
	if got.Name != "Gloomy Hall" || len(got.Exits) != 1 {
		t.Fatalf("space round trip mismatch: %+v", got)
	}

	entities, err := db.EntitiesInSpace(ctx, "space-1")
	if err != nil {
		t.Fatalf("entities in space: %v", err)
	}
	if len(entities) != 1 || entities[0].Kind() != domain.KindNPC {
		t.Fatalf("expected one npc, got %+v", entities)
	}
	restored := entities[0].(*domain.NPC)
	social, ok := restored.Component(domain.ComponentSocial).(domain.SocialComponent)
	if !ok || social.Disposition != -40 {
		t.Fatalf("social component lost: %+v", restored.Components)
	}
}

func TestQuestLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	q := domain.Quest{
		ID: "quest-1", Title: "Clear the Warren", Status: domain.QuestActive,
		Objectives: []domain.QuestObjective{{Kind: domain.ActionKillEnemy, Target: 3}},
		RewardXP:   100, RewardGold: 50,
	}
	if err := db.PutQuest(ctx, q); err != nil {
		t.Fatalf("put quest: %v", err)
	}

	active, err := db.ListByStatus(ctx, domain.QuestActive)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Objectives[0].Target != 3 {
		t.Fatalf("unexpected active quests: %+v", active)
	}

	q.Status = domain.QuestCompleted
	q.Objectives[0].Progress = 3
	if err := db.PutQuest(ctx, q); err != nil {
		t.Fatalf("update quest: %v", err)
	}
	got, err := db.GetQuest(ctx, "quest-1")
	if err != nil {
		t.Fatalf("get quest: %v", err)
	}
	if !got.AllObjectivesDone() {
		t.Fatalf("expected objectives done: %+v", got)
	}
}
