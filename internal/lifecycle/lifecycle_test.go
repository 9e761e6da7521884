package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
)

type fixedRoller struct {
	f   float64
	n   int
}

func (r fixedRoller) Float64() float64 { return r.f }
func (r fixedRoller) Intn(n int) int   { return r.n }

func TestSynthesizeCorpseRollsDropTable(t *testing.T) {
	npc := &domain.NPC{
		Name: "Goblin",
		DropTable: []domain.DropEntry{
			{TemplateID: "gold-coin", Chance: 1.0, MinQty: 2, MaxQty: 2},
			{TemplateID: "rare-gem", Chance: 0.0, MinQty: 1, MaxQty: 1},
		},
	}
	corpse := SynthesizeCorpse(npc, func() domain.EntityID { return "corpse-1" }, fixedRoller{f: 0.5, n: 0})
	if corpse.DecayTimer != npcCorpseDecayTicks {
		t.Fatalf("expected decay timer %d, got %d", npcCorpseDecayTicks, corpse.DecayTimer)
	}
	if len(corpse.Contents) != 1 || corpse.Contents[0].TemplateID != "gold-coin" || corpse.Contents[0].Quantity != 2 {
		t.Fatalf("expected only the guaranteed drop, got %+v", corpse.Contents)
	}
}

type fakeEntities struct {
	byID    map[domain.EntityID]domain.Entity
	bySpace map[domain.SpaceID][]domain.EntityID
}

func newFakeEntities() *fakeEntities {
	return &fakeEntities{byID: map[domain.EntityID]domain.Entity{}, bySpace: map[domain.SpaceID][]domain.EntityID{}}
}
func (f *fakeEntities) GetEntity(ctx context.Context, id domain.EntityID) (domain.Entity, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrEntityNotFound
	}
	return e, nil
}
func (f *fakeEntities) PutEntity(ctx context.Context, e domain.Entity) error {
	f.byID[e.EntityID()] = e
	return nil
}
func (f *fakeEntities) PutEntityIn(ctx context.Context, e domain.Entity, spaceID domain.SpaceID) error {
	f.byID[e.EntityID()] = e
	f.bySpace[spaceID] = append(f.bySpace[spaceID], e.EntityID())
	return nil
}
func (f *fakeEntities) DeleteEntity(ctx context.Context, id domain.EntityID) error {
	delete(f.byID, id)
	for space, ids := range f.bySpace {
		out := ids[:0]
		for _, i := range ids {
			if i != id {
				out = append(out, i)
			}
		}
		f.bySpace[space] = out
	}
	return nil
}
func (f *fakeEntities) EntitiesInSpace(ctx context.Context, space domain.SpaceID) ([]domain.Entity, error) {
	var out []domain.Entity
	for _, id := range f.bySpace[space] {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func TestPlaceNPCCorpseRemovesNPCAndPlacesCorpse(t *testing.T) {
	entities := newFakeEntities()
	npc := &domain.NPC{ID: "goblin-1", Name: "Goblin"}
	entities.PutEntityIn(context.Background(), npc, "room-a")

	corpse, err := PlaceNPCCorpse(context.Background(), entities, npc, "room-a", fixedRoller{f: 1, n: 0})
	if err != nil {
		t.Fatalf("PlaceNPCCorpse: %v", err)
	}
	if _, err := entities.GetEntity(context.Background(), npc.ID); err == nil {
		t.Fatal("expected npc to be removed")
	}
	if _, err := entities.GetEntity(context.Background(), corpse.ID); err != nil {
		t.Fatal("expected corpse to be placed")
	}
}

func TestTickSpaceDestroysExpiredCorpses(t *testing.T) {
	entities := newFakeEntities()
	corpse := &domain.Corpse{ID: "corpse-1", SourceName: "Goblin", DecayTimer: 1}
	entities.PutEntityIn(context.Background(), corpse, "room-a")

	destroyed, err := TickSpace(context.Background(), entities, "room-a")
	if err != nil {
		t.Fatalf("TickSpace: %v", err)
	}
	if len(destroyed) != 1 || destroyed[0] != "Goblin" {
		t.Fatalf("expected Goblin to be destroyed, got %v", destroyed)
	}
	if _, err := entities.GetEntity(context.Background(), corpse.ID); err == nil {
		t.Fatal("expected corpse to be gone")
	}
}

func TestTickSpaceDecrementsWithoutDestroying(t *testing.T) {
	entities := newFakeEntities()
	corpse := &domain.Corpse{ID: "corpse-1", SourceName: "Goblin", DecayTimer: 5}
	entities.PutEntityIn(context.Background(), corpse, "room-a")

	destroyed, err := TickSpace(context.Background(), entities, "room-a")
	if err != nil {
		t.Fatalf("TickSpace: %v", err)
	}
	if len(destroyed) != 0 {
		t.Fatalf("expected nothing destroyed yet, got %v", destroyed)
	}
	stored, _ := entities.GetEntity(context.Background(), corpse.ID)
	if stored.(*domain.Corpse).DecayTimer != 4 {
		t.Fatalf("expected decay timer to tick down to 4, got %d", stored.(*domain.Corpse).DecayTimer)
	}
}

func TestLootCorpseSkipsOverCapacityStacks(t *testing.T) {
	corpse := &domain.Corpse{
		Contents: []domain.ItemInstance{
			{TemplateID: "sword", Quantity: 1},
			{TemplateID: "boulder", Quantity: 1},
		},
		GoldAmount: 50,
	}
	inv := &domain.InventoryComponent{Capacity: 5}
	weightOf := func(t domain.ItemTemplateID) float64 {
		if t == "boulder" {
			return 100
		}
		return 1
	}

	transferred := LootCorpse(corpse, inv, weightOf)
	if len(transferred) != 1 || transferred[0] != "sword" {
		t.Fatalf("expected only sword to transfer, got %v", transferred)
	}
	if inv.Gold != 50 {
		t.Fatalf("expected gold to transfer, got %d", inv.Gold)
	}
	if corpse.Looted {
		t.Fatal("corpse should not be fully looted while boulder remains")
	}
	if len(corpse.Contents) != 1 || corpse.Contents[0].TemplateID != "boulder" {
		t.Fatalf("expected boulder to remain, got %+v", corpse.Contents)
	}
}

type fakeCorpseRepo struct {
	byID map[domain.CorpseID]domain.CorpseData
}

func newFakeCorpseRepo() *fakeCorpseRepo {
	return &fakeCorpseRepo{byID: map[domain.CorpseID]domain.CorpseData{}}
}
func (f *fakeCorpseRepo) GetCorpse(ctx context.Context, id domain.CorpseID) (*domain.CorpseData, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrCorpseNotFound
	}
	return &c, nil
}
func (f *fakeCorpseRepo) PutCorpse(ctx context.Context, c domain.CorpseData) error {
	f.byID[c.ID] = c
	return nil
}
func (f *fakeCorpseRepo) DeleteCorpse(ctx context.Context, id domain.CorpseID) error {
	delete(f.byID, id)
	return nil
}
func (f *fakeCorpseRepo) ExpiredCorpses(ctx context.Context, nowUnix int64) ([]domain.CorpseData, error) {
	var out []domain.CorpseData
	for _, c := range f.byID {
		if c.DecayTimer.Unix() <= nowUnix {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestDiePersistsCorpseAndRespawnsPlayer(t *testing.T) {
	corpses := newFakeCorpseRepo()
	player := &domain.PlayerState{
		ID: "player-1", Name: "Arin", Health: 0, MaxHealth: 40,
		Inventory: domain.InventoryComponent{Items: []domain.ItemInstance{{TemplateID: "potion", Quantity: 1}}},
		Gold:      100,
	}
	starter := StarterKit{MaxHealth: 20, Inventory: domain.InventoryComponent{Capacity: 10}}
	now := time.Unix(1000, 0)

	corpse, event, err := Die(context.Background(), player, corpses, "deep-room", "town-hub", starter, now)
	if err != nil {
		t.Fatalf("Die: %v", err)
	}
	if corpse.Gold != 100 || corpse.SpaceID != "deep-room" {
		t.Fatalf("unexpected corpse: %+v", corpse)
	}
	if event == nil {
		t.Fatal("expected a death narration event")
	}
	if player.Health != 20 || player.MaxHealth != 20 || player.Gold != 0 || player.CurrentRoomID != "town-hub" {
		t.Fatalf("expected respawned player state, got %+v", player)
	}
	if player.ID != "player-1" || player.Name != "Arin" {
		t.Fatal("expected id and name to be preserved")
	}
	if len(player.Inventory.Items) != 0 {
		t.Fatalf("expected starter (empty) inventory, got %+v", player.Inventory)
	}
}

func TestExpireCorpsesDeletesOnlyExpired(t *testing.T) {
	corpses := newFakeCorpseRepo()
	corpses.PutCorpse(context.Background(), domain.CorpseData{ID: "old", DecayTimer: time.Unix(100, 0)})
	corpses.PutCorpse(context.Background(), domain.CorpseData{ID: "fresh", DecayTimer: time.Unix(9999, 0)})

	expired, err := ExpireCorpses(context.Background(), corpses, time.Unix(500, 0))
	if err != nil {
		t.Fatalf("ExpireCorpses: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != "old" {
		t.Fatalf("expected only 'old' to expire, got %v", expired)
	}
	if _, err := corpses.GetCorpse(context.Background(), "old"); err == nil {
		t.Fatal("expected old corpse to be deleted")
	}
	if _, err := corpses.GetCorpse(context.Background(), "fresh"); err != nil {
		t.Fatal("expected fresh corpse to remain")
	}
}
