package quest

import (
	"context"
	"testing"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
)

type fakeEntities struct {
	byID map[domain.EntityID]domain.Entity
}

func newFakeEntities() *fakeEntities { return &fakeEntities{byID: map[domain.EntityID]domain.Entity{}} }
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
	return f.PutEntity(ctx, e)
}
func (f *fakeEntities) DeleteEntity(ctx context.Context, id domain.EntityID) error { return nil }
func (f *fakeEntities) EntitiesInSpace(ctx context.Context, space domain.SpaceID) ([]domain.Entity, error) {
	return nil, nil
}

func TestUpdateAfterActionAdvancesMatchingObjective(t *testing.T) {
	entities := newFakeEntities()
	player := &domain.PlayerState{ActiveQuests: []domain.Quest{
		{ID: "q1", Objectives: []domain.QuestObjective{{Kind: domain.ActionKillEnemy, TargetID: "goblin", Target: 2}}},
	}}

	_, err := UpdateAfterAction(context.Background(), entities, player, domain.ActionEvent{Kind: domain.ActionKillEnemy, TargetID: "goblin"}, time.Now())
	if err != nil {
		t.Fatalf("UpdateAfterAction: %v", err)
	}
	if len(player.ActiveQuests) != 1 || player.ActiveQuests[0].Objectives[0].Progress != 1 {
		t.Fatalf("expected progress 1/2, got %+v", player.ActiveQuests)
	}
}

func TestUpdateAfterActionCompletesQuestAndAppliesGiverDisposition(t *testing.T) {
	entities := newFakeEntities()
	giver := &domain.NPC{ID: "npc-1"}
	entities.byID[giver.ID] = giver

	player := &domain.PlayerState{ActiveQuests: []domain.Quest{
		{ID: "q1", GiverID: "npc-1", Title: "Clear the den", Objectives: []domain.QuestObjective{{Kind: domain.ActionKillEnemy, TargetID: "goblin", Target: 1}}},
	}}

	events, err := UpdateAfterAction(context.Background(), entities, player, domain.ActionEvent{Kind: domain.ActionKillEnemy, TargetID: "goblin"}, time.Now())
	if err != nil {
		t.Fatalf("UpdateAfterAction: %v", err)
	}
	if len(player.ActiveQuests) != 0 {
		t.Fatalf("expected quest to move out of active, got %+v", player.ActiveQuests)
	}
	if len(player.CompletedQuests) != 1 || player.CompletedQuests[0].Status != domain.QuestCompleted {
		t.Fatalf("expected completed quest recorded, got %+v", player.CompletedQuests)
	}
	if len(events) != 1 {
		t.Fatalf("expected one quest-completed event, got %v", events)
	}

	stored, _ := entities.GetEntity(context.Background(), "npc-1")
	social := stored.(*domain.NPC).Components[domain.ComponentSocial].(domain.SocialComponent)
	if social.Disposition != 15 {
		t.Fatalf("expected giver disposition +15, got %d", social.Disposition)
	}
}

func TestUpdateAfterActionCollectItemVerifiesInventory(t *testing.T) {
	entities := newFakeEntities()
	player := &domain.PlayerState{
		Inventory: domain.InventoryComponent{Items: []domain.ItemInstance{{TemplateID: "herb", Quantity: 3}}},
		ActiveQuests: []domain.Quest{
			{ID: "q1", Objectives: []domain.QuestObjective{{Kind: domain.ActionCollectItem, TargetID: "herb", Target: 3}}},
		},
	}

	_, err := UpdateAfterAction(context.Background(), entities, player, domain.ActionEvent{Kind: domain.ActionCollectItem, TemplateID: "herb"}, time.Now())
	if err != nil {
		t.Fatalf("UpdateAfterAction: %v", err)
	}
	if len(player.CompletedQuests) != 1 {
		t.Fatalf("expected quest to complete from verified inventory count, got active=%+v completed=%+v", player.ActiveQuests, player.CompletedQuests)
	}
}

func TestUpdateAfterActionIgnoresNonMatchingObjective(t *testing.T) {
	entities := newFakeEntities()
	player := &domain.PlayerState{ActiveQuests: []domain.Quest{
		{ID: "q1", Objectives: []domain.QuestObjective{{Kind: domain.ActionKillEnemy, TargetID: "goblin", Target: 1}}},
	}}

	_, err := UpdateAfterAction(context.Background(), entities, player, domain.ActionEvent{Kind: domain.ActionExploreRoom, SpaceID: "room-a"}, time.Now())
	if err != nil {
		t.Fatalf("UpdateAfterAction: %v", err)
	}
	if player.ActiveQuests[0].Objectives[0].Progress != 0 {
		t.Fatalf("expected no progress from a non-matching action, got %+v", player.ActiveQuests[0].Objectives[0])
	}
}
