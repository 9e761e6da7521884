package engine

import (
	"context"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/lifecycle"
)

// resolveHeldTemplate matches a free-text item name against the player's
// inventory by template name, the same by-name resolution style
// findNPCByName uses for entities.
func (e *Engine) resolveHeldTemplate(ctx context.Context, player *domain.PlayerState, name string) (domain.ItemTemplateID, error) {
	for _, it := range player.Inventory.Items {
		t, err := e.repos.Templates.GetTemplate(ctx, it.TemplateID)
		if err != nil {
			continue
		}
		if sameTarget(t.Name, name) {
			return it.TemplateID, nil
		}
	}
	return "", domain.ErrEntityNotFound
}

// resolveRoomItemTemplate matches a free-text item name against the
// templates of items dropped in the player's current room.
func (e *Engine) resolveRoomItemTemplate(ctx context.Context, space *domain.Space, name string) (*domain.ItemInstance, error) {
	for i := range space.ItemsDropped {
		t, err := e.repos.Templates.GetTemplate(ctx, space.ItemsDropped[i].TemplateID)
		if err != nil {
			continue
		}
		if sameTarget(t.Name, name) {
			return &space.ItemsDropped[i], nil
		}
	}
	return nil, domain.ErrEntityNotFound
}

func (e *Engine) handleInventory(player *domain.PlayerState) ([]domain.GameEvent, error) {
	if len(player.Inventory.Items) == 0 {
		return []domain.GameEvent{domain.NarrativeEvent{Text: "You are carrying nothing."}}, nil
	}
	text := "You are carrying:"
	for _, it := range player.Inventory.Items {
		text += fmt.Sprintf(" %s x%d,", it.TemplateID, it.Quantity)
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: text}}, nil
}

func (e *Engine) handleTake(ctx context.Context, player *domain.PlayerState, in domain.TakeIntent) ([]domain.GameEvent, error) {
	space, err := e.repos.Spaces.GetSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	item, err := e.resolveRoomItemTemplate(ctx, space, in.Target)
	if err != nil {
		return nil, err
	}
	weightOf := e.templateWeightOf(ctx)
	if !player.Inventory.CanAdd(item.TemplateID, item.Quantity, weightOf) {
		return nil, domain.ErrInventoryFull
	}
	player.Inventory.Add(item.TemplateID, item.Quantity, item.Quality, newInstanceID)
	space.ItemsDropped = removeDroppedItem(space.ItemsDropped, item.ID)
	if err := e.repos.Spaces.PutSpace(ctx, *space); err != nil {
		return nil, err
	}
	events := []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You take %s.", in.Target)}}
	action := domain.ActionEvent{Kind: domain.ActionCollectItem, TemplateID: item.TemplateID, Quantity: item.Quantity}
	if questEvents, err := e.advanceQuests(ctx, player, action); err == nil {
		events = append(events, questEvents...)
	}
	return events, nil
}

func (e *Engine) handleTakeAll(ctx context.Context, player *domain.PlayerState) ([]domain.GameEvent, error) {
	space, err := e.repos.Spaces.GetSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	weightOf := e.templateWeightOf(ctx)
	var taken int
	remaining := space.ItemsDropped[:0]
	for _, item := range space.ItemsDropped {
		if player.Inventory.CanAdd(item.TemplateID, item.Quantity, weightOf) {
			player.Inventory.Add(item.TemplateID, item.Quantity, item.Quality, newInstanceID)
			taken++
			continue
		}
		remaining = append(remaining, item)
	}
	space.ItemsDropped = remaining
	if err := e.repos.Spaces.PutSpace(ctx, *space); err != nil {
		return nil, err
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You take %d stack(s) of items.", taken)}}, nil
}

func removeDroppedItem(items []domain.ItemInstance, id domain.ItemInstanceID) []domain.ItemInstance {
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func (e *Engine) handleDrop(ctx context.Context, player *domain.PlayerState, in domain.DropIntent) ([]domain.GameEvent, error) {
	tmplID, err := e.resolveHeldTemplate(ctx, player, in.Target)
	if err != nil {
		return nil, err
	}
	if !player.Inventory.Remove(tmplID, 1) {
		return nil, domain.ErrInsufficientStock
	}
	space, err := e.repos.Spaces.GetSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	space.ItemsDropped = append(space.ItemsDropped, domain.ItemInstance{ID: newInstanceID(), TemplateID: tmplID, Quality: 1.0, Quantity: 1})
	if err := e.repos.Spaces.PutSpace(ctx, *space); err != nil {
		return nil, err
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You drop %s.", in.Target)}}, nil
}

func (e *Engine) handleEquip(ctx context.Context, player *domain.PlayerState, in domain.EquipIntent) ([]domain.GameEvent, error) {
	tmplID, err := e.resolveHeldTemplate(ctx, player, in.Target)
	if err != nil {
		return nil, err
	}
	tmpl, err := e.repos.Templates.GetTemplate(ctx, tmplID)
	if err != nil {
		return nil, err
	}
	inst := &domain.ItemInstance{TemplateID: tmplID, Quality: 1.0, Quantity: 1}
	switch tmpl.ItemType {
	case "weapon":
		player.EquippedWeapon = inst
	case "armor":
		player.EquippedArmor = inst
	default:
		return nil, domain.ErrInvalidAction
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You equip %s.", tmpl.Name)}}, nil
}

func (e *Engine) handleUse(ctx context.Context, player *domain.PlayerState, in domain.UseIntent) ([]domain.GameEvent, error) {
	tmplID, err := e.resolveHeldTemplate(ctx, player, in.Target)
	if err != nil {
		return nil, err
	}
	tmpl, err := e.repos.Templates.GetTemplate(ctx, tmplID)
	if err != nil {
		return nil, err
	}
	if tmpl.ItemType != "consumable" {
		return nil, domain.ErrInvalidAction
	}
	if !player.Inventory.Remove(tmplID, 1) {
		return nil, domain.ErrInsufficientStock
	}
	healed := tmpl.ArmorDefense // consumables reuse ArmorDefense as a heal amount; 0 or less heals a flat 10
	if healed <= 0 {
		healed = 10
	}
	player.Health += healed
	if player.Health > player.MaxHealth {
		player.Health = player.MaxHealth
	}
	return []domain.GameEvent{
		domain.NarrativeEvent{Text: fmt.Sprintf("You use %s, recovering %d health.", tmpl.Name, healed)},
		domain.StatusUpdateEvent{Health: player.Health, MaxHealth: player.MaxHealth, Location: player.CurrentRoomID},
	}, nil
}

func (e *Engine) handleCheck(ctx context.Context, player *domain.PlayerState, in domain.CheckIntent) ([]domain.GameEvent, error) {
	tmplID, err := e.resolveHeldTemplate(ctx, player, in.Target)
	if err == nil {
		tmpl, err := e.repos.Templates.GetTemplate(ctx, tmplID)
		if err == nil {
			return []domain.GameEvent{domain.NarrativeEvent{Text: tmpl.Description}}, nil
		}
	}
	return e.handleLook(ctx, player, domain.LookIntent{Target: in.Target})
}

func (e *Engine) handleLootCorpse(ctx context.Context, player *domain.PlayerState) ([]domain.GameEvent, error) {
	entities, err := e.repos.Entities.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	corpse := e.findCorpse(entities)
	if corpse == nil {
		return nil, domain.ErrEntityNotFound
	}
	weightOf := e.templateWeightOf(ctx)
	taken := lifecycle.LootCorpse(corpse, &player.Inventory, weightOf)
	if err := e.repos.Entities.PutEntity(ctx, corpse); err != nil {
		return nil, err
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You loot %d item stack(s) from the corpse.", len(taken))}}, nil
}
