package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deepwarren/deepwarren/internal/combat"
	"github.com/deepwarren/deepwarren/internal/combat/ai"
	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/infra/metrics"
	"github.com/deepwarren/deepwarren/internal/lifecycle"
	"github.com/deepwarren/deepwarren/internal/turn"
)

// starterWeaponTemplateID is the catalog entry every respawned adventurer
// is re-armed with (§8 scenario 5's "Rusty Dagger"). ensureStarterWeapon
// seeds it the first time it's needed, the same idempotent-ensure shape
// worldgen's bootstrap uses for the town hub.
const starterWeaponTemplateID domain.ItemTemplateID = "starter_rusty_dagger"

const defaultRespawnCapacity = 50.0

// advanceWorld is the scheduler's production entry point: it runs once per
// successful Dispatch call (the engine's cooperative logical clock ticks
// per player action, §5), draining every turn due by now through C13's AI
// pipeline and C12's resolver, then ticking corpse decay in the player's
// room (C14). It is the only caller of PollDueBefore, decideMonsterAction,
// and TickSpace outside their own tests.
func (e *Engine) advanceWorld(ctx context.Context, player *domain.PlayerState) ([]domain.GameEvent, error) {
	now := e.now()
	var events []domain.GameEvent

	roomEntities, err := e.repos.Entities.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return events, err
	}
	inRoom := make(map[domain.EntityID]bool, len(roomEntities))
	for _, ent := range roomEntities {
		inRoom[ent.EntityID()] = true
	}

	for _, id := range e.queue.PollDueBefore(now) {
		if !inRoom[id] {
			// The NPC is no longer where its counterattack was scheduled
			// (the player moved on) — nothing left to resolve it against.
			continue
		}
		turnEvents, respawned, err := e.processNPCTurn(ctx, player, id, now)
		events = append(events, turnEvents...)
		if err != nil {
			return events, err
		}
		if respawned {
			// The player just respawned elsewhere — any other NPCs due
			// this tick belonged to the room they left.
			return events, nil
		}
	}

	destroyed, err := lifecycle.TickSpace(ctx, e.repos.Entities, player.CurrentRoomID)
	if err != nil {
		return events, err
	}
	if len(destroyed) > 0 {
		text := fmt.Sprintf("The remains of %s crumble to dust.", strings.Join(destroyed, ", "))
		events = append(events, e.notifier.Nudge(now, text)...)
	}

	return events, nil
}

// processNPCTurn runs one due NPC through the monster-AI pipeline (C13) and
// applies the chosen action via the combat resolver (C12), re-enqueuing the
// NPC for its next turn unless it fled or the fight ended.
func (e *Engine) processNPCTurn(ctx context.Context, player *domain.PlayerState, npcID domain.EntityID, now int64) ([]domain.GameEvent, bool, error) {
	ent, err := e.repos.Entities.GetEntity(ctx, npcID)
	if err != nil {
		return nil, false, nil // already dead and removed between scheduling and now
	}
	npc, ok := ent.(*domain.NPC)
	if !ok || !npc.IsHostile || npc.Health <= 0 {
		return nil, false, nil
	}

	action := e.decideMonsterAction(ctx, npc, player.ID, e.npcHasHealItem(ctx, npc))
	var events []domain.GameEvent

	switch action.Decision {
	case ai.Flee:
		npc.IsHostile = false
		delete(npc.Components, domain.ComponentCombat)
		events = append(events, domain.CombatEvent{Text: fmt.Sprintf("%s flees from the fight.", npc.Name)})
		if err := e.repos.Entities.PutEntity(ctx, npc); err != nil {
			return events, false, err
		}
		return events, false, nil

	case ai.UseItem:
		heal := npc.MaxHealth / 5
		if heal < 1 {
			heal = 1
		}
		npc.Health += heal
		if npc.Health > npc.MaxHealth {
			npc.Health = npc.MaxHealth
		}
		events = append(events, domain.CombatEvent{Text: fmt.Sprintf("%s drinks a potion, recovering %d health.", npc.Name, heal)})

	case ai.Defend:
		events = append(events, domain.CombatEvent{Text: fmt.Sprintf("%s braces for your next attack.", npc.Name)})

	case ai.Wait:
		events = append(events, domain.CombatEvent{Text: fmt.Sprintf("%s hesitates.", npc.Name)})

	default: // ai.Attack
		weapon, armor := e.playerTemplates(ctx, player)
		attacker := combat.FromNPC(npc)
		defender := combat.FromPlayer(player, weapon, armor)
		outcome := e.combat.Attack(attacker, &defender, "", e.rng)
		player.Health = defender.Health

		result := "hit"
		verb := "hits"
		if outcome.Critical {
			verb, result = "critically strikes", "crit"
		}
		if outcome.Died {
			result = "kill"
		}
		metrics.AttacksResolved.WithLabelValues(result).Inc()
		events = append(events, domain.CombatEvent{
			Text:   fmt.Sprintf("%s %s you for %d damage.", npc.Name, verb, outcome.Damage),
			Damage: outcome.Damage,
		})

		if outcome.Died {
			deathEvents, err := e.handlePlayerDeath(ctx, player)
			events = append(events, deathEvents...)
			return events, err == nil, err
		}
	}

	if err := e.repos.Entities.PutEntity(ctx, npc); err != nil {
		return events, false, err
	}
	e.queue.Enqueue(npc.ID, now+int64(turn.CostOf(actionKindFor(action.Decision), npc.Stats.SpeedLevel)))
	return events, false, nil
}

// actionKindFor maps a monster-AI decision to the action-cost category its
// next turn is scheduled under (§4.13 step 4: "enqueue the action's cost").
func actionKindFor(d ai.Decision) turn.ActionKind {
	switch d {
	case ai.Attack:
		return turn.ActionMelee
	case ai.Defend:
		return turn.ActionDefend
	case ai.Flee:
		return turn.ActionFlee
	case ai.UseItem:
		return turn.ActionItem
	default:
		return turn.ActionMelee
	}
}

// npcHasHealItem reports whether npc's drop table includes a consumable —
// the closest thing an NPC has to "carrying a potion" in a model with no
// monster inventory component, feeding C13 step 1's heal-if-able branch.
func (e *Engine) npcHasHealItem(ctx context.Context, npc *domain.NPC) bool {
	for _, drop := range npc.DropTable {
		t, err := e.repos.Templates.GetTemplate(ctx, drop.TemplateID)
		if err == nil && t.ItemType == "consumable" {
			return true
		}
	}
	return false
}

// ensureStarterWeapon idempotently seeds the Rusty Dagger catalog entry,
// the same pattern worldgen.Initializer.Ensure uses for the town hub.
func (e *Engine) ensureStarterWeapon(ctx context.Context) error {
	if _, err := e.repos.Templates.GetTemplate(ctx, starterWeaponTemplateID); err == nil {
		return nil
	}
	return e.repos.Templates.PutTemplate(ctx, domain.ItemTemplate{
		ID:          starterWeaponTemplateID,
		Name:        "Rusty Dagger",
		Description: "A pitted, unremarkable blade. Every adventurer starts here at least once.",
		ItemType:    "weapon",
		Rarity:      domain.RarityCommon,
		BasePrice:   2,
		Weight:      0.5,
		WeaponBonus: 1,
	})
}

// handlePlayerDeath carries out C15 in production: persist a death corpse,
// respawn the player at the town's starting space with starter gear, and
// save the result.
func (e *Engine) handlePlayerDeath(ctx context.Context, player *domain.PlayerState) ([]domain.GameEvent, error) {
	if err := e.ensureStarterWeapon(ctx); err != nil {
		return nil, fmt.Errorf("seed starter weapon: %w", err)
	}
	seed, err := e.repos.Seeds.GetSeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load town start for respawn: %w", err)
	}

	starter := lifecycle.StarterKit{
		MaxHealth: player.MaxHealth,
		Weapon:    &domain.ItemInstance{ID: newInstanceID(), TemplateID: starterWeaponTemplateID, Quality: 1.0, Quantity: 1},
		Inventory: domain.InventoryComponent{EntityID: player.ID, Capacity: defaultRespawnCapacity},
	}

	deathSpace := player.CurrentRoomID
	_, event, err := lifecycle.Die(ctx, player, e.repos.Corpses, deathSpace, seed.StartingSpaceID, starter, time.Now())
	if err != nil {
		return nil, err
	}
	if err := e.repos.Players.PutPlayer(ctx, *player); err != nil {
		return []domain.GameEvent{event}, err
	}
	return []domain.GameEvent{event}, nil
}
