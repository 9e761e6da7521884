package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/social"
)

func (e *Engine) handleSave(ctx context.Context, player *domain.PlayerState, in domain.SaveIntent) ([]domain.GameEvent, error) {
	saved := *player
	saved.Name = in.Name
	if err := e.repos.Players.PutPlayer(ctx, saved); err != nil {
		return nil, err
	}
	return []domain.GameEvent{domain.SystemEvent{Text: fmt.Sprintf("Game saved as %q.", in.Name), Level: domain.SystemInfo}}, nil
}

func (e *Engine) handleLoad(ctx context.Context, in domain.LoadIntent) (*domain.PlayerState, []domain.GameEvent, error) {
	p, err := e.repos.Players.GetPlayer(ctx, domain.EntityID(in.Name))
	if err != nil {
		return nil, nil, err
	}
	return p, []domain.GameEvent{domain.SystemEvent{Text: fmt.Sprintf("Loaded save %q.", in.Name), Level: domain.SystemInfo}}, nil
}

func (e *Engine) handleHelp() ([]domain.GameEvent, error) {
	return []domain.GameEvent{domain.NarrativeEvent{
		Text: "Try: move, look, take, talk, attack, use, equip, trade, rest, quests, save, quit.",
	}}, nil
}

func (e *Engine) handleQuit() ([]domain.GameEvent, error) {
	return []domain.GameEvent{domain.SystemEvent{Text: "Farewell, traveler.", Level: domain.SystemInfo}}, nil
}

// handleRest restores the player to full health, but refuses while a
// hostile NPC shares the room — resting is a breather, not a combat move.
func (e *Engine) handleRest(ctx context.Context, player *domain.PlayerState) ([]domain.GameEvent, error) {
	entities, err := e.repos.Entities.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	for _, ent := range entities {
		if npc, ok := ent.(*domain.NPC); ok && npc.IsHostile {
			return nil, domain.ErrBlocked
		}
	}
	player.Health = player.MaxHealth
	return []domain.GameEvent{
		domain.NarrativeEvent{Text: "You rest and recover your strength."},
		domain.StatusUpdateEvent{Health: player.Health, MaxHealth: player.MaxHealth, Location: player.CurrentRoomID},
	}, nil
}

func (e *Engine) handleInteract(ctx context.Context, player *domain.PlayerState, in domain.InteractIntent) ([]domain.GameEvent, error) {
	entities, err := e.repos.Entities.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	for _, ent := range entities {
		if f, ok := ent.(*domain.Feature); ok && sameTarget(f.Name, in.Target) {
			if !f.Interactive {
				return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("The %s does not respond.", f.Name)}}, nil
			}
			return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You interact with the %s.", f.Name)}}, nil
		}
	}
	return nil, domain.ErrEntityNotFound
}

// handleCraft has no recipe catalog yet; this surfaces the gap honestly
// rather than silently no-opping.
func (e *Engine) handleCraft(in domain.CraftIntent) ([]domain.GameEvent, error) {
	return []domain.GameEvent{domain.SystemEvent{
		Text:  fmt.Sprintf("There is no known recipe for %q yet.", in.Recipe),
		Level: domain.SystemWarning,
	}}, nil
}

// handlePickpocket rolls a stealth check against the target NPC; success
// steals a small amount of gold, failure costs disposition the way a
// botched Persuade/Intimidate attempt would (§4.17's event taxonomy has no
// dedicated Pickpocket entry, so a failed attempt is treated as an
// IntimidationAttempt failure — it is an aggressive act the NPC resents
// just as much).
func (e *Engine) handlePickpocket(ctx context.Context, player *domain.PlayerState, in domain.PickpocketIntent) ([]domain.GameEvent, error) {
	npc, err := e.roomNPC(ctx, player, in.Target)
	if err != nil {
		return nil, err
	}
	result := e.skill.CheckSkill(e.rng, player.Skills["stealth"], 0, 15)
	if !result.Success {
		social.ApplyEvent(npc, domain.EventIntimidationAttempt, false, 0, time.Now(), "failed pickpocket")
		if err := e.repos.Entities.PutEntity(ctx, npc); err != nil {
			return nil, err
		}
		return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s notices your hand and pulls away.", npc.Name)}}, nil
	}

	trading, _ := npc.Components[domain.ComponentTrading].(domain.TradingComponent)
	stolen := trading.Gold / 10
	if stolen <= 0 {
		stolen = 1
	}
	if stolen > trading.Gold {
		stolen = trading.Gold
	}
	trading.Gold -= stolen
	npc.Components[domain.ComponentTrading] = trading
	player.Gold += stolen
	if err := e.repos.Entities.PutEntity(ctx, npc); err != nil {
		return nil, err
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You lift %d gold from %s unnoticed.", stolen, npc.Name)}}, nil
}

func (e *Engine) handleInvalid(in domain.InvalidIntent) ([]domain.GameEvent, error) {
	return []domain.GameEvent{domain.SystemEvent{Text: in.Message, Level: domain.SystemWarning}}, nil
}
