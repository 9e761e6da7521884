package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/deepwarren/deepwarren/internal/combat"
	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/infra/metrics"
	"github.com/deepwarren/deepwarren/internal/lifecycle"
	"github.com/deepwarren/deepwarren/internal/social"
)

// playerTemplates resolves the player's equipped weapon/armor instances to
// their ItemTemplate, tolerating either being unequipped.
func (e *Engine) playerTemplates(ctx context.Context, player *domain.PlayerState) (weapon, armor *domain.ItemTemplate) {
	if player.EquippedWeapon != nil {
		if t, err := e.repos.Templates.GetTemplate(ctx, player.EquippedWeapon.TemplateID); err == nil {
			weapon = t
		}
	}
	if player.EquippedArmor != nil {
		if t, err := e.repos.Templates.GetTemplate(ctx, player.EquippedArmor.TemplateID); err == nil {
			armor = t
		}
	}
	return weapon, armor
}

func (e *Engine) handleAttack(ctx context.Context, player *domain.PlayerState, in domain.AttackIntent) ([]domain.GameEvent, error) {
	entities, err := e.repos.Entities.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	npc := e.findNPCByName(entities, in.Target)
	if npc == nil {
		return nil, domain.ErrEntityNotFound
	}

	unprovoked := !npc.IsHostile
	weapon, armor := e.playerTemplates(ctx, player)
	attacker := combat.FromPlayer(player, weapon, armor)
	defender := combat.FromNPC(npc)

	outcome := e.combat.Attack(attacker, &defender, "", e.rng)
	npc.Health = defender.Health

	var events []domain.GameEvent
	verb := "hit"
	result := "hit"
	if outcome.Critical {
		verb = "critically strike"
		result = "crit"
	}
	if outcome.Died {
		result = "kill"
	}
	metrics.AttacksResolved.WithLabelValues(result).Inc()
	events = append(events, domain.CombatEvent{
		Text:   fmt.Sprintf("You %s %s for %d damage.", verb, npc.Name, outcome.Damage),
		Damage: outcome.Damage,
	})

	if unprovoked {
		social.ApplyEvent(npc, domain.EventAttackedWithoutProvocation, false, 0, time.Now(), "unprovoked attack")
	}

	if outcome.Died {
		events = append(events, domain.NarrativeEvent{Text: fmt.Sprintf("%s collapses, dead.", npc.Name)})
		if _, err := lifecycle.PlaceNPCCorpse(ctx, e.repos.Entities, npc, player.CurrentRoomID, e.rng); err != nil {
			return events, err
		}
		action := domain.ActionEvent{Kind: domain.ActionKillEnemy, TargetID: npc.ID, Quantity: 1}
		if questEvents, err := e.advanceQuests(ctx, player, action); err == nil {
			events = append(events, questEvents...)
		}
		e.queue.Remove(npc.ID)
		return events, nil
	}

	defender.IsHostile = true
	npc.IsHostile = true
	if npc.Components == nil {
		npc.Components = make(map[domain.ComponentType]domain.Component)
	}
	npc.Components[domain.ComponentCombat] = domain.CombatComponent{TargetID: player.ID}
	if err := e.repos.Entities.PutEntity(ctx, npc); err != nil {
		return events, err
	}
	e.combat.ScheduleCounterattack(defender, e.now())
	return events, nil
}
