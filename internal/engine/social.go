package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/social"
)

func (e *Engine) roomNPC(ctx context.Context, player *domain.PlayerState, name string) (*domain.NPC, error) {
	entities, err := e.repos.Entities.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	npc := e.findNPCByName(entities, name)
	if npc == nil {
		return nil, domain.ErrEntityNotFound
	}
	return npc, nil
}

func (e *Engine) handleTalk(ctx context.Context, player *domain.PlayerState, in domain.TalkIntent) ([]domain.GameEvent, error) {
	npc, err := e.roomNPC(ctx, player, in.NPC)
	if err != nil {
		return nil, err
	}
	events := []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s regards you.", npc.Name)}}
	action := domain.ActionEvent{Kind: domain.ActionTalkToNpc, TargetID: npc.ID, Quantity: 1}
	if questEvents, err := e.advanceQuests(ctx, player, action); err == nil {
		events = append(events, questEvents...)
	}
	return events, nil
}

func (e *Engine) handleSay(ctx context.Context, player *domain.PlayerState, in domain.SayIntent) ([]domain.GameEvent, error) {
	if in.NPC == "" {
		return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You say, %q", in.Message)}}, nil
	}
	npc, err := e.roomNPC(ctx, player, in.NPC)
	if err != nil {
		return nil, err
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You say to %s, %q", npc.Name, in.Message)}}, nil
}

// socialCheck resolves a persuasion/intimidation-style skill check against
// difficulty, composing skill.CheckSkill with the matching disposition
// event, and persists the NPC.
func (e *Engine) socialCheck(ctx context.Context, player *domain.PlayerState, npc *domain.NPC, skillName string, eventType domain.SocialEventType, difficulty int) (ok bool, margin int, err error) {
	result := e.skill.CheckSkill(e.rng, player.Skills[skillName], 0, difficulty)
	social.ApplyEvent(npc, eventType, result.Success, result.Margin, time.Now(), skillName)
	if err := e.repos.Entities.PutEntity(ctx, npc); err != nil {
		return result.Success, result.Margin, err
	}
	return result.Success, result.Margin, nil
}

func (e *Engine) handlePersuade(ctx context.Context, player *domain.PlayerState, in domain.PersuadeIntent) ([]domain.GameEvent, error) {
	npc, err := e.roomNPC(ctx, player, in.Target)
	if err != nil {
		return nil, err
	}
	ok, _, err := e.socialCheck(ctx, player, npc, "persuasion", domain.EventPersuasionAttempt, 12)
	if err != nil {
		return nil, err
	}
	if ok {
		return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s is swayed by your words.", npc.Name)}}, nil
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s is unconvinced.", npc.Name)}}, nil
}

func (e *Engine) handleIntimidate(ctx context.Context, player *domain.PlayerState, in domain.IntimidateIntent) ([]domain.GameEvent, error) {
	npc, err := e.roomNPC(ctx, player, in.Target)
	if err != nil {
		return nil, err
	}
	ok, _, err := e.socialCheck(ctx, player, npc, "intimidation", domain.EventIntimidationAttempt, 14)
	if err != nil {
		return nil, err
	}
	if ok {
		return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s backs down, cowed.", npc.Name)}}, nil
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s stands firm.", npc.Name)}}, nil
}

func (e *Engine) handleEmote(player *domain.PlayerState, in domain.EmoteIntent) ([]domain.GameEvent, error) {
	if in.Target != "" {
		return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You %s at %s.", in.Type, in.Target)}}, nil
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You %s.", in.Type)}}, nil
}

func (e *Engine) handleAskQuestion(ctx context.Context, player *domain.PlayerState, in domain.AskQuestionIntent) ([]domain.GameEvent, error) {
	npc, err := e.roomNPC(ctx, player, in.NPC)
	if err != nil {
		return nil, err
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s has little to say about %q.", npc.Name, in.Topic)}}, nil
}

func (e *Engine) handleGive(ctx context.Context, player *domain.PlayerState, in domain.GiveIntent) ([]domain.GameEvent, error) {
	npc, err := e.roomNPC(ctx, player, in.NPC)
	if err != nil {
		return nil, err
	}
	tmplID, err := e.resolveHeldTemplate(ctx, player, in.Item)
	if err != nil {
		return nil, err
	}
	if !player.Inventory.Remove(tmplID, 1) {
		return nil, domain.ErrInsufficientStock
	}
	events := []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You give %s to %s.", in.Item, npc.Name)}}
	social.ApplyEvent(npc, domain.EventHelpProvided, true, 0, time.Now(), "gift: "+in.Item)
	if err := e.repos.Entities.PutEntity(ctx, npc); err != nil {
		return events, err
	}
	action := domain.ActionEvent{Kind: domain.ActionDeliverItem, TargetID: npc.ID, TemplateID: tmplID, Quantity: 1}
	if questEvents, err := e.advanceQuests(ctx, player, action); err == nil {
		events = append(events, questEvents...)
	}
	return events, nil
}
