package engine

import (
	"context"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/skill"
	"github.com/deepwarren/deepwarren/internal/social"
)

func (e *Engine) handleUseSkill(ctx context.Context, player *domain.PlayerState, in domain.UseSkillIntent) ([]domain.GameEvent, error) {
	if player.Skills == nil {
		player.Skills = make(map[string]domain.SkillState)
	}
	state, ok := player.Skills[in.Skill]
	if !ok || !state.Unlocked {
		return nil, domain.ErrSkillNotFound
	}

	result := e.skill.CheckSkill(e.rng, state, 0, 12)
	newState, leveledUp, perkDue := e.skill.GrantXP(player.Skills, in.Skill, 25, result.Success)

	events := []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You attempt %s: %s.", in.Action, outcomeWord(result.Success))}}
	if leveledUp {
		events = append(events, domain.SystemEvent{Text: fmt.Sprintf("%s reaches level %d.", in.Skill, newState.Level), Level: domain.SystemInfo})
	}
	if perkDue {
		if choices := skill.PerksFor(in.Skill); len(choices) > 0 {
			events = append(events, domain.SystemEvent{Text: fmt.Sprintf("A perk is available for %s.", in.Skill), Level: domain.SystemInfo})
		}
	}

	action := domain.ActionEvent{Kind: domain.ActionUseSkill, Skill: in.Skill, Quantity: 1}
	if questEvents, err := e.advanceQuests(ctx, player, action); err == nil {
		events = append(events, questEvents...)
	}
	return events, nil
}

func outcomeWord(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// handleTrainSkill requires a FRIENDLY-or-better trainer NPC in the
// player's current room (§4.17's training gate) and grants a
// disposition-scaled XP bonus rather than a plain GrantXP call.
func (e *Engine) handleTrainSkill(ctx context.Context, player *domain.PlayerState, in domain.TrainSkillIntent) ([]domain.GameEvent, error) {
	entities, err := e.repos.Entities.EntitiesInSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	var trainer *domain.NPC
	for _, ent := range entities {
		if npc, ok := ent.(*domain.NPC); ok {
			trainer = npc
			break
		}
	}
	if trainer == nil {
		return nil, domain.ErrEntityNotFound
	}
	sc, _ := trainer.Components[domain.ComponentSocial].(domain.SocialComponent)
	tier := domain.DispositionTierOf(sc.Disposition)
	if !social.TrainingAllowed(tier) {
		return nil, domain.ErrTrainingNotAllowed
	}

	if player.Skills == nil {
		player.Skills = make(map[string]domain.SkillState)
	}
	base := int64(100 * social.TrainingMultiplier(tier))
	_, leveledUp, perkDue := e.skill.GrantXP(player.Skills, in.Skill, base, true)
	events := []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("%s trains you in %s via %s.", trainer.Name, in.Skill, in.Method)}}
	if leveledUp {
		events = append(events, domain.SystemEvent{Text: fmt.Sprintf("%s improves.", in.Skill), Level: domain.SystemInfo})
	}
	_ = perkDue
	return events, nil
}

func (e *Engine) handleChoosePerk(player *domain.PlayerState, in domain.ChoosePerkIntent) ([]domain.GameEvent, error) {
	choices := skill.PerksFor(in.Skill)
	if len(choices) == 0 {
		return nil, domain.ErrInvalidAction
	}
	for _, p := range choices {
		if sameTarget(p.Name, in.Choice) {
			state := player.Skills[in.Skill]
			state.Perks = append(state.Perks, p)
			player.Skills[in.Skill] = state
			return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You take the %s perk.", p.Name)}}, nil
		}
	}
	return nil, domain.ErrInvalidAction
}

func (e *Engine) handleViewSkills(player *domain.PlayerState) ([]domain.GameEvent, error) {
	if len(player.Skills) == 0 {
		return []domain.GameEvent{domain.NarrativeEvent{Text: "You have not unlocked any skills yet."}}, nil
	}
	text := "Skills:"
	for name, s := range player.Skills {
		text += fmt.Sprintf(" %s (lvl %d),", name, s.Level)
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: text}}, nil
}

func (e *Engine) handleQuests(player *domain.PlayerState) ([]domain.GameEvent, error) {
	if len(player.ActiveQuests) == 0 {
		return []domain.GameEvent{domain.NarrativeEvent{Text: "You have no active quests."}}, nil
	}
	text := "Active quests:"
	for _, q := range player.ActiveQuests {
		text += fmt.Sprintf(" %s,", q.Title)
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: text}}, nil
}

func (e *Engine) handleAcceptQuest(ctx context.Context, player *domain.PlayerState, in domain.AcceptQuestIntent) ([]domain.GameEvent, error) {
	q, err := e.repos.Quests.GetQuest(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if q.Status != domain.QuestAvailable {
		return nil, domain.ErrConflict
	}
	accepted := *q
	accepted.Status = domain.QuestActive
	player.ActiveQuests = append(player.ActiveQuests, accepted)
	return []domain.GameEvent{domain.QuestEvent{Text: fmt.Sprintf("Quest accepted: %s", accepted.Title), QuestID: accepted.ID}}, nil
}

func (e *Engine) handleAbandonQuest(player *domain.PlayerState, in domain.AbandonQuestIntent) ([]domain.GameEvent, error) {
	for i, q := range player.ActiveQuests {
		if q.ID == in.ID {
			player.ActiveQuests = append(player.ActiveQuests[:i], player.ActiveQuests[i+1:]...)
			return []domain.GameEvent{domain.QuestEvent{Text: fmt.Sprintf("Quest abandoned: %s", q.Title), QuestID: q.ID}}, nil
		}
	}
	return nil, domain.ErrQuestNotFound
}

func (e *Engine) handleClaimReward(player *domain.PlayerState, in domain.ClaimRewardIntent) ([]domain.GameEvent, error) {
	for i, q := range player.CompletedQuests {
		if q.ID != in.ID {
			continue
		}
		if q.Status == domain.QuestClaimed {
			return nil, domain.ErrConflict
		}
		player.Gold += q.RewardGold
		player.CompletedQuests[i].Status = domain.QuestClaimed
		return []domain.GameEvent{
			domain.QuestEvent{Text: fmt.Sprintf("You claim the reward for %s: %d gold, %d xp.", q.Title, q.RewardGold, q.RewardXP), QuestID: q.ID},
			domain.StatusUpdateEvent{Health: player.Health, MaxHealth: player.MaxHealth, Location: player.CurrentRoomID},
		}, nil
	}
	return nil, domain.ErrQuestNotFound
}
