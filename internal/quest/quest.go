// Package quest implements the quest tracker (C18): matching gameplay
// action events against active quest objectives and completing quests
// once every objective is satisfied.
package quest

import (
	"context"
	"fmt"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/repo"
	"github.com/deepwarren/deepwarren/internal/social"
)

// UpdateAfterAction matches action against every objective of every one of
// player's active quests (§4.18's six Kind pairs — ActionEvent.Kind and
// QuestObjective.Kind share the same ActionKind values, so matching is a
// direct comparison), advances progress, and completes a quest once all of
// its objectives are done. Completion applies a +15 disposition event to
// the quest's giver NPC via social.ApplyEvent (C17) and emits a QuestEvent.
func UpdateAfterAction(ctx context.Context, entities repo.EntityRepository, player *domain.PlayerState, action domain.ActionEvent, now time.Time) ([]domain.GameEvent, error) {
	var events []domain.GameEvent
	var stillActive []domain.Quest

	for _, q := range player.ActiveQuests {
		advanceQuest(&q, action, player)

		if !q.AllObjectivesDone() {
			stillActive = append(stillActive, q)
			continue
		}

		q.Status = domain.QuestCompleted
		player.CompletedQuests = append(player.CompletedQuests, q)
		events = append(events, domain.QuestEvent{Text: fmt.Sprintf("Quest complete: %s", q.Title), QuestID: q.ID})

		if q.GiverID != "" {
			if giver, err := entities.GetEntity(ctx, q.GiverID); err == nil {
				if npc, ok := giver.(*domain.NPC); ok {
					social.ApplyEvent(npc, domain.EventQuestCompleted, true, 0, now, "quest: "+q.Title)
					if err := entities.PutEntity(ctx, npc); err != nil {
						return events, fmt.Errorf("persist quest giver disposition: %w", err)
					}
				}
			}
		}
	}
	player.ActiveQuests = stillActive
	return events, nil
}

// advanceQuest mutates q's matching objectives in place for one action.
func advanceQuest(q *domain.Quest, action domain.ActionEvent, player *domain.PlayerState) {
	for i := range q.Objectives {
		obj := &q.Objectives[i]
		if obj.Done() || !matches(*obj, action) {
			continue
		}

		if obj.Kind == domain.ActionCollectItem && obj.TargetID != "" {
			// Verified against the player's actual inventory rather than
			// trusted from the action event, per §4.18.
			obj.Progress = inventoryCount(player, domain.ItemTemplateID(obj.TargetID))
			continue
		}

		qty := action.Quantity
		if qty <= 0 {
			qty = 1
		}
		obj.Progress += qty
	}
}

func matches(obj domain.QuestObjective, action domain.ActionEvent) bool {
	if obj.Kind != action.Kind {
		return false
	}
	if obj.TargetID == "" {
		return true
	}
	switch action.Kind {
	case domain.ActionKillEnemy, domain.ActionTalkToNpc:
		return obj.TargetID == string(action.TargetID)
	case domain.ActionCollectItem, domain.ActionDeliverItem:
		return obj.TargetID == string(action.TemplateID)
	case domain.ActionExploreRoom:
		return obj.TargetID == string(action.SpaceID)
	case domain.ActionUseSkill:
		return obj.TargetID == action.Skill
	default:
		return false
	}
}

func inventoryCount(player *domain.PlayerState, templateID domain.ItemTemplateID) int {
	count := 0
	for _, it := range player.Inventory.Items {
		if it.TemplateID == templateID {
			count += it.Quantity
		}
	}
	return count
}
