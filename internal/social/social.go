// Package social implements the disposition engine (C17): how an NPC's
// attitude toward the player moves in response to events, and what that
// attitude unlocks or costs elsewhere (training, trade).
package social

import (
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ApplyEvent updates npc's disposition for eventType (§4.17), clamps it to
// [-100,+100], appends a SocialEventRecord, and persists the updated
// SocialComponent back onto npc. margin is only meaningful for
// PersuasionAttempt/IntimidationAttempt; success is ignored for the other
// event types. Returns the resulting disposition.
func ApplyEvent(npc *domain.NPC, eventType domain.SocialEventType, success bool, margin int, now time.Time, note string) int {
	social, _ := npc.Components[domain.ComponentSocial].(domain.SocialComponent)

	delta := deltaFor(eventType, success, margin)
	social.Disposition = domain.ClampDisposition(social.Disposition + delta)
	social.Events = append(social.Events, domain.SocialEventRecord{
		Type: eventType, Delta: delta, Timestamp: now, Note: note,
	})

	if npc.Components == nil {
		npc.Components = make(map[domain.ComponentType]domain.Component)
	}
	npc.Components[domain.ComponentSocial] = social
	return social.Disposition
}

func deltaFor(eventType domain.SocialEventType, success bool, margin int) int {
	switch eventType {
	case domain.EventPersuasionAttempt:
		if success {
			return clamp(10+margin, 10, 20)
		}
		return -5
	case domain.EventIntimidationAttempt:
		if success {
			return clamp(5+margin, 5, 15)
		}
		return -10
	case domain.EventQuestCompleted:
		return 15
	case domain.EventAttackedWithoutProvocation:
		return -100
	case domain.EventHelpProvided:
		return 20
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TrainingAllowed reports whether tier permits a trainer to teach the
// player a skill (§4.17: FRIENDLY or above).
func TrainingAllowed(tier domain.DispositionTier) bool {
	return tier >= domain.TierFriendly
}

// TrainingMultiplier is the XP multiplier a trainer grants at tier. Only
// meaningful when TrainingAllowed(tier) is true.
func TrainingMultiplier(tier domain.DispositionTier) float64 {
	switch tier {
	case domain.TierAllied:
		return 2.5
	case domain.TierFriendly:
		return 2.0
	default:
		return 1.0
	}
}

// PriceModifier is the multiplier a merchant at tier applies to
// calculateBuyPrice (§4.17/§4.20). refuses is true at HOSTILE, where a
// merchant may decline to trade at all rather than merely charge a
// markup; callers decide whether to enforce that refusal.
func PriceModifier(tier domain.DispositionTier) (modifier float64, refuses bool) {
	switch tier {
	case domain.TierAllied:
		return 0.7, false
	case domain.TierFriendly:
		return 0.85, false
	case domain.TierNeutral:
		return 1.0, false
	case domain.TierUnfriendly:
		return 1.15, false
	default: // TierHostile
		return 1.5, true
	}
}
