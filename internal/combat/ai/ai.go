// Package ai implements the monster AI decision pipeline (C13): a cheap
// fallback rule, an optional LLM-backed override, and a personality filter
// that can override either.
package ai

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// Decision is one of the five actions C13 can produce.
type Decision int

const (
	Attack Decision = iota
	Defend
	Flee
	UseItem
	Wait
)

func (d Decision) String() string {
	switch d {
	case Attack:
		return "attack"
	case Defend:
		return "defend"
	case Flee:
		return "flee"
	case UseItem:
		return "use_item"
	case Wait:
		return "wait"
	default:
		return "unknown"
	}
}

// Action is the pipeline's output: what to do, and against whom for Attack.
type Action struct {
	Decision Decision
	TargetID domain.EntityID
}

// Decide runs npc through the fallback → optional LLM → personality
// pipeline (§4.13) and returns the action the caller should enqueue and
// apply via the combat resolver. modelID selects the model for the LLM
// branch; it is ignored when llm is nil.
func Decide(ctx context.Context, npc *domain.NPC, targetID domain.EntityID, hasHealItem bool, llm domain.LlmClient, modelID string) Action {
	hpFrac := healthFraction(npc)
	decision := fallback(hpFrac, hasHealItem)

	if llm != nil && npc.Stats.Intelligence > 20 {
		if d, ok := askLLM(ctx, npc, targetID, hpFrac, llm, modelID); ok {
			decision = d
		}
	}

	decision = applyPersonality(decision, npc.Personality, hpFrac)
	return Action{Decision: decision, TargetID: targetID}
}

// fallback implements step 1: HP<15% flee; 15-45% heal if able, else
// attack; 45-100% attack.
func fallback(hpFrac float64, hasHealItem bool) Decision {
	switch {
	case hpFrac < 0.15:
		return Flee
	case hpFrac < 0.45:
		if hasHealItem {
			return UseItem
		}
		return Attack
	default:
		return Attack
	}
}

// askLLM requests a decision from llm at a wisdom-scaled temperature (low
// wisdom -> more random); a parse or transport failure leaves ok false so
// the caller keeps its fallback decision.
func askLLM(ctx context.Context, npc *domain.NPC, targetID domain.EntityID, hpFrac float64, llm domain.LlmClient, modelID string) (Decision, bool) {
	temperature := 1.5 - math.Min(1.2, float64(npc.Stats.Wisdom)/50.0)

	system := "You are a monster's combat instinct in a dungeon crawler. Reply with exactly one word: attack, defend, flee, use_item, or wait."
	user := fmt.Sprintf("You are %s at %.0f%% health, facing %s. Choose your action.", npc.Name, hpFrac*100, targetID)

	reply, err := llm.ChatCompletion(ctx, modelID, system, user, 8, temperature)
	if err != nil || len(reply.Choices) == 0 {
		return Wait, false
	}
	return parseDecision(reply.Choices[0].Message.Content)
}

func parseDecision(text string) (Decision, bool) {
	word := strings.ToLower(strings.TrimSpace(text))
	word = strings.Trim(word, ".!\"' ")
	switch word {
	case "attack":
		return Attack, true
	case "defend":
		return Defend, true
	case "flee":
		return Flee, true
	case "use_item", "useitem", "use item":
		return UseItem, true
	case "wait":
		return Wait, true
	default:
		return Wait, false
	}
}

// applyPersonality runs each of npc's traits over decision in turn (§4.13
// step 3). Multiple traits compose: each sees the previous trait's result.
func applyPersonality(decision Decision, traits []domain.PersonalityTrait, hpFrac float64) Decision {
	for _, t := range traits {
		switch t {
		case domain.TraitAggressive:
			if decision == Flee || decision == Wait || decision == Defend {
				decision = Attack
			}
		case domain.TraitCowardly:
			if decision == Attack && hpFrac < 0.5 {
				decision = Flee
			}
		case domain.TraitDefensive:
			if decision == Attack && hpFrac < 0.7 {
				decision = Defend
			}
		case domain.TraitGreedy:
			if decision == Flee && hpFrac < 0.2 {
				decision = Attack
			}
		case domain.TraitBrave:
			if decision == Flee && hpFrac > 0.1 {
				decision = Attack
			}
		}
	}
	return decision
}

func healthFraction(npc *domain.NPC) float64 {
	if npc.MaxHealth <= 0 {
		return 0
	}
	return float64(npc.Health) / float64(npc.MaxHealth)
}
