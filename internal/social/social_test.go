package social

import (
	"testing"
	"time"

	"github.com/deepwarren/deepwarren/internal/domain"
)

func TestApplyEventPersuasionSuccessScalesWithMargin(t *testing.T) {
	npc := &domain.NPC{}
	got := ApplyEvent(npc, domain.EventPersuasionAttempt, true, 3, time.Now(), "smooth talk")
	if got != 13 {
		t.Fatalf("expected disposition 13 (10+margin), got %d", got)
	}

	social := npc.Components[domain.ComponentSocial].(domain.SocialComponent)
	if len(social.Events) != 1 || social.Events[0].Delta != 13 {
		t.Fatalf("expected recorded event with delta 13, got %+v", social.Events)
	}
}

func TestApplyEventPersuasionMarginClampedToTwenty(t *testing.T) {
	npc := &domain.NPC{}
	got := ApplyEvent(npc, domain.EventPersuasionAttempt, true, 50, time.Now(), "")
	if got != 20 {
		t.Fatalf("expected disposition clamped to 20, got %d", got)
	}
}

func TestApplyEventAttackedWithoutProvocationFloorsAtMin(t *testing.T) {
	npc := &domain.NPC{Components: map[domain.ComponentType]domain.Component{
		domain.ComponentSocial: domain.SocialComponent{Disposition: -50},
	}}
	got := ApplyEvent(npc, domain.EventAttackedWithoutProvocation, false, 0, time.Now(), "")
	if got != -100 {
		t.Fatalf("expected disposition clamped to -100, got %d", got)
	}
}

func TestApplyEventQuestCompletedAndHelpProvided(t *testing.T) {
	npc := &domain.NPC{}
	got := ApplyEvent(npc, domain.EventQuestCompleted, true, 0, time.Now(), "")
	if got != 15 {
		t.Fatalf("expected +15 for quest completion, got %d", got)
	}
	got = ApplyEvent(npc, domain.EventHelpProvided, true, 0, time.Now(), "")
	if got != 35 {
		t.Fatalf("expected cumulative +35 after help provided, got %d", got)
	}
}

func TestTrainingGatedByTier(t *testing.T) {
	if TrainingAllowed(domain.TierNeutral) {
		t.Fatal("expected NEUTRAL to not allow training")
	}
	if !TrainingAllowed(domain.TierFriendly) {
		t.Fatal("expected FRIENDLY to allow training")
	}
	if TrainingMultiplier(domain.TierAllied) != 2.5 {
		t.Fatalf("expected ALLIED multiplier 2.5, got %v", TrainingMultiplier(domain.TierAllied))
	}
}

func TestPriceModifierByTier(t *testing.T) {
	mod, refuses := PriceModifier(domain.TierHostile)
	if mod != 1.5 || !refuses {
		t.Fatalf("expected hostile tier to mark refuses, got mod=%v refuses=%v", mod, refuses)
	}
	mod, refuses = PriceModifier(domain.TierAllied)
	if mod != 0.7 || refuses {
		t.Fatalf("expected allied modifier 0.7, got mod=%v refuses=%v", mod, refuses)
	}
}
