package ai

import (
	"context"
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
)

func TestFallbackThresholds(t *testing.T) {
	cases := []struct {
		hpFrac      float64
		hasHeal     bool
		want        Decision
	}{
		{0.10, false, Flee},
		{0.10, true, Flee},
		{0.30, true, UseItem},
		{0.30, false, Attack},
		{0.80, true, Attack},
	}
	for _, c := range cases {
		if got := fallback(c.hpFrac, c.hasHeal); got != c.want {
			t.Errorf("fallback(%.2f, %v) = %v, want %v", c.hpFrac, c.hasHeal, got, c.want)
		}
	}
}

func TestDecideUsesFallbackWithoutLLM(t *testing.T) {
	npc := &domain.NPC{Health: 5, MaxHealth: 100, Stats: domain.Stats{Intelligence: 5}}
	action := Decide(context.Background(), npc, "player", false, nil, "")
	if action.Decision != Flee {
		t.Fatalf("expected Flee at 5%% health, got %v", action.Decision)
	}
}

func TestPersonalityAggressiveOverridesDefend(t *testing.T) {
	got := applyPersonality(Defend, []domain.PersonalityTrait{domain.TraitAggressive}, 0.9)
	if got != Attack {
		t.Fatalf("expected aggressive trait to force Attack, got %v", got)
	}
}

func TestPersonalityCowardlyFleesUnderHalfHP(t *testing.T) {
	got := applyPersonality(Attack, []domain.PersonalityTrait{domain.TraitCowardly}, 0.3)
	if got != Flee {
		t.Fatalf("expected cowardly trait to force Flee under 50%% hp, got %v", got)
	}
}

func TestPersonalityBraveSuppressesFleeAboveTenPercent(t *testing.T) {
	got := applyPersonality(Flee, []domain.PersonalityTrait{domain.TraitBrave}, 0.5)
	if got != Attack {
		t.Fatalf("expected brave trait to suppress Flee above 10%% hp, got %v", got)
	}
}

func TestPersonalityGreedyAttacksUnderTwentyPercentWhenFleeing(t *testing.T) {
	got := applyPersonality(Flee, []domain.PersonalityTrait{domain.TraitGreedy}, 0.1)
	if got != Attack {
		t.Fatalf("expected greedy trait to force Attack under 20%% hp, got %v", got)
	}
}

func TestParseDecisionHandlesPunctuationAndCase(t *testing.T) {
	d, ok := parseDecision(" Attack.\n")
	if !ok || d != Attack {
		t.Fatalf("expected to parse Attack, got %v ok=%v", d, ok)
	}
	if _, ok := parseDecision("gibberish"); ok {
		t.Fatal("expected unparseable text to report ok=false")
	}
}
