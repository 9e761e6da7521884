package skill

import (
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
)

type fixedRoller struct{ n int }

func (f fixedRoller) Intn(n int) int { return f.n }

func TestUnlockIsNoOpWhenAlreadyUnlocked(t *testing.T) {
	e := NewEngine()
	skills := map[string]domain.SkillState{}

	_, unlocked := e.Unlock(skills, "perception")
	if !unlocked {
		t.Fatal("expected first unlock to report true")
	}
	_, unlocked = e.Unlock(skills, "perception")
	if unlocked {
		t.Fatal("expected second unlock to be a no-op")
	}
	if skills["perception"].Level != 1 {
		t.Fatalf("expected level 1 after unlock, got %d", skills["perception"].Level)
	}
}

func TestGrantXPFailureIsOneFifth(t *testing.T) {
	e := NewEngine()
	skills := map[string]domain.SkillState{"perception": {Level: 1, Unlocked: true}}

	e.GrantXP(skills, "perception", 100, false)
	if skills["perception"].XP != 20 {
		t.Fatalf("expected 20 xp on failure (floor(100*0.2)), got %d", skills["perception"].XP)
	}
}

func TestGrantXPLevelsUpAndFlagsPerkMilestone(t *testing.T) {
	e := NewEngine()
	skills := map[string]domain.SkillState{"melee": {Level: 9, Unlocked: true, XP: 0}}

	// Threshold(9) = 100*9^1.5 ≈ 2700 and Threshold(10) ≈ 3162; XP is
	// cumulative, so 3000 crosses the first but not the second: level 10.
	_, leveledUp, perkDue := e.GrantXP(skills, "melee", 3000, true)
	if !leveledUp {
		t.Fatal("expected a level-up")
	}
	if skills["melee"].Level != 10 {
		t.Fatalf("expected level 10, got %d", skills["melee"].Level)
	}
	if !perkDue {
		t.Fatal("expected perk milestone at level 10")
	}
}

func TestCheckSkillMarginAndSuccess(t *testing.T) {
	e := NewEngine()
	s := domain.SkillState{Level: 10, Unlocked: true}

	result := e.CheckSkill(fixedRoller{n: 14}, s, 0, 18)
	// roll = (14+1) + effectiveLevel(10)/2 = 15 + 5 = 20
	if result.Roll != 20 {
		t.Fatalf("expected roll 20, got %d", result.Roll)
	}
	if !result.Success {
		t.Fatal("expected success: 20 >= 18")
	}
	if result.Margin != 2 {
		t.Fatalf("expected margin 2, got %d", result.Margin)
	}
}

func TestCheckSkillFailure(t *testing.T) {
	e := NewEngine()
	s := domain.SkillState{Level: 1, Unlocked: true}

	result := e.CheckSkill(fixedRoller{n: 0}, s, 0, 15)
	// roll = (0+1) + effectiveLevel(1)/2 = 1 + 0 = 1
	if result.Success {
		t.Fatal("expected failure: 1 < 15")
	}
}
