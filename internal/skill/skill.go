// Package skill implements the per-entity skill progression engine (C16):
// unlock, xp grant with level-up thresholds, perk milestones every 10th
// level, and margin-based skill checks.
package skill

import (
	"math"

	"github.com/deepwarren/deepwarren/internal/domain"
)

const perkMilestoneInterval = 10

// DiceRoller is the minimal randomness capability CheckSkill needs. Both
// *math/rand.Rand and worldgen.RNG satisfy it structurally.
type DiceRoller interface {
	Intn(n int) int
}

// Engine is stateless; all mutable state lives in the caller's
// map[string]domain.SkillState (an entity's SkillComponent or the player's
// Skills field).
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Threshold returns the xp required to advance past level (100 × level^1.5).
func Threshold(level int) int64 {
	return int64(100 * math.Pow(float64(level), 1.5))
}

// Unlock sets skill to level 1 if not already unlocked. Returns the
// resulting state and whether this call actually unlocked it (false when
// already unlocked — unlock is a no-op per §4.16).
func (e *Engine) Unlock(skills map[string]domain.SkillState, name string) (domain.SkillState, bool) {
	if s, ok := skills[name]; ok && s.Unlocked {
		return s, false
	}
	s := domain.SkillState{Level: 1, Unlocked: true}
	skills[name] = s
	return s, true
}

// GrantXP awards base xp on success, floor(base*0.2) on failure, advancing
// level each time the running total crosses Threshold(level). perkDue is
// true when a level-up lands on a multiple of 10 (§4.16).
func (e *Engine) GrantXP(skills map[string]domain.SkillState, name string, base int64, success bool) (state domain.SkillState, leveledUp, perkDue bool) {
	s := skills[name]
	if !s.Unlocked {
		s = domain.SkillState{Level: 1, Unlocked: true}
	}

	gain := base
	if !success {
		gain = int64(math.Floor(float64(base) * 0.2))
	}
	s.XP += gain

	for s.XP >= Threshold(s.Level) {
		s.Level++
		leveledUp = true
		if s.Level%perkMilestoneInterval == 0 {
			perkDue = true
		}
	}

	skills[name] = s
	return s, leveledUp, perkDue
}

// EffectiveLevel adds equipment and perk bonuses to the raw skill level.
func EffectiveLevel(s domain.SkillState, equipmentBonus int) int {
	total := s.Level + equipmentBonus
	for _, p := range s.Perks {
		total += p.Bonus
	}
	return total
}

// CheckResult is the outcome of a margin-based skill check.
type CheckResult struct {
	Success bool
	Roll    int
	Margin  int
}

// CheckSkill rolls d20 + effectiveLevel/2 against difficulty (§4.16).
func (e *Engine) CheckSkill(roller DiceRoller, s domain.SkillState, equipmentBonus, difficulty int) CheckResult {
	roll := roller.Intn(20) + 1 + EffectiveLevel(s, equipmentBonus)/2
	return CheckResult{Success: roll >= difficulty, Roll: roll, Margin: roll - difficulty}
}
