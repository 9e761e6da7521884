package combat

import (
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/turn"
)

type fixedRoller struct{ n int }

func (f fixedRoller) Intn(n int) int { return f.n }

func TestAttackAppliesWeaponAndArmor(t *testing.T) {
	r := NewResolver(turn.NewQueue())
	attacker := Combatant{Strength: 14, WeaponBonus: 3}
	defender := Combatant{Health: 30, MaxHealth: 30, ArmorDefense: 2}

	out := r.Attack(attacker, &defender, "", fixedRoller{9}) // roll 10
	// roll 10, strMod(14)=2, +weapon 3, -armor 2 = 13
	if out.Damage != 13 {
		t.Fatalf("expected damage 13, got %d", out.Damage)
	}
	if out.Critical {
		t.Fatal("roll of 10 should not be critical")
	}
	if defender.Health != 17 {
		t.Fatalf("expected defender health 17, got %d", defender.Health)
	}
}

func TestAttackCriticalDoublesRoll(t *testing.T) {
	r := NewResolver(turn.NewQueue())
	attacker := Combatant{Strength: 10} // strMod(10) = 0
	defender := Combatant{Health: 100, MaxHealth: 100}

	out := r.Attack(attacker, &defender, "", fixedRoller{19}) // Intn(20) -> 19, +1 = 20
	if !out.Critical {
		t.Fatal("expected a natural 20 to be critical")
	}
	if out.Damage != 40 {
		t.Fatalf("expected doubled roll damage of 40, got %d", out.Damage)
	}
}

func TestAttackDamageNeverBelowOne(t *testing.T) {
	r := NewResolver(turn.NewQueue())
	attacker := Combatant{}
	defender := Combatant{Health: 10, MaxHealth: 10, ArmorDefense: 100}

	out := r.Attack(attacker, &defender, "", fixedRoller{0}) // roll 1
	if out.Damage != 1 {
		t.Fatalf("expected minimum damage of 1, got %d", out.Damage)
	}
}

func TestAttackResistanceReducesDamage(t *testing.T) {
	r := NewResolver(turn.NewQueue())
	attacker := Combatant{Strength: 10} // strMod(10) = 0
	defender := Combatant{Health: 100, MaxHealth: 100, Resistances: map[string]int{"fire": 40}}

	out := r.Attack(attacker, &defender, "fire", fixedRoller{9}) // roll 10
	// floor(10 * (40/2) / 100) = floor(10*20/100) = 2 -> damage 8
	if out.Damage != 8 {
		t.Fatalf("expected resisted damage of 8, got %d", out.Damage)
	}
}

func TestAttackSetsDiedOnLethalDamage(t *testing.T) {
	r := NewResolver(turn.NewQueue())
	attacker := Combatant{WeaponBonus: 50}
	defender := Combatant{Health: 5, MaxHealth: 5}

	out := r.Attack(attacker, &defender, "", fixedRoller{9})
	if !out.Died || defender.Health != 0 {
		t.Fatalf("expected lethal attack to report Died and clamp health to 0, got %+v (health=%d)", out, defender.Health)
	}
}

func TestScheduleCounterattackOnlyForHostileAlive(t *testing.T) {
	q := turn.NewQueue()
	r := NewResolver(q)

	r.ScheduleCounterattack(Combatant{EntityID: "peaceful", IsHostile: false, Health: 10}, 0)
	if q.Contains("peaceful") {
		t.Fatal("non-hostile defender should not be scheduled")
	}

	r.ScheduleCounterattack(Combatant{EntityID: "dead", IsHostile: true, Health: 0}, 0)
	if q.Contains("dead") {
		t.Fatal("dead defender should not be scheduled")
	}

	r.ScheduleCounterattack(Combatant{EntityID: "hostile", IsHostile: true, Health: 10, SpeedLevel: 0}, 100)
	if !q.Contains("hostile") {
		t.Fatal("expected hostile, alive defender to be scheduled")
	}
}

func TestDeescalateClearsQueueAndCombatComponent(t *testing.T) {
	q := turn.NewQueue()
	npc := &domain.NPC{ID: "goblin", Components: map[domain.ComponentType]domain.Component{
		domain.ComponentCombat: domain.CombatComponent{TargetID: "player"},
	}}
	q.Enqueue(npc.ID, 50)

	Deescalate(q, npc, -50) // still hostile tier, no change
	if !q.Contains(npc.ID) {
		t.Fatal("should not de-escalate while still below NEUTRAL")
	}

	Deescalate(q, npc, 0) // NEUTRAL
	if q.Contains(npc.ID) {
		t.Fatal("expected de-escalation to remove the queued turn")
	}
	if _, ok := npc.Components[domain.ComponentCombat]; ok {
		t.Fatal("expected CombatComponent to be cleared")
	}
}
