// Package combat implements the combat resolver (C12): a single attack
// resolution step plus the counter-attack scheduling and de-escalation
// rules that tie it back into the turn scheduler (C10).
package combat

import (
	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/turn"
)

// DiceRoller is the minimal randomness surface the resolver needs. Both
// *math/rand.Rand and worldgen.RNG satisfy it structurally.
type DiceRoller interface {
	Intn(n int) int
}

// Combatant is a resolved snapshot of one side of an attack: whatever the
// attacker/defender actually is (player or NPC), stripped down to the
// numbers the resolver needs. Callers build one from a PlayerState (via
// FromPlayer) or an NPC (via FromNPC).
type Combatant struct {
	EntityID     domain.EntityID
	Health       int
	MaxHealth    int
	Strength     int
	SpeedLevel   int
	WeaponBonus  int
	ArmorDefense int
	Resistances  map[string]int
	IsHostile    bool
}

// FromPlayer builds a Combatant from a player's stats and equipped gear.
// weapon/armor may be nil if nothing is equipped.
func FromPlayer(p *domain.PlayerState, weapon, armor *domain.ItemTemplate) Combatant {
	c := Combatant{
		EntityID: p.ID, Health: p.Health, MaxHealth: p.MaxHealth,
		Strength: p.Stats.Strength, SpeedLevel: p.Stats.SpeedLevel,
	}
	if weapon != nil {
		c.WeaponBonus = weapon.WeaponBonus
	}
	if armor != nil {
		c.ArmorDefense = armor.ArmorDefense
		c.Resistances = armor.Resistances
	}
	return c
}

// FromNPC builds a Combatant from an NPC's baked-in combat profile.
func FromNPC(n *domain.NPC) Combatant {
	return Combatant{
		EntityID: n.ID, Health: n.Health, MaxHealth: n.MaxHealth,
		Strength: n.Stats.Strength, SpeedLevel: n.Stats.SpeedLevel,
		WeaponBonus: n.WeaponBonus, ArmorDefense: n.ArmorDefense,
		Resistances: n.Resistances, IsHostile: n.IsHostile,
	}
}

// AttackOutcome is what the resolver reports back; it never mutates or
// removes entities itself — C14/C15 act on the Died flag.
type AttackOutcome struct {
	Roll           int
	Critical       bool
	Damage         int
	DefenderHealth int
	Died           bool
}

// strengthMod is the standard ability-score-modifier curve: floor((str-10)/2).
func strengthMod(strength int) int {
	if strength >= 10 {
		return (strength - 10) / 2
	}
	return -((10 - strength + 1) / 2)
}

// Resolver applies attacks and keeps the turn queue in sync with their
// combat-side effects (counter-attack scheduling, de-escalation).
type Resolver struct {
	queue *turn.Queue
}

func NewResolver(queue *turn.Queue) *Resolver {
	return &Resolver{queue: queue}
}

// Attack resolves one attack from attacker against defender (§4.12).
// defender is mutated in place (Health decremented); the caller is
// responsible for persisting both sides afterward. damageType selects
// which of defender.Resistances applies, and may be empty for untyped
// physical damage.
func (r *Resolver) Attack(attacker Combatant, defender *Combatant, damageType string, rng DiceRoller) AttackOutcome {
	roll := rng.Intn(20) + 1
	critical := roll == 20
	base := roll
	if critical {
		base = roll * 2
	}

	damage := base + attacker.WeaponBonus + strengthMod(attacker.Strength) - defender.ArmorDefense
	if lvl := defender.Resistances[damageType]; lvl > 0 && damage > 0 {
		damage -= (damage * lvl) / 200
	}
	if damage < 1 {
		damage = 1
	}

	defender.Health -= damage
	if defender.Health < 0 {
		defender.Health = 0
	}

	return AttackOutcome{
		Roll: roll, Critical: critical, Damage: damage,
		DefenderHealth: defender.Health, Died: defender.Health <= 0,
	}
}

// ScheduleCounterattack inserts defender into the turn queue at
// now + cost(melee, defender.speed) if it is hostile-capable and still
// alive, per §4.12's counter-attack scheduling rule.
func (r *Resolver) ScheduleCounterattack(defender Combatant, now int64) {
	if !defender.IsHostile || defender.Health <= 0 {
		return
	}
	r.queue.Enqueue(defender.EntityID, now+int64(turn.CostOf(turn.ActionMelee, defender.SpeedLevel)))
}

// Deescalate removes npcID from the turn queue and clears its
// CombatComponent once disposition has risen to NEUTRAL or above while
// it was still queued for a turn (§4.12).
func Deescalate(queue *turn.Queue, npc *domain.NPC, disposition int) {
	if domain.DispositionTierOf(disposition) < domain.TierNeutral {
		return
	}
	if !queue.Contains(npc.ID) {
		return
	}
	queue.Remove(npc.ID)
	delete(npc.Components, domain.ComponentCombat)
}
