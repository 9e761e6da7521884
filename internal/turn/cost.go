package turn

import "math"

// ─── Action-cost model (C11) ────────────────────────────────────────────────

// ActionKind is one of the fixed action categories with a base tick cost.
type ActionKind int

const (
	ActionMelee ActionKind = iota
	ActionRanged
	ActionSpell
	ActionItem
	ActionMove
	ActionSocial
	ActionDefend
	ActionHide
	ActionFlee
)

// BaseCost returns the action's cost in ticks before the speed modifier.
func BaseCost(a ActionKind) int {
	switch a {
	case ActionMelee:
		return 6
	case ActionRanged:
		return 5
	case ActionSpell:
		return 8
	case ActionItem:
		return 4
	case ActionMove:
		return 10
	case ActionSocial:
		return 3
	case ActionDefend:
		return 4
	case ActionHide:
		return 5
	case ActionFlee:
		return 6
	default:
		return 6
	}
}

// Cost applies the speed-level modifier to a base cost: higher speedLevel
// never increases cost, and cost never drops below 2 (P5).
// cost = max(2, floor(base * 1.0 / (1.0 + L/10.0)))
func Cost(base int, speedLevel int) int {
	if speedLevel < 0 {
		speedLevel = 0
	}
	raw := math.Floor(float64(base) * 1.0 / (1.0 + float64(speedLevel)/10.0))
	if raw < 2 {
		return 2
	}
	return int(raw)
}

// CostOf is Cost applied to an ActionKind's base cost.
func CostOf(a ActionKind, speedLevel int) int {
	return Cost(BaseCost(a), speedLevel)
}
