package domain

// ─── Treasure room (C19) ────────────────────────────────────────────────────

// PedestalState governs the single-pick-lock-others invariant (P7).
type PedestalState int

const (
	PedestalAvailable PedestalState = iota
	PedestalLocked
	PedestalEmpty
)

func (s PedestalState) String() string {
	switch s {
	case PedestalAvailable:
		return "AVAILABLE"
	case PedestalLocked:
		return "LOCKED"
	case PedestalEmpty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// Pedestal holds one candidate item within a treasure room.
type Pedestal struct {
	TemplateID ItemTemplateID
	State      PedestalState
}

// TreasureRoomComponent is attached to a Space that hosts a pick-one
// treasure vault. At most one pedestal may be non-EMPTY while
// CurrentlyTakenItem is set (P7); taking locks the rest, returning unlocks
// them, and leaving the room while holding the item permanently loots it.
type TreasureRoomComponent struct {
	SpaceID            SpaceID
	Pedestals          []Pedestal
	CurrentlyTakenItem ItemTemplateID // empty when nothing is held
	HasBeenLooted      bool
}

func (t *TreasureRoomComponent) ComponentType() ComponentType { return ComponentTreasure }
