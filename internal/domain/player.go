package domain

import (
	"fmt"
	"strings"
	"time"
)

// ─── Player ─────────────────────────────────────────────────────────────────

// EdgeKey identifies a specific directed edge for the revealed-exits set.
type EdgeKey struct {
	SpaceID   SpaceID
	Direction Direction
}

// MarshalText/UnmarshalText let EdgeKey serve as a JSON map key (encoding/json
// requires TextMarshaler for non-string map-key types).
func (k EdgeKey) MarshalText() ([]byte, error) {
	return []byte(string(k.SpaceID) + "|" + string(k.Direction)), nil
}

func (k *EdgeKey) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), "|", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid EdgeKey %q", text)
	}
	k.SpaceID = SpaceID(parts[0])
	k.Direction = Direction(parts[1])
	return nil
}

// PlayerState is the single active session's player.
type PlayerState struct {
	ID              EntityID
	Name            string
	CurrentRoomID   SpaceID
	Health          int
	MaxHealth       int
	Stats           Stats
	Inventory       InventoryComponent
	EquippedWeapon  *ItemInstance
	EquippedArmor   *ItemInstance
	ActiveQuests    []Quest
	CompletedQuests []Quest
	RevealedExits   map[EdgeKey]bool
	Gold            int64
	Skills          map[string]SkillState

	// RecentVisits is a ring buffer (capacity 32) of recently visited
	// spaces, most-recent last, recorded on every MoveTo step (C7).
	RecentVisits []SpaceID
}

const recentVisitsCapacity = 32

// RecordVisit appends spaceID to the ring buffer, evicting the oldest
// entry once capacity is exceeded.
func (p *PlayerState) RecordVisit(spaceID SpaceID) {
	p.RecentVisits = append(p.RecentVisits, spaceID)
	if len(p.RecentVisits) > recentVisitsCapacity {
		p.RecentVisits = p.RecentVisits[len(p.RecentVisits)-recentVisitsCapacity:]
	}
}

// IsDead reports whether the player's health has reached zero.
func (p *PlayerState) IsDead() bool { return p.Health <= 0 }

// CorpseData is the persisted remains of a dead player (C15).
type CorpseData struct {
	ID         CorpseID
	PlayerID   EntityID
	SpaceID    SpaceID
	Inventory  []ItemInstance
	Equipment  []ItemInstance
	Gold       int64
	DecayTimer time.Time
	Looted     bool
}
