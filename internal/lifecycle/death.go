package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/repo"
)

const playerCorpseDecay = 5000 * time.Second

// StarterKit is the level-1 loadout a respawned player receives (§4.15).
// Callers assemble it from the item-template catalog; lifecycle itself
// holds no opinion on what a starter weapon or armor is.
type StarterKit struct {
	MaxHealth int
	Weapon    *domain.ItemInstance
	Armor     *domain.ItemInstance
	Inventory domain.InventoryComponent
}

// Die handles player death (§4.15): the player's full inventory, equipment,
// and gold are carried into a persisted CorpseData at the space they died
// in, then the player is respawned at townStartID with starter.MaxHealth,
// zero gold, and starter gear — preserving ID and Name. Quests, skills, and
// revealed exits survive the respawn; only combat-relevant state resets.
func Die(ctx context.Context, player *domain.PlayerState, corpses repo.CorpseRepository, spaceID domain.SpaceID, townStartID domain.SpaceID, starter StarterKit, now time.Time) (domain.CorpseData, domain.GameEvent, error) {
	var equipment []domain.ItemInstance
	if player.EquippedWeapon != nil {
		equipment = append(equipment, *player.EquippedWeapon)
	}
	if player.EquippedArmor != nil {
		equipment = append(equipment, *player.EquippedArmor)
	}

	corpse := domain.CorpseData{
		ID:         domain.CorpseID(uuid.NewString()),
		PlayerID:   player.ID,
		SpaceID:    spaceID,
		Inventory:  player.Inventory.Items,
		Equipment:  equipment,
		Gold:       player.Gold,
		DecayTimer: now.Add(playerCorpseDecay),
	}
	if err := corpses.PutCorpse(ctx, corpse); err != nil {
		return domain.CorpseData{}, nil, fmt.Errorf("persist death corpse: %w", err)
	}

	player.Health = starter.MaxHealth
	player.MaxHealth = starter.MaxHealth
	player.Inventory = starter.Inventory
	player.EquippedWeapon = starter.Weapon
	player.EquippedArmor = starter.Armor
	player.Gold = 0
	player.CurrentRoomID = townStartID

	event := domain.NarrativeEvent{
		Text: fmt.Sprintf("%s falls. Darkness takes hold, and the dungeon's grip loosens — you wake in the town square, empty-handed but alive.", player.Name),
	}
	return corpse, event, nil
}

// ExpireCorpses deletes every player CorpseData whose decay timer has
// elapsed as of now, returning what was removed.
func ExpireCorpses(ctx context.Context, corpses repo.CorpseRepository, now time.Time) ([]domain.CorpseData, error) {
	expired, err := corpses.ExpiredCorpses(ctx, now.Unix())
	if err != nil {
		return nil, fmt.Errorf("list expired corpses: %w", err)
	}
	for _, c := range expired {
		if err := corpses.DeleteCorpse(ctx, c.ID); err != nil {
			return nil, fmt.Errorf("delete expired corpse %s: %w", c.ID, err)
		}
	}
	return expired, nil
}
