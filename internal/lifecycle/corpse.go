// Package lifecycle implements corpse decay (C14) and player death/respawn
// (C15): what happens to an entity's remains after it stops existing.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/repo"
)

// Roller is the minimal randomness surface drop-table resolution needs.
type Roller interface {
	Float64() float64
	Intn(n int) int
}

const npcCorpseDecayTicks = 100

// SynthesizeCorpse rolls npc's drop table into a Corpse entity (§4.14). Each
// entry is independently rolled against its Chance, and on success
// contributes MinQty..MaxQty of its template.
func SynthesizeCorpse(npc *domain.NPC, newID func() domain.EntityID, rng Roller) *domain.Corpse {
	corpse := &domain.Corpse{
		ID:         newID(),
		SourceName: npc.Name,
		DecayTimer: npcCorpseDecayTicks,
	}
	for _, drop := range npc.DropTable {
		if rng.Float64() > drop.Chance {
			continue
		}
		qty := drop.MinQty
		if drop.MaxQty > drop.MinQty {
			qty += rng.Intn(drop.MaxQty - drop.MinQty + 1)
		}
		if qty <= 0 {
			continue
		}
		corpse.Contents = append(corpse.Contents, domain.ItemInstance{
			ID: domain.ItemInstanceID(uuid.NewString()), TemplateID: drop.TemplateID,
			Quality: 1.0, Quantity: qty,
		})
	}
	return corpse
}

// PlaceNPCCorpse synthesizes npc's corpse, removes the NPC, and places the
// corpse entity in spaceID — the room the NPC stood in when it died.
func PlaceNPCCorpse(ctx context.Context, entities repo.EntityRepository, npc *domain.NPC, spaceID domain.SpaceID, rng Roller) (*domain.Corpse, error) {
	corpse := SynthesizeCorpse(npc, func() domain.EntityID { return domain.EntityID(uuid.NewString()) }, rng)
	if err := entities.DeleteEntity(ctx, npc.ID); err != nil {
		return nil, fmt.Errorf("remove dead npc: %w", err)
	}
	if err := entities.PutEntityIn(ctx, corpse, spaceID); err != nil {
		return nil, fmt.Errorf("place corpse: %w", err)
	}
	return corpse, nil
}

// TickSpace decrements the decay timer of every corpse in spaceID by one
// tick and destroys (with its contents) any that reach zero, returning the
// names of what was destroyed for the caller to fold into a single
// "destroyed" summary event per space (§4.14).
func TickSpace(ctx context.Context, entities repo.EntityRepository, spaceID domain.SpaceID) ([]string, error) {
	ents, err := entities.EntitiesInSpace(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list space entities: %w", err)
	}

	var destroyed []string
	for _, e := range ents {
		corpse, ok := e.(*domain.Corpse)
		if !ok {
			continue
		}
		corpse.DecayTimer--
		if corpse.DecayTimer > 0 {
			if err := entities.PutEntity(ctx, corpse); err != nil {
				return destroyed, fmt.Errorf("persist decaying corpse %s: %w", corpse.ID, err)
			}
			continue
		}
		if err := entities.DeleteEntity(ctx, corpse.ID); err != nil {
			return destroyed, fmt.Errorf("destroy corpse %s: %w", corpse.ID, err)
		}
		destroyed = append(destroyed, corpse.SourceName)
	}
	return destroyed, nil
}

// LootCorpse transfers corpse's contents into inv, skipping any stack that
// would exceed inv's capacity rather than failing the whole loot (§4.14).
// It returns the templates actually transferred and marks corpse Looted
// once every stack has been attempted.
func LootCorpse(corpse *domain.Corpse, inv *domain.InventoryComponent, weightOf func(domain.ItemTemplateID) float64) []domain.ItemTemplateID {
	var transferred []domain.ItemTemplateID
	var remaining []domain.ItemInstance
	for _, it := range corpse.Contents {
		if !inv.CanAdd(it.TemplateID, it.Quantity, weightOf) {
			remaining = append(remaining, it)
			continue
		}
		inv.Add(it.TemplateID, it.Quantity, it.Quality, func() domain.ItemInstanceID {
			return domain.ItemInstanceID(uuid.NewString())
		})
		transferred = append(transferred, it.TemplateID)
	}
	inv.Gold += int64(corpse.GoldAmount)
	corpse.GoldAmount = 0
	corpse.Contents = remaining
	corpse.Looted = len(remaining) == 0
	return transferred
}
