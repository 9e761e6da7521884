package worldgen

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/repo"
)

// ─── Dungeon initializer (C6) ───────────────────────────────────────────────

// Initializer idempotently ensures the root world hierarchy and starting
// town exist, grounded on §4.6.
type Initializer struct {
	seeds     repo.WorldSeedRepository
	chunks    repo.ChunkRepository
	spaces    repo.SpaceRepository
	entities  repo.EntityRepository
	generator *Generator
}

func NewInitializer(seeds repo.WorldSeedRepository, chunks repo.ChunkRepository, spaces repo.SpaceRepository, entities repo.EntityRepository, generator *Generator) *Initializer {
	return &Initializer{seeds: seeds, chunks: chunks, spaces: spaces, entities: entities, generator: generator}
}

// Ensure returns the existing world seed if its starting space still
// resolves, otherwise bootstraps WORLD -> REGION -> ZONE -> SUBZONE(town)
// and persists the new seed with the town's hub as StartingSpaceID.
func (init *Initializer) Ensure(ctx context.Context, rngSeed uint64, globalLore, globalTheme string) (*domain.WorldSeed, error) {
	if seed, err := init.seeds.GetSeed(ctx); err == nil {
		if _, err := init.spaces.GetSpace(ctx, seed.StartingSpaceID); err == nil {
			return seed, nil
		}
	}

	rng := NewRNG(rngSeed)

	world, err := init.generator.GenerateChunk(ctx, domain.GenerationContext{
		GlobalLore: globalLore, Level: domain.LevelWorld, BiomeTheme: globalTheme, Seed: int64(rngSeed),
	}, nil, rng)
	if err != nil {
		return nil, fmt.Errorf("bootstrap world chunk: %w", err)
	}

	region, err := init.generator.GenerateChunk(ctx, domain.GenerationContext{
		GlobalLore: globalLore, ParentLore: []string{world.Chunk.Lore}, Level: domain.LevelRegion,
		BiomeTheme: world.Chunk.BiomeTheme, DifficultyHint: 1, Seed: int64(rngSeed),
	}, &world.Chunk, rng)
	if err != nil {
		return nil, fmt.Errorf("bootstrap region chunk: %w", err)
	}

	zone, err := init.generator.GenerateChunk(ctx, domain.GenerationContext{
		GlobalLore: globalLore, ParentLore: []string{world.Chunk.Lore, region.Chunk.Lore}, Level: domain.LevelZone,
		BiomeTheme: region.Chunk.BiomeTheme, DifficultyHint: 1, Seed: int64(rngSeed),
	}, &region.Chunk, rng)
	if err != nil {
		return nil, fmt.Errorf("bootstrap zone chunk: %w", err)
	}

	town, err := init.generator.GenerateChunk(ctx, domain.GenerationContext{
		GlobalLore: globalLore, ParentLore: []string{world.Chunk.Lore, region.Chunk.Lore, zone.Chunk.Lore},
		Level: domain.LevelSubzone, BiomeTheme: zone.Chunk.BiomeTheme, DifficultyHint: 1, Seed: int64(rngSeed),
	}, &zone.Chunk, rng)
	if err != nil {
		return nil, fmt.Errorf("bootstrap town chunk: %w", err)
	}

	var hub *domain.Space
	for i := range town.GraphNodes {
		if town.GraphNodes[i].Type == domain.NodeHub {
			town.GraphNodes[i].Type = domain.NodeTown
			if err := init.chunks.PutGraphNode(ctx, town.GraphNodes[i]); err != nil {
				return nil, fmt.Errorf("mark town hub: %w", err)
			}
			hub = &town.Spaces[i]
			break
		}
	}
	if hub == nil {
		return nil, fmt.Errorf("%w: town chunk produced no hub node", domain.ErrGenerationFailed)
	}

	if err := init.seedMerchant(ctx, hub.ID); err != nil {
		return nil, fmt.Errorf("seed town merchant: %w", err)
	}

	seed := domain.WorldSeed{StartingSpaceID: hub.ID, RootChunkID: world.Chunk.ID, RNGSeed: rngSeed}
	if err := init.seeds.SaveSeed(ctx, seed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConstraintViolated, err)
	}
	return &seed, nil
}

// seedMerchant populates the town hub with a single friendly trading NPC,
// matching the spec's "town spaces populated via merchant templates" step.
// Stock catalog seed data itself is out of scope (§1); an empty stock list
// is a valid merchant until content is added via ItemTemplateRepository.
func (init *Initializer) seedMerchant(ctx context.Context, townHub domain.SpaceID) error {
	merchant := &domain.NPC{
		ID:        domain.EntityID(uuid.NewString()),
		Name:      "Town Merchant",
		Health:    20,
		MaxHealth: 20,
		Components: map[domain.ComponentType]domain.Component{
			domain.ComponentSocial:  domain.SocialComponent{Disposition: 0},
			domain.ComponentTrading: domain.TradingComponent{Gold: 500},
		},
	}
	return init.entities.PutEntityIn(ctx, merchant, townHub)
}

// GenerateBoss is a thin wrapper around Generator.GenerateChunk that forces
// the boss-capable flag instead of leaving boss placement to the generator's
// own random roll, for subzones the caller specifically wants a boss
// encounter in (§4.6 step 2).
func GenerateBoss(ctx context.Context, generator *Generator, gctx domain.GenerationContext, parent *domain.WorldChunk, rng RNG) (Generated, error) {
	gctx.Level = domain.LevelSubzone
	gctx.ForceBossCapable = true
	return generator.GenerateChunk(ctx, gctx, parent, rng)
}

// PlaceHiddenExits walks every space in chunkID and, with probability
// hiddenChance per non-hidden exit, marks it Hidden so later discovery
// requires a successful search roll (C7/C9's hidden-exit affordance).
// Progress is reported through emit rather than a CLI callback, matching
// how every other long-running operation in this engine surfaces status.
func PlaceHiddenExits(ctx context.Context, spaces repo.SpaceRepository, chunkID domain.ChunkID, hiddenChance float64, rng RNG, emit func(domain.GameEvent)) error {
	all, err := spaces.SpacesInChunk(ctx, chunkID)
	if err != nil {
		return fmt.Errorf("list spaces for hidden-exit placement: %w", err)
	}

	placed := 0
	for _, sp := range all {
		changed := false
		for i := range sp.Exits {
			if sp.Exits[i].Hidden || sp.Exits[i].Placeholder {
				continue
			}
			if rng.Float64() < hiddenChance {
				sp.Exits[i].Hidden = true
				changed = true
				placed++
			}
		}
		if changed {
			if err := spaces.PutSpace(ctx, sp); err != nil {
				return fmt.Errorf("persist hidden exit in space %s: %w", sp.ID, err)
			}
		}
	}

	if emit != nil && placed > 0 {
		emit(domain.SystemEvent{
			Text:  fmt.Sprintf("%d hidden passage(s) sealed away in the depths.", placed),
			Level: domain.SystemInfo,
		})
	}
	return nil
}
