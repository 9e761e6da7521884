// Package linker implements the exit linker (C8): collapsing duplicate
// exits and resolving placeholder exits left by a freshly generated space
// into real, reciprocal connections.
package linker

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/repo"
	"github.com/deepwarren/deepwarren/internal/worldgen"
)

var verticalWords = map[string]bool{
	"up": true, "down": true, "climb": true, "descend": true,
	"stairs": true, "ladder": true,
}

func isVertical(dir domain.Direction) bool {
	return verticalWords[string(domain.NormalizeDirection(dir))]
}

// Linker resolves placeholder exits against the persisted world graph.
type Linker struct {
	chunks    repo.ChunkRepository
	spaces    repo.SpaceRepository
	generator *worldgen.Generator
}

func New(chunks repo.ChunkRepository, spaces repo.SpaceRepository, generator *worldgen.Generator) *Linker {
	return &Linker{chunks: chunks, spaces: spaces, generator: generator}
}

// Link operates on one freshly generated space (§4.8): collapses duplicate
// exits by normalized direction (first wins), then resolves every
// remaining placeholder in turn. Each placeholder is all-or-nothing — a
// failure to link it leaves it as-is and logs a warning rather than
// aborting the whole space.
func (l *Linker) Link(ctx context.Context, space *domain.Space, subzone *domain.WorldChunk, subzoneParent *domain.WorldChunk, rng worldgen.RNG) {
	space.Exits = collapseDuplicates(space.Exits)

	for i := range space.Exits {
		e := &space.Exits[i]
		if !e.Placeholder {
			continue
		}
		if err := l.linkOne(ctx, space, e, subzone, subzoneParent, rng); err != nil {
			log.Printf("[nav/linker] leaving placeholder exit %s from space %s unresolved: %v", e.Direction, space.ID, err)
			continue
		}
	}

	if err := l.spaces.PutSpace(ctx, *space); err != nil {
		log.Printf("[nav/linker] failed to persist space %s after linking: %v", space.ID, err)
	}
}

func collapseDuplicates(exits []domain.Exit) []domain.Exit {
	seen := map[domain.Direction]bool{}
	out := make([]domain.Exit, 0, len(exits))
	for _, e := range exits {
		norm := domain.NormalizeDirection(e.Direction)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, e)
	}
	return out
}

func (l *Linker) linkOne(ctx context.Context, space *domain.Space, e *domain.Exit, subzone, subzoneParent *domain.WorldChunk, rng worldgen.RNG) error {
	var targetSpace domain.Space
	var targetChunk domain.WorldChunk

	if isVertical(e.Direction) {
		generated, err := l.generator.GenerateChunk(ctx, domain.GenerationContext{
			GlobalLore: subzone.Lore, ParentLore: []string{subzone.Lore}, Level: domain.LevelSubzone,
			BiomeTheme: subzone.BiomeTheme, Direction: e.Direction, DifficultyHint: subzone.DifficultyLevel + 1,
		}, subzoneParent, rng)
		if err != nil {
			return err
		}
		targetChunk = generated.Chunk
		targetSpace = worldgen.HubOf(generated)
	} else if neighborID, ok := subzone.Adjacency[e.Direction]; ok {
		neighbor, err := l.chunks.GetChunk(ctx, neighborID)
		if err != nil {
			return err
		}
		targetChunk = *neighbor
		targetSpace = newExtensionSpace(*neighbor)
	} else {
		targetChunk = *subzone
		targetSpace = newExtensionSpace(*subzone)
		if subzone.Adjacency == nil {
			subzone.Adjacency = map[domain.Direction]domain.ChunkID{}
		}
		subzone.Adjacency[e.Direction] = subzone.ID
		if err := l.chunks.PutChunk(ctx, *subzone); err != nil {
			return err
		}
	}

	rev := domain.ReverseDirection(e.Direction)
	targetSpace.Exits = append(targetSpace.Exits, domain.Exit{Direction: rev, TargetID: space.ID})
	if err := l.spaces.PutSpace(ctx, targetSpace); err != nil {
		return err
	}
	if err := l.chunks.PutGraphNode(ctx, domain.GraphNode{
		ID: targetSpace.ID, Type: domain.NodeCorridor, ChunkID: targetChunk.ID,
		Neighbors: []domain.Edge{{TargetID: space.ID, Direction: rev}},
	}); err != nil {
		return err
	}

	e.TargetID = targetSpace.ID
	e.Placeholder = false
	return nil
}

func newExtensionSpace(chunk domain.WorldChunk) domain.Space {
	return domain.Space{
		ID:               domain.SpaceID(uuid.NewString()),
		ChunkID:          chunk.ID,
		TerrainType:      domain.TerrainType(chunk.BiomeTheme),
		Brightness:       10,
		DescriptionStale: true,
	}
}
