// Package frontier implements the frontier expander (C9): lazily growing
// the world the first time a player steps into a Frontier node whose edge
// has not yet been resolved to a generated subzone.
package frontier

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/repo"
	"github.com/deepwarren/deepwarren/internal/worldgen"
)

// Expander grows a frontier node into a freshly generated subzone on
// first entry, coalescing concurrent re-entries of the same frontier node
// onto a single generation call.
type Expander struct {
	chunks    repo.ChunkRepository
	generator *worldgen.Generator
	sf        singleflight.Group
}

func New(chunks repo.ChunkRepository, generator *worldgen.Generator) *Expander {
	return &Expander{chunks: chunks, generator: generator}
}

// Expand resolves node's one unresolved frontier edge into a new subzone
// hub, seeded from parentChunk's lore and location (§4.9). Concurrent
// callers for the same node coalesce onto one generation; a racer that
// loses the coalesce still observes the winner's resolved edge.
func (x *Expander) Expand(ctx context.Context, node domain.GraphNode, parentChunk *domain.WorldChunk, rng worldgen.RNG) (domain.GraphNode, domain.GameEvent, error) {
	v, err, _ := x.sf.Do(string(node.ID), func() (any, error) {
		if fresh, ferr := x.chunks.GetGraphNode(ctx, node.ID); ferr == nil && resolved(*fresh) {
			return *fresh, nil
		}

		generated, err := x.generator.GenerateChunk(ctx, domain.GenerationContext{
			GlobalLore: parentChunk.Lore, ParentLore: []string{parentChunk.Lore}, Level: domain.LevelSubzone,
			BiomeTheme: parentChunk.BiomeTheme, DifficultyHint: parentChunk.DifficultyLevel + 1,
		}, parentChunk, rng)
		if err != nil {
			return domain.GraphNode{}, fmt.Errorf("expand frontier %s: %w", node.ID, err)
		}

		hub := worldgen.HubOf(generated)
		updated := node
		for i := range updated.Neighbors {
			if updated.Neighbors[i].TargetID == "" {
				updated.Neighbors[i].TargetID = hub.ID
				break
			}
		}
		if err := x.chunks.PutGraphNode(ctx, updated); err != nil {
			return domain.GraphNode{}, fmt.Errorf("persist expanded frontier %s: %w", node.ID, err)
		}
		return updated, nil
	})
	if err != nil {
		return domain.GraphNode{}, nil, err
	}

	updated := v.(domain.GraphNode)
	return updated, domain.SystemEvent{
		Text:  "The passage widens — a new stretch of the dungeon opens ahead.",
		Level: domain.SystemInfo,
	}, nil
}

func resolved(node domain.GraphNode) bool {
	for _, e := range node.Neighbors {
		if e.TargetID == "" {
			return false
		}
	}
	return true
}
