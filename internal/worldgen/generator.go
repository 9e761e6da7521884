package worldgen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/infra/gencache"
	"github.com/deepwarren/deepwarren/internal/infra/metrics"
	"github.com/deepwarren/deepwarren/internal/repo"
)

// ─── World generator (C4) ───────────────────────────────────────────────────

const (
	descriptionTemperature = 0.8
	descriptionSystemPrompt = "You are the narrator of an underground dungeon. " +
		"Describe a single room in 2-3 sentences, underground-only vocabulary, " +
		"consistent with the supplied chunk lore and the room's role."
)

// Generated is the result of generating one chunk: the chunk itself, its
// graph nodes, and the stub spaces created for each node (§4.4 step 5-6).
type Generated struct {
	Chunk      domain.WorldChunk
	GraphNodes []domain.GraphNode
	Spaces     []domain.Space
}

// Generator composes lore, graph topology, and space stubs into chunks,
// coalescing concurrent requests for the same chunk id through the
// generation cache (C2).
type Generator struct {
	chunks repo.ChunkRepository
	spaces repo.SpaceRepository
	cache  *gencache.Cache
	lore   *Lore
	llm    domain.LlmClient
	model  string
}

func NewGenerator(chunks repo.ChunkRepository, spaces repo.SpaceRepository, cache *gencache.Cache, lore *Lore, llm domain.LlmClient, model string) *Generator {
	return &Generator{chunks: chunks, spaces: spaces, cache: cache, lore: lore, llm: llm, model: model}
}

// GenerateChunk implements §4.4 step 1-6: single-flight through the cache,
// derive lore/theme, synthesize topology, stub spaces, persist, return.
func (g *Generator) GenerateChunk(ctx context.Context, gctx domain.GenerationContext, parent *domain.WorldChunk, rng RNG) (Generated, error) {
	start := time.Now()
	defer func() { metrics.GenerationLatency.Observe(time.Since(start).Seconds()) }()

	id := domain.ChunkID(uuid.NewString())

	chunk, err := g.cache.GetOrGenerate(ctx, id, gctx, func(ctx context.Context) (domain.WorldChunk, error) {
		return g.buildChunk(ctx, id, gctx, parent, rng)
	})
	if err != nil {
		return Generated{}, err
	}
	metrics.ChunksGenerated.WithLabelValues(gctx.Level.String()).Inc()

	nodes, spaces, err := g.buildTopologyAndStubs(rng, chunk)
	if err != nil {
		return Generated{}, err
	}

	if err := g.persist(ctx, chunk, parent, nodes, spaces); err != nil {
		return Generated{}, err
	}

	return Generated{Chunk: chunk, GraphNodes: nodes, Spaces: spaces}, nil
}

func (g *Generator) buildChunk(ctx context.Context, id domain.ChunkID, gctx domain.GenerationContext, parent *domain.WorldChunk, rng RNG) (domain.WorldChunk, error) {
	parentLore := gctx.GlobalLore
	parentTheme := ""
	level := gctx.Level
	var parentID domain.ChunkID
	if parent != nil {
		parentLore = parent.Lore
		parentTheme = parent.BiomeTheme
		parentID = parent.ID
	}

	lore, err := g.lore.VaryLore(ctx, parentLore, level, gctx.Direction)
	if err != nil {
		return domain.WorldChunk{}, err
	}
	theme, err := g.lore.BlendThemes(ctx, parentTheme, lore)
	if err != nil {
		return domain.WorldChunk{}, err
	}

	bossCapable := gctx.ForceBossCapable || (level == domain.LevelSubzone && rng.Intn(3) == 0)

	return domain.WorldChunk{
		ID:              id,
		Level:           level,
		ParentID:        parentID,
		Lore:            lore,
		BiomeTheme:      theme,
		SizeEstimate:    3 + rng.Intn(6),
		MobDensity:      rng.Float64(),
		DifficultyLevel: gctx.DifficultyHint,
		Adjacency:       map[domain.Direction]domain.ChunkID{},
		BossCapable:     bossCapable,
	}, nil
}

func (g *Generator) buildTopologyAndStubs(rng RNG, chunk domain.WorldChunk) ([]domain.GraphNode, []domain.Space, error) {
	counter := 0
	idFor := func(int) domain.SpaceID {
		counter++
		return domain.SpaceID(fmt.Sprintf("%s-space-%d", chunk.ID, counter))
	}
	nodes, err := GenerateGraph(rng, chunk.ID, GraphConfig{DifficultyLevel: chunk.DifficultyLevel, BossCapable: chunk.BossCapable}, idFor)
	if err != nil {
		return nil, nil, err
	}

	spaces := make([]domain.Space, 0, len(nodes))
	for _, n := range nodes {
		spaces = append(spaces, GenerateSpaceStub(n, chunk))
	}
	return nodes, spaces, nil
}

// GenerateSpaceStub produces the deterministic minimal space for a graph
// node: no description yet, exits mirroring the node's edges, marked stale
// so the first visit triggers FillSpaceContent (§4.4, §3 lifecycle).
func GenerateSpaceStub(node domain.GraphNode, chunk domain.WorldChunk) domain.Space {
	exits := make([]domain.Exit, 0, len(node.Neighbors))
	for _, e := range node.Neighbors {
		exits = append(exits, domain.Exit{
			Direction:   e.Direction,
			TargetID:    e.TargetID,
			Placeholder: e.TargetID == "",
			Hidden:      e.Hidden,
		})
	}
	return domain.Space{
		ID:               node.ID,
		ChunkID:          chunk.ID,
		TerrainType:      domain.TerrainType(chunk.BiomeTheme),
		Brightness:       10,
		Exits:            exits,
		DescriptionStale: true,
	}
}

// FillSpaceContent expands a stale stub into a description consistent with
// the chunk's lore and the node's role. On LLM failure it returns the space
// unchanged with DescriptionStale left true (§4.4).
func (g *Generator) FillSpaceContent(ctx context.Context, space domain.Space, node domain.GraphNode, chunk domain.WorldChunk) domain.Space {
	if g.llm == nil {
		return space
	}
	userCtx := fmt.Sprintf("Chunk lore: %s\nRoom role: %s\nBiome: %s", chunk.Lore, node.Type.String(), chunk.BiomeTheme)
	resp, err := g.llm.ChatCompletion(ctx, g.model, descriptionSystemPrompt, userCtx, 200, descriptionTemperature)
	if err != nil || len(resp.Choices) == 0 {
		metrics.GenerationFallbacks.Inc()
		return space
	}
	space.Description = resp.Choices[0].Message.Content
	space.DescriptionStale = false
	return space
}

// HubOf returns the hub space of a generated chunk, falling back to the
// first space when no node was marked Hub (should not happen for a valid
// topology, but callers degrade gracefully rather than panicking).
func HubOf(generated Generated) domain.Space {
	for i, n := range generated.GraphNodes {
		if n.Type == domain.NodeHub {
			return generated.Spaces[i]
		}
	}
	return generated.Spaces[0]
}

func (g *Generator) persist(ctx context.Context, chunk domain.WorldChunk, parent *domain.WorldChunk, nodes []domain.GraphNode, spaces []domain.Space) error {
	if parent != nil {
		parent.Children = append(parent.Children, chunk.ID)
		if err := g.chunks.PutChunk(ctx, *parent); err != nil {
			return fmt.Errorf("persist parent: %w", err)
		}
	}
	if err := g.chunks.PutChunk(ctx, chunk); err != nil {
		return fmt.Errorf("persist chunk: %w", err)
	}
	for _, n := range nodes {
		if err := g.chunks.PutGraphNode(ctx, n); err != nil {
			return fmt.Errorf("persist graph node %s: %w", n.ID, err)
		}
	}
	for _, s := range spaces {
		if err := g.spaces.PutSpace(ctx, s); err != nil {
			return fmt.Errorf("persist space %s: %w", s.ID, err)
		}
	}
	return nil
}
