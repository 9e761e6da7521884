package frontier

import (
	"context"
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/infra/gencache"
	"github.com/deepwarren/deepwarren/internal/worldgen"
)

type fakeChunks struct {
	chunks map[domain.ChunkID]domain.WorldChunk
	nodes  map[domain.SpaceID]domain.GraphNode
}

func newFakeChunks() *fakeChunks {
	return &fakeChunks{chunks: map[domain.ChunkID]domain.WorldChunk{}, nodes: map[domain.SpaceID]domain.GraphNode{}}
}

func (f *fakeChunks) GetChunk(ctx context.Context, id domain.ChunkID) (*domain.WorldChunk, error) {
	c, ok := f.chunks[id]
	if !ok {
		return nil, domain.ErrChunkNotFound
	}
	return &c, nil
}
func (f *fakeChunks) PutChunk(ctx context.Context, chunk domain.WorldChunk) error {
	f.chunks[chunk.ID] = chunk
	return nil
}
func (f *fakeChunks) ChildrenOf(ctx context.Context, parent domain.ChunkID) ([]domain.WorldChunk, error) {
	return nil, nil
}
func (f *fakeChunks) GetGraphNode(ctx context.Context, id domain.ChunkID) (*domain.GraphNode, error) {
	n, ok := f.nodes[id]
	if !ok {
		return nil, domain.ErrNodeNotFound
	}
	return &n, nil
}
func (f *fakeChunks) PutGraphNode(ctx context.Context, node domain.GraphNode) error {
	f.nodes[node.ID] = node
	return nil
}

type fakeSpaces struct {
	spaces map[domain.SpaceID]domain.Space
}

func newFakeSpaces() *fakeSpaces { return &fakeSpaces{spaces: map[domain.SpaceID]domain.Space{}} }

func (f *fakeSpaces) GetSpace(ctx context.Context, id domain.SpaceID) (*domain.Space, error) {
	s, ok := f.spaces[id]
	if !ok {
		return nil, domain.ErrSpaceNotFound
	}
	return &s, nil
}
func (f *fakeSpaces) PutSpace(ctx context.Context, space domain.Space) error {
	f.spaces[space.ID] = space
	return nil
}
func (f *fakeSpaces) SpacesInChunk(ctx context.Context, chunk domain.ChunkID) ([]domain.Space, error) {
	return nil, nil
}

func TestExpandResolvesFrontierEdge(t *testing.T) {
	chunks := newFakeChunks()
	spaces := newFakeSpaces()
	cache := gencache.New(8)
	lore := worldgen.NewLore(nil, "")
	generator := worldgen.NewGenerator(chunks, spaces, cache, lore, nil, "")
	expander := New(chunks, generator)

	parent := &domain.WorldChunk{ID: "zone-1", Lore: "a dripping cavern", BiomeTheme: "caverns", DifficultyLevel: 1}
	node := domain.GraphNode{
		ID: "frontier-1", Type: domain.NodeFrontier, ChunkID: "sub-1",
		Neighbors: []domain.Edge{{Direction: "east", TargetID: ""}},
	}

	updated, event, err := expander.Expand(context.Background(), node, parent, worldgen.NewRNG(1))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if updated.Neighbors[0].TargetID == "" {
		t.Fatal("expected frontier edge to be resolved to a new hub")
	}
	if event == nil {
		t.Fatal("expected a system event on successful expansion")
	}

	stored, err := chunks.GetGraphNode(context.Background(), node.ID)
	if err != nil {
		t.Fatalf("expected updated node to be persisted: %v", err)
	}
	if stored.Neighbors[0].TargetID != updated.Neighbors[0].TargetID {
		t.Fatal("persisted node does not match returned node")
	}
}

func TestExpandIsIdempotentOnAlreadyResolvedNode(t *testing.T) {
	chunks := newFakeChunks()
	spaces := newFakeSpaces()
	cache := gencache.New(8)
	lore := worldgen.NewLore(nil, "")
	generator := worldgen.NewGenerator(chunks, spaces, cache, lore, nil, "")
	expander := New(chunks, generator)

	already := domain.GraphNode{
		ID: "frontier-2", Type: domain.NodeFrontier,
		Neighbors: []domain.Edge{{Direction: "east", TargetID: "space-already"}},
	}
	chunks.nodes[already.ID] = already

	parent := &domain.WorldChunk{ID: "zone-1", BiomeTheme: "caverns"}
	updated, _, err := expander.Expand(context.Background(), already, parent, worldgen.NewRNG(1))
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if updated.Neighbors[0].TargetID != "space-already" {
		t.Fatalf("expected already-resolved edge to be left alone, got %s", updated.Neighbors[0].TargetID)
	}
}
