package linker

import (
	"context"
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
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
	return nil, domain.ErrNodeNotFound
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
	var out []domain.Space
	for _, s := range f.spaces {
		if s.ChunkID == chunk {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestCollapseDuplicatesFirstWins(t *testing.T) {
	exits := []domain.Exit{
		{Direction: "north", TargetID: "a"},
		{Direction: "North", TargetID: "b"}, // duplicate by normalization
		{Direction: "south", TargetID: "c"},
	}
	out := collapseDuplicates(exits)
	if len(out) != 2 {
		t.Fatalf("expected 2 exits after collapsing, got %d", len(out))
	}
	if out[0].TargetID != "a" {
		t.Fatalf("expected first occurrence to win, got %s", out[0].TargetID)
	}
}

func TestLinkHorizontalReusesExistingAdjacency(t *testing.T) {
	chunks := newFakeChunks()
	spaces := newFakeSpaces()
	l := New(chunks, spaces, nil)

	neighbor := domain.WorldChunk{ID: "zone-b", BiomeTheme: "caverns"}
	chunks.chunks[neighbor.ID] = neighbor

	subzone := &domain.WorldChunk{
		ID: "zone-a", BiomeTheme: "caverns",
		Adjacency: map[domain.Direction]domain.ChunkID{"east": "zone-b"},
	}

	space := &domain.Space{
		ID: "space-1", ChunkID: subzone.ID,
		Exits: []domain.Exit{{Direction: "east", Placeholder: true}},
	}

	l.Link(context.Background(), space, subzone, nil, nil)

	if space.Exits[0].Placeholder {
		t.Fatal("expected placeholder to be resolved")
	}
	target, err := spaces.GetSpace(context.Background(), space.Exits[0].TargetID)
	if err != nil {
		t.Fatalf("expected target space to be persisted: %v", err)
	}
	if target.ChunkID != "zone-b" {
		t.Fatalf("expected target space inside existing neighbor chunk zone-b, got %s", target.ChunkID)
	}
	if _, ok := target.ExitTo("west"); !ok {
		t.Fatal("expected reciprocal west exit in target space")
	}
}

func TestLinkHorizontalCreatesNewAdjacencyWhenUnset(t *testing.T) {
	chunks := newFakeChunks()
	spaces := newFakeSpaces()
	l := New(chunks, spaces, nil)

	subzone := &domain.WorldChunk{ID: "zone-a", BiomeTheme: "caverns"}
	space := &domain.Space{
		ID: "space-1", ChunkID: subzone.ID,
		Exits: []domain.Exit{{Direction: "west", Placeholder: true}},
	}

	l.Link(context.Background(), space, subzone, nil, nil)

	if space.Exits[0].Placeholder {
		t.Fatal("expected placeholder to be resolved")
	}
	stored := chunks.chunks["zone-a"]
	if stored.Adjacency["west"] != "zone-a" {
		t.Fatalf("expected subzone to register itself as its own west neighbor, got %s", stored.Adjacency["west"])
	}
}
