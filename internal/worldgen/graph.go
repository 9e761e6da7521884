package worldgen

import (
	"fmt"
	"sort"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// ─── Graph generator (C3) ───────────────────────────────────────────────────

const maxGenerationAttempts = 5

// GraphConfig parameterizes a single chunk's intra-chunk micro-graph.
type GraphConfig struct {
	DifficultyLevel int
	BossCapable     bool
}

// GenerateGraph produces a deterministic node set for one chunk: a Hub, a
// spanning tree of 3-8 Corridor nodes with 0-2 extra cross-edges, an
// optional Boss leaf, and 0-2 Frontier leaves. It retries up to
// maxGenerationAttempts times against the validator before returning
// ErrGenerationFailed.
func GenerateGraph(rng RNG, chunkID domain.ChunkID, cfg GraphConfig, idFor func(int) domain.SpaceID) ([]domain.GraphNode, error) {
	var lastErr error
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		nodes, err := attemptGraph(rng, chunkID, cfg, idFor)
		if err != nil {
			lastErr = err
			continue
		}
		if err := ValidateGraph(nodes); err != nil {
			lastErr = err
			continue
		}
		return nodes, nil
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, lastErr)
}

func attemptGraph(rng RNG, chunkID domain.ChunkID, cfg GraphConfig, idFor func(int) domain.SpaceID) ([]domain.GraphNode, error) {
	corridorCount := 3 + rng.Intn(6) // 3..8
	nodes := make([]domain.GraphNode, 0, corridorCount+3)

	hubID := idFor(0)
	hub := domain.GraphNode{ID: hubID, Type: domain.NodeHub, ChunkID: chunkID}
	nodes = append(nodes, hub)
	byID := map[domain.SpaceID]int{hubID: 0}

	usedDir := map[domain.SpaceID]map[domain.Direction]bool{hubID: {}}

	// Spanning tree: each new corridor attaches to a uniformly-chosen
	// existing node via a direction that node hasn't used yet.
	for i := 1; i <= corridorCount; i++ {
		childID := idFor(i)
		parentIdx := rng.Intn(len(nodes))
		parent := &nodes[parentIdx]

		dir, ok := pickFreeDirection(rng, usedDir[parent.ID])
		if !ok {
			return nil, fmt.Errorf("no free direction from node %s", parent.ID)
		}
		usedDir[parent.ID][dir] = true
		if usedDir[childID] == nil {
			usedDir[childID] = map[domain.Direction]bool{}
		}
		usedDir[childID][domain.ReverseDirection(dir)] = true

		parent.Neighbors = append(parent.Neighbors, domain.Edge{TargetID: childID, Direction: dir})
		child := domain.GraphNode{
			ID:   childID,
			Type: domain.NodeCorridor,
			ChunkID: chunkID,
			Neighbors: []domain.Edge{
				{TargetID: parent.ID, Direction: domain.ReverseDirection(dir)},
			},
		}
		nodes = append(nodes, child)
		byID[childID] = len(nodes) - 1
	}

	// 0-2 extra cross-edges between existing nodes (cycles), skipped
	// whenever no direction pair is free on both ends.
	crossEdges := rng.Intn(3)
	for i := 0; i < crossEdges && len(nodes) >= 2; i++ {
		a := rng.Intn(len(nodes))
		b := rng.Intn(len(nodes))
		if a == b {
			continue
		}
		na, nb := &nodes[a], &nodes[b]
		dir, ok := pickFreeDirection(rng, usedDir[na.ID])
		if !ok {
			continue
		}
		rev := domain.ReverseDirection(dir)
		if usedDir[nb.ID][rev] {
			continue
		}
		usedDir[na.ID][dir] = true
		usedDir[nb.ID][rev] = true
		na.Neighbors = append(na.Neighbors, domain.Edge{TargetID: nb.ID, Direction: dir})
		nb.Neighbors = append(nb.Neighbors, domain.Edge{TargetID: na.ID, Direction: rev})
	}

	leaves := leafIndices(nodes)

	if cfg.BossCapable && len(leaves) > 0 && rng.Intn(2) == 0 {
		idx := leaves[rng.Intn(len(leaves))]
		nodes[idx].Type = domain.NodeBoss
		leaves = removeIdx(leaves, idx)
	}

	frontierCount := rng.Intn(3) // 0..2
	for i := 0; i < frontierCount && len(leaves) > 0; i++ {
		idx := leaves[rng.Intn(len(leaves))]
		nodes[idx].Type = domain.NodeFrontier
		dir, ok := pickFreeDirection(rng, usedDir[nodes[idx].ID])
		if ok {
			usedDir[nodes[idx].ID][dir] = true
			nodes[idx].Neighbors = append(nodes[idx].Neighbors, domain.Edge{
				TargetID: "", // unresolved until C9 expands the frontier
				Direction: dir,
			})
		}
		leaves = removeIdx(leaves, idx)
	}

	// Remaining unpromoted leaves become dead ends; some carry an extra
	// unresolved placeholder passage (vertical stairs or a horizontal
	// corridor into a sibling subzone) for the exit linker (C8) to resolve
	// eagerly at generation time, distinct from a Frontier's lazy C9 expansion.
	for _, idx := range leaves {
		nodes[idx].Type = domain.NodeDeadEnd
		if rng.Float64() >= deadEndPlaceholderChance {
			continue
		}
		dir, ok := pickFreeDirection(rng, usedDir[nodes[idx].ID])
		if !ok {
			continue
		}
		usedDir[nodes[idx].ID][dir] = true
		nodes[idx].Neighbors = append(nodes[idx].Neighbors, domain.Edge{
			TargetID:  "", // unresolved until C8 links it
			Direction: dir,
		})
	}

	return nodes, nil
}

const deadEndPlaceholderChance = 0.4

// pickFreeDirection returns a direction not already used from a node,
// drawn by rng from the free directions in sorted order, so the same rng
// state always yields the same choice (§4.3 tie-break rule).
func pickFreeDirection(rng RNG, used map[domain.Direction]bool) (domain.Direction, bool) {
	free := make([]domain.Direction, 0, len(domain.CardinalDirections))
	for _, d := range domain.CardinalDirections {
		if !used[d] {
			free = append(free, d)
		}
	}
	if len(free) == 0 {
		return "", false
	}
	sort.Slice(free, func(i, j int) bool { return free[i] < free[j] })
	return free[rng.Intn(len(free))], true
}

func leafIndices(nodes []domain.GraphNode) []int {
	var leaves []int
	for i, n := range nodes {
		if n.Type == domain.NodeCorridor && len(n.Neighbors) == 1 {
			leaves = append(leaves, i)
		}
	}
	return leaves
}

func removeIdx(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// ValidateGraph rejects a disconnected topology or a node with duplicate
// outgoing directions (C3.b).
func ValidateGraph(nodes []domain.GraphNode) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%w: empty graph", domain.ErrGenerationFailed)
	}
	byID := make(map[domain.SpaceID]*domain.GraphNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}
	for _, n := range nodes {
		seen := map[domain.Direction]bool{}
		for _, e := range n.Neighbors {
			norm := domain.NormalizeDirection(e.Direction)
			if seen[norm] {
				return fmt.Errorf("%w: node %s has duplicate outgoing direction %s", domain.ErrGenerationFailed, n.ID, e.Direction)
			}
			seen[norm] = true
		}
	}

	visited := map[domain.SpaceID]bool{nodes[0].ID: true}
	queue := []domain.SpaceID{nodes[0].ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		node := byID[cur]
		if node == nil {
			continue
		}
		for _, e := range node.Neighbors {
			if e.TargetID == "" || visited[e.TargetID] {
				continue
			}
			visited[e.TargetID] = true
			queue = append(queue, e.TargetID)
		}
	}
	if len(visited) != len(nodes) {
		return fmt.Errorf("%w: graph disconnected (%d/%d nodes reachable)", domain.ErrGenerationFailed, len(visited), len(nodes))
	}
	return nil
}
