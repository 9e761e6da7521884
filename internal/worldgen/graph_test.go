package worldgen

import (
	"fmt"
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
)

func TestGenerateGraphIsConnectedAndReciprocal(t *testing.T) {
	rng := NewRNG(42)
	idFor := func(i int) domain.SpaceID { return domain.SpaceID(fmt.Sprintf("space-%d", i)) }

	nodes, err := GenerateGraph(rng, "chunk-1", GraphConfig{DifficultyLevel: 3, BossCapable: true}, idFor)
	if err != nil {
		t.Fatalf("GenerateGraph: %v", err)
	}
	if err := ValidateGraph(nodes); err != nil {
		t.Fatalf("ValidateGraph: %v", err)
	}

	byID := make(map[domain.SpaceID]*domain.GraphNode)
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	hasHub := false
	for _, n := range nodes {
		if n.Type == domain.NodeHub {
			hasHub = true
		}
		for _, e := range n.Neighbors {
			if e.TargetID == "" {
				continue // frontier edge, no reciprocal to check yet
			}
			target := byID[e.TargetID]
			if target == nil {
				t.Fatalf("edge from %s points to unknown node %s", n.ID, e.TargetID)
			}
			rev := domain.ReverseDirection(e.Direction)
			if _, ok := target.EdgeTo(rev); !ok {
				t.Fatalf("no reciprocal edge %s --%s--> %s", target.ID, rev, n.ID)
			}
		}
	}
	if !hasHub {
		t.Fatal("expected a hub node")
	}
}

func TestGenerateGraphDeterministic(t *testing.T) {
	idFor := func(i int) domain.SpaceID { return domain.SpaceID(fmt.Sprintf("space-%d", i)) }
	n1, err := GenerateGraph(NewRNG(7), "chunk-1", GraphConfig{DifficultyLevel: 1}, idFor)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	n2, err := GenerateGraph(NewRNG(7), "chunk-1", GraphConfig{DifficultyLevel: 1}, idFor)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(n1) != len(n2) {
		t.Fatalf("same seed produced different node counts: %d vs %d", len(n1), len(n2))
	}
	for i := range n1 {
		if n1[i].Type != n2[i].Type || len(n1[i].Neighbors) != len(n2[i].Neighbors) {
			t.Fatalf("same seed produced different topology at node %d", i)
		}
	}
}
