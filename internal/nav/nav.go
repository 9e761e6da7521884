// Package nav implements the player's navigation currency (C7): moving
// between spaces, scouting hidden exits, and traveling a corridor until
// something interesting interrupts it.
package nav

import (
	"context"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/nav/frontier"
	"github.com/deepwarren/deepwarren/internal/repo"
	"github.com/deepwarren/deepwarren/internal/skill"
	"github.com/deepwarren/deepwarren/internal/worldgen"
)

// State is the navigation service a player's Intent handlers call into.
type State struct {
	spaces   repo.SpaceRepository
	chunks   repo.ChunkRepository
	entities repo.EntityRepository
	skill    *skill.Engine
	expander *frontier.Expander
}

func NewState(spaces repo.SpaceRepository, chunks repo.ChunkRepository, entities repo.EntityRepository, skillEngine *skill.Engine, expander *frontier.Expander) *State {
	return &State{spaces: spaces, chunks: chunks, entities: entities, skill: skillEngine, expander: expander}
}

// MoveTo resolves a move along dir from the player's current room (§4.7).
// On success it updates CurrentRoomID, records the visit, and returns a
// VisitedRoom action event for the quest tracker (C18) to match against.
func (n *State) MoveTo(ctx context.Context, player *domain.PlayerState, dir domain.Direction, rng worldgen.RNG) (domain.Space, []domain.GameEvent, domain.ActionEvent, error) {
	current, err := n.spaces.GetSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return domain.Space{}, nil, domain.ActionEvent{}, fmt.Errorf("load current room: %w", err)
	}

	exit, ok := current.ExitTo(dir)
	if !ok {
		return domain.Space{}, nil, domain.ActionEvent{}, domain.ErrNoSuchExit
	}
	if exit.Hidden && !n.revealed(player, current.ID, dir) {
		return domain.Space{}, nil, domain.ActionEvent{}, domain.ErrNoSuchExit
	}
	if exit.Locked {
		return domain.Space{}, nil, domain.ActionEvent{}, domain.ErrBlocked
	}

	var events []domain.GameEvent
	targetID := exit.TargetID
	if targetID == "" {
		node, err := n.chunks.GetGraphNode(ctx, current.ID)
		if err != nil {
			return domain.Space{}, nil, domain.ActionEvent{}, fmt.Errorf("load current node: %w", err)
		}
		if node.Type != domain.NodeFrontier {
			return domain.Space{}, nil, domain.ActionEvent{}, domain.ErrNoSuchExit
		}
		parent, err := n.chunks.GetChunk(ctx, current.ChunkID)
		if err != nil {
			return domain.Space{}, nil, domain.ActionEvent{}, fmt.Errorf("load parent chunk: %w", err)
		}
		updated, event, err := n.expander.Expand(ctx, *node, parent, rng)
		if err != nil {
			return domain.Space{}, nil, domain.ActionEvent{}, fmt.Errorf("expand frontier: %w", err)
		}
		events = append(events, event)
		edge, ok := updated.EdgeTo(dir)
		if !ok || edge.TargetID == "" {
			return domain.Space{}, nil, domain.ActionEvent{}, domain.ErrGenerationFailed
		}
		targetID = edge.TargetID
	}

	target, err := n.spaces.GetSpace(ctx, targetID)
	if err != nil {
		return domain.Space{}, nil, domain.ActionEvent{}, fmt.Errorf("load target room: %w", err)
	}

	player.CurrentRoomID = targetID
	player.RecordVisit(targetID)

	action := domain.ActionEvent{Kind: domain.ActionExploreRoom, SpaceID: targetID}
	return *target, events, action, nil
}

// Scout attempts a Perception check to reveal a hidden exit (§4.7). Once
// revealed, subsequent MoveTo calls in dir succeed without re-checking.
func (n *State) Scout(ctx context.Context, player *domain.PlayerState, dir domain.Direction, rng skill.DiceRoller) (skill.CheckResult, error) {
	current, err := n.spaces.GetSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return skill.CheckResult{}, fmt.Errorf("load current room: %w", err)
	}
	exit, ok := current.ExitTo(dir)
	if !ok {
		return skill.CheckResult{}, domain.ErrNoSuchExit
	}
	if !exit.Hidden {
		return skill.CheckResult{Success: true}, nil
	}

	node, err := n.chunks.GetGraphNode(ctx, current.ID)
	if err != nil {
		return skill.CheckResult{}, fmt.Errorf("load current node: %w", err)
	}
	edge, ok := node.EdgeTo(dir)
	if !ok {
		return skill.CheckResult{}, domain.ErrNoSuchExit
	}

	perception := player.Skills["perception"]
	result := n.skill.CheckSkill(rng, perception, 0, edge.HiddenDifficulty)
	if result.Success {
		n.reveal(player, current.ID, dir)
	}
	return result, nil
}

// Travel repeats MoveTo along dir until it reaches the next hub/town node,
// a frontier, a room holding a hostile NPC, a room it already passed
// through on this trip, or can no longer continue in dir (§4.7). Travel
// never fails outright once the first step succeeds —
// it simply stops and reports how far it got.
func (n *State) Travel(ctx context.Context, player *domain.PlayerState, dir domain.Direction, rng worldgen.RNG) ([]domain.Space, []domain.GameEvent, []domain.ActionEvent, error) {
	var visited []domain.Space
	var events []domain.GameEvent
	var actions []domain.ActionEvent
	seen := map[domain.SpaceID]bool{player.CurrentRoomID: true}

	for {
		space, stepEvents, action, err := n.MoveTo(ctx, player, dir, rng)
		if err != nil {
			if len(visited) == 0 {
				return nil, nil, nil, err
			}
			break
		}
		visited = append(visited, space)
		events = append(events, stepEvents...)
		actions = append(actions, action)
		if seen[space.ID] {
			break
		}
		seen[space.ID] = true

		node, err := n.chunks.GetGraphNode(ctx, space.ID)
		stopAtNode := err == nil && (node.Type == domain.NodeHub || node.Type == domain.NodeTown || node.Type == domain.NodeFrontier)
		if stopAtNode || n.hasHostileNPC(ctx, space) {
			break
		}
		if _, ok := space.ExitTo(dir); !ok {
			break
		}
	}
	return visited, events, actions, nil
}

func (n *State) hasHostileNPC(ctx context.Context, space domain.Space) bool {
	ents, err := n.entities.EntitiesInSpace(ctx, space.ID)
	if err != nil {
		return false
	}
	for _, e := range ents {
		if npc, ok := e.(*domain.NPC); ok && npc.IsHostile {
			return true
		}
	}
	return false
}

func (n *State) revealed(player *domain.PlayerState, spaceID domain.SpaceID, dir domain.Direction) bool {
	if player.RevealedExits == nil {
		return false
	}
	return player.RevealedExits[domain.EdgeKey{SpaceID: spaceID, Direction: domain.NormalizeDirection(dir)}]
}

func (n *State) reveal(player *domain.PlayerState, spaceID domain.SpaceID, dir domain.Direction) {
	if player.RevealedExits == nil {
		player.RevealedExits = map[domain.EdgeKey]bool{}
	}
	player.RevealedExits[domain.EdgeKey{SpaceID: spaceID, Direction: domain.NormalizeDirection(dir)}] = true
}
