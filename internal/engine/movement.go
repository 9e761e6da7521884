package engine

import (
	"context"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
)

func (e *Engine) handleMove(ctx context.Context, player *domain.PlayerState, in domain.MoveIntent) ([]domain.GameEvent, error) {
	space, events, action, err := e.nav.MoveTo(ctx, player, in.Direction, e.worldRNG())
	if err != nil {
		return nil, err
	}
	events = append(events, domain.NarrativeEvent{Text: fmt.Sprintf("You move %s into %s.", in.Direction, space.Name)})
	events = append(events, domain.StatusUpdateEvent{Health: player.Health, MaxHealth: player.MaxHealth, Location: space.ID})

	if questEvents, err := e.advanceQuests(ctx, player, action); err == nil {
		events = append(events, questEvents...)
	}
	return events, nil
}

func (e *Engine) handleScout(ctx context.Context, player *domain.PlayerState, in domain.ScoutIntent) ([]domain.GameEvent, error) {
	result, err := e.nav.Scout(ctx, player, in.Direction, e.rng)
	if err != nil {
		return nil, err
	}
	if result.Success {
		return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You spot a hidden way %s.", in.Direction)}}, nil
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: "You find nothing unusual."}}, nil
}

func (e *Engine) handleTravel(ctx context.Context, player *domain.PlayerState, in domain.TravelIntent) ([]domain.GameEvent, error) {
	visited, events, actions, err := e.nav.Travel(ctx, player, in.Direction, e.worldRNG())
	if err != nil {
		return nil, err
	}
	if len(visited) == 0 {
		return events, nil
	}
	last := visited[len(visited)-1]
	events = append(events, domain.NarrativeEvent{Text: fmt.Sprintf("You travel %s, passing through %d rooms, arriving at %s.", in.Direction, len(visited), last.Name)})
	events = append(events, domain.StatusUpdateEvent{Health: player.Health, MaxHealth: player.MaxHealth, Location: last.ID})
	for _, action := range actions {
		if questEvents, err := e.advanceQuests(ctx, player, action); err == nil {
			events = append(events, questEvents...)
		}
	}
	return events, nil
}

func (e *Engine) handleLook(ctx context.Context, player *domain.PlayerState, in domain.LookIntent) ([]domain.GameEvent, error) {
	space, err := e.repos.Spaces.GetSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	if in.Target == "" {
		return []domain.GameEvent{domain.NarrativeEvent{Text: space.Description}}, nil
	}
	entities, _ := e.repos.Entities.EntitiesInSpace(ctx, space.ID)
	if npc := e.findNPCByName(entities, in.Target); npc != nil {
		return []domain.GameEvent{domain.NarrativeEvent{Text: npc.Description}}, nil
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: fmt.Sprintf("You see nothing called %q here.", in.Target)}}, nil
}

func (e *Engine) handleSearch(ctx context.Context, player *domain.PlayerState, in domain.SearchIntent) ([]domain.GameEvent, error) {
	space, err := e.repos.Spaces.GetSpace(ctx, player.CurrentRoomID)
	if err != nil {
		return nil, err
	}
	if len(space.Resources) == 0 && len(space.ItemsDropped) == 0 {
		return []domain.GameEvent{domain.NarrativeEvent{Text: "A careful search turns up nothing new."}}, nil
	}
	return []domain.GameEvent{domain.NarrativeEvent{Text: "Your search turns up something worth taking a closer look at."}}, nil
}
