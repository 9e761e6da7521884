package engine

import (
	"context"
	"fmt"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/trade"
)

func (e *Engine) handleTrade(ctx context.Context, player *domain.PlayerState, in domain.TradeIntent) ([]domain.GameEvent, error) {
	merchant, err := e.roomNPC(ctx, player, in.MerchantTarget)
	if err != nil {
		return nil, err
	}
	if _, ok := merchant.Components[domain.ComponentTrading].(domain.TradingComponent); !ok {
		return nil, domain.ErrMerchantRefuses
	}

	tmplID, tmpl, err := e.resolveTradeTemplate(ctx, merchant, player, in.Target)
	if err != nil {
		return nil, err
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	switch in.Action {
	case "buy":
		if err := trade.Buy(merchant, tmplID, qty, tmpl, player, e.templateWeightOf(ctx), newInstanceID); err != nil {
			return nil, err
		}
	case "sell":
		if err := trade.Sell(merchant, tmplID, qty, tmpl, player); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidAction
	}
	if err := e.repos.Entities.PutEntity(ctx, merchant); err != nil {
		return nil, err
	}

	return []domain.GameEvent{
		domain.NarrativeEvent{Text: fmt.Sprintf("You %s %d x %s with %s.", in.Action, qty, tmpl.Name, merchant.Name)},
		domain.StatusUpdateEvent{Health: player.Health, MaxHealth: player.MaxHealth, Location: player.CurrentRoomID},
	}, nil
}

// resolveTradeTemplate looks a trade target up in the merchant's stock
// first (buy path), falling back to the player's own inventory (sell path).
func (e *Engine) resolveTradeTemplate(ctx context.Context, merchant *domain.NPC, player *domain.PlayerState, name string) (domain.ItemTemplateID, *domain.ItemTemplate, error) {
	trading, _ := merchant.Components[domain.ComponentTrading].(domain.TradingComponent)
	for _, s := range trading.Stock {
		t, err := e.repos.Templates.GetTemplate(ctx, s.TemplateID)
		if err == nil && sameTarget(t.Name, name) {
			return s.TemplateID, t, nil
		}
	}
	if tmplID, err := e.resolveHeldTemplate(ctx, player, name); err == nil {
		t, err := e.repos.Templates.GetTemplate(ctx, tmplID)
		if err == nil {
			return tmplID, t, nil
		}
	}
	return "", nil, domain.ErrEntityNotFound
}
