// Package trade implements merchant/trading (C20): pricing by disposition
// and the atomic stock/inventory/gold transfer a buy or sell performs.
package trade

import (
	"math"

	"github.com/deepwarren/deepwarren/internal/domain"
	"github.com/deepwarren/deepwarren/internal/social"
)

// CalculateBuyPrice is calculateBuyPrice (§4.20): basePrice scaled by the
// stock's quality and the merchant's disposition-tier price modifier,
// rounded to the nearest whole coin.
func CalculateBuyPrice(template *domain.ItemTemplate, quality float64, tier domain.DispositionTier) int64 {
	modifier, _ := social.PriceModifier(tier)
	return int64(math.Round(float64(template.BasePrice) * quality * modifier))
}

// merchantTier reads the disposition tier off an NPC's SocialComponent,
// defaulting to NEUTRAL for a merchant with no recorded history yet.
func merchantTier(merchant *domain.NPC) domain.DispositionTier {
	social, ok := merchant.Components[domain.ComponentSocial].(domain.SocialComponent)
	if !ok {
		return domain.TierNeutral
	}
	return domain.DispositionTierOf(social.Disposition)
}

// Buy transfers qty of templateID from merchant's stock to player,
// decrementing stock and moving gold atomically with the inventory add
// (§4.20): quantities and gold are conserved, and nothing is mutated on
// any failure path.
func Buy(merchant *domain.NPC, templateID domain.ItemTemplateID, qty int, template *domain.ItemTemplate, player *domain.PlayerState, weightOf func(domain.ItemTemplateID) float64, newID func() domain.ItemInstanceID) error {
	trading, ok := merchant.Components[domain.ComponentTrading].(domain.TradingComponent)
	if !ok {
		return domain.ErrMerchantRefuses
	}
	tier := merchantTier(merchant)
	if _, refuses := social.PriceModifier(tier); refuses {
		return domain.ErrMerchantRefuses
	}

	idx, stock := stockIndex(trading, templateID)
	if idx < 0 || stock.Quantity < qty {
		return domain.ErrInsufficientStock
	}

	price := CalculateBuyPrice(template, stock.Quality, tier) * int64(qty)
	if player.Gold < price {
		return domain.ErrInsufficientGold
	}
	if !player.Inventory.CanAdd(templateID, qty, weightOf) {
		return domain.ErrInventoryFull
	}

	player.Gold -= price
	trading.Gold += price
	trading.Stock[idx].Quantity -= qty
	player.Inventory.Add(templateID, qty, stock.Quality, newID)
	merchant.Components[domain.ComponentTrading] = trading
	return nil
}

// Sell transfers qty of templateID from player to merchant, at the same
// disposition-scaled price a buy would cost, conserving gold and stock.
func Sell(merchant *domain.NPC, templateID domain.ItemTemplateID, qty int, template *domain.ItemTemplate, player *domain.PlayerState) error {
	trading, ok := merchant.Components[domain.ComponentTrading].(domain.TradingComponent)
	if !ok {
		return domain.ErrMerchantRefuses
	}
	tier := merchantTier(merchant)
	if _, refuses := social.PriceModifier(tier); refuses {
		return domain.ErrMerchantRefuses
	}

	price := CalculateBuyPrice(template, 1.0, tier) * int64(qty)
	if trading.Gold < price {
		return domain.ErrInsufficientGold
	}
	if !player.Inventory.Remove(templateID, qty) {
		return domain.ErrInsufficientStock
	}

	player.Gold += price
	trading.Gold -= price

	idx, _ := stockIndex(trading, templateID)
	if idx >= 0 {
		trading.Stock[idx].Quantity += qty
	} else {
		trading.Stock = append(trading.Stock, domain.MerchantStock{TemplateID: templateID, Quantity: qty, Quality: 1.0})
	}
	merchant.Components[domain.ComponentTrading] = trading
	return nil
}

func stockIndex(trading domain.TradingComponent, templateID domain.ItemTemplateID) (int, domain.MerchantStock) {
	for i, s := range trading.Stock {
		if s.TemplateID == templateID {
			return i, s
		}
	}
	return -1, domain.MerchantStock{}
}
