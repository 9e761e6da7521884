package trade

import (
	"testing"

	"github.com/deepwarren/deepwarren/internal/domain"
)

func weightOf(domain.ItemTemplateID) float64 { return 1 }
func newID() domain.ItemInstanceID            { return "instance-1" }

func newMerchant(disposition int) *domain.NPC {
	return &domain.NPC{
		ID: "merchant-1",
		Components: map[domain.ComponentType]domain.Component{
			domain.ComponentSocial:  domain.SocialComponent{Disposition: disposition},
			domain.ComponentTrading: domain.TradingComponent{Gold: 1000, Stock: []domain.MerchantStock{{TemplateID: "potion", Quantity: 5, Quality: 1.0}}},
		},
	}
}

func TestCalculateBuyPriceAppliesDispositionModifier(t *testing.T) {
	tmpl := &domain.ItemTemplate{BasePrice: 100}
	price := CalculateBuyPrice(tmpl, 1.0, domain.TierAllied)
	if price != 70 {
		t.Fatalf("expected allied price 70, got %d", price)
	}
}

func TestBuyTransfersStockGoldAndInventoryAtomically(t *testing.T) {
	merchant := newMerchant(0) // NEUTRAL
	player := &domain.PlayerState{Gold: 500, Inventory: domain.InventoryComponent{Capacity: 100}}
	tmpl := &domain.ItemTemplate{BasePrice: 50}

	if err := Buy(merchant, "potion", 2, tmpl, player, weightOf, newID); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if player.Gold != 400 {
		t.Fatalf("expected gold 400 after buying 2x50, got %d", player.Gold)
	}
	if len(player.Inventory.Items) != 1 || player.Inventory.Items[0].Quantity != 2 {
		t.Fatalf("expected 2 potions in inventory, got %+v", player.Inventory.Items)
	}
	trading := merchant.Components[domain.ComponentTrading].(domain.TradingComponent)
	if trading.Stock[0].Quantity != 3 {
		t.Fatalf("expected stock decremented to 3, got %d", trading.Stock[0].Quantity)
	}
	if trading.Gold != 1100 {
		t.Fatalf("expected merchant gold to rise by 100, got %d", trading.Gold)
	}
}

func TestBuyRejectsInsufficientGold(t *testing.T) {
	merchant := newMerchant(0)
	player := &domain.PlayerState{Gold: 10, Inventory: domain.InventoryComponent{Capacity: 100}}
	tmpl := &domain.ItemTemplate{BasePrice: 50}

	if err := Buy(merchant, "potion", 1, tmpl, player, weightOf, newID); err != domain.ErrInsufficientGold {
		t.Fatalf("expected ErrInsufficientGold, got %v", err)
	}
}

func TestBuyRejectsInsufficientStock(t *testing.T) {
	merchant := newMerchant(0)
	player := &domain.PlayerState{Gold: 10000, Inventory: domain.InventoryComponent{Capacity: 100}}
	tmpl := &domain.ItemTemplate{BasePrice: 50}

	if err := Buy(merchant, "potion", 99, tmpl, player, weightOf, newID); err != domain.ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestBuyRefusedWhenMerchantHostile(t *testing.T) {
	merchant := newMerchant(-80) // HOSTILE
	player := &domain.PlayerState{Gold: 10000, Inventory: domain.InventoryComponent{Capacity: 100}}
	tmpl := &domain.ItemTemplate{BasePrice: 50}

	if err := Buy(merchant, "potion", 1, tmpl, player, weightOf, newID); err != domain.ErrMerchantRefuses {
		t.Fatalf("expected ErrMerchantRefuses, got %v", err)
	}
}

func TestSellConservesGoldAndStock(t *testing.T) {
	merchant := newMerchant(0)
	player := &domain.PlayerState{Gold: 0, Inventory: domain.InventoryComponent{
		Items: []domain.ItemInstance{{TemplateID: "potion", Quantity: 3}}, Capacity: 100,
	}}
	tmpl := &domain.ItemTemplate{BasePrice: 50}

	if err := Sell(merchant, "potion", 2, tmpl, player); err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if player.Gold != 100 {
		t.Fatalf("expected player gold 100, got %d", player.Gold)
	}
	if len(player.Inventory.Items) != 1 || player.Inventory.Items[0].Quantity != 1 {
		t.Fatalf("expected 1 potion left, got %+v", player.Inventory.Items)
	}
	trading := merchant.Components[domain.ComponentTrading].(domain.TradingComponent)
	if trading.Stock[0].Quantity != 7 {
		t.Fatalf("expected merchant stock to rise to 7, got %d", trading.Stock[0].Quantity)
	}
	if trading.Gold != 900 {
		t.Fatalf("expected merchant gold to fall by 100, got %d", trading.Gold)
	}
}
