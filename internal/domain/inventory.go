package domain

// ─── Items & Inventory ──────────────────────────────────────────────────────

// Rarity grades an ItemTemplate for generation and merchant stock queries.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// ItemTemplate is the immutable definition an ItemInstance is stamped from.
type ItemTemplate struct {
	ID          ItemTemplateID
	Name        string
	Description string
	ItemType    string // "weapon", "armor", "consumable", "key", "misc"
	Rarity      Rarity
	BasePrice   int64
	Weight      float64
	WeaponBonus int // added to attack damage, 0 for non-weapons
	ArmorDefense int // subtracted from incoming damage, 0 for non-armor
	Resistances map[string]int // damage-type -> resistance level
}

// ItemInstance is a concrete, ownable copy of an ItemTemplate.
type ItemInstance struct {
	ID         ItemInstanceID
	TemplateID ItemTemplateID
	Quality    float64 // price/stat multiplier, 1.0 = standard
	Quantity   int
}

// InventoryComponent is the V2 inventory shape (§9: no V1 list-of-items
// converter is implemented).
type InventoryComponent struct {
	EntityID EntityID
	Items    []ItemInstance
	Gold     int64
	Capacity float64 // max total weight
}

// TotalWeight sums the weight of every stack, given a template lookup.
func (inv *InventoryComponent) TotalWeight(weightOf func(ItemTemplateID) float64) float64 {
	var total float64
	for _, it := range inv.Items {
		total += weightOf(it.TemplateID) * float64(it.Quantity)
	}
	return total
}

// CanAdd reports whether adding qty more of templateID stays within Capacity.
func (inv *InventoryComponent) CanAdd(templateID ItemTemplateID, qty int, weightOf func(ItemTemplateID) float64) bool {
	return inv.TotalWeight(weightOf)+weightOf(templateID)*float64(qty) <= inv.Capacity
}

// Add appends qty of templateID, merging into an existing stack if present.
func (inv *InventoryComponent) Add(templateID ItemTemplateID, qty int, quality float64, newID func() ItemInstanceID) {
	for i := range inv.Items {
		if inv.Items[i].TemplateID == templateID && inv.Items[i].Quality == quality {
			inv.Items[i].Quantity += qty
			return
		}
	}
	inv.Items = append(inv.Items, ItemInstance{ID: newID(), TemplateID: templateID, Quality: quality, Quantity: qty})
}

// Remove deducts qty from the named template's stack(s), removing
// exhausted stacks. Returns false if qty exceeds what is held.
func (inv *InventoryComponent) Remove(templateID ItemTemplateID, qty int) bool {
	have := 0
	for _, it := range inv.Items {
		if it.TemplateID == templateID {
			have += it.Quantity
		}
	}
	if have < qty {
		return false
	}
	remaining := qty
	out := inv.Items[:0]
	for _, it := range inv.Items {
		if it.TemplateID == templateID && remaining > 0 {
			if it.Quantity <= remaining {
				remaining -= it.Quantity
				continue
			}
			it.Quantity -= remaining
			remaining = 0
		}
		out = append(out, it)
	}
	inv.Items = out
	return true
}
