// Package treasure implements the pick-one treasure room (C19): at most
// one pedestal item may be held at a time, taking one locks the rest, and
// walking out with it permanently loots the room.
package treasure

import "github.com/deepwarren/deepwarren/internal/domain"

// TakeItem lifts templateID from its pedestal into inv (§4.19): the room
// must not already be looted, nothing else may currently be held, the
// pedestal must be AVAILABLE, and inv must have room for the item. On
// success every other non-empty pedestal transitions to LOCKED.
func TakeItem(room *domain.TreasureRoomComponent, templateID domain.ItemTemplateID, inv *domain.InventoryComponent, weightOf func(domain.ItemTemplateID) float64, newID func() domain.ItemInstanceID) error {
	if room.HasBeenLooted {
		return domain.ErrRoomAlreadyLooted
	}
	if room.CurrentlyTakenItem != "" {
		return domain.ErrAlreadyHoldingItem
	}

	idx := pedestalIndex(room, templateID)
	if idx < 0 || room.Pedestals[idx].State != domain.PedestalAvailable {
		return domain.ErrPedestalLocked
	}
	if !inv.CanAdd(templateID, 1, weightOf) {
		return domain.ErrInventoryFull
	}

	room.CurrentlyTakenItem = templateID
	for i := range room.Pedestals {
		if i == idx {
			continue
		}
		if room.Pedestals[i].State == domain.PedestalAvailable {
			room.Pedestals[i].State = domain.PedestalLocked
		}
	}
	inv.Add(templateID, 1, 1.0, newID)
	return nil
}

// ReturnItem puts templateID back, reversing every lockout TakeItem
// applied (§4.19).
func ReturnItem(room *domain.TreasureRoomComponent, templateID domain.ItemTemplateID, inv *domain.InventoryComponent) error {
	if room.CurrentlyTakenItem != templateID {
		return domain.ErrInvalidAction
	}
	if !inv.Remove(templateID, 1) {
		return domain.ErrInvalidAction
	}

	room.CurrentlyTakenItem = ""
	for i := range room.Pedestals {
		if room.Pedestals[i].State == domain.PedestalLocked {
			room.Pedestals[i].State = domain.PedestalAvailable
		}
	}
	return nil
}

// LeaveWhileHolding permanently loots the room: it marks HasBeenLooted and
// destroys every pedestal item the player did not take (§4.19).
func LeaveWhileHolding(room *domain.TreasureRoomComponent) {
	room.HasBeenLooted = true
	room.CurrentlyTakenItem = ""
	for i := range room.Pedestals {
		if room.Pedestals[i].State != domain.PedestalEmpty {
			room.Pedestals[i].State = domain.PedestalEmpty
		}
	}
}

func pedestalIndex(room *domain.TreasureRoomComponent, templateID domain.ItemTemplateID) int {
	for i, p := range room.Pedestals {
		if p.TemplateID == templateID {
			return i
		}
	}
	return -1
}
