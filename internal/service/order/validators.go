package order

import (
	"strings"

	"github.com/google/uuid"
	"orderflow/internal/entities"
)

const (
	maxItemsPerOrder   = 100
	maxQuantityPerItem = 1000
)

func isValidOrderID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isValidReference(id string) bool {
	return strings.TrimSpace(id) != "" && len(id) <= 64
}

func validateDraft(draft entities.OrderDraft) error {
	if !isValidReference(draft.RestaurantID) {
		return ErrInvalidRestaurantID
	}
	if strings.TrimSpace(draft.DeliveryAddress) == "" {
		return ErrEmptyAddress
	}
	if !draft.DeliveryLocation.IsValid() {
		return ErrInvalidLocation
	}
	if len(draft.Items) == 0 || len(draft.Items) > maxItemsPerOrder {
		return ErrNoItems
	}
	for _, item := range draft.Items {
		if !isValidReference(item.MenuItemID) {
			return ErrInvalidMenuItemID
		}
		if item.Quantity < 1 || item.Quantity > maxQuantityPerItem {
			return ErrInvalidQuantity
		}
	}
	return nil
}
