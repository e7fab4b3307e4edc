package restaurant

import "orderflow/internal/entities"

func ToDomain(r *RestaurantDB) *entities.Restaurant {
	if r == nil {
		return nil
	}
	return &entities.Restaurant{
		ID:                 r.ID,
		OwnerID:            r.OwnerID,
		Name:               r.Name,
		DeliveryFee:        entities.Money(r.DeliveryFee),
		PreparationMinutes: r.PreparationMinutes,
	}
}

func ToMenuItemDomain(m *MenuItemDB) entities.MenuItem {
	return entities.MenuItem{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Price:        entities.Money(m.Price),
		Available:    m.Available,
	}
}
