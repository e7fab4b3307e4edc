package restaurant

type RestaurantDB struct {
	ID                 string
	OwnerID            string
	Name               string
	DeliveryFee        int64
	PreparationMinutes int
}

type MenuItemDB struct {
	ID           string
	RestaurantID string
	Name         string
	Price        int64
	Available    bool
}
