package entities

type Restaurant struct {
	ID                 string
	OwnerID            string
	Name               string
	DeliveryFee        Money
	PreparationMinutes int
}

type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Price        Money
	Available    bool
}
