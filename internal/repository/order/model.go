package order

import "time"

type OrderDB struct {
	ID                  string
	CustomerID          string
	RestaurantID        string
	DriverID            *string
	Items               []OrderItemDB
	DeliveryAddress     string
	DeliveryLat         float64
	DeliveryLng         float64
	Subtotal            int64
	DeliveryFee         int64
	Tax                 int64
	Total               int64
	Status              string
	PaymentReference    string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	EstimatedDeliveryAt time.Time
	ActualDeliveryAt    *time.Time
}

// OrderItemDB хранится в колонке items (jsonb).
type OrderItemDB struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Note       string `json:"note,omitempty"`
}

type StatusEventDB struct {
	OrderID    string
	FromStatus *string
	ToStatus   string
	ActorID    string
	ActorRole  string
	CreatedAt  time.Time
}
