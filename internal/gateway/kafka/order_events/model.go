package order_events

import "time"

type LocationMessage struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OrderItemMessage struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Note       string `json:"note,omitempty"`
}

type OrderMessage struct {
	ID                  string             `json:"id"`
	CustomerID          string             `json:"customer_id"`
	RestaurantID        string             `json:"restaurant_id"`
	DriverID            *string            `json:"driver_id,omitempty"`
	Items               []OrderItemMessage `json:"items"`
	DeliveryAddress     string             `json:"delivery_address"`
	DeliveryLocation    LocationMessage    `json:"delivery_location"`
	Subtotal            int64              `json:"subtotal"`
	DeliveryFee         int64              `json:"delivery_fee"`
	Tax                 int64              `json:"tax"`
	Total               int64              `json:"total"`
	Status              string             `json:"status"`
	CreatedAt           time.Time          `json:"created_at"`
	EstimatedDeliveryAt time.Time          `json:"estimated_delivery_at"`
}

// EventMessage - значение сообщения в топике событий заказов. Суммы в минимальных единицах.
type EventMessage struct {
	Type       string           `json:"type"`
	OrderID    string           `json:"order_id"`
	CustomerID string           `json:"customer_id"`
	DriverID   *string          `json:"driver_id,omitempty"`
	Status     string           `json:"status"`
	Location   *LocationMessage `json:"location,omitempty"`
	Order      *OrderMessage    `json:"order,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
