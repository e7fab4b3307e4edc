package dto

import (
	"time"

	"orderflow/internal/entities"
)

// Суммы во всех ответах - в минимальных единицах валюты.

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Note       string `json:"note,omitempty"`
}

type Order struct {
	ID                  string      `json:"id"`
	CustomerID          string      `json:"customer_id"`
	RestaurantID        string      `json:"restaurant_id"`
	DriverID            *string     `json:"driver_id"`
	Items               []OrderItem `json:"items"`
	DeliveryAddress     string      `json:"delivery_address"`
	DeliveryLocation    Location    `json:"delivery_location"`
	Subtotal            int64       `json:"subtotal"`
	DeliveryFee         int64       `json:"delivery_fee"`
	Tax                 int64       `json:"tax"`
	Total               int64       `json:"total"`
	Status              string      `json:"status"`
	PaymentReference    string      `json:"payment_reference"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
	EstimatedDeliveryAt time.Time   `json:"estimated_delivery_at"`
	ActualDeliveryAt    *time.Time  `json:"actual_delivery_at"`
}

type CreateOrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note"`
}

type CreateOrderRequest struct {
	RestaurantID     string            `json:"restaurant_id"`
	Items            []CreateOrderItem `json:"items"`
	DeliveryAddress  string            `json:"delivery_address"`
	DeliveryLocation Location          `json:"delivery_location"`
}

type CreateOrderResponse struct {
	Order        Order  `json:"order"`
	ClientSecret string `json:"client_secret"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type LocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type Analytics struct {
	TotalOrders      int64            `json:"total_orders"`
	CompletedOrders  int64            `json:"completed_orders"`
	TotalRevenue     int64            `json:"total_revenue"`
	TotalRestaurants int64            `json:"total_restaurants"`
	OrdersByStatus   map[string]int64 `json:"orders_by_status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message     string `json:"message"`
	Connections int    `json:"connections"`
}

func FromLocation(location entities.Location) Location {
	return Location{Lat: location.Lat, Lng: location.Lng}
}

func FromOrder(order entities.Order) Order {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.MinorUnits(),
			Note:       item.Note,
		})
	}

	return Order{
		ID:                  order.ID,
		CustomerID:          order.CustomerID,
		RestaurantID:        order.RestaurantID,
		DriverID:            order.DriverID,
		Items:               items,
		DeliveryAddress:     order.DeliveryAddress,
		DeliveryLocation:    FromLocation(order.DeliveryLocation),
		Subtotal:            order.Subtotal.MinorUnits(),
		DeliveryFee:         order.DeliveryFee.MinorUnits(),
		Tax:                 order.Tax.MinorUnits(),
		Total:               order.Total.MinorUnits(),
		Status:              order.Status.String(),
		PaymentReference:    order.PaymentReference,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
		EstimatedDeliveryAt: order.EstimatedDeliveryAt,
		ActualDeliveryAt:    order.ActualDeliveryAt,
	}
}

func FromOrders(orders []entities.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromOrder(order))
	}
	return out
}

func (r CreateOrderRequest) ToDomain() entities.OrderDraft {
	items := make([]entities.DraftItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, entities.DraftItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}

	return entities.OrderDraft{
		RestaurantID:    r.RestaurantID,
		Items:           items,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryLocation: entities.Location{
			Lat: r.DeliveryLocation.Lat,
			Lng: r.DeliveryLocation.Lng,
		},
	}
}

func FromStats(stats entities.OrderStats) Analytics {
	byStatus := make(map[string]int64, len(entities.OrderStatuses))
	for _, status := range entities.OrderStatuses {
		byStatus[status.String()] = stats.ByStatus[status]
	}

	return Analytics{
		TotalOrders:      stats.TotalOrders,
		CompletedOrders:  stats.CompletedOrders,
		TotalRevenue:     stats.TotalRevenue.MinorUnits(),
		TotalRestaurants: stats.TotalRestaurants,
		OrdersByStatus:   byStatus,
	}
}
