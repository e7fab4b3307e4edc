package entities

import "time"

type Order struct {
	ID               string
	CustomerID       string
	RestaurantID     string
	DriverID         *string
	Items            []OrderItem
	DeliveryAddress  string
	DeliveryLocation Location

	Subtotal    Money
	DeliveryFee Money
	Tax         Money
	Total       Money

	Status           OrderStatusType
	PaymentReference string

	CreatedAt           time.Time
	UpdatedAt           time.Time
	EstimatedDeliveryAt time.Time
	ActualDeliveryAt    *time.Time
}

// HasDriver сообщает, назначен ли водитель.
func (o *Order) HasDriver() bool {
	return o.DriverID != nil && *o.DriverID != ""
}

func (o *Order) IsAssignedTo(driverID string) bool {
	return o.HasDriver() && *o.DriverID == driverID
}

type OrderItem struct {
	MenuItemID string
	Quantity   int
	UnitPrice  Money
	Note       string
}

type OrderStatusType string

const (
	OrderPending   OrderStatusType = "pending"
	OrderConfirmed OrderStatusType = "confirmed"
	OrderPreparing OrderStatusType = "preparing"
	OrderReady     OrderStatusType = "ready"
	OrderPickedUp  OrderStatusType = "picked_up"
	OrderDelivered OrderStatusType = "delivered"
	OrderCancelled OrderStatusType = "cancelled"
)

var OrderStatuses = []OrderStatusType{
	OrderPending,
	OrderConfirmed,
	OrderPreparing,
	OrderReady,
	OrderPickedUp,
	OrderDelivered,
	OrderCancelled,
}

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// OrderDraft - запрос клиента на создание заказа до расчёта цены и оплаты.
type OrderDraft struct {
	RestaurantID     string
	Items            []DraftItem
	DeliveryAddress  string
	DeliveryLocation Location
}

type DraftItem struct {
	MenuItemID string
	Quantity   int
	Note       string
}

// PlacedOrder - результат создания: заказ и секрет для подтверждения оплаты на клиенте.
type PlacedOrder struct {
	Order        Order
	ClientSecret string
}

type OrderPricing struct {
	Subtotal    Money
	DeliveryFee Money
	Tax         Money
	Total       Money
	Currency    string
}

// OrderFilter - пустые поля не ограничивают выборку.
type OrderFilter struct {
	CustomerID    *string
	DriverID      *string
	RestaurantIDs []string
	Statuses      []OrderStatusType
	Unassigned    bool
	Limit         uint64
}

// StatusChange описывает условное обновление статуса (compare-and-swap).
type StatusChange struct {
	OrderID     string
	From        OrderStatusType
	To          OrderStatusType
	At          time.Time
	DeliveredAt *time.Time
}

// StatusEvent - строка журнала переходов заказа.
type StatusEvent struct {
	OrderID   string
	From      *OrderStatusType
	To        OrderStatusType
	ActorID   string
	ActorRole Role
	At        time.Time
}
