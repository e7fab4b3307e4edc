package entities

type OrderStats struct {
	TotalOrders      int64
	CompletedOrders  int64
	TotalRevenue     Money
	ByStatus         map[OrderStatusType]int64
	TotalRestaurants int64
}
