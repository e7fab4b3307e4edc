package order

import "orderflow/internal/entities"

type transitionKey struct {
	from entities.OrderStatusType
	to   entities.OrderStatusType
}

// Роль, которой разрешён переход. Пустая роль - переход объявлен, но зарезервирован:
// ни один актор не может его выполнить.
var transitions = buildTransitions()

func buildTransitions() map[transitionKey]entities.Role {
	table := map[transitionKey]entities.Role{
		{entities.OrderPending, entities.OrderConfirmed}:   entities.RoleRestaurant,
		{entities.OrderConfirmed, entities.OrderPreparing}: entities.RoleRestaurant,
		{entities.OrderPreparing, entities.OrderReady}:     entities.RoleRestaurant,
		{entities.OrderReady, entities.OrderPickedUp}:      entities.RoleDriver,
		{entities.OrderPickedUp, entities.OrderDelivered}:  entities.RoleDriver,
	}

	for _, status := range entities.OrderStatuses {
		if status.IsTerminal() {
			continue
		}
		table[transitionKey{status, entities.OrderCancelled}] = ""
	}
	return table
}

// RequiredRole возвращает роль для перехода from -> to и признак того, что такой переход объявлен.
func RequiredRole(from, to entities.OrderStatusType) (entities.Role, bool) {
	role, ok := transitions[transitionKey{from, to}]
	return role, ok
}

// assignable - статусы, в которых заказ ещё может получить водителя.
func assignable(status entities.OrderStatusType) bool {
	switch status {
	case entities.OrderPending, entities.OrderConfirmed, entities.OrderPreparing, entities.OrderReady:
		return true
	default:
		return false
	}
}
