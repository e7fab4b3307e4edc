package entities

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleDriver     Role = "driver"
	RoleRestaurant Role = "restaurant"
	RoleAdmin      Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleRestaurant, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor - аутентифицированный инициатор операции.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) Subscriber() Subscriber {
	return Subscriber(a)
}

// Subscriber - идентичность живого соединения. Одинаковый ID с разными ролями -
// разные подписчики.
type Subscriber struct {
	ID   string
	Role Role
}

func CustomerSubscriber(id string) Subscriber {
	return Subscriber{ID: id, Role: RoleCustomer}
}

func DriverSubscriber(id string) Subscriber {
	return Subscriber{ID: id, Role: RoleDriver}
}

func RestaurantSubscriber(id string) Subscriber {
	return Subscriber{ID: id, Role: RoleRestaurant}
}
