package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"orderflow/internal/entities"
	"orderflow/pkg/logger"
)

type Service struct {
	log        serviceLogger
	repository Repository
	catalog    RestaurantCatalog
	payments   PaymentGateway
	pricing    PricingCalculator
	estimator  DeliveryEstimator
	notifier   Notifier
	txManager  TxManager
}

func New(
	log serviceLogger,
	repository Repository,
	catalog RestaurantCatalog,
	payments PaymentGateway,
	pricing PricingCalculator,
	estimator DeliveryEstimator,
	notifier Notifier,
	txManager TxManager,
) *Service {
	return &Service{
		log:        log.With(logger.NewField("component", "order_service")),
		repository: repository,
		catalog:    catalog,
		payments:   payments,
		pricing:    pricing,
		estimator:  estimator,
		notifier:   notifier,
		txManager:  txManager,
	}
}

func (s *Service) CreateOrder(ctx context.Context, actor entities.Actor, draft entities.OrderDraft) (*entities.PlacedOrder, error) {
	if actor.Role != entities.RoleCustomer {
		return nil, ErrForbidden
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	restaurant, err := s.catalog.GetRestaurant(ctx, draft.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}

	items, err := s.priceItems(ctx, restaurant.ID, draft.Items)
	if err != nil {
		return nil, err
	}

	pricing, err := s.pricing.Calculate(items, restaurant.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	orderID := uuid.NewString()

	authorization, err := s.payments.Authorize(ctx, entities.PaymentRequest{
		Amount:   pricing.Total,
		Currency: pricing.Currency,
		Metadata: map[string]string{
			"customer_id":   actor.ID,
			"restaurant_id": restaurant.ID,
			"order_id":      orderID,
		},
		IdempotencyKey: orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: authorize payment: %w", ErrPaymentGateway, err)
	}

	now := time.Now().UTC()
	newOrder := entities.Order{
		ID:                  orderID,
		CustomerID:          actor.ID,
		RestaurantID:        restaurant.ID,
		Items:               items,
		DeliveryAddress:     draft.DeliveryAddress,
		DeliveryLocation:    draft.DeliveryLocation,
		Subtotal:            pricing.Subtotal,
		DeliveryFee:         pricing.DeliveryFee,
		Tax:                 pricing.Tax,
		Total:               pricing.Total,
		Status:              entities.OrderPending,
		PaymentReference:    authorization.Reference,
		CreatedAt:           now,
		UpdatedAt:           now,
		EstimatedDeliveryAt: s.estimator.EstimateDelivery(restaurant.PreparationMinutes, now),
	}

	var created *entities.Order
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err = s.repository.Create(ctx, newOrder)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return s.repository.AppendStatusEvent(ctx, entities.StatusEvent{
			OrderID:   created.ID,
			To:        entities.OrderPending,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			At:        now,
		})
	})
	if err != nil {
		s.releasePayment(ctx, orderID, authorization.Reference)
		return nil, err
	}

	s.notifier.OrderCreated(ctx, *created)

	return &entities.PlacedOrder{
		Order:        *created,
		ClientSecret: authorization.ClientSecret,
	}, nil
}

// UpdateStatus переводит заказ по таблице переходов. Обновление условное:
// если статус успели поменять конкурентно, вызывающий получает ErrInvalidTransition
// и должен перечитать заказ.
func (s *Service) UpdateStatus(ctx context.Context, actor entities.Actor, orderID string, target entities.OrderStatusType) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !target.IsValid() {
		return nil, ErrInvalidStatus
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		requiredRole, declared := RequiredRole(current.Status, target)
		if !declared {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
		}

		if err := s.authorizeTransition(ctx, actor, current, requiredRole); err != nil {
			return err
		}

		now := time.Now().UTC()
		change := entities.StatusChange{
			OrderID: orderID,
			From:    current.Status,
			To:      target,
			At:      now,
		}
		if target == entities.OrderDelivered {
			change.DeliveredAt = &now
		}

		order, ok, err := s.repository.CompareAndUpdateStatus(ctx, change)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: order is no longer %s", ErrInvalidTransition, current.Status)
		}

		from := current.Status
		err = s.repository.AppendStatusEvent(ctx, entities.StatusEvent{
			OrderID:   orderID,
			From:      &from,
			To:        target,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			At:        now,
		})
		if err != nil {
			return fmt.Errorf("append status event: %w", err)
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderStatusChanged(ctx, *updated)
	return updated, nil
}

// AssignDriver закрепляет заказ за водителем-инициатором. Заказ в pending
// одновременно переходит в confirmed, более поздние статусы не откатываются.
func (s *Service) AssignDriver(ctx context.Context, actor entities.Actor, orderID string) (*entities.Order, error) {
	if actor.Role != entities.RoleDriver {
		return nil, ErrForbidden
	}
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	var assigned *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if current.HasDriver() {
			return ErrAlreadyAssigned
		}
		if !assignable(current.Status) {
			return fmt.Errorf("%w: order in status %s cannot be assigned", ErrInvalidTransition, current.Status)
		}

		now := time.Now().UTC()
		order, ok, err := s.repository.CompareAndAssignDriver(ctx, orderID, actor.ID, now)
		if err != nil {
			return fmt.Errorf("assign driver: %w", err)
		}
		if !ok {
			return s.explainLostAssignment(ctx, orderID)
		}

		if order.Status != current.Status {
			from := current.Status
			err = s.repository.AppendStatusEvent(ctx, entities.StatusEvent{
				OrderID:   orderID,
				From:      &from,
				To:        order.Status,
				ActorID:   actor.ID,
				ActorRole: actor.Role,
				At:        now,
			})
			if err != nil {
				return fmt.Errorf("append status event: %w", err)
			}
		}

		assigned = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.DriverAssigned(ctx, *assigned)
	return assigned, nil
}

func (s *Service) GetOrder(ctx context.Context, actor entities.Actor, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	visible, err := s.canView(ctx, actor, order)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListOrders возвращает заказы, видимые актору. status == nil - все статусы.
func (s *Service) ListOrders(ctx context.Context, actor entities.Actor, status *entities.OrderStatusType) ([]entities.Order, error) {
	filter := entities.OrderFilter{}
	if status != nil {
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		filter.Statuses = []entities.OrderStatusType{*status}
	}

	switch actor.Role {
	case entities.RoleCustomer:
		filter.CustomerID = &actor.ID
	case entities.RoleDriver:
		filter.DriverID = &actor.ID
	case entities.RoleRestaurant:
		restaurantIDs, err := s.catalog.ListRestaurantIDsByOwner(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("list owned restaurants: %w", err)
		}
		if len(restaurantIDs) == 0 {
			return []entities.Order{}, nil
		}
		filter.RestaurantIDs = restaurantIDs
	case entities.RoleAdmin:
	default:
		return nil, ErrForbidden
	}

	orders, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListAvailableOrders - незавершённые заказы без водителя. Водитель, переподключившийся
// после рассылки new_order, находит их здесь.
func (s *Service) ListAvailableOrders(ctx context.Context, actor entities.Actor) ([]entities.Order, error) {
	if actor.Role != entities.RoleDriver {
		return nil, ErrForbidden
	}

	orders, err := s.repository.List(ctx, entities.OrderFilter{
		Statuses: []entities.OrderStatusType{
			entities.OrderPending,
			entities.OrderConfirmed,
			entities.OrderPreparing,
			entities.OrderReady,
		},
		Unassigned: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list available orders: %w", err)
	}
	return orders, nil
}

func (s *Service) Analytics(ctx context.Context, actor entities.Actor) (*entities.OrderStats, error) {
	if actor.Role != entities.RoleAdmin {
		return nil, ErrForbidden
	}

	var stats *entities.OrderStats
	err := s.txManager.DoRepeatableRead(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.repository.Stats(ctx)
		if err != nil {
			return fmt.Errorf("order stats: %w", err)
		}

		stats.TotalRestaurants, err = s.catalog.CountRestaurants(ctx)
		if err != nil {
			return fmt.Errorf("count restaurants: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// priceItems подставляет цены из меню ресторана.
func (s *Service) priceItems(ctx context.Context, restaurantID string, draftItems []entities.DraftItem) ([]entities.OrderItem, error) {
	ids := make([]string, 0, len(draftItems))
	seen := make(map[string]struct{}, len(draftItems))
	for _, item := range draftItems {
		if _, ok := seen[item.MenuItemID]; ok {
			continue
		}
		seen[item.MenuItemID] = struct{}{}
		ids = append(ids, item.MenuItemID)
	}

	menuItems, err := s.catalog.GetMenuItems(ctx, restaurantID, ids)
	if err != nil {
		return nil, fmt.Errorf("get menu items: %w", err)
	}

	menu := make(map[string]entities.MenuItem, len(menuItems))
	for _, menuItem := range menuItems {
		menu[menuItem.ID] = menuItem
	}

	items := make([]entities.OrderItem, 0, len(draftItems))
	for _, item := range draftItems {
		menuItem, ok := menu[item.MenuItemID]
		if !ok || !menuItem.Available || menuItem.RestaurantID != restaurantID {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMenuItem, item.MenuItemID)
		}
		items = append(items, entities.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  menuItem.Price,
			Note:       item.Note,
		})
	}
	return items, nil
}

func (s *Service) authorizeTransition(ctx context.Context, actor entities.Actor, order *entities.Order, requiredRole entities.Role) error {
	if requiredRole == "" || actor.Role != requiredRole {
		return ErrForbidden
	}

	switch requiredRole {
	case entities.RoleRestaurant:
		owns, err := s.ownsRestaurant(ctx, actor.ID, order.RestaurantID)
		if err != nil {
			return err
		}
		if !owns {
			return ErrForbidden
		}
	case entities.RoleDriver:
		if !order.IsAssignedTo(actor.ID) {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}
	return nil
}

func (s *Service) ownsRestaurant(ctx context.Context, ownerID, restaurantID string) (bool, error) {
	restaurant, err := s.catalog.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return false, fmt.Errorf("get restaurant: %w", err)
	}
	return restaurant.OwnerID == ownerID, nil
}

func (s *Service) canView(ctx context.Context, actor entities.Actor, order *entities.Order) (bool, error) {
	switch actor.Role {
	case entities.RoleAdmin:
		return true, nil
	case entities.RoleCustomer:
		return order.CustomerID == actor.ID, nil
	case entities.RoleDriver:
		return order.IsAssignedTo(actor.ID) || (!order.HasDriver() && assignable(order.Status)), nil
	case entities.RoleRestaurant:
		return s.ownsRestaurant(ctx, actor.ID, order.RestaurantID)
	default:
		return false, nil
	}
}

// explainLostAssignment разбирает проигранный CAS назначения: водитель уже есть,
// либо заказ успел уйти в статус, где назначение невозможно.
func (s *Service) explainLostAssignment(ctx context.Context, orderID string) error {
	current, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("reload order: %w", err)
	}
	if current.HasDriver() {
		return ErrAlreadyAssigned
	}
	return fmt.Errorf("%w: order in status %s cannot be assigned", ErrInvalidTransition, current.Status)
}

func (s *Service) releasePayment(ctx context.Context, orderID, reference string) {
	cancelCtx := context.WithoutCancel(ctx)
	if err := s.payments.Cancel(cancelCtx, reference); err != nil {
		s.log.Error("failed to cancel payment intent for unsaved order",
			logger.NewField("order_id", orderID),
			logger.NewField("payment_reference", reference),
			logger.NewField("error", err),
		)
		return
	}
	s.log.Warn("payment intent cancelled, order was not saved",
		logger.NewField("order_id", orderID),
		logger.NewField("payment_reference", reference),
	)
}
