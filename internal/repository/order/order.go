package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"orderflow/internal/entities"
	"orderflow/internal/repository"
	"orderflow/internal/service/order"
)

const orderColumns = `
	id, customer_id, restaurant_id, driver_id, items, delivery_address, delivery_lat, delivery_lng,
	subtotal, delivery_fee, tax, total, status, payment_reference,
	created_at, updated_at, estimated_delivery_at, actual_delivery_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, o entities.Order) (*entities.Order, error) {
	orderDB := FromDomain(&o)

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + orderColumns

	created, err := scanOrder(r.querier.QueryRow(
		ctx,
		query,
		orderDB.ID,
		orderDB.CustomerID,
		orderDB.RestaurantID,
		orderDB.DriverID,
		orderDB.Items,
		orderDB.DeliveryAddress,
		orderDB.DeliveryLat,
		orderDB.DeliveryLng,
		orderDB.Subtotal,
		orderDB.DeliveryFee,
		orderDB.Tax,
		orderDB.Total,
		orderDB.Status,
		orderDB.PaymentReference,
		orderDB.CreatedAt,
		orderDB.UpdatedAt,
		orderDB.EstimatedDeliveryAt,
		orderDB.ActualDeliveryAt,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, order.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(created), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	found, err := scanOrder(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	return ToDomain(found), nil
}

func (r *Repository) List(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	builder := psql.
		Select(orderColumns).
		From("orders").
		OrderBy("created_at DESC", "id")

	if filter.CustomerID != nil {
		builder = builder.Where(sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.DriverID != nil {
		builder = builder.Where(sq.Eq{"driver_id": *filter.DriverID})
	}
	if len(filter.RestaurantIDs) > 0 {
		builder = builder.Where(sq.Eq{"restaurant_id": filter.RestaurantIDs})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, status.String())
		}
		builder = builder.Where(sq.Eq{"status::text": statuses})
	}
	if filter.Unassigned {
		builder = builder.Where(sq.Eq{"driver_id": nil})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order list query: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		orderDB, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository scan error: %w", err)
		}
		orders = append(orders, *ToDomain(orderDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository rows error: %w", err)
	}

	return orders, nil
}

func (r *Repository) Stats(ctx context.Context) (*entities.OrderStats, error) {
	query := `
		SELECT
			status::text,
			COUNT(*),
			COALESCE(SUM(total) FILTER (WHERE status = 'delivered'), 0)
		FROM orders
		GROUP BY status
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository stats error: %w", err)
	}
	defer rows.Close()

	stats := &entities.OrderStats{
		ByStatus: make(map[entities.OrderStatusType]int64, len(entities.OrderStatuses)),
	}
	for rows.Next() {
		var (
			status  string
			count   int64
			revenue int64
		)
		if err := rows.Scan(&status, &count, &revenue); err != nil {
			return nil, fmt.Errorf("unexpected order repository stats scan error: %w", err)
		}

		stats.ByStatus[entities.OrderStatusType(status)] = count
		stats.TotalOrders += count
		stats.TotalRevenue += entities.Money(revenue)
		if entities.OrderStatusType(status) == entities.OrderDelivered {
			stats.CompletedOrders = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository stats rows error: %w", err)
	}

	return stats, nil
}

// CompareAndUpdateStatus - условный UPDATE по ожидаемому статусу. Под READ COMMITTED
// конкурент, дождавшийся блокировки строки, перепроверяет WHERE и получает 0 строк.
func (r *Repository) CompareAndUpdateStatus(ctx context.Context, change entities.StatusChange) (*entities.Order, bool, error) {
	query := `
		UPDATE orders
		SET status = $3,
			updated_at = $4,
			actual_delivery_at = COALESCE($5, actual_delivery_at)
		WHERE id = $1 AND status = $2
		RETURNING ` + orderColumns

	updated, err := scanOrder(r.querier.QueryRow(
		ctx,
		query,
		change.OrderID,
		change.From.String(),
		change.To.String(),
		change.At,
		change.DeliveredAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("unexpected order repository update status error: %w", err)
	}

	return ToDomain(updated), true, nil
}

func (r *Repository) CompareAndAssignDriver(ctx context.Context, orderID, driverID string, at time.Time) (*entities.Order, bool, error) {
	query := `
		UPDATE orders
		SET driver_id = $2,
			status = CASE WHEN status = 'pending' THEN 'confirmed'::order_status ELSE status END,
			updated_at = $3
		WHERE id = $1
			AND driver_id IS NULL
			AND status NOT IN ('picked_up', 'delivered', 'cancelled')
		RETURNING ` + orderColumns

	assigned, err := scanOrder(r.querier.QueryRow(ctx, query, orderID, driverID, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("unexpected order repository assign driver error: %w", err)
	}

	return ToDomain(assigned), true, nil
}

func (r *Repository) AppendStatusEvent(ctx context.Context, event entities.StatusEvent) error {
	eventDB := FromDomainStatusEvent(event)

	query := `
		INSERT INTO order_status_events (order_id, from_status, to_status, actor_id, actor_role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(
		ctx,
		query,
		eventDB.OrderID,
		eventDB.FromStatus,
		eventDB.ToStatus,
		eventDB.ActorID,
		eventDB.ActorRole,
		eventDB.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return order.ErrOrderNotFound
		}
		return fmt.Errorf("unexpected order repository append status event error: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var o OrderDB
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.RestaurantID,
		&o.DriverID,
		&o.Items,
		&o.DeliveryAddress,
		&o.DeliveryLat,
		&o.DeliveryLng,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.Tax,
		&o.Total,
		&o.Status,
		&o.PaymentReference,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.EstimatedDeliveryAt,
		&o.ActualDeliveryAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
