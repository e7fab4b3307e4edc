package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"orderflow/internal/entities"
	"orderflow/internal/service/order"
)

// Repository - каталог ресторанов, доступ только на чтение.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetRestaurant(ctx context.Context, id string) (*entities.Restaurant, error) {
	query := `
		SELECT id, owner_id, name, delivery_fee, preparation_minutes
		FROM restaurants
		WHERE id = $1
	`

	var restaurantDB RestaurantDB
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&restaurantDB.ID,
		&restaurantDB.OwnerID,
		&restaurantDB.Name,
		&restaurantDB.DeliveryFee,
		&restaurantDB.PreparationMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("unexpected restaurant repository get error: %w", err)
	}

	return ToDomain(&restaurantDB), nil
}

func (r *Repository) GetMenuItems(ctx context.Context, restaurantID string, ids []string) ([]entities.MenuItem, error) {
	query := `
		SELECT id, restaurant_id, name, price, available
		FROM menu_items
		WHERE restaurant_id = $1 AND id = ANY($2)
	`

	rows, err := r.querier.Query(ctx, query, restaurantID, ids)
	if err != nil {
		return nil, fmt.Errorf("unexpected restaurant repository menu error: %w", err)
	}
	defer rows.Close()

	items := make([]entities.MenuItem, 0, len(ids))
	for rows.Next() {
		var itemDB MenuItemDB
		if err := rows.Scan(&itemDB.ID, &itemDB.RestaurantID, &itemDB.Name, &itemDB.Price, &itemDB.Available); err != nil {
			return nil, fmt.Errorf("unexpected restaurant repository menu scan error: %w", err)
		}
		items = append(items, ToMenuItemDomain(&itemDB))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected restaurant repository menu rows error: %w", err)
	}

	return items, nil
}

func (r *Repository) ListRestaurantIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	query := `SELECT id FROM restaurants WHERE owner_id = $1 ORDER BY id`

	rows, err := r.querier.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("unexpected restaurant repository list by owner error: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("unexpected restaurant repository list by owner scan error: %w", err)
	}
	return ids, nil
}

func (r *Repository) CountRestaurants(ctx context.Context) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unexpected restaurant repository count error: %w", err)
	}
	return count, nil
}
