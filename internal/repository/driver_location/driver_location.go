package driver_location

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"orderflow/internal/entities"
)

const (
	driversGeoKey = "drivers:locations"
	locationTTL   = 24 * time.Hour

	fieldLat       = "lat"
	fieldLng       = "lng"
	fieldUpdatedAt = "updated_at"
)

var ErrLocationNotFound = errors.New("driver location not found")

// Repository хранит последнюю позицию водителя: GEO-индекс для поиска по радиусу
// и хэш с точными координатами и временем фиксации.
type Repository struct {
	client redisClient
}

func New(client redisClient) *Repository {
	return &Repository{
		client: client,
	}
}

func (r *Repository) SaveLocation(ctx context.Context, location entities.DriverLocation) error {
	key := driverKey(location.DriverID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.GeoAdd(ctx, driversGeoKey, &redis.GeoLocation{
			Name:      location.DriverID,
			Longitude: location.Location.Lng,
			Latitude:  location.Location.Lat,
		})
		pipe.HSet(ctx, key,
			fieldLat, strconv.FormatFloat(location.Location.Lat, 'f', -1, 64),
			fieldLng, strconv.FormatFloat(location.Location.Lng, 'f', -1, 64),
			fieldUpdatedAt, location.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, locationTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("unexpected driver location repository save error: %w", err)
	}
	return nil
}

func (r *Repository) GetLocation(ctx context.Context, driverID string) (*entities.DriverLocation, error) {
	values, err := r.client.HGetAll(ctx, driverKey(driverID)).Result()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver location repository get error: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(values[fieldLat], 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(values[fieldLng], 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, values[fieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &entities.DriverLocation{
		DriverID:  driverID,
		Location:  entities.Location{Lat: lat, Lng: lng},
		UpdatedAt: updatedAt,
	}, nil
}

func driverKey(driverID string) string {
	return "drivers:" + driverID + ":location"
}
