package driver_location

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// redisClient - подмножество *redis.Client, которое использует хранилище.
type redisClient interface {
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}
