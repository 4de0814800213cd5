package cache

import (
	"context"
	"fmt"
	"time"

	"cleaning-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
)

// InitRedis creates the redis client used for booking drafts and catalog
// caching and verifies connectivity before returning it.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}
