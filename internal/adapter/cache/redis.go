package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"boatfeed/internal/domain/model"
	"boatfeed/internal/domain/port"
)

var _ port.DatasetCachePort = (*RedisAdapter)(nil)

const datasetKey = "boats:dataset"

// RedisAdapter shares the dataset cache across instances, relying on Redis
// key expiry instead of timestamp arithmetic. Anything Load returns is by
// definition fresh; expired datasets are gone.
type RedisAdapter struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAdapter(addr, password string, db int, ttl time.Duration) (*RedisAdapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisAdapter{
		client: client,
		ttl:    ttl,
	}, nil
}

func (a *RedisAdapter) Load(ctx context.Context) (*model.BaseDataset, bool, error) {
	data, err := a.client.Get(ctx, datasetKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get dataset from redis: %w", err)
	}

	var ds model.BaseDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}
	return &ds, true, nil
}

func (a *RedisAdapter) Store(ctx context.Context, ds *model.BaseDataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := a.client.Set(ctx, datasetKey, data, a.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set dataset in redis: %w", err)
	}
	return nil
}

func (a *RedisAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

func (a *RedisAdapter) Close() error {
	return a.client.Close()
}
