package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/image2pdf/internal/config"
)

const sessionKeyPrefix = "image2pdf:session:"

// RedisStore keeps session state in Redis, JSON-serialized with a TTL.
// It lets the service run stateless across replicas; the TTL bounds how
// long an idle session keeps its results.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (*State, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &State{}, nil
		}
		return nil, fmt.Errorf("session load error: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("session decode error: %w", err)
	}
	return &state, nil
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session encode error: %w", err)
	}
	return r.client.Set(ctx, sessionKeyPrefix+sessionID, data, r.ttl).Err()
}

func (r *RedisStore) HealthCheck(ctx context.Context) map[string]string {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return map[string]string{"session_store": "unhealthy: " + err.Error()}
	}
	return map[string]string{"session_store": "healthy"}
}
