package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type (
	// Publisher is the notification sink boundary. Delivery is best-effort;
	// callers must never treat a publish failure as a failed ledger operation.
	Publisher interface {
		Publish(ctx context.Context, topic string, payload any) error
	}

	redisPublisher struct {
		client *redis.Client
	}

	noopPublisher struct{}
)

func NewRedisPublisher(addr, password string, db int) (Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisPublisher{client: client}, nil
}

func (p *redisPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, topic, data).Err()
}

// NewNoopPublisher returns a publisher that drops everything. Used when no
// redis is configured and in tests.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, topic string, payload any) error {
	return nil
}
