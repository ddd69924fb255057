package tracker

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Event channels.
const (
	EventSubmitted = "EVENT_APPLICATION_SUBMITTED"
	EventMoved     = "EVENT_APPLICATION_MOVED"
	EventRemoved   = "EVENT_APPLICATION_REMOVED"
)

// Publisher broadcasts lifecycle events. Publishing is best effort.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher publishes on Redis pub/sub channels.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher wraps a connected client.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.rdb.Publish(ctx, channel, payload).Err()
}
