package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisStream is the stream used when none is configured.
const DefaultRedisStream = "gitcite:events"

// streamAdder is the subset of redis.Cmdable used by RedisSink.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisSink appends events to a Redis stream.
type RedisSink struct {
	client streamAdder
	closer func() error
	stream string
}

// NewRedisSink connects to addr and verifies the connection with PING.
func NewRedisSink(ctx context.Context, addr, stream string) (*RedisSink, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis analytics sink: address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisSink(client, client.Close, stream), nil
}

func newRedisSink(client streamAdder, closer func() error, stream string) *RedisSink {
	if stream == "" {
		stream = DefaultRedisStream
	}
	return &RedisSink{client: client, closer: closer, stream: stream}
}

func (s *RedisSink) Track(ctx context.Context, e Event) error {
	values := map[string]any{
		"id":   e.ID,
		"type": string(e.Type),
		"time": e.Time.Format(time.RFC3339Nano),
	}
	for k, v := range e.Properties {
		values["prop."+k] = v
	}
	if err := s.client.XAdd(ctx, &redis.XAddArgs{Stream: s.stream, Values: values}).Err(); err != nil {
		return fmt.Errorf("redis xadd: %w", err)
	}
	return nil
}

func (s *RedisSink) Close(context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
