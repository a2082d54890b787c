package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisSetter is the part of *redis.Client the sink needs.
type redisSetter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisSink stores each document as a JSON string under Prefix+name.
type RedisSink struct {
	client redisSetter
	prefix string
	ttl    time.Duration // zero keeps keys forever
}

func NewRedisSink(client redisSetter, prefix string, ttl time.Duration) *RedisSink {
	return &RedisSink{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSink) Key(name string) string {
	return s.prefix + name
}

func (s *RedisSink) Put(ctx context.Context, name string, document any) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := encode(document)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.Key(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store artifact %s in redis: %w", name, err)
	}
	return nil
}
