// Package redis implements sink.Sink with a Redis hash holding one field
// per configuration key.
package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/confpatch/pkg/adapters/sink"
	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

const keyPrefix = "confpatch:conf:"

// Sink publishes configurations to Redis
type Sink struct {
	client *redis.Client
	name   string
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a Redis sink writing to the hash confpatch:conf:<name>.
// A zero ttl keeps the hash forever.
func New(client *redis.Client, name string, ttl time.Duration, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{
		client: client,
		name:   name,
		ttl:    ttl,
		logger: logger,
	}
}

// Key returns the Redis key of the hash
func (s *Sink) Key() string {
	return getConfKey(s.name)
}

// Write replaces the hash with the raw values of conf in one transaction
func (s *Sink) Write(ctx context.Context, conf *hadoopconf.Configuration) error {
	key := s.Key()

	fields := make(map[string]interface{}, conf.Len())
	for _, e := range conf.Entries() {
		fields[e.Key] = e.Value
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish configuration: %w", err)
	}

	s.logger.Info("configuration published",
		zap.String("key", key),
		zap.Int("keys", len(fields)))
	return nil
}

// Read loads the hash back. Keys are returned in sorted order, since a
// hash does not keep insertion order.
func (s *Sink) Read(ctx context.Context) (*hadoopconf.Configuration, error) {
	values, err := s.client.HGetAll(ctx, s.Key()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conf := hadoopconf.New(hadoopconf.WithLogger(s.logger))
	for _, k := range keys {
		conf.Set(k, values[k])
	}
	return conf, nil
}

// getConfKey returns the Redis key for a named configuration
func getConfKey(name string) string {
	return keyPrefix + name
}

// Compile-time check that Sink implements sink.Sink.
var _ sink.Sink = (*Sink)(nil)
