package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// recordScript atomically prunes expired entries, checks the count against
// the limit and records new entries in a single round trip. Timestamps are
// stored as sorted set members scored by microseconds; the sequence suffix
// keeps members unique when several requests land in the same microsecond.
var recordScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local n = tonumber(ARGV[4])
local seq = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count + n > limit then
	return {0, count}
end

for i = 1, n do
	redis.call('ZADD', key, now, seq .. '-' .. i)
end
redis.call('PEXPIRE', key, math.ceil(window / 1000))

return {1, count + n}
`)

// RedisStore implements a sliding window store backed by Redis sorted sets.
// Safe to share across replicas; all operations are atomic server side.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to all storage keys.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed sliding window store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrStoreRequired
	}

	s := &RedisStore{
		client: client,
		prefix: "ratelimit:",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *RedisStore) storageKey(key string) string {
	return s.prefix + key
}

// RecordIfAllowed atomically checks the window count against the limit and
// records n entries when the requests fit.
func (s *RedisStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (bool, int64, error) {
	nowMicro := now.UnixMicro()
	// Random member prefix prevents collisions between concurrent callers
	// landing in the same microsecond.
	seq := uuid.NewString()

	res, err := recordScript.Run(ctx, s.client, []string{s.storageKey(key)},
		nowMicro, window.Microseconds(), limit, n, seq).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit: redis record failed: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("ratelimit: unexpected script result length %d", len(res))
	}

	return res[0] == 1, res[1], nil
}

// Count returns the number of entries within the sliding window.
func (s *RedisStore) Count(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now().UnixMicro()
	minScore := fmt.Sprintf("%d", now-window.Microseconds())

	count, err := s.client.ZCount(ctx, s.storageKey(key), minScore, "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("ratelimit: redis count failed: %w", err)
	}

	return count, nil
}

// Delete removes the given key from the store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.storageKey(key)).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis delete failed: %w", err)
	}
	return nil
}
