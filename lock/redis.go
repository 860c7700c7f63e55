package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix          = "payment-collections:lock:"
	defaultRetryPeriod = 25 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock re-acquired by another writer is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every instance of the service. When
// redis cannot be reached it falls back to an in-process lock.
type RedisLocker struct {
	client   redis.UniversalClient
	ttl      time.Duration
	retry    time.Duration
	fallback *KeyedMutex
}

// NewRedisLocker connects to the redis instance at redisURL
// (e.g. "redis://localhost:6379/0"). ttl bounds how long a crashed holder
// can keep a collection locked.
func NewRedisLocker(redisURL string, ttl time.Duration) (*RedisLocker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: [%v]", err)
	}
	return NewRedisLockerWithClient(redis.NewClient(opts), ttl), nil
}

// NewRedisLockerWithClient wraps an existing client.
func NewRedisLockerWithClient(client redis.UniversalClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:   client,
		ttl:      ttl,
		retry:    defaultRetryPeriod,
		fallback: NewKeyedMutex(),
	}
}

// Lock polls until the key is acquired or ctx is done.
func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	for {
		acquired, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Error(fmt.Errorf("error acquiring redis lock, falling back to local lock: [%v]", err), log.Data{"lock_key": key})
			return r.fallback.Lock(ctx, key)
		}
		if acquired {
			return func() { r.release(redisKey, token) }, nil
		}

		select {
		case <-time.After(r.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (r *RedisLocker) release(redisKey, token string) {
	if err := releaseScript.Run(context.Background(), r.client, []string{redisKey}, token).Err(); err != nil {
		log.Error(fmt.Errorf("error releasing redis lock: [%v]", err), log.Data{"lock_key": redisKey})
	}
}

// Close closes the redis client.
func (r *RedisLocker) Close() error {
	return r.client.Close()
}
