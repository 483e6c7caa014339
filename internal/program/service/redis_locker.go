package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	defaultLockTTL           = 10 * time.Second
	defaultLockRetryInterval = 50 * time.Millisecond
	lockReleaseTimeout       = 2 * time.Second
)

// deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ Locker = (*RedisLocker)(nil)

// RedisLocker is a Locker shared by several service instances. The lock
// expires after TTL if its holder dies.
type RedisLocker struct {
	client        redis.Cmdable
	keyPrefix     string
	ttl           time.Duration
	retryInterval time.Duration
	// TokenFunc generates the owner token of an acquired lock.
	TokenFunc func() string
}

func NewRedisLocker(client redis.Cmdable, keyPrefix string, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{
		client:        client,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
		retryInterval: defaultLockRetryInterval,
		TokenFunc:     uuid.NewString,
	}
}

func (l *RedisLocker) key(programID int64) string {
	return l.keyPrefix + "lock::program::" + strconv.FormatInt(programID, 10)
}

func (l *RedisLocker) Lock(ctx context.Context, programID int64) (func(), error) {
	key := l.key(programID)
	token := l.TokenFunc()

	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock [%s]: %w", key, err)
		}
		if acquired {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), lockReleaseTimeout)
		defer cancel()
		err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Errorf("release lock [%s]: %s", key, err)
		}
	}, nil
}
