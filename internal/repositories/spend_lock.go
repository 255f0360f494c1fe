package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-content-studio/internal/logger"
)

// ErrLockTimeout is returned when the lock could not be taken before ctx ended.
var ErrLockTimeout = errors.New("spend lock timeout")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// SpendLockRepository serializes credit spending per user across instances
// using Redis SET NX with an expiry. A held lock is renewed every ttl/3 until
// released, so the expiry only frees locks of crashed holders.
type SpendLockRepository struct {
	client redis.UniversalClient
	ttl    time.Duration // lease length
	retry  time.Duration // pause between acquisition attempts
}

// NewSpendLockRepository creates a lock repository with the given lease
// length. A non-positive ttl falls back to 30s.
func NewSpendLockRepository(client redis.UniversalClient, ttl time.Duration) *SpendLockRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SpendLockRepository{
		client: client,
		ttl:    ttl,
		retry:  25 * time.Millisecond,
	}
}

// Lock blocks until the lock for key is held or ctx ends. The returned func
// stops the renewal and releases the lock only if this caller still owns it.
func (r *SpendLockRepository) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := fmt.Sprintf("spend_lock:%s", key)
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			logger.Log.Errorw("spend lock acquire failed", "key", redisKey, "error", err)
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
			}
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
		case <-time.After(r.retry):
		}
	}

	logger.Log.Debugw("spend lock acquired", "key", redisKey)

	stop := make(chan struct{})
	done := make(chan struct{})
	go r.keepAlive(redisKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done

			// Release must survive a canceled request ctx.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			res, err := releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Int()
			logger.Log.Debugw("spend lock released", "key", redisKey, "result", res, "error", err)
		})
	}, nil
}

// keepAlive extends the lease while this holder owns it.
func (r *SpendLockRepository) keepAlive(redisKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.ttl/3)
		res, err := renewScript.Run(ctx, r.client, []string{redisKey}, token, r.ttl.Milliseconds()).Int()
		cancel()

		if err != nil {
			logger.Log.Errorw("spend lock renewal failed", "key", redisKey, "error", err)
			continue
		}
		if res == 0 {
			logger.Log.Warnw("spend lock lost before release", "key", redisKey)
			return
		}
	}
}
