package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

// LockOption customises a RunLock.
type LockOption func(*lockConfig)

// WithLockTTL sets the key expiry. The watchdog refreshes it at a third of
// the TTL while the lock is held.
func WithLockTTL(ttl time.Duration) LockOption {
	return func(c *lockConfig) { c.ttl = ttl }
}

// WithRetryDelay sets the pause between acquisition attempts.
func WithRetryDelay(delay time.Duration) LockOption {
	return func(c *lockConfig) { c.retryDelay = delay }
}

type lockConfig struct {
	ttl        time.Duration
	retryDelay time.Duration
}

// RunLock is a Redis mutex keyed by output destination. Acquire blocks until
// the lock is free or ctx ends.
type RunLock struct {
	client *Client
	config lockConfig
	logger logging.Logger
}

// NewRunLock builds a RunLock on client.
func NewRunLock(client *Client, log logging.Logger, opts ...LockOption) *RunLock {
	cfg := lockConfig{ttl: 10 * time.Minute, retryDelay: 500 * time.Millisecond}
	for _, opt := range opts {
		opt(&cfg)
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &RunLock{client: client, config: cfg, logger: log.Named("lock")}
}

var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

var extendScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)

// Acquire takes the lock named name. The returned function releases it; it
// reports CodeLockLost when the key expired or changed owner meanwhile.
func (l *RunLock) Acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	key := l.client.Key("lock", name)
	owner := uuid.New().String()
	rdb := l.client.GetUnderlyingClient()

	for {
		ok, err := rdb.SetNX(ctx, key, owner, l.config.ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeLockHeld, "failed to set lock").WithDetailf("key=%s", key)
		}
		if ok {
			break
		}
		l.logger.Debug("lock busy, retrying", logging.String("key", key))
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), errors.CodeLockHeld, "lock is held").WithDetailf("key=%s", key)
		case <-time.After(l.config.retryDelay):
		}
	}
	l.logger.Info("lock acquired", logging.String("key", key), logging.Duration("ttl", l.config.ttl))

	wdCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go l.watchdog(wdCtx, key, owner, done)

	return func(ctx context.Context) error {
		cancel()
		<-done
		res, err := unlockScript.Run(ctx, rdb, []string{key}, owner).Int64()
		if err != nil {
			return errors.Wrap(err, errors.CodeLockLost, "failed to release lock").WithDetailf("key=%s", key)
		}
		if res == 0 {
			return errors.New(errors.CodeLockLost, "lock not held by this run").WithDetailf("key=%s", key)
		}
		l.logger.Info("lock released", logging.String("key", key))
		return nil
	}, nil
}

func (l *RunLock) watchdog(ctx context.Context, key, owner string, done chan struct{}) {
	defer close(done)
	interval := l.config.ttl / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	rdb := l.client.GetUnderlyingClient()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := extendScript.Run(ctx, rdb, []string{key}, owner, l.config.ttl.Milliseconds()).Int64()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Watchdog failed to extend lock", logging.String("key", key), logging.Err(err))
				return
			}
			if ok != 1 {
				l.logger.Warn("Watchdog lost lock", logging.String("key", key))
				return
			}
		}
	}
}
