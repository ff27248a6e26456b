package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr(), KeyPrefix: "ghscrunch:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := NewClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSinkConnect))
}

func TestClient_Key(t *testing.T) {
	client, _ := newTestClient(t)
	assert.Equal(t, "ghscrunch:lock:output", client.Key("lock", "output"))
	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())
}

func TestRunLock_AcquireRelease(t *testing.T) {
	client, mr := newTestClient(t)
	lock := NewRunLock(client, nil, WithLockTTL(time.Minute))
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "output")
	require.NoError(t, err)
	assert.True(t, mr.Exists("ghscrunch:lock:output"))
	assert.Equal(t, time.Minute, mr.TTL("ghscrunch:lock:output"))

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("ghscrunch:lock:output"))
}

func TestRunLock_Contention(t *testing.T) {
	client, _ := newTestClient(t)
	lock := NewRunLock(client, nil, WithRetryDelay(10*time.Millisecond))

	release, err := lock.Acquire(context.Background(), "output")
	require.NoError(t, err)
	defer func() { _ = release(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = lock.Acquire(ctx, "output")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLockHeld))

	other, err := lock.Acquire(context.Background(), "other-output")
	require.NoError(t, err)
	assert.NoError(t, other(context.Background()))
}

func TestRunLock_WaitsForRelease(t *testing.T) {
	client, _ := newTestClient(t)
	lock := NewRunLock(client, nil, WithRetryDelay(5*time.Millisecond))

	release, err := lock.Acquire(context.Background(), "output")
	require.NoError(t, err)

	acquired := make(chan error, 1)
	go func() {
		second, err := lock.Acquire(context.Background(), "output")
		if err == nil {
			err = second(context.Background())
		}
		acquired <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, release(context.Background()))

	select {
	case err := <-acquired:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("second run never acquired the lock")
	}
}

func TestRunLock_ReleaseAfterExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	lock := NewRunLock(client, nil, WithLockTTL(time.Hour))

	release, err := lock.Acquire(context.Background(), "output")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)
	err = release(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeLockLost))
}
