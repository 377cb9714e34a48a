package redis

import (
	"context"
	"net"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrNilConfig)
	assert.ErrorIs(t, (&Config{}).Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, (&Config{
		Standalone: &NodeConfig{Host: "localhost", Port: 6379},
		Cluster:    &ClusterConfig{Addrs: []string{"a:1"}},
	}).Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, (&Config{Cluster: &ClusterConfig{}}).Validate(), ErrInvalidConfig)
	assert.NoError(t, (&Config{Standalone: &NodeConfig{Host: "localhost", Port: 6379}}).Validate())
	assert.Equal(t, "localhost:6379", (&NodeConfig{Host: "localhost", Port: 6379}).Addr())
}

// 需要真实 Redis：PROGRESSION_TEST_REDIS_ADDR=localhost:6379
func newTestClient(t *testing.T) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	addr := os.Getenv("PROGRESSION_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PROGRESSION_TEST_REDIS_ADDR not set")
	}
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	c, err := NewClient(context.Background(), &Config{Standalone: &NodeConfig{Host: host, Port: port}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLock(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := "test:lock:" + strconv.FormatInt(time.Now().UnixNano(), 10)

	first := NewLock(c, key, 5*time.Second)
	second := NewLock(c, key, 5*time.Second)

	ok, err := first.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, second.LockWithRetry(ctx, 10*time.Millisecond, 2), ErrLockFailed)
	assert.ErrorIs(t, second.Unlock(ctx), ErrLockNotHeld)

	require.NoError(t, first.Refresh(ctx))
	ttl, err := c.TTL(ctx, key)
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, first.Unlock(ctx))
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNil)
}

func TestWithLockRetrySerializes(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	key := "test:withlock:" + strconv.FormatInt(time.Now().UnixNano(), 10)

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.WithLockRetry(ctx, key, time.Second, 5*time.Millisecond, 400, func() error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			}, func(err error) { t.Errorf("unlock: %v", err) })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}
