package redis_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge/internal/domain"
	bridgeredis "bridge/internal/repository/redis"
)

// memoryHook answers GET and SET from a map so no server is needed.
type memoryHook struct {
	values map[string]string
}

func (h *memoryHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial not expected")
	}
}

func (h *memoryHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := h.values[args[1].(string)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
			return nil
		case *redis.StatusCmd:
			if cmd.Name() == "set" {
				h.values[args[1].(string)] = args[2].(string)
				c.SetVal("OK")
				return nil
			}
		}
		return next(ctx, cmd)
	}
}

func (h *memoryHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newHookedStore(t *testing.T) (*bridgeredis.Store, *memoryHook) {
	t.Helper()
	hook := &memoryHook{values: map[string]string{}}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	rdb.AddHook(hook)
	t.Cleanup(func() { _ = rdb.Close() })
	return bridgeredis.NewStore(rdb), hook
}

func TestStore_GetMissingIsNotFound(t *testing.T) {
	store, _ := newHookedStore(t)

	_, err := store.Get(context.Background(), "bridge_default_lang")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SetOverwritesUnderPrefix(t *testing.T) {
	store, hook := newHookedStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "bridge_default_lang", "es"))
	require.NoError(t, store.Set(ctx, "bridge_default_lang", "ko"))

	v, err := store.Get(ctx, "bridge_default_lang")
	require.NoError(t, err)
	assert.Equal(t, "ko", v)
	assert.Equal(t, map[string]string{"bridge:pref:bridge_default_lang": "ko"}, hook.values)
}

func TestStore_UnreachableIsWrapped(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := bridgeredis.NewStore(rdb)
	defer store.Close()
	ctx := context.Background()

	_, err := store.Get(ctx, "bridge_default_lang")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "redis.Get")

	err = store.Set(ctx, "bridge_default_lang", "es")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.Set")

	assert.Error(t, store.Ping(ctx))
}
