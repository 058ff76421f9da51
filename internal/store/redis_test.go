package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjovignot/orderNow/internal/domain"
)

func newRedisKV(t *testing.T) *RedisKV {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisKV(client)
}

func TestRedisKV_RoundTrip(t *testing.T) {
	kv := newRedisKV(t)

	_, ok, err := kv.Load(context.Background(), CollectionProducts)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Save(context.Background(), CollectionProducts, []byte(`[{"id":"p1"}]`)))

	data, ok, err := kv.Load(context.Background(), CollectionProducts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(data))
}

func TestRedisKV_Reset(t *testing.T) {
	kv := newRedisKV(t)

	require.NoError(t, kv.Save(context.Background(), CollectionOrders, []byte(`[]`)))
	require.NoError(t, kv.Save(context.Background(), CollectionSuppliers, []byte(`[]`)))
	require.NoError(t, kv.Reset(context.Background(), Collections...))

	for _, collection := range Collections {
		_, ok, err := kv.Load(context.Background(), collection)
		require.NoError(t, err)
		assert.False(t, ok, collection)
	}
}

func TestStore_OverRedis(t *testing.T) {
	st := New(newRedisKV(t), discardLogger())

	st.SaveOrders(context.Background(), []domain.Order{{ID: "o1", Status: domain.OrderStatusSent}})

	orders := st.Orders(context.Background())
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusSent, orders[0].Status)
}
