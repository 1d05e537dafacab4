package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/contractpay-backend/internal/clients/redis"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type entry struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

func TestCacheRoundTripAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redis.NewCacheFromClient(logger.Nop(), goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "test")
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	var got entry
	hit, err := c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "k", entry{Name: "programmer", Total: "150"}, time.Minute))
	require.True(t, mr.Exists("test:k"))

	hit, err = c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, entry{Name: "programmer", Total: "150"}, got)

	mr.FastForward(2 * time.Minute)
	hit, err = c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheReportsCorruptValues(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("test:bad", "{not json"))
	c := redis.NewCacheFromClient(logger.Nop(), goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "test")

	var got entry
	_, err := c.GetJSON(context.Background(), "bad", &got)
	require.Error(t, err)
}

func TestNewCacheRequiresAddress(t *testing.T) {
	_, err := redis.NewCache(logger.Nop(), "", "x")
	require.Error(t, err)
}
