package ratelimit_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/platform/config"
	"github.com/SscSPs/waste_approval_app/internal/platform/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter_MemoryStore(t *testing.T) {
	lim, closeFn, err := ratelimit.NewLimiter(context.Background(), &config.Config{RateLimit: "2-M"}, slog.Default())
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, int64(2), lim.Rate.Limit)
	assert.Equal(t, time.Minute, lim.Rate.Period)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		res, err := lim.Get(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, res.Reached)
	}
	res, err := lim.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Reached)

	other, err := lim.Get(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, other.Reached)
}

func TestNewLimiter_InvalidRate(t *testing.T) {
	_, _, err := ratelimit.NewLimiter(context.Background(), &config.Config{RateLimit: "lots"}, slog.Default())
	assert.Error(t, err)
}
