package health

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	checker := NewRedisChecker(client)
	assert.Equal(t, "redis", checker.Name())
	assert.True(t, checker.Optional())
	require.NoError(t, checker.Check(context.Background()))

	mr.Close()
	err := checker.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestRedisChecker_NilClient(t *testing.T) {
	err := NewRedisChecker(nil).Check(context.Background())
	assert.EqualError(t, err, "redis client not configured")
}

func TestEngineChecker(t *testing.T) {
	checker := NewEngineChecker()
	assert.Equal(t, "engine", checker.Name())
	assert.NoError(t, checker.Check(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, checker.Check(ctx), context.Canceled)
}

func TestCheckers_WithManager(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	manager := NewManager(quietLogger())
	manager.Register(NewEngineChecker())
	manager.Register(NewRedisChecker(client))

	results := manager.RunChecks(context.Background())
	assert.Equal(t, StatusOK, results["engine"].Status)
	assert.Equal(t, StatusOK, results["redis"].Status)

	mr.Close()
	manager.RunChecks(context.Background())
	assert.Equal(t, StatusDegraded, manager.GetOverallStatus())
}
