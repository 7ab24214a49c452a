package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRateCacheRepository(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewRateCacheRepository(rdb, 2*time.Second)

	t.Run("Set and Get latest rate", func(t *testing.T) {
		err := repo.SetRate(ctx, "USD", "EUR", "", 0.92)
		assert.NoError(t, err)

		got, err := repo.GetRate(ctx, "USD", "EUR", "")
		assert.NoError(t, err)
		assert.Equal(t, 0.92, got)
	})

	t.Run("Dated and latest entries do not collide", func(t *testing.T) {
		err := repo.SetRate(ctx, "USD", "EUR", "2024-01-15", 0.915)
		assert.NoError(t, err)

		got, err := repo.GetRate(ctx, "USD", "EUR", "2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, 0.915, got)

		latest, err := repo.GetRate(ctx, "USD", "EUR", "")
		assert.NoError(t, err)
		assert.Equal(t, 0.92, latest)
	})

	t.Run("Get missing key returns error", func(t *testing.T) {
		_, err := repo.GetRate(ctx, "ABC", "XYZ", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rate not found")
	})

	t.Run("Cached value expires", func(t *testing.T) {
		err := repo.SetRate(ctx, "GBP", "USD", "", 1.27)
		assert.NoError(t, err)

		// Wait for expiration (2s)
		time.Sleep(3 * time.Second)

		_, err = repo.GetRate(ctx, "GBP", "USD", "")
		assert.Error(t, err)
	})
}
