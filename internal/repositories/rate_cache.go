package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
)

// RateCacheRepository provides short-lived cached exchange rates using Redis.
type RateCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached rates
}

// NewRateCacheRepository creates a new repository instance with the given TTL.
func NewRateCacheRepository(client *redis.Client, expiration time.Duration) *RateCacheRepository {
	return &RateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func rateKey(fromCurrency, toCurrency, date string) string {
	if date == "" {
		date = "latest"
	}
	return fmt.Sprintf("rate:%s:%s:%s", fromCurrency, toCurrency, date)
}

// GetRate fetches a cached exchange rate between two currencies.
func (r *RateCacheRepository) GetRate(ctx context.Context, fromCurrency, toCurrency, date string) (float64, error) {
	key := rateKey(fromCurrency, toCurrency, date)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("rate not found in cache for %s->%s", fromCurrency, toCurrency)
		}
		logger.Log.Warnw("rate cache read failed", "key", key, "error", err)
		return 0, err
	}

	rate, err := strconv.ParseFloat(val, 64)
	if err != nil {
		logger.Log.Warnw("malformed cached rate", "key", key, "value", val, "error", err)
		return 0, err
	}

	return rate, nil
}

// SetRate caches an exchange rate in Redis with expiration.
func (r *RateCacheRepository) SetRate(ctx context.Context, fromCurrency, toCurrency, date string, rate float64) error {
	key := rateKey(fromCurrency, toCurrency, date)
	err := r.client.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), r.exp).Err()
	if err != nil {
		logger.Log.Warnw("rate cache write failed", "key", key, "error", err)
	}
	return err
}
