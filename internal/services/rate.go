package services

import (
	"context"
	"strings"
	"time"

	"github.com/sgladkov2017/currency-converter-agent/internal/currencies"
	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
)

// RateProvider fetches exchange rates from an external rate source.
type RateProvider interface {
	GetRate(ctx context.Context, fromCurrency, toCurrency, date string) (float64, error)
}

// RateCache reads and writes short-lived cached rates.
type RateCache interface {
	GetRate(ctx context.Context, fromCurrency, toCurrency, date string) (float64, error)
	SetRate(ctx context.Context, fromCurrency, toCurrency, date string, rate float64) error
}

// RateService resolves a single currency pair to a rate: cache first, then
// the provider, with a best-effort cache write-back. The cache is optional.
type RateService struct {
	provider RateProvider
	cache    RateCache
	now      func() time.Time
}

// NewRateService creates a new service instance. cache may be nil.
func NewRateService(provider RateProvider, cache RateCache) *RateService {
	return &RateService{
		provider: provider,
		cache:    cache,
		now:      time.Now,
	}
}

// GetRate returns the exchange rate for one unit of fromCurrency expressed
// in toCurrency, optionally as of a YYYY-MM-DD date. The date is validated
// even for identity pairs; a valid identity lookup resolves to 1 without
// touching the provider.
func (svc *RateService) GetRate(ctx context.Context, fromCurrency, toCurrency, date string) (float64, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	if !currencies.IsSupported(from) {
		return 0, ErrUnsupportedCurrency
	}
	if !currencies.IsSupported(to) {
		return 0, ErrUnsupportedCurrency
	}
	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil || d.After(svc.now()) {
			return 0, ErrNoRateForDate
		}
	}
	if from == to {
		return 1, nil
	}

	if svc.cache != nil {
		if rate, err := svc.cache.GetRate(ctx, from, to, date); err == nil {
			return rate, nil
		}
	}

	rate, err := svc.provider.GetRate(ctx, from, to, date)
	if err != nil {
		logger.Log.Errorw("rate lookup failed",
			"from", from, "to", to, "date", date, "error", err)
		return 0, err
	}

	if svc.cache != nil {
		if err := svc.cache.SetRate(ctx, from, to, date, rate); err != nil {
			logger.Log.Warnw("rate cache write failed",
				"from", from, "to", to, "date", date, "error", err)
		}
	}

	return rate, nil
}
