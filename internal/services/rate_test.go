package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestRateService_GetRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		from, to     string
		date         string
		mockSetup    func() *RateService
		expectedRate float64
		expectedErr  error
	}{
		{
			name: "identity_pair_skips_provider",
			from: "USD", to: "USD",
			mockSetup: func() *RateService {
				// No expectations: neither cache nor provider may be touched.
				return NewRateService(NewMockRateProvider(ctrl), NewMockRateCache(ctrl))
			},
			expectedRate: 1,
		},
		{
			name: "unsupported_source",
			from: "XXX", to: "EUR",
			mockSetup: func() *RateService {
				return NewRateService(NewMockRateProvider(ctrl), NewMockRateCache(ctrl))
			},
			expectedErr: ErrUnsupportedCurrency,
		},
		{
			name: "unsupported_target",
			from: "USD", to: "XXX",
			mockSetup: func() *RateService {
				return NewRateService(NewMockRateProvider(ctrl), NewMockRateCache(ctrl))
			},
			expectedErr: ErrUnsupportedCurrency,
		},
		{
			name: "future_date",
			from: "USD", to: "EUR",
			date: "2027-01-01",
			mockSetup: func() *RateService {
				return NewRateService(NewMockRateProvider(ctrl), NewMockRateCache(ctrl))
			},
			expectedErr: ErrNoRateForDate,
		},
		{
			name: "identity_pair_with_future_date",
			from: "USD", to: "USD",
			date: "2030-01-01",
			mockSetup: func() *RateService {
				return NewRateService(NewMockRateProvider(ctrl), NewMockRateCache(ctrl))
			},
			expectedErr: ErrNoRateForDate,
		},
		{
			name: "identity_pair_with_past_date",
			from: "USD", to: "USD",
			date: "2024-01-15",
			mockSetup: func() *RateService {
				return NewRateService(NewMockRateProvider(ctrl), NewMockRateCache(ctrl))
			},
			expectedRate: 1,
		},
		{
			name: "cache_hit_skips_provider",
			from: "USD", to: "EUR",
			mockSetup: func() *RateService {
				cache := NewMockRateCache(ctrl)
				cache.EXPECT().GetRate(ctx, "USD", "EUR", "").Return(0.9, nil)
				return NewRateService(NewMockRateProvider(ctrl), cache)
			},
			expectedRate: 0.9,
		},
		{
			name: "cache_miss_falls_through_and_writes_back",
			from: "usd", to: "eur",
			mockSetup: func() *RateService {
				cache := NewMockRateCache(ctrl)
				provider := NewMockRateProvider(ctrl)
				cache.EXPECT().GetRate(ctx, "USD", "EUR", "").Return(0.0, errors.New("cache miss"))
				provider.EXPECT().GetRate(ctx, "USD", "EUR", "").Return(0.85, nil)
				cache.EXPECT().SetRate(ctx, "USD", "EUR", "", 0.85).Return(nil)
				return NewRateService(provider, cache)
			},
			expectedRate: 0.85,
		},
		{
			name: "cache_write_failure_is_tolerated",
			from: "USD", to: "EUR",
			mockSetup: func() *RateService {
				cache := NewMockRateCache(ctrl)
				provider := NewMockRateProvider(ctrl)
				cache.EXPECT().GetRate(ctx, "USD", "EUR", "").Return(0.0, errors.New("cache miss"))
				provider.EXPECT().GetRate(ctx, "USD", "EUR", "").Return(0.85, nil)
				cache.EXPECT().SetRate(ctx, "USD", "EUR", "", 0.85).Return(errors.New("redis down"))
				return NewRateService(provider, cache)
			},
			expectedRate: 0.85,
		},
		{
			name: "provider_error_propagates",
			from: "USD", to: "EUR",
			mockSetup: func() *RateService {
				provider := NewMockRateProvider(ctrl)
				provider.EXPECT().GetRate(ctx, "USD", "EUR", "").Return(0.0, ErrProviderUnavailable)
				return NewRateService(provider, nil)
			},
			expectedErr: ErrProviderUnavailable,
		},
		{
			name: "historical_date_passes_through",
			from: "USD", to: "EUR",
			date: "2024-01-15",
			mockSetup: func() *RateService {
				provider := NewMockRateProvider(ctrl)
				provider.EXPECT().GetRate(ctx, "USD", "EUR", "2024-01-15").Return(0.91, nil)
				return NewRateService(provider, nil)
			},
			expectedRate: 0.91,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := tt.mockSetup()
			svc.now = func() time.Time { return now }

			rate, err := svc.GetRate(ctx, tt.from, tt.to, tt.date)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Zero(t, rate)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRate, rate)
		})
	}
}
