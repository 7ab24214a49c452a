package facades

import (
	"context"
	"fmt"

	pb "github.com/sbilibin2017/proto-exchange/exchange"

	"github.com/sgladkov2017/currency-converter-agent/internal/currencies"
	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
	"github.com/sgladkov2017/currency-converter-agent/internal/services"
)

// ExchangeRatesGRPCFacade resolves rates against a gRPC exchanger service.
// The exchanger serves current rates only, so dated lookups fail fast.
type ExchangeRatesGRPCFacade struct {
	client pb.ExchangeServiceClient
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient) *ExchangeRatesGRPCFacade {
	return &ExchangeRatesGRPCFacade{client: client}
}

// GetRate fetches the current rate between two currencies.
func (f *ExchangeRatesGRPCFacade) GetRate(ctx context.Context, fromCurrency, toCurrency, date string) (float64, error) {
	if date != "" {
		return 0, fmt.Errorf("%w: exchanger keeps no history", services.ErrNoRateForDate)
	}

	req := &pb.CurrencyRequest{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
	}

	resp, err := f.client.GetExchangeRateForCurrency(ctx, req)
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rate via gRPC, retrying",
			"from", fromCurrency, "to", toCurrency, "error", err)
		resp, err = f.client.GetExchangeRateForCurrency(ctx, req)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", services.ErrProviderUnavailable, err)
	}

	if resp.Rate <= 0 {
		return 0, fmt.Errorf("%w: %s/%s", services.ErrUnsupportedCurrency, fromCurrency, toCurrency)
	}
	return float64(resp.Rate), nil
}

// ListCurrencies derives the supported set from the exchanger's rate table.
// The exchanger reports codes only; display names come from the static table
// where known.
func (f *ExchangeRatesGRPCFacade) ListCurrencies(ctx context.Context) (map[string]string, error) {
	resp, err := f.client.GetExchangeRates(ctx, &pb.Empty{})
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates via gRPC", "error", err)
		return nil, fmt.Errorf("%w: %v", services.ErrProviderUnavailable, err)
	}

	listing := make(map[string]string, len(resp.Rates))
	for code := range resp.Rates {
		if info, ok := currencies.Lookup(code); ok {
			listing[code] = info.Name
		} else {
			listing[code] = code
		}
	}
	return listing, nil
}
