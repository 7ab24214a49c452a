package facades

import (
	"context"
	"errors"
	"testing"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"

	"github.com/sgladkov2017/currency-converter-agent/internal/services"
)

// --- Fake gRPC client ---
type fakeExchangeClient struct {
	rates           map[string]float32
	rateForCurrency float32
	err             error
	failures        int // fail this many calls, then succeed
	calls           int
}

func (f *fakeExchangeClient) GetExchangeRates(ctx context.Context, _ *pb.Empty, opts ...grpc.CallOption) (*pb.ExchangeRatesResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pb.ExchangeRatesResponse{Rates: f.rates}, nil
}

func (f *fakeExchangeClient) GetExchangeRateForCurrency(ctx context.Context, req *pb.CurrencyRequest, opts ...grpc.CallOption) (*pb.ExchangeRateResponse, error) {
	f.calls++
	if f.err != nil && f.calls <= f.failures {
		return nil, f.err
	}
	if f.err != nil && f.failures == 0 {
		return nil, f.err
	}
	return &pb.ExchangeRateResponse{FromCurrency: req.FromCurrency, ToCurrency: req.ToCurrency, Rate: f.rateForCurrency}, nil
}

// --- Tests ---
func TestExchangeGRPC_GetRate(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{rateForCurrency: 0.92})

	rate, err := facade.GetRate(context.Background(), "USD", "EUR", "")
	assert.NoError(t, err)
	assert.InDelta(t, 0.92, rate, 1e-6)
}

func TestExchangeGRPC_GetRate_RetriesOnce(t *testing.T) {
	client := &fakeExchangeClient{rateForCurrency: 0.92, err: errors.New("unavailable"), failures: 1}
	facade := NewExchangeRatesGRPCFacade(client)

	rate, err := facade.GetRate(context.Background(), "USD", "EUR", "")
	assert.NoError(t, err)
	assert.InDelta(t, 0.92, rate, 1e-6)
	assert.Equal(t, 2, client.calls)
}

func TestExchangeGRPC_GetRate_Error(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{err: errors.New("grpc error")})

	rate, err := facade.GetRate(context.Background(), "USD", "EUR", "")
	assert.ErrorIs(t, err, services.ErrProviderUnavailable)
	assert.Zero(t, rate)
}

func TestExchangeGRPC_GetRate_DatedLookupUnsupported(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{rateForCurrency: 0.92})

	_, err := facade.GetRate(context.Background(), "USD", "EUR", "2024-01-15")
	assert.ErrorIs(t, err, services.ErrNoRateForDate)
}

func TestExchangeGRPC_GetRate_ZeroRateMeansUnknownPair(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{rateForCurrency: 0})

	_, err := facade.GetRate(context.Background(), "USD", "XXX", "")
	assert.ErrorIs(t, err, services.ErrUnsupportedCurrency)
}

func TestExchangeGRPC_ListCurrencies(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{
		rates: map[string]float32{"USD": 1.0, "EUR": 0.9, "ZZZ": 4.2},
	})

	listing, err := facade.ListCurrencies(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "United States Dollar", listing["USD"])
	assert.Equal(t, "Euro", listing["EUR"])
	assert.Equal(t, "ZZZ", listing["ZZZ"]) // unknown codes keep the code as name
}

func TestExchangeGRPC_ListCurrencies_Error(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{err: errors.New("grpc error")})

	listing, err := facade.ListCurrencies(context.Background())
	assert.ErrorIs(t, err, services.ErrProviderUnavailable)
	assert.Nil(t, listing)
}
