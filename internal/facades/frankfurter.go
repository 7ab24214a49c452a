package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sgladkov2017/currency-converter-agent/internal/logger"
	"github.com/sgladkov2017/currency-converter-agent/internal/services"
)

const frankfurterRetryDelay = 500 * time.Millisecond

// FrankfurterFacade fetches exchange rates from the Frankfurter HTTP API.
type FrankfurterFacade struct {
	baseURL string
	client  *http.Client
}

// NewFrankfurterFacade creates a new facade for the given API base URL.
func NewFrankfurterFacade(baseURL string, client *http.Client) *FrankfurterFacade {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &FrankfurterFacade{baseURL: baseURL, client: client}
}

type frankfurterRatesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// GetRate fetches the rate from fromCurrency to toCurrency. An empty date
// asks for the latest rate, otherwise date is a YYYY-MM-DD historical lookup.
func (f *FrankfurterFacade) GetRate(ctx context.Context, fromCurrency, toCurrency, date string) (float64, error) {
	path := "latest"
	if date != "" {
		path = date
	}
	endpoint := fmt.Sprintf("%s/%s?from=%s&to=%s",
		f.baseURL, path, url.QueryEscape(fromCurrency), url.QueryEscape(toCurrency))

	// Frankfurter answers 404 both for unknown codes and for dates outside
	// its coverage; the request shape decides which failure it was.
	clientErr := services.ErrUnsupportedCurrency
	if date != "" {
		clientErr = services.ErrNoRateForDate
	}

	var body frankfurterRatesResponse
	if err := f.getJSON(ctx, endpoint, clientErr, &body); err != nil {
		return 0, err
	}

	rate, ok := body.Rates[toCurrency]
	if !ok {
		if date != "" {
			return 0, fmt.Errorf("%w: no %s rate on %s", services.ErrNoRateForDate, toCurrency, date)
		}
		return 0, fmt.Errorf("%w: %s", services.ErrUnsupportedCurrency, toCurrency)
	}
	return rate, nil
}

// ListCurrencies fetches the code-to-name map of supported currencies.
func (f *FrankfurterFacade) ListCurrencies(ctx context.Context) (map[string]string, error) {
	listing := make(map[string]string)
	if err := f.getJSON(ctx, f.baseURL+"/currencies", services.ErrProviderUnavailable, &listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// getJSON performs the request, retrying once on network errors and 5xx
// responses. Client errors are mapped to sentinel errors and never retried.
func (f *FrankfurterFacade) getJSON(ctx context.Context, endpoint string, clientErr error, out any) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", services.ErrProviderUnavailable, ctx.Err())
			case <-time.After(frankfurterRetryDelay):
			}
		}

		retry, err := f.doOnce(ctx, endpoint, clientErr, out)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		logger.Log.Warnw("rate request failed, retrying", "url", endpoint, "error", err)
		lastErr = err
	}
	return lastErr
}

func (f *FrankfurterFacade) doOnce(ctx context.Context, endpoint string, clientErr error, out any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("%w: %v", services.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("%w: decoding response: %v", services.ErrProviderUnavailable, err)
		}
		return false, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return false, fmt.Errorf("%w: status %d", clientErr, resp.StatusCode)
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("%w: status %d", services.ErrProviderUnavailable, resp.StatusCode)
	default:
		return false, fmt.Errorf("%w: status %d", services.ErrProviderUnavailable, resp.StatusCode)
	}
}
