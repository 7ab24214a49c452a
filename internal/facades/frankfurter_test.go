package facades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgladkov2017/currency-converter-agent/internal/services"
)

func TestFrankfurterFacade_GetRateLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "EUR", r.URL.Query().Get("to"))
		w.Write([]byte(`{"base":"USD","date":"2026-08-28","rates":{"EUR":0.92}}`))
	}))
	defer srv.Close()

	facade := NewFrankfurterFacade(srv.URL, srv.Client())
	rate, err := facade.GetRate(context.Background(), "USD", "EUR", "")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
}

func TestFrankfurterFacade_GetRateHistorical(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024-01-15", r.URL.Path)
		w.Write([]byte(`{"base":"USD","date":"2024-01-15","rates":{"EUR":0.915}}`))
	}))
	defer srv.Close()

	facade := NewFrankfurterFacade(srv.URL, srv.Client())
	rate, err := facade.GetRate(context.Background(), "USD", "EUR", "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 0.915, rate)
}

func TestFrankfurterFacade_UnknownCurrencyIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	facade := NewFrankfurterFacade(srv.URL, srv.Client())
	_, err := facade.GetRate(context.Background(), "USD", "XXX", "")
	assert.ErrorIs(t, err, services.ErrUnsupportedCurrency)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFrankfurterFacade_DatedNotFoundMeansNoRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	facade := NewFrankfurterFacade(srv.URL, srv.Client())
	_, err := facade.GetRate(context.Background(), "USD", "EUR", "1980-01-01")
	assert.ErrorIs(t, err, services.ErrNoRateForDate)
}

func TestFrankfurterFacade_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"base":"USD","date":"2026-08-28","rates":{"EUR":0.92}}`))
	}))
	defer srv.Close()

	facade := NewFrankfurterFacade(srv.URL, srv.Client())
	rate, err := facade.GetRate(context.Background(), "USD", "EUR", "")
	require.NoError(t, err)
	assert.Equal(t, 0.92, rate)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFrankfurterFacade_GivesUpAfterSecondFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	facade := NewFrankfurterFacade(srv.URL, srv.Client())
	_, err := facade.GetRate(context.Background(), "USD", "EUR", "")
	assert.ErrorIs(t, err, services.ErrProviderUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFrankfurterFacade_ListCurrencies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/currencies", r.URL.Path)
		w.Write([]byte(`{"EUR":"Euro","USD":"United States Dollar"}`))
	}))
	defer srv.Close()

	facade := NewFrankfurterFacade(srv.URL, srv.Client())
	listing, err := facade.ListCurrencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"EUR": "Euro", "USD": "United States Dollar"}, listing)
}

func TestFrankfurterFacade_NetworkErrorUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	facade := NewFrankfurterFacade(srv.URL, nil)
	_, err := facade.GetRate(context.Background(), "USD", "EUR", "")
	assert.ErrorIs(t, err, services.ErrProviderUnavailable)
}
