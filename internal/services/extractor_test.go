package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name     string
		text     string
		expected []models.ConversionRequest
	}{
		{
			name: "simple pair",
			text: "100 USD to EUR",
			expected: []models.ConversionRequest{
				{Amount: 100, FromCurrency: "USD", ToCurrency: "EUR"},
			},
		},
		{
			name: "surrounding prose",
			text: "Hey, could you please convert 250.75 usd into gbp for my trip?",
			expected: []models.ConversionRequest{
				{Amount: 250.75, FromCurrency: "USD", ToCurrency: "GBP"},
			},
		},
		{
			name: "two phrases joined by and, left to right order",
			text: "100 USD to EUR and 200 GBP to JPY",
			expected: []models.ConversionRequest{
				{Amount: 100, FromCurrency: "USD", ToCurrency: "EUR"},
				{Amount: 200, FromCurrency: "GBP", ToCurrency: "JPY"},
			},
		},
		{
			name: "multi target list expands in list order",
			text: "1000 INR to USD, EUR, and GBP",
			expected: []models.ConversionRequest{
				{Amount: 1000, FromCurrency: "INR", ToCurrency: "USD"},
				{Amount: 1000, FromCurrency: "INR", ToCurrency: "EUR"},
				{Amount: 1000, FromCurrency: "INR", ToCurrency: "GBP"},
			},
		},
		{
			name: "duplicates are preserved",
			text: "10 USD to EUR and 10 USD to EUR",
			expected: []models.ConversionRequest{
				{Amount: 10, FromCurrency: "USD", ToCurrency: "EUR"},
				{Amount: 10, FromCurrency: "USD", ToCurrency: "EUR"},
			},
		},
		{
			name: "thousands separators tolerated",
			text: "convert 1,234,567.89 USD to EUR",
			expected: []models.ConversionRequest{
				{Amount: 1234567.89, FromCurrency: "USD", ToCurrency: "EUR"},
			},
		},
		{
			name: "currency names resolve through aliases",
			text: "100 dollars to euros",
			expected: []models.ConversionRequest{
				{Amount: 100, FromCurrency: "USD", ToCurrency: "EUR"},
			},
		},
		{
			name: "symbol prefixed amount",
			text: "$100 to EUR",
			expected: []models.ConversionRequest{
				{Amount: 100, FromCurrency: "USD", ToCurrency: "EUR"},
			},
		},
		{
			name: "unknown code shape is kept for the rate layer to judge",
			text: "100 USD to XXX",
			expected: []models.ConversionRequest{
				{Amount: 100, FromCurrency: "USD", ToCurrency: "XXX"},
			},
		},
		{
			name: "unresolvable target token is dropped, not the clause",
			text: "100 USD to EUR, thanks",
			expected: []models.ConversionRequest{
				{Amount: 100, FromCurrency: "USD", ToCurrency: "EUR"},
			},
		},
		{
			name:     "unresolvable source drops the clause",
			text:     "100 smackers to EUR",
			expected: nil,
		},
		{
			name: "historical date",
			text: "100 usd to eur on 2024-01-15",
			expected: []models.ConversionRequest{
				{Amount: 100, FromCurrency: "USD", ToCurrency: "EUR", Date: "2024-01-15"},
			},
		},
		{
			name:     "impossible calendar date drops the clause",
			text:     "100 usd to eur on 2024-13-40",
			expected: nil,
		},
		{
			name:     "no pattern at all",
			text:     "What currencies do you support?",
			expected: nil,
		},
		{
			name:     "zero amount is skipped",
			text:     "0 USD to EUR",
			expected: nil,
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	e := NewExtractor()
	text := "convert 100 USD to EUR and 1,000 INR to USD, EUR and GBP"

	first := e.Extract(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
	assert.Len(t, first, 4)
}
