package models

import "time"

// ConversionEvent is published to Kafka for each successfully resolved
// conversion.
type ConversionEvent struct {
	EventID         string    `json:"event_id"`
	Amount          float64   `json:"amount"`
	FromCurrency    string    `json:"from_currency"`
	ToCurrency      string    `json:"to_currency"`
	Rate            float64   `json:"rate"`
	ConvertedAmount float64   `json:"converted_amount"`
	RateDate        string    `json:"rate_date,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
