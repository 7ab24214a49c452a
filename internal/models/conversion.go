package models

// ConversionRequest is a single structured conversion extracted from user
// text. Immutable once constructed. FromCurrency == ToCurrency is valid and
// resolves to rate 1.
type ConversionRequest struct {
	Amount       float64 // positive
	FromCurrency string  // 3-letter code, upper case
	ToCurrency   string  // 3-letter code, upper case
	Date         string  // optional YYYY-MM-DD; empty means latest rate
}

// ConversionResult pairs a request with its outcome. Exactly one of
// ConvertedAmount/Err carries meaning: Err == nil means the conversion
// succeeded with the given rate.
type ConversionResult struct {
	Request         ConversionRequest
	ConvertedAmount float64
	Rate            float64
	Err             error
}

// ConversionBatch holds the results for all requests of one user turn,
// in extraction order. The order drives response numbering.
type ConversionBatch []ConversionResult
