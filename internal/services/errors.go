package services

import "errors"

var (
	// ErrUnsupportedCurrency is returned when a requested currency code is
	// not served by the rate source.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrNoRateForDate is returned when no rate exists for the requested
	// date, for example a future date or a date the provider has no data for.
	ErrNoRateForDate = errors.New("no rate for requested date")

	// ErrProviderUnavailable is returned when the rate source or the
	// language model cannot be reached after the allowed retry.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrModelResponseMalformed is returned when a model tool invocation
	// does not validate against the declared schema.
	ErrModelResponseMalformed = errors.New("model response malformed")
)
