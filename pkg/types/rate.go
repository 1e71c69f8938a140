package types

import "time"

// Rate is an exchange rate for one currency, expressed as the amount of
// that currency equal to one unit of the base currency. Rates are supplied
// by an external source; the core only multiplies by them.
type Rate struct {
	// RateID is a UUID v7, generated on creation.
	RateID string

	// Currency is the catalog unit ID of the currency.
	Currency string

	// Value is the rate as decimal text, kept as text so no precision is
	// lost between the source and the converter.
	Value string

	// FetchedAt is when the rate was obtained from its source.
	FetchedAt time.Time
}
