package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionResult is the outcome of resolving a document's currency
// conversion: the source->target rate, the clamped effective date used for the
// lookup, and the source currency's USD leg for USD-equivalent amounts.
type ConversionResult struct {
	SourceCurrency string
	TargetCurrency string
	Rate           decimal.Decimal
	EffectiveDate  time.Time
	// SourceUSDRate is how many units of the source currency one USD buys on
	// the effective date; exactly 1 when the source is USD.
	SourceUSDRate decimal.Decimal
}
