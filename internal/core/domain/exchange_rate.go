package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency all stored daily rates are expressed against.
const BaseCurrency = "USD"

// ExchangeRate is a stored daily rate for one currency relative to the base
// currency: how many units of CurrencyCode one unit of the base buys on RateDate.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	RateDate       time.Time       `json:"rateDate"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	BaseCurrency   string          `json:"baseCurrency"`
	AuditFields
}
