package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the exchange_rates table row: one daily rate per currency,
// expressed against the fixed base currency.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	RateDate       time.Time       `db:"rate_date"`
	CurrencyCode   string          `db:"currency_code"`
	Rate           decimal.Decimal `db:"rate"`
	BaseCurrency   string          `db:"base_currency"`
	AuditFields
}
