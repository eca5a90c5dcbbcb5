package repositories

import (
	"context"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
)

// ExchangeRateReader defines read operations for stored daily rates.
type ExchangeRateReader interface {
	// FindRate retrieves the stored rate for a currency on a given date,
	// expressed against the base currency. Returns apperrors.ErrNotFound when
	// no rate is stored for that (currency, date) pair.
	FindRate(ctx context.Context, currencyCode string, date time.Time) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for stored daily rates.
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a daily rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
