package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxExchangeRateRepository implements the exchange rate ports using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// FindRate retrieves the stored daily rate for a currency on a given date.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, currencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, rate_date, currency_code, rate, base_currency,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date = $2;
	`

	var modelRate models.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, strings.ToUpper(currencyCode), date.Truncate(24*time.Hour)).Scan(
		&modelRate.ExchangeRateID, &modelRate.RateDate, &modelRate.CurrencyCode,
		&modelRate.Rate, &modelRate.BaseCurrency, &modelRate.CreatedAt,
		&modelRate.CreatedBy, &modelRate.LastUpdatedAt, &modelRate.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rate stored for " + strings.ToUpper(currencyCode) + " on " + date.Format("2006-01-02"))
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// SaveExchangeRate inserts or updates the daily rate for a (currency, date) pair.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	currency := strings.ToUpper(rate.CurrencyCode)
	if currency == "" {
		return apperrors.NewValidationError("currency code is required")
	}
	if currency == domain.BaseCurrency && !rate.Rate.Equal(decimal.NewFromInt(1)) {
		return apperrors.NewValidationError("base currency rate must be 1")
	}

	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.CurrencyCode = currency
	modelRate.BaseCurrency = domain.BaseCurrency
	modelRate.RateDate = modelRate.RateDate.Truncate(24 * time.Hour)

	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, rate_date, currency_code, rate, base_currency,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (currency_code, rate_date) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID, modelRate.RateDate, modelRate.CurrencyCode,
		modelRate.Rate, modelRate.BaseCurrency, modelRate.CreatedAt,
		modelRate.CreatedBy, modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}
