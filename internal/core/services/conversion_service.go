package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
	"github.com/shopspring/decimal"
)

// minEffectiveDate is the floor of the effective-date clamp: no rate lookup
// ever uses a date before it.
var minEffectiveDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fallbackRates substitutes for missing stored daily rates, expressed as
// currency units per one unit of the base currency.
var fallbackRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("1.1"),
	"MAD": decimal.RequireFromString("10.0"),
	"GBP": decimal.RequireFromString("1.3"),
	"TND": decimal.RequireFromString("3.1"),
}

// emergencyPairRates is the last resort before defaulting to 1.0, for the few
// pairs the triangulation cannot recover when a source rate degenerates.
var emergencyPairRates = map[string]decimal.Decimal{
	"EUR/MAD": decimal.RequireFromString("9.09"),
	"USD/MAD": decimal.RequireFromString("10.0"),
	"EUR/TND": decimal.RequireFromString("2.82"),
}

// conversionService computes cross-currency rates from stored daily rates with
// deterministic fallback rules.
type conversionService struct {
	rateRepo portsrepo.ExchangeRateReader
}

// NewConversionService creates a new currency conversion engine.
func NewConversionService(rateRepo portsrepo.ExchangeRateReader) portssvc.ConversionSvcFacade {
	return &conversionService{rateRepo: rateRepo}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

// EffectiveDate applies the clamping rule: dates before 2024-01-01 clamp to
// 2024-01-01, dates on or after today clamp to yesterday, anything in between
// is used as-is.
func (s *conversionService) EffectiveDate(invoiceDate, today time.Time) time.Time {
	day := truncateToDay(invoiceDate)
	todayDay := truncateToDay(today)

	if day.Before(minEffectiveDate) {
		return minEffectiveDate
	}
	if !day.Before(todayDay) {
		return todayDay.AddDate(0, 0, -1)
	}
	return day
}

// RateToBase resolves how many units of the currency one unit of the base buys
// on the given date. Stored daily rates win; a miss substitutes the fixed
// fallback table, and unknown codes default to 1.
func (s *conversionService) RateToBase(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == domain.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindRate(ctx, code, truncateToDay(date))
	if err == nil {
		return rate.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		middleware.GetLoggerFromCtx(ctx).Warn("Rate lookup failed, using fallback table",
			slog.String("currency", code), slog.String("error", err.Error()))
	}

	if fallback, ok := fallbackRates[code]; ok {
		return fallback, nil
	}
	return decimal.NewFromInt(1), nil
}

// CrossRate computes the source->target rate for the given date. The identity
// pair is exactly 1; otherwise the rate triangulates through the base currency.
func (s *conversionService) CrossRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (decimal.Decimal, error) {
	source := strings.ToUpper(strings.TrimSpace(sourceCurrency))
	target := strings.ToUpper(strings.TrimSpace(targetCurrency))

	if source == target {
		return decimal.NewFromInt(1), nil
	}

	targetRate, err := s.RateToBase(ctx, target, date)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to resolve rate for %s: %w", target, err)
	}
	if source == domain.BaseCurrency {
		return targetRate, nil
	}

	sourceRate, err := s.RateToBase(ctx, source, date)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to resolve rate for %s: %w", source, err)
	}
	if sourceRate.IsZero() || targetRate.IsZero() {
		return s.emergencyRate(ctx, source, target), nil
	}
	if target == domain.BaseCurrency {
		return decimal.NewFromInt(1).Div(sourceRate), nil
	}
	return targetRate.Div(sourceRate), nil
}

// emergencyRate consults the hardcoded pairwise table, defaulting to 1.
func (s *conversionService) emergencyRate(ctx context.Context, source, target string) decimal.Decimal {
	if rate, ok := emergencyPairRates[source+"/"+target]; ok {
		return rate
	}
	if inverse, ok := emergencyPairRates[target+"/"+source]; ok && !inverse.IsZero() {
		return decimal.NewFromInt(1).Div(inverse)
	}
	middleware.GetLoggerFromCtx(ctx).Warn("No rate resolvable for currency pair, defaulting to 1.0",
		slog.String("source", source), slog.String("target", target))
	return decimal.NewFromInt(1)
}

// Resolve runs the full conversion for a document: effective date, cross rate
// and the source currency's USD leg.
func (s *conversionService) Resolve(ctx context.Context, sourceCurrency, targetCurrency string, invoiceDate time.Time) (*dto.ConversionResult, error) {
	source := strings.ToUpper(strings.TrimSpace(sourceCurrency))
	target := strings.ToUpper(strings.TrimSpace(targetCurrency))
	effective := s.EffectiveDate(invoiceDate, time.Now().UTC())

	rate, err := s.CrossRate(ctx, source, target, effective)
	if err != nil {
		return nil, err
	}

	sourceUSD, err := s.RateToBase(ctx, source, effective)
	if err != nil {
		return nil, err
	}

	return &dto.ConversionResult{
		SourceCurrency: source,
		TargetCurrency: target,
		Rate:           rate,
		EffectiveDate:  effective,
		SourceUSDRate:  sourceUSD,
	}, nil
}

// ConvertAmount applies a rate to an amount, rounded to 2 decimals. An exact
// rate of 1 leaves the amount untouched so identity conversions never drift.
func ConvertAmount(amount, rate decimal.Decimal) decimal.Decimal {
	if rate.Equal(decimal.NewFromInt(1)) {
		return amount
	}
	return amount.Mul(rate).Round(2)
}

// USDAmount computes the USD-equivalent of an amount given the source
// currency's units-per-USD rate: identity for USD sources, division otherwise.
func USDAmount(amount, sourceUSDRate decimal.Decimal) decimal.Decimal {
	if sourceUSDRate.Equal(decimal.NewFromInt(1)) {
		return amount
	}
	if sourceUSDRate.IsZero() {
		return amount
	}
	return amount.Div(sourceUSDRate).Round(2)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
