package mapping

import (
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		RateDate:       d.RateDate,
		CurrencyCode:   d.CurrencyCode,
		Rate:           d.Rate,
		BaseCurrency:   d.BaseCurrency,
		AuditFields:    toModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		RateDate:       m.RateDate,
		CurrencyCode:   m.CurrencyCode,
		Rate:           m.Rate,
		BaseCurrency:   m.BaseCurrency,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}
