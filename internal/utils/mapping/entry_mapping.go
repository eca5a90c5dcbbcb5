package mapping

import (
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/models"
)

// ToModelEntry converts a domain Entry to its row form, lines excluded.
func ToModelEntry(e domain.Entry) models.Entry {
	return models.Entry{
		EntryID:      e.EntryID,
		DocumentID:   e.DocumentID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		JournalCode:  e.JournalCode,
		JournalLabel: e.JournalLabel,
		AuditFields:  toModelAuditFields(e.AuditFields),
	}
}

// ToModelEntryLine converts a domain EntryLine to its row form.
func ToModelEntryLine(entryID string, l domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:                l.LineID,
		EntryID:               entryID,
		Label:                 l.Label,
		Debit:                 l.Debit,
		Credit:                l.Credit,
		ConvertedDebit:        l.ConvertedDebit,
		ConvertedCredit:       l.ConvertedCredit,
		USDDebit:              l.USDDebit,
		USDCredit:             l.USDCredit,
		CurrencyCode:          l.CurrencyCode,
		ConvertedCurrencyCode: l.ConvertedCurrencyCode,
		ExchangeRate:          l.ExchangeRate,
		RateDate:              l.RateDate,
		AccountID:             l.AccountID,
		AccountNumber:         l.AccountNumber,
	}
}

// ToDomainEntry converts an entry row plus its line rows to a domain Entry.
func ToDomainEntry(m models.Entry, lines []models.EntryLine) domain.Entry {
	domainLines := make([]domain.EntryLine, len(lines))
	for i, l := range lines {
		domainLines[i] = domain.EntryLine{
			LineID:                l.LineID,
			Label:                 l.Label,
			Debit:                 l.Debit,
			Credit:                l.Credit,
			ConvertedDebit:        l.ConvertedDebit,
			ConvertedCredit:       l.ConvertedCredit,
			USDDebit:              l.USDDebit,
			USDCredit:             l.USDCredit,
			CurrencyCode:          l.CurrencyCode,
			ConvertedCurrencyCode: l.ConvertedCurrencyCode,
			ExchangeRate:          l.ExchangeRate,
			RateDate:              l.RateDate,
			AccountID:             l.AccountID,
			AccountNumber:         l.AccountNumber,
		}
	}
	return domain.Entry{
		EntryID:      m.EntryID,
		DocumentID:   m.DocumentID,
		EntryNumber:  m.EntryNumber,
		EntryDate:    m.EntryDate,
		JournalCode:  m.JournalCode,
		JournalLabel: m.JournalLabel,
		Lines:        domainLines,
		AuditFields:  toDomainAuditFields(m.AuditFields),
	}
}
