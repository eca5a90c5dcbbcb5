package dto

import (
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineResponse is the API view of one entry line.
type EntryLineResponse struct {
	Label                 string          `json:"label"`
	Debit                 decimal.Decimal `json:"debit"`
	Credit                decimal.Decimal `json:"credit"`
	ConvertedDebit        decimal.Decimal `json:"convertedDebit"`
	ConvertedCredit       decimal.Decimal `json:"convertedCredit"`
	USDDebit              decimal.Decimal `json:"usdDebit"`
	USDCredit             decimal.Decimal `json:"usdCredit"`
	CurrencyCode          string          `json:"currencyCode"`
	ConvertedCurrencyCode string          `json:"convertedCurrencyCode"`
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	AccountNumber         string          `json:"accountNumber"`
}

// EntryResponse is the API view of an accounting entry with its lines.
type EntryResponse struct {
	EntryID      string              `json:"entryID"`
	DocumentID   string              `json:"documentID"`
	EntryNumber  string              `json:"entryNumber"`
	EntryDate    time.Time           `json:"entryDate"`
	JournalCode  string              `json:"journalCode"`
	JournalLabel string              `json:"journalLabel"`
	Lines        []EntryLineResponse `json:"lines"`
}

// ToEntryResponse converts a domain Entry to its API view.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
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
			AccountNumber:         l.AccountNumber,
		}
	}
	return EntryResponse{
		EntryID:      e.EntryID,
		DocumentID:   e.DocumentID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		JournalCode:  e.JournalCode,
		JournalLabel: e.JournalLabel,
		Lines:        lines,
	}
}
