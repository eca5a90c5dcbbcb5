package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one accounting journal entry produced from a document.
type Entry struct {
	EntryID      string      `json:"entryID"`
	DocumentID   string      `json:"documentID"`
	EntryNumber  string      `json:"entryNumber"` // unique per case file
	EntryDate    time.Time   `json:"entryDate"`
	JournalCode  string      `json:"journalCode"`
	JournalLabel string      `json:"journalLabel"`
	Lines        []EntryLine `json:"lines"`
	AuditFields
}

// EntryLine carries one extracted row in original, converted and USD form.
type EntryLine struct {
	LineID                string          `json:"lineID"`
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
	RateDate              time.Time       `json:"rateDate"`
	AccountID             string          `json:"accountID"`
	AccountNumber         string          `json:"accountNumber"`
}

// RepresentativeAmount is the largest single debit or credit among the lines.
// It is the business heuristic used for the document's summary amount and for
// content-based duplicate matching.
func (e Entry) RepresentativeAmount() decimal.Decimal {
	max := decimal.Zero
	for _, line := range e.Lines {
		if line.Debit.GreaterThan(max) {
			max = line.Debit
		}
		if line.Credit.GreaterThan(max) {
			max = line.Credit
		}
	}
	return max
}
