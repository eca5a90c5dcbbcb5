package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the entries table row.
type Entry struct {
	EntryID      string    `db:"entry_id"`
	DocumentID   string    `db:"document_id"`
	EntryNumber  string    `db:"entry_number"`
	EntryDate    time.Time `db:"entry_date"`
	JournalCode  string    `db:"journal_code"`
	JournalLabel string    `db:"journal_label"`
	AuditFields
}

// EntryLine is the entry_lines table row.
type EntryLine struct {
	LineID                string          `db:"line_id"`
	EntryID               string          `db:"entry_id"`
	Label                 string          `db:"label"`
	Debit                 decimal.Decimal `db:"debit"`
	Credit                decimal.Decimal `db:"credit"`
	ConvertedDebit        decimal.Decimal `db:"converted_debit"`
	ConvertedCredit       decimal.Decimal `db:"converted_credit"`
	USDDebit              decimal.Decimal `db:"usd_debit"`
	USDCredit             decimal.Decimal `db:"usd_credit"`
	CurrencyCode          string          `db:"currency_code"`
	ConvertedCurrencyCode string          `db:"converted_currency_code"`
	ExchangeRate          decimal.Decimal `db:"exchange_rate"`
	RateDate              time.Time       `db:"rate_date"`
	AccountID             string          `db:"account_id"`
	AccountNumber         string          `db:"account_number"`
}
