package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtractionResponse is the envelope returned by the extraction collaborator.
// Payload is a text-encoded JSON document; any transport failure or
// Success=false must be treated as an invalid response by the caller.
type ExtractionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Payload string `json:"payload"`
}

// ExtractionEntry is one raw extracted accounting row as it appears on the
// wire. Debit and Credit are numeric-as-string fields; a decimal comma is
// tolerated.
type ExtractionEntry struct {
	Date          string `json:"date"`
	JournalCode   string `json:"journalCode"`
	JournalLabel  string `json:"journalLabel"`
	InvoiceNumber string `json:"invoiceNumber"`
	AccountNumber string `json:"accountNumber"`
	AccountLabel  string `json:"accountLabel"`
	EntryLabel    string `json:"entryLabel"`
	Currency      string `json:"currency"`
	Debit         string `json:"debit"`
	Credit        string `json:"credit"`
}

// ExtractionInvoice is the optional invoice block of the extraction payload.
// All fields are lenient; missing totals are derived by the entry builder.
type ExtractionInvoice struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	TaxRate       string `json:"taxRate"`
	TotalHT       string `json:"totalHT"`
	TotalTTC      string `json:"totalTTC"`
	TotalTVA      string `json:"totalTVA"`
}

// ExtractedRow is a validated, typed accounting row ready for entry building.
type ExtractedRow struct {
	Date          time.Time
	JournalCode   string
	JournalLabel  string
	InvoiceNumber string
	AccountNumber string
	AccountLabel  string
	EntryLabel    string
	Currency      string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// ExtractedInvoice is the typed invoice block, present only when the payload
// carried one.
type ExtractedInvoice struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	TaxRate       decimal.Decimal
	TotalHT       decimal.Decimal
	TotalTTC      decimal.Decimal
	TotalTVA      decimal.Decimal
	HasHT         bool
	HasTVA        bool
}

// ExtractedDocument is the full validated extraction result for one document.
type ExtractedDocument struct {
	Rows    []ExtractedRow
	Invoice *ExtractedInvoice
}
