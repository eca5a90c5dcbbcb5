package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceSummary aggregates a document's invoice totals. HT is the pre-tax
// total, TTC the tax-inclusive total and TVA the tax amount; each is carried in
// the original currency, the case file's bookkeeping currency and USD.
type InvoiceSummary struct {
	DocumentID    string          `json:"documentID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	TaxRate       decimal.Decimal `json:"taxRate"`

	TotalHT  decimal.Decimal `json:"totalHT"`
	TotalTTC decimal.Decimal `json:"totalTTC"`
	TotalTVA decimal.Decimal `json:"totalTVA"`

	ConvertedHT  decimal.Decimal `json:"convertedHT"`
	ConvertedTTC decimal.Decimal `json:"convertedTTC"`
	ConvertedTVA decimal.Decimal `json:"convertedTVA"`

	USDHT  decimal.Decimal `json:"usdHT"`
	USDTTC decimal.Decimal `json:"usdTTC"`
	USDTVA decimal.Decimal `json:"usdTVA"`
}
