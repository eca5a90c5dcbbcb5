package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceSummary is the invoice_summaries table row, one per processed document.
type InvoiceSummary struct {
	DocumentID    string          `db:"document_id"`
	InvoiceNumber string          `db:"invoice_number"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	TotalHT       decimal.Decimal `db:"total_ht"`
	TotalTTC      decimal.Decimal `db:"total_ttc"`
	TotalTVA      decimal.Decimal `db:"total_tva"`
	ConvertedHT   decimal.Decimal `db:"converted_ht"`
	ConvertedTTC  decimal.Decimal `db:"converted_ttc"`
	ConvertedTVA  decimal.Decimal `db:"converted_tva"`
	USDHT         decimal.Decimal `db:"usd_ht"`
	USDTTC        decimal.Decimal `db:"usd_ttc"`
	USDTVA        decimal.Decimal `db:"usd_tva"`
}
