package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the documents table row.
type Document struct {
	DocumentID            string          `db:"document_id"`
	CaseFileID            string          `db:"case_file_id"`
	Filename              string          `db:"filename"`
	OriginalFilename      string          `db:"original_filename"`
	Category              string          `db:"category"`
	Status                string          `db:"status"`
	UploadedAt            time.Time       `db:"uploaded_at"`
	SummaryAmount         decimal.Decimal `db:"summary_amount"`
	AIAmount              decimal.Decimal `db:"ai_amount"`
	AICurrencyCode        string          `db:"ai_currency_code"`
	ExchangeRate          decimal.Decimal `db:"exchange_rate"`
	ConvertedCurrencyCode string          `db:"converted_currency_code"`
	RateEffectiveDate     *time.Time      `db:"rate_effective_date"`
	IsDuplicate           bool            `db:"is_duplicate"`
	IsForced              bool            `db:"is_forced"`
	OriginalDocumentID    *string         `db:"original_document_id"`
	RejectionReason       string          `db:"rejection_reason"`
	AuditFields
}
