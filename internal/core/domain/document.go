package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus tracks a document through the ingestion lifecycle.
// Transitions only move forward: UPLOADED -> PROCESSING -> {PROCESSED, REJECTED, DUPLICATE}.
// PROCESSED, REJECTED and DUPLICATE are terminal.
type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "UPLOADED"
	StatusProcessing DocumentStatus = "PROCESSING"
	StatusProcessed  DocumentStatus = "PROCESSED"
	StatusRejected   DocumentStatus = "REJECTED"
	StatusDuplicate  DocumentStatus = "DUPLICATE"
)

// IsTerminal reports whether a document in this status may no longer be processed.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusProcessed || s == StatusRejected || s == StatusDuplicate
}

// DocumentCategory selects the processing variant for an uploaded document.
type DocumentCategory string

const (
	CategoryStandard      DocumentCategory = "STANDARD"
	CategoryBankStatement DocumentCategory = "BANK_STATEMENT"
)

// Document is an uploaded file being ingested into accounting entries.
type Document struct {
	DocumentID       string           `json:"documentID"`
	CaseFileID       string           `json:"caseFileID"`
	Filename         string           `json:"filename"`
	OriginalFilename string           `json:"originalFilename"`
	Category         DocumentCategory `json:"category"`
	Status           DocumentStatus   `json:"status"`
	UploadedAt       time.Time        `json:"uploadedAt"`

	// Extraction and conversion results, populated once processing succeeds.
	SummaryAmount         decimal.Decimal `json:"summaryAmount"`
	AIAmount              decimal.Decimal `json:"aiAmount"`
	AICurrencyCode        string          `json:"aiCurrencyCode"`
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	ConvertedCurrencyCode string          `json:"convertedCurrencyCode"`
	RateEffectiveDate     *time.Time      `json:"rateEffectiveDate,omitempty"`

	// Duplicate classification. OriginalDocumentID is set only when IsDuplicate
	// is true; an original never references its duplicates.
	IsDuplicate        bool    `json:"isDuplicate"`
	IsForced           bool    `json:"isForced"`
	OriginalDocumentID *string `json:"originalDocumentID,omitempty"`

	// RejectionReason is the user-visible failure surface for REJECTED documents.
	RejectionReason string `json:"rejectionReason,omitempty"`

	AuditFields
}
