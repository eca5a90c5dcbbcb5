package dto

import (
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterDocumentRequest registers an uploaded file for ingestion.
type RegisterDocumentRequest struct {
	CaseFileID       string `json:"caseFileID" binding:"required"`
	Filename         string `json:"filename" binding:"required"`
	OriginalFilename string `json:"originalFilename" binding:"required"`
	Category         string `json:"category" binding:"omitempty,oneof=STANDARD BANK_STATEMENT"`
	IsForced         bool   `json:"isForced"`
}

// DocumentResponse is the API view of a document.
type DocumentResponse struct {
	DocumentID            string          `json:"documentID"`
	CaseFileID            string          `json:"caseFileID"`
	Filename              string          `json:"filename"`
	OriginalFilename      string          `json:"originalFilename"`
	Category              string          `json:"category"`
	Status                string          `json:"status"`
	UploadedAt            time.Time       `json:"uploadedAt"`
	SummaryAmount         decimal.Decimal `json:"summaryAmount"`
	AIAmount              decimal.Decimal `json:"aiAmount"`
	AICurrencyCode        string          `json:"aiCurrencyCode,omitempty"`
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	ConvertedCurrencyCode string          `json:"convertedCurrencyCode,omitempty"`
	RateEffectiveDate     *time.Time      `json:"rateEffectiveDate,omitempty"`
	IsDuplicate           bool            `json:"isDuplicate"`
	IsForced              bool            `json:"isForced"`
	OriginalDocumentID    *string         `json:"originalDocumentID,omitempty"`
	RejectionReason       string          `json:"rejectionReason,omitempty"`
}

// ToDocumentResponse converts a domain Document to its API view.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:            d.DocumentID,
		CaseFileID:            d.CaseFileID,
		Filename:              d.Filename,
		OriginalFilename:      d.OriginalFilename,
		Category:              string(d.Category),
		Status:                string(d.Status),
		UploadedAt:            d.UploadedAt,
		SummaryAmount:         d.SummaryAmount,
		AIAmount:              d.AIAmount,
		AICurrencyCode:        d.AICurrencyCode,
		ExchangeRate:          d.ExchangeRate,
		ConvertedCurrencyCode: d.ConvertedCurrencyCode,
		RateEffectiveDate:     d.RateEffectiveDate,
		IsDuplicate:           d.IsDuplicate,
		IsForced:              d.IsForced,
		OriginalDocumentID:    d.OriginalDocumentID,
		RejectionReason:       d.RejectionReason,
	}
}
