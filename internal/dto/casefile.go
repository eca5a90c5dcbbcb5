package dto

import (
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
)

// CreateCaseFileRequest defines the data needed to create a new case file.
// The bookkeeping currency is mandatory at creation time.
type CreateCaseFileRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
}

// CaseFileResponse defines the data returned for a case file.
type CaseFileResponse struct {
	CaseFileID   string    `json:"caseFileID"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currencyCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToCaseFileResponse converts a domain CaseFile to its API view.
func ToCaseFileResponse(cf *domain.CaseFile) CaseFileResponse {
	return CaseFileResponse{
		CaseFileID:   cf.CaseFileID,
		Name:         cf.Name,
		CurrencyCode: cf.CurrencyCode,
		CreatedAt:    cf.CreatedAt,
	}
}
