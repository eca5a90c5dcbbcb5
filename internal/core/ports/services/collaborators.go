package services

import (
	"context"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
)

// ExtractionClient is the boundary to the external AI extraction service.
// Implementations must surface transport failures as errors; the caller treats
// any error or Success=false envelope as an invalid response.
type ExtractionClient interface {
	// ExtractInvoice extracts accounting data from a standard document,
	// addressed by its stored filename.
	ExtractInvoice(ctx context.Context, filename string) (*dto.ExtractionResponse, error)

	// ExtractBankStatement extracts accounting data from a bank statement,
	// addressed by the document identifier derived from its filename.
	ExtractBankStatement(ctx context.Context, documentID string) (*dto.ExtractionResponse, error)
}

// Notifier publishes fire-and-forget "documents changed" events per case file.
// Implementations log failures and never propagate them.
type Notifier interface {
	DocumentsChanged(ctx context.Context, caseFileID string)
}
