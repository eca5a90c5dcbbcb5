package repositories

import (
	"context"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
)

// CaseFileReader defines read operations for case files.
type CaseFileReader interface {
	// FindCaseFileByID retrieves a case file by its ID.
	FindCaseFileByID(ctx context.Context, caseFileID string) (*domain.CaseFile, error)
}

// CaseFileWriter defines write operations for case files.
type CaseFileWriter interface {
	// SaveCaseFile persists a new case file.
	SaveCaseFile(ctx context.Context, caseFile domain.CaseFile) error
}

// CaseFileRepositoryFacade combines all case file repository interfaces.
type CaseFileRepositoryFacade interface {
	CaseFileReader
	CaseFileWriter
}
