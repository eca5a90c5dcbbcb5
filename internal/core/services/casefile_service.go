package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
)

// caseFileService implements case file management.
type caseFileService struct {
	caseFileRepo portsrepo.CaseFileRepositoryFacade
}

// NewCaseFileService creates a new case file service.
func NewCaseFileService(caseFileRepo portsrepo.CaseFileRepositoryFacade) portssvc.CaseFileSvcFacade {
	return &caseFileService{caseFileRepo: caseFileRepo}
}

var _ portssvc.CaseFileSvcFacade = (*caseFileService)(nil)

// CreateCaseFile creates a case file. The bookkeeping currency is mandatory
// and normalized to uppercase.
func (s *caseFileService) CreateCaseFile(ctx context.Context, req dto.CreateCaseFileRequest, creatorUserID string) (*domain.CaseFile, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		return nil, apperrors.NewValidationError("currency code is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("case file name is required")
	}

	caseFile := domain.CaseFile{
		CaseFileID:   uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		CurrencyCode: currency,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().UTC(),
			CreatedBy:     creatorUserID,
			LastUpdatedAt: time.Now().UTC(),
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.caseFileRepo.SaveCaseFile(ctx, caseFile); err != nil {
		return nil, fmt.Errorf("failed to save case file: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Case file created",
		slog.String("case_file_id", caseFile.CaseFileID),
		slog.String("currency", caseFile.CurrencyCode))
	return &caseFile, nil
}

// GetCaseFileByID retrieves a case file by its ID.
func (s *caseFileService) GetCaseFileByID(ctx context.Context, caseFileID string) (*domain.CaseFile, error) {
	caseFile, err := s.caseFileRepo.FindCaseFileByID(ctx, caseFileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get case file %s: %w", caseFileID, err)
	}
	return caseFile, nil
}
