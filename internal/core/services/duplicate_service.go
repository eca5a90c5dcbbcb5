package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/utils/filenames"
	"github.com/shopspring/decimal"
)

// functionalTolerance is the amount tolerance of the relaxed per-entry
// duplicate pass.
var functionalTolerance = decimal.RequireFromString("0.01")

// duplicateService detects re-submissions of the same document, by filename
// before extraction and by content after.
type duplicateService struct {
	docRepo   portsrepo.DocumentRepositoryFacade
	entryRepo portsrepo.EntryReader
}

// NewDuplicateService creates a new duplicate detection service.
func NewDuplicateService(docRepo portsrepo.DocumentRepositoryFacade, entryRepo portsrepo.EntryReader) portssvc.DuplicateSvcFacade {
	return &duplicateService{docRepo: docRepo, entryRepo: entryRepo}
}

var _ portssvc.DuplicateSvcFacade = (*duplicateService)(nil)

// FindTechnicalDuplicate checks whether the document is a filename-level
// re-submission within its case file: exact original filename first, then the
// normalized stem.
func (s *duplicateService) FindTechnicalDuplicate(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	original, err := s.docRepo.FindByOriginalFilename(ctx, doc.CaseFileID, doc.OriginalFilename, doc.DocumentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check filename duplicate: %w", err)
	}
	if original != nil {
		return original, nil
	}

	stem := filenames.NormalizeStem(doc.OriginalFilename)
	if stem == "" {
		return nil, nil
	}
	original, err = s.docRepo.FindByFilenameStem(ctx, doc.CaseFileID, stem, doc.DocumentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check filename stem duplicate: %w", err)
	}
	return original, nil
}

// FindFunctionalDuplicate checks whether the document's extracted content
// matches an earlier document: invoice summary date and TTC when a summary
// exists, per-entry representative amounts otherwise, exact before tolerant.
// Forced documents bypass the check entirely.
func (s *duplicateService) FindFunctionalDuplicate(ctx context.Context, doc domain.Document, summary *domain.InvoiceSummary, entries []domain.Entry) (*domain.Document, error) {
	if doc.IsForced {
		middleware.GetLoggerFromCtx(ctx).Info("Skipping functional duplicate check for forced document",
			slog.String("document_id", doc.DocumentID))
		return nil, nil
	}

	if summary != nil {
		original, err := s.docRepo.FindBySummaryMatch(ctx, doc.CaseFileID, summary.InvoiceDate, summary.TotalTTC, doc.DocumentID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check summary duplicate: %w", err)
		}
		return original, nil
	}

	for _, entry := range entries {
		amount := entry.RepresentativeAmount()
		if amount.IsZero() {
			continue
		}

		originalID, err := s.entryRepo.FindDocumentByEntryMatch(ctx, doc.CaseFileID, entry.EntryDate, amount, decimal.Zero, doc.DocumentID)
		if errors.Is(err, apperrors.ErrNotFound) {
			originalID, err = s.entryRepo.FindDocumentByEntryMatch(ctx, doc.CaseFileID, entry.EntryDate, amount, functionalTolerance, doc.DocumentID)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check entry duplicate: %w", err)
		}

		original, err := s.docRepo.FindDocumentByID(ctx, originalID)
		if err != nil {
			return nil, fmt.Errorf("failed to load duplicate original %s: %w", originalID, err)
		}
		return original, nil
	}
	return nil, nil
}

// ResolveDuplicate classifies doc as a duplicate of original. When the match
// itself is already a duplicate, the link follows through to its root original
// so duplicate chains stay one level deep.
func (s *duplicateService) ResolveDuplicate(ctx context.Context, doc domain.Document, original domain.Document) error {
	originalID := original.DocumentID
	if original.IsDuplicate && original.OriginalDocumentID != nil {
		originalID = *original.OriginalDocumentID
	}

	if err := s.docRepo.MarkDocumentDuplicate(ctx, doc.DocumentID, originalID); err != nil {
		return fmt.Errorf("failed to mark document %s as duplicate: %w", doc.DocumentID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Document classified as duplicate",
		slog.String("document_id", doc.DocumentID),
		slog.String("original_document_id", originalID))
	return nil
}
