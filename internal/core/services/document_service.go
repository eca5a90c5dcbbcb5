package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
)

// documentService implements document registration and read access. Actual
// processing happens asynchronously through the orchestrator.
type documentService struct {
	docRepo      portsrepo.DocumentRepositoryFacade
	caseFileRepo portsrepo.CaseFileReader
	entryRepo    portsrepo.EntryReader
}

// NewDocumentService creates a new document management service.
func NewDocumentService(docRepo portsrepo.DocumentRepositoryFacade, caseFileRepo portsrepo.CaseFileReader, entryRepo portsrepo.EntryReader) portssvc.DocumentSvcFacade {
	return &documentService{docRepo: docRepo, caseFileRepo: caseFileRepo, entryRepo: entryRepo}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// RegisterDocument records an uploaded file in UPLOADED status so the next
// orchestrator tick can pick it up.
func (s *documentService) RegisterDocument(ctx context.Context, req dto.RegisterDocumentRequest, creatorUserID string) (*domain.Document, error) {
	if _, err := s.caseFileRepo.FindCaseFileByID(ctx, req.CaseFileID); err != nil {
		return nil, fmt.Errorf("failed to resolve case file %s: %w", req.CaseFileID, err)
	}

	category := domain.DocumentCategory(req.Category)
	if category == "" {
		category = domain.CategoryStandard
	}

	doc := domain.Document{
		DocumentID:       uuid.NewString(),
		CaseFileID:       req.CaseFileID,
		Filename:         req.Filename,
		OriginalFilename: req.OriginalFilename,
		Category:         category,
		Status:           domain.StatusUploaded,
		UploadedAt:       time.Now().UTC(),
		IsForced:         req.IsForced,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().UTC(),
			CreatedBy:     creatorUserID,
			LastUpdatedAt: time.Now().UTC(),
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Document registered",
		slog.String("document_id", doc.DocumentID),
		slog.String("case_file_id", doc.CaseFileID),
		slog.String("category", string(doc.Category)),
		slog.Bool("is_forced", doc.IsForced))
	return &doc, nil
}

// GetDocumentByID retrieves a document by its ID.
func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocumentsByCaseFile returns the documents of a case file, newest first.
func (s *documentService) ListDocumentsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Document, error) {
	docs, err := s.docRepo.ListDocumentsByCaseFile(ctx, caseFileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for case file %s: %w", caseFileID, err)
	}
	return docs, nil
}

// ListEntriesByDocument returns the accounting entries of a document.
func (s *documentService) ListEntriesByDocument(ctx context.Context, documentID string) ([]domain.Entry, error) {
	entries, err := s.entryRepo.FindEntriesByDocumentID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for document %s: %w", documentID, err)
	}
	return entries, nil
}
