package services

import (
	"context"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
)

// CaseFileSvcFacade exposes case file management for the HTTP boundary.
type CaseFileSvcFacade interface {
	CreateCaseFile(ctx context.Context, req dto.CreateCaseFileRequest, creatorUserID string) (*domain.CaseFile, error)
	GetCaseFileByID(ctx context.Context, caseFileID string) (*domain.CaseFile, error)
}

// DocumentSvcFacade exposes document management for the HTTP boundary.
type DocumentSvcFacade interface {
	RegisterDocument(ctx context.Context, req dto.RegisterDocumentRequest, creatorUserID string) (*domain.Document, error)
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocumentsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Document, error)
	ListEntriesByDocument(ctx context.Context, documentID string) ([]domain.Entry, error)
}
