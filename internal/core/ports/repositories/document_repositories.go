package repositories

import (
	"context"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentReader defines read operations for documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its ID.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListPendingDocuments returns up to limit documents in the given status,
	// oldest upload first, excluding documents already classified duplicate.
	ListPendingDocuments(ctx context.Context, status domain.DocumentStatus, limit int) ([]domain.Document, error)

	// ListDocumentsByCaseFile returns the documents of a case file, newest first.
	ListDocumentsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Document, error)

	// FindByOriginalFilename returns the earliest-uploaded document in the case
	// file with this exact original filename, excluding the given document.
	FindByOriginalFilename(ctx context.Context, caseFileID, originalFilename, excludeDocumentID string) (*domain.Document, error)

	// FindByFilenameStem returns the earliest-uploaded document in the case file
	// whose normalized filename stem matches, excluding the given document.
	FindByFilenameStem(ctx context.Context, caseFileID, stem, excludeDocumentID string) (*domain.Document, error)

	// FindBySummaryMatch returns the earliest-uploaded document in the case file
	// whose invoice summary has this exact date and TTC total.
	FindBySummaryMatch(ctx context.Context, caseFileID string, invoiceDate time.Time, totalTTC decimal.Decimal, excludeDocumentID string) (*domain.Document, error)

	// FindInvoiceSummaryByDocumentID retrieves a document's invoice summary.
	FindInvoiceSummaryByDocumentID(ctx context.Context, documentID string) (*domain.InvoiceSummary, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	// SaveDocument persists a new document.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// UpdateDocumentStatus moves a document to the given status. The reason is
	// stored for REJECTED documents and ignored otherwise.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, reason string) error

	// UpdateDocumentConversion persists the AI/converted fields and summary
	// amount after a successful extraction.
	UpdateDocumentConversion(ctx context.Context, doc domain.Document) error

	// MarkDocumentDuplicate flags the document as a duplicate of the original
	// and moves it to the DUPLICATE terminal status. The original is untouched.
	MarkDocumentDuplicate(ctx context.Context, documentID, originalDocumentID string) error

	// SaveInvoiceSummary persists a document's invoice summary.
	SaveInvoiceSummary(ctx context.Context, summary domain.InvoiceSummary) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
