package repositories

import (
	"context"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for accounting entries.
type EntryReader interface {
	// FindEntriesByDocumentID returns all entries of a document with their lines.
	FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.Entry, error)

	// FindDocumentByEntryMatch returns the ID of the earliest-uploaded other
	// document in the case file owning an entry with the given date whose
	// representative amount lies within tolerance of amount. A zero tolerance
	// requires an exact match.
	FindDocumentByEntryMatch(ctx context.Context, caseFileID string, entryDate time.Time, amount, tolerance decimal.Decimal, excludeDocumentID string) (string, error)
}

// EntryWriter defines write operations for accounting entries.
type EntryWriter interface {
	// SaveEntry persists an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.Entry) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
