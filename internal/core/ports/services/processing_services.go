package services

import (
	"context"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade exposes the currency conversion engine.
type ConversionSvcFacade interface {
	// EffectiveDate applies the clamping rule to an invoice date.
	EffectiveDate(invoiceDate, today time.Time) time.Time

	// RateToBase returns how many units of currency one unit of the base buys
	// on the given date, consulting stored daily rates first and the fixed
	// fallback table on a miss.
	RateToBase(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error)

	// CrossRate computes the source->target rate for the given date,
	// triangulating through the base currency when neither side is the base.
	// The identity pair always yields exactly 1.
	CrossRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (decimal.Decimal, error)

	// Resolve runs the full conversion for a document amount: effective date,
	// cross rate, and the USD leg.
	Resolve(ctx context.Context, sourceCurrency, targetCurrency string, invoiceDate time.Time) (*dto.ConversionResult, error)
}

// DuplicateSvcFacade exposes duplicate detection and resolution.
type DuplicateSvcFacade interface {
	// FindTechnicalDuplicate runs the pre-extraction filename-based check and
	// returns the original document when the given one is a re-submission.
	FindTechnicalDuplicate(ctx context.Context, doc domain.Document) (*domain.Document, error)

	// FindFunctionalDuplicate runs the post-extraction content-based check.
	// Forced documents are never matched.
	FindFunctionalDuplicate(ctx context.Context, doc domain.Document, summary *domain.InvoiceSummary, entries []domain.Entry) (*domain.Document, error)

	// ResolveDuplicate marks doc as a duplicate of original and moves it to the
	// DUPLICATE terminal status. The original document is never mutated.
	ResolveDuplicate(ctx context.Context, doc domain.Document, original domain.Document) error
}

// EntryBuilderSvcFacade transforms validated extraction output into entries.
type EntryBuilderSvcFacade interface {
	// BuildEntries produces the document's accounting entry and invoice summary
	// from validated rows, resolving accounts against the case file's chart.
	BuildEntries(ctx context.Context, doc domain.Document, caseFile domain.CaseFile, extracted *dto.ExtractedDocument, conv *dto.ConversionResult) ([]domain.Entry, *domain.InvoiceSummary, error)
}

// ProcessingSvcFacade drives the full per-document pipeline.
type ProcessingSvcFacade interface {
	// ProcessDocument runs validate -> extract -> convert -> build -> persist
	// for one document, retrying transient extraction failures up to the
	// configured maximum before rejecting.
	ProcessDocument(ctx context.Context, documentID string) error
}
