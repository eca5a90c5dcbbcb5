package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portsrepo "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/middleware"
	"github.com/shopspring/decimal"
)

// ProcessingConfig bounds the per-document retry loop.
type ProcessingConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// processorVariant holds the category-specific steps of the pipeline: how the
// extraction collaborator is addressed and how the raw payload is normalized
// before validation. Everything else is shared.
type processorVariant struct {
	extract   func(ctx context.Context, doc domain.Document) (*dto.ExtractionResponse, error)
	normalize func(payload string) string
}

// processingService runs the full per-document pipeline: extract, validate,
// convert, build entries, detect content duplicates and persist.
type processingService struct {
	docRepo      portsrepo.DocumentRepositoryFacade
	caseFileRepo portsrepo.CaseFileReader
	entryRepo    portsrepo.EntryRepositoryFacade
	validator    *ResponseValidator
	conversion   portssvc.ConversionSvcFacade
	duplicates   portssvc.DuplicateSvcFacade
	builder      portssvc.EntryBuilderSvcFacade
	notifier     portssvc.Notifier
	cfg          ProcessingConfig
	variants     map[VariantKind]processorVariant
}

// NewProcessingService wires the pipeline and its variant table.
func NewProcessingService(
	docRepo portsrepo.DocumentRepositoryFacade,
	caseFileRepo portsrepo.CaseFileReader,
	entryRepo portsrepo.EntryRepositoryFacade,
	extraction portssvc.ExtractionClient,
	validator *ResponseValidator,
	conversion portssvc.ConversionSvcFacade,
	duplicates portssvc.DuplicateSvcFacade,
	builder portssvc.EntryBuilderSvcFacade,
	notifier portssvc.Notifier,
	cfg ProcessingConfig,
) portssvc.ProcessingSvcFacade {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	s := &processingService{
		docRepo:      docRepo,
		caseFileRepo: caseFileRepo,
		entryRepo:    entryRepo,
		validator:    validator,
		conversion:   conversion,
		duplicates:   duplicates,
		builder:      builder,
		notifier:     notifier,
		cfg:          cfg,
	}
	s.variants = map[VariantKind]processorVariant{
		VariantStandard: {
			extract: func(ctx context.Context, doc domain.Document) (*dto.ExtractionResponse, error) {
				return extraction.ExtractInvoice(ctx, doc.Filename)
			},
			normalize: func(payload string) string { return payload },
		},
		VariantBank: {
			extract: func(ctx context.Context, doc domain.Document) (*dto.ExtractionResponse, error) {
				return extraction.ExtractBankStatement(ctx, bankDocumentID(doc.Filename))
			},
			normalize: NormalizeBankPayload,
		},
	}
	return s
}

var _ portssvc.ProcessingSvcFacade = (*processingService)(nil)

// bankDocumentID derives the extraction identifier of a bank statement from
// its stored filename, the stem without the extension.
func bankDocumentID(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// ProcessDocument runs the pipeline for one document with a bounded retry
// loop. Transient failures retry up to the configured maximum before the
// document is rejected; a missing case file currency rejects immediately.
func (s *processingService) ProcessDocument(ctx context.Context, documentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("document_id", documentID))

	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to load document %s: %w", documentID, err)
	}
	if doc.Status.IsTerminal() {
		logger.Info("Skipping document in terminal status", slog.String("status", string(doc.Status)))
		return nil
	}
	if doc.IsDuplicate && !doc.IsForced {
		logger.Info("Skipping document already classified duplicate")
		return nil
	}

	if err := s.docRepo.UpdateDocumentStatus(ctx, doc.DocumentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to move document %s to processing: %w", doc.DocumentID, err)
	}

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		err := s.runPipeline(ctx, *doc)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrMissingCurrency) {
			logger.Error("Fatal processing error, rejecting without retry", slog.String("error", err.Error()))
			return s.reject(ctx, doc.DocumentID, err.Error())
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = err
		logger.Warn("Processing attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", s.cfg.MaxRetries),
			slog.String("error", err.Error()))

		if attempt < s.cfg.MaxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.RetryDelay):
			}
		}
	}

	reason := fmt.Sprintf("failed after %d attempts: %s", s.cfg.MaxRetries, lastErr.Error())
	return s.reject(ctx, doc.DocumentID, reason)
}

func (s *processingService) reject(ctx context.Context, documentID, reason string) error {
	if err := s.docRepo.UpdateDocumentStatus(ctx, documentID, domain.StatusRejected, reason); err != nil {
		return fmt.Errorf("failed to reject document %s: %w", documentID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Document rejected",
		slog.String("document_id", documentID), slog.String("reason", reason))
	return nil
}

// runPipeline executes one full attempt. Any returned error other than a
// missing currency is considered transient and feeds the retry decision.
func (s *processingService) runPipeline(ctx context.Context, doc domain.Document) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("document_id", doc.DocumentID))
	variant := s.variants[VariantFor(doc.Category)]

	resp, err := variant.extract(ctx, doc)
	if err != nil {
		return fmt.Errorf("extraction call failed: %w", err)
	}
	if resp != nil {
		resp.Payload = variant.normalize(resp.Payload)
	}

	extracted, err := s.validator.Validate(resp)
	if err != nil {
		return fmt.Errorf("extraction response invalid: %w", err)
	}

	caseFile, err := s.caseFileRepo.FindCaseFileByID(ctx, doc.CaseFileID)
	if err != nil {
		return fmt.Errorf("failed to load case file %s: %w", doc.CaseFileID, err)
	}
	if strings.TrimSpace(caseFile.CurrencyCode) == "" {
		return fmt.Errorf("%w: case file %s has no bookkeeping currency", apperrors.ErrMissingCurrency, caseFile.CaseFileID)
	}

	source := NormalizeCurrencyToken(extracted.Rows[0].Currency)
	if source == "" {
		source = strings.ToUpper(caseFile.CurrencyCode)
		logger.Info("Extraction carried no usable currency, adopting case file currency",
			slog.String("currency", source))
	}

	refDate := extracted.Rows[0].Date
	if extracted.Invoice != nil {
		refDate = extracted.Invoice.InvoiceDate
	}

	conv, err := s.conversion.Resolve(ctx, source, caseFile.CurrencyCode, refDate)
	if err != nil {
		return fmt.Errorf("failed to resolve conversion: %w", err)
	}

	entries, summary, err := s.builder.BuildEntries(ctx, doc, *caseFile, extracted, conv)
	if err != nil {
		return fmt.Errorf("failed to build entries: %w", err)
	}

	doc.AIAmount = representativeAmount(entries)
	doc.AICurrencyCode = conv.SourceCurrency
	doc.ExchangeRate = conv.Rate
	doc.ConvertedCurrencyCode = conv.TargetCurrency
	effective := conv.EffectiveDate
	doc.RateEffectiveDate = &effective
	doc.SummaryAmount = doc.AIAmount
	if summary != nil {
		doc.SummaryAmount = summary.TotalTTC
	}
	if err := s.docRepo.UpdateDocumentConversion(ctx, doc); err != nil {
		return fmt.Errorf("failed to persist conversion result: %w", err)
	}

	original, err := s.duplicates.FindFunctionalDuplicate(ctx, doc, summary, entries)
	if err != nil {
		return fmt.Errorf("failed to run duplicate check: %w", err)
	}
	if original != nil {
		if err := s.duplicates.ResolveDuplicate(ctx, doc, *original); err != nil {
			return err
		}
		s.notifier.DocumentsChanged(ctx, doc.CaseFileID)
		return nil
	}

	for _, entry := range entries {
		if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
			return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
		}
	}
	if summary != nil {
		if err := s.docRepo.SaveInvoiceSummary(ctx, *summary); err != nil {
			return fmt.Errorf("failed to save invoice summary: %w", err)
		}
	}
	if err := s.docRepo.UpdateDocumentStatus(ctx, doc.DocumentID, domain.StatusProcessed, ""); err != nil {
		return fmt.Errorf("failed to mark document processed: %w", err)
	}

	logger.Info("Document processed",
		slog.String("currency", conv.SourceCurrency),
		slog.String("rate", conv.Rate.String()),
		slog.Int("entries", len(entries)))
	s.notifier.DocumentsChanged(ctx, doc.CaseFileID)
	return nil
}

// representativeAmount is the largest single debit or credit across all built
// entries.
func representativeAmount(entries []domain.Entry) decimal.Decimal {
	max := decimal.Zero
	for _, entry := range entries {
		if amount := entry.RepresentativeAmount(); amount.GreaterThan(max) {
			max = amount
		}
	}
	return max
}
