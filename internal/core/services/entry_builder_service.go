package services

import (
	"context"
	"errors"
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
	"github.com/shopspring/decimal"
)

const accountCreateAttempts = 3

// balanceTolerance bounds the allowed drift between an entry's debit and
// credit totals after rounding.
var balanceTolerance = decimal.RequireFromString("0.01")

// entryBuilderService turns validated extraction rows into a balanced
// accounting entry and, when the payload carried an invoice block, an invoice
// summary.
type entryBuilderService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	locks       *AccountLockManager
}

// NewEntryBuilderService creates a new entry builder.
func NewEntryBuilderService(accountRepo portsrepo.AccountRepositoryFacade, locks *AccountLockManager) portssvc.EntryBuilderSvcFacade {
	return &entryBuilderService{accountRepo: accountRepo, locks: locks}
}

var _ portssvc.EntryBuilderSvcFacade = (*entryBuilderService)(nil)

// BuildEntries produces the document's entry from its extracted rows. Accounts
// are resolved against the case file's chart, created on demand when missing.
func (s *entryBuilderService) BuildEntries(ctx context.Context, doc domain.Document, caseFile domain.CaseFile, extracted *dto.ExtractedDocument, conv *dto.ConversionResult) ([]domain.Entry, *domain.InvoiceSummary, error) {
	if extracted == nil || len(extracted.Rows) == 0 {
		return nil, nil, fmt.Errorf("%w: no extracted rows to build entries from", apperrors.ErrValidation)
	}

	first := extracted.Rows[0]
	entry := domain.Entry{
		EntryID:      uuid.NewString(),
		DocumentID:   doc.DocumentID,
		EntryNumber:  newEntryNumber(first.JournalCode, first.Date),
		EntryDate:    first.Date,
		JournalCode:  first.JournalCode,
		JournalLabel: first.JournalLabel,
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now().UTC(),
			CreatedBy:     doc.CreatedBy,
			LastUpdatedAt: time.Now().UTC(),
			LastUpdatedBy: doc.CreatedBy,
		},
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range extracted.Rows {
		account, err := s.resolveAccount(ctx, caseFile.CaseFileID, row.AccountNumber, row.AccountLabel, doc.CreatedBy)
		if err != nil {
			return nil, nil, err
		}

		line := domain.EntryLine{
			LineID:                uuid.NewString(),
			Label:                 row.EntryLabel,
			Debit:                 row.Debit,
			Credit:                row.Credit,
			ConvertedDebit:        ConvertAmount(row.Debit, conv.Rate),
			ConvertedCredit:       ConvertAmount(row.Credit, conv.Rate),
			USDDebit:              USDAmount(row.Debit, conv.SourceUSDRate),
			USDCredit:             USDAmount(row.Credit, conv.SourceUSDRate),
			CurrencyCode:          conv.SourceCurrency,
			ConvertedCurrencyCode: conv.TargetCurrency,
			ExchangeRate:          conv.Rate,
			RateDate:              conv.EffectiveDate,
			AccountID:             account.AccountID,
			AccountNumber:         account.Number,
		}
		entry.Lines = append(entry.Lines, line)
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return nil, nil, fmt.Errorf("%w: entry lines do not balance, debit %s vs credit %s",
			apperrors.ErrValidation, totalDebit.String(), totalCredit.String())
	}

	summary := buildInvoiceSummary(doc, extracted.Invoice, conv)
	return []domain.Entry{entry}, summary, nil
}

// resolveAccount finds the account by number or creates it, serialized under
// the per-(case file, number) lock. A create losing the race to a concurrent
// writer retries the lookup with increasing backoff before giving up.
func (s *entryBuilderService) resolveAccount(ctx context.Context, caseFileID, number, label, creatorUserID string) (*domain.Account, error) {
	unlock := s.locks.Lock(caseFileID, number)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= accountCreateAttempts; attempt++ {
		account, err := s.accountRepo.FindAccountByNumber(ctx, caseFileID, number)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up account %s: %w", number, err)
		}

		created := domain.Account{
			AccountID:  uuid.NewString(),
			CaseFileID: caseFileID,
			Number:     number,
			Label:      label,
			AuditFields: domain.AuditFields{
				CreatedAt:     time.Now().UTC(),
				CreatedBy:     creatorUserID,
				LastUpdatedAt: time.Now().UTC(),
				LastUpdatedBy: creatorUserID,
			},
		}
		err = s.accountRepo.CreateAccount(ctx, created)
		if err == nil {
			middleware.GetLoggerFromCtx(ctx).Info("Created account on demand",
				slog.String("case_file_id", caseFileID), slog.String("account_number", number))
			return &created, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create account %s: %w", number, err)
		}

		// Lost a creation race across instances; the next lookup should see it.
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 50 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("%w: account %s could not be resolved after %d attempts: %s",
		apperrors.ErrInternal, number, accountCreateAttempts, lastErr.Error())
}

// buildInvoiceSummary derives the summary totals, computing HT and TVA from
// TTC and the tax rate when the extraction omitted them.
func buildInvoiceSummary(doc domain.Document, invoice *dto.ExtractedInvoice, conv *dto.ConversionResult) *domain.InvoiceSummary {
	if invoice == nil {
		return nil
	}

	ttc := invoice.TotalTTC
	ht := invoice.TotalHT
	if !invoice.HasHT {
		divisor := decimal.NewFromInt(1)
		if invoice.TaxRate.IsPositive() {
			divisor = divisor.Add(invoice.TaxRate.Div(decimal.NewFromInt(100)))
		}
		ht = ttc.Div(divisor).Round(2)
	}
	tva := invoice.TotalTVA
	if !invoice.HasTVA {
		tva = ttc.Sub(ht)
	}

	return &domain.InvoiceSummary{
		DocumentID:    doc.DocumentID,
		InvoiceNumber: invoice.InvoiceNumber,
		InvoiceDate:   invoice.InvoiceDate,
		TaxRate:       invoice.TaxRate,
		TotalHT:       ht,
		TotalTTC:      ttc,
		TotalTVA:      tva,
		ConvertedHT:   ConvertAmount(ht, conv.Rate),
		ConvertedTTC:  ConvertAmount(ttc, conv.Rate),
		ConvertedTVA:  ConvertAmount(tva, conv.Rate),
		USDHT:         USDAmount(ht, conv.SourceUSDRate),
		USDTTC:        USDAmount(ttc, conv.SourceUSDRate),
		USDTVA:        USDAmount(tva, conv.SourceUSDRate),
	}
}

func newEntryNumber(journalCode string, entryDate time.Time) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(journalCode), entryDate.Format("200601"), strings.ToUpper(suffix))
}
