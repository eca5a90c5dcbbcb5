package services_test

import (
	"context"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListPendingDocuments(ctx context.Context, status domain.DocumentStatus, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Document, error) {
	args := m.Called(ctx, caseFileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByOriginalFilename(ctx context.Context, caseFileID, originalFilename, excludeDocumentID string) (*domain.Document, error) {
	args := m.Called(ctx, caseFileID, originalFilename, excludeDocumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByFilenameStem(ctx context.Context, caseFileID, stem, excludeDocumentID string) (*domain.Document, error) {
	args := m.Called(ctx, caseFileID, stem, excludeDocumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindBySummaryMatch(ctx context.Context, caseFileID string, invoiceDate time.Time, totalTTC decimal.Decimal, excludeDocumentID string) (*domain.Document, error) {
	args := m.Called(ctx, caseFileID, invoiceDate, totalTTC, excludeDocumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindInvoiceSummaryByDocumentID(ctx context.Context, documentID string) (*domain.InvoiceSummary, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSummary), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, reason string) error {
	args := m.Called(ctx, documentID, status, reason)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentConversion(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) MarkDocumentDuplicate(ctx context.Context, documentID, originalDocumentID string) error {
	args := m.Called(ctx, documentID, originalDocumentID)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveInvoiceSummary(ctx context.Context, summary domain.InvoiceSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntriesByDocumentID(ctx context.Context, documentID string) ([]domain.Entry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindDocumentByEntryMatch(ctx context.Context, caseFileID string, entryDate time.Time, amount, tolerance decimal.Decimal, excludeDocumentID string) (string, error) {
	args := m.Called(ctx, caseFileID, entryDate, amount, tolerance, excludeDocumentID)
	return args.String(0), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, caseFileID, number string) (*domain.Account, error) {
	args := m.Called(ctx, caseFileID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByCaseFile(ctx context.Context, caseFileID string) ([]domain.Account, error) {
	args := m.Called(ctx, caseFileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock CaseFileRepository ---
type MockCaseFileRepository struct {
	mock.Mock
}

func (m *MockCaseFileRepository) FindCaseFileByID(ctx context.Context, caseFileID string) (*domain.CaseFile, error) {
	args := m.Called(ctx, caseFileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaseFile), args.Error(1)
}

func (m *MockCaseFileRepository) SaveCaseFile(ctx context.Context, caseFile domain.CaseFile) error {
	args := m.Called(ctx, caseFile)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, currencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock ExtractionClient ---
type MockExtractionClient struct {
	mock.Mock
}

func (m *MockExtractionClient) ExtractInvoice(ctx context.Context, filename string) (*dto.ExtractionResponse, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExtractionResponse), args.Error(1)
}

func (m *MockExtractionClient) ExtractBankStatement(ctx context.Context, documentID string) (*dto.ExtractionResponse, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExtractionResponse), args.Error(1)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) DocumentsChanged(ctx context.Context, caseFileID string) {
	m.Called(ctx, caseFileID)
}

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) EffectiveDate(invoiceDate, today time.Time) time.Time {
	args := m.Called(invoiceDate, today)
	return args.Get(0).(time.Time)
}

func (m *MockConversionService) RateToBase(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockConversionService) CrossRate(ctx context.Context, sourceCurrency, targetCurrency string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, sourceCurrency, targetCurrency, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockConversionService) Resolve(ctx context.Context, sourceCurrency, targetCurrency string, invoiceDate time.Time) (*dto.ConversionResult, error) {
	args := m.Called(ctx, sourceCurrency, targetCurrency, invoiceDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConversionResult), args.Error(1)
}

// --- Mock DuplicateService ---
type MockDuplicateService struct {
	mock.Mock
}

func (m *MockDuplicateService) FindTechnicalDuplicate(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDuplicateService) FindFunctionalDuplicate(ctx context.Context, doc domain.Document, summary *domain.InvoiceSummary, entries []domain.Entry) (*domain.Document, error) {
	args := m.Called(ctx, doc, summary, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDuplicateService) ResolveDuplicate(ctx context.Context, doc domain.Document, original domain.Document) error {
	args := m.Called(ctx, doc, original)
	return args.Error(0)
}

// --- Mock EntryBuilder ---
type MockEntryBuilder struct {
	mock.Mock
}

func (m *MockEntryBuilder) BuildEntries(ctx context.Context, doc domain.Document, caseFile domain.CaseFile, extracted *dto.ExtractedDocument, conv *dto.ConversionResult) ([]domain.Entry, *domain.InvoiceSummary, error) {
	args := m.Called(ctx, doc, caseFile, extracted, conv)
	var entries []domain.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.Entry)
	}
	var summary *domain.InvoiceSummary
	if args.Get(1) != nil {
		summary = args.Get(1).(*domain.InvoiceSummary)
	}
	return entries, summary, args.Error(2)
}

// --- Mock ProcessingService ---
type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}
