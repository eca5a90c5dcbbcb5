package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DuplicateServiceTestSuite struct {
	suite.Suite
	mockDocRepo   *MockDocumentRepository
	mockEntryRepo *MockEntryRepository
	service       portssvc.DuplicateSvcFacade
}

func (suite *DuplicateServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewDuplicateService(suite.mockDocRepo, suite.mockEntryRepo)
}

// --- Technical duplicates ---

func (suite *DuplicateServiceTestSuite) TestFindTechnicalDuplicate_ExactFilenameMatch() {
	ctx := context.Background()
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1", OriginalFilename: "invoice.pdf"}
	original := &domain.Document{DocumentID: "doc-1", CaseFileID: "cf-1", OriginalFilename: "invoice.pdf"}

	suite.mockDocRepo.On("FindByOriginalFilename", ctx, "cf-1", "invoice.pdf", "doc-2").Return(original, nil).Once()

	found, err := suite.service.FindTechnicalDuplicate(ctx, doc)

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal("doc-1", found.DocumentID)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "FindByFilenameStem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DuplicateServiceTestSuite) TestFindTechnicalDuplicate_StemMatchAfterExactMiss() {
	ctx := context.Background()
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1", OriginalFilename: "invoice_copy.pdf"}
	original := &domain.Document{DocumentID: "doc-1", CaseFileID: "cf-1", OriginalFilename: "invoice.pdf"}

	suite.mockDocRepo.On("FindByOriginalFilename", ctx, "cf-1", "invoice_copy.pdf", "doc-2").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDocRepo.On("FindByFilenameStem", ctx, "cf-1", "invoice", "doc-2").Return(original, nil).Once()

	found, err := suite.service.FindTechnicalDuplicate(ctx, doc)

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal("doc-1", found.DocumentID)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DuplicateServiceTestSuite) TestFindTechnicalDuplicate_NoMatch() {
	ctx := context.Background()
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1", OriginalFilename: "unique.pdf"}

	suite.mockDocRepo.On("FindByOriginalFilename", ctx, "cf-1", "unique.pdf", "doc-2").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDocRepo.On("FindByFilenameStem", ctx, "cf-1", "unique", "doc-2").
		Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.FindTechnicalDuplicate(ctx, doc)

	suite.Require().NoError(err)
	suite.Nil(found)
}

// --- Functional duplicates ---

func (suite *DuplicateServiceTestSuite) TestFindFunctionalDuplicate_ForcedDocumentSkipped() {
	ctx := context.Background()
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1", IsForced: true}
	summary := &domain.InvoiceSummary{DocumentID: "doc-2", TotalTTC: decimal.RequireFromString("120.50")}

	found, err := suite.service.FindFunctionalDuplicate(ctx, doc, summary, nil)

	suite.Require().NoError(err)
	suite.Nil(found)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "FindBySummaryMatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DuplicateServiceTestSuite) TestFindFunctionalDuplicate_SummaryMatch() {
	ctx := context.Background()
	invoiceDate := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	ttc := decimal.RequireFromString("120.50")
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1"}
	summary := &domain.InvoiceSummary{DocumentID: "doc-2", InvoiceDate: invoiceDate, TotalTTC: ttc}
	original := &domain.Document{DocumentID: "doc-1", CaseFileID: "cf-1"}

	suite.mockDocRepo.On("FindBySummaryMatch", ctx, "cf-1", invoiceDate, ttc, "doc-2").Return(original, nil).Once()

	found, err := suite.service.FindFunctionalDuplicate(ctx, doc, summary, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal("doc-1", found.DocumentID)
}

func (suite *DuplicateServiceTestSuite) TestFindFunctionalDuplicate_EntryMatchWithinTolerance() {
	ctx := context.Background()
	entryDate := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1"}
	entry := domain.Entry{
		EntryDate: entryDate,
		Lines: []domain.EntryLine{
			{Debit: decimal.RequireFromString("120.50"), Credit: decimal.Zero},
			{Debit: decimal.Zero, Credit: decimal.RequireFromString("120.50")},
		},
	}
	amount := decimal.RequireFromString("120.50")
	original := &domain.Document{DocumentID: "doc-1", CaseFileID: "cf-1"}

	suite.mockEntryRepo.On("FindDocumentByEntryMatch", ctx, "cf-1", entryDate, amount, decimal.Zero, "doc-2").
		Return("", apperrors.ErrNotFound).Once()
	suite.mockEntryRepo.On("FindDocumentByEntryMatch", ctx, "cf-1", entryDate, amount, decimal.RequireFromString("0.01"), "doc-2").
		Return("doc-1", nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(original, nil).Once()

	found, err := suite.service.FindFunctionalDuplicate(ctx, doc, nil, []domain.Entry{entry})

	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal("doc-1", found.DocumentID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *DuplicateServiceTestSuite) TestFindFunctionalDuplicate_NoEntryMatch() {
	ctx := context.Background()
	entryDate := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1"}
	entry := domain.Entry{
		EntryDate: entryDate,
		Lines:     []domain.EntryLine{{Debit: decimal.RequireFromString("50"), Credit: decimal.Zero}},
	}

	suite.mockEntryRepo.On("FindDocumentByEntryMatch", ctx, "cf-1", entryDate, mock.Anything, mock.Anything, "doc-2").
		Return("", apperrors.ErrNotFound)

	found, err := suite.service.FindFunctionalDuplicate(ctx, doc, nil, []domain.Entry{entry})

	suite.Require().NoError(err)
	suite.Nil(found)
}

// --- Resolution ---

func (suite *DuplicateServiceTestSuite) TestResolveDuplicate_MarksNewerDocument() {
	ctx := context.Background()
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1"}
	original := domain.Document{DocumentID: "doc-1", CaseFileID: "cf-1"}

	suite.mockDocRepo.On("MarkDocumentDuplicate", ctx, "doc-2", "doc-1").Return(nil).Once()

	err := suite.service.ResolveDuplicate(ctx, doc, original)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DuplicateServiceTestSuite) TestResolveDuplicate_FollowsChainToRootOriginal() {
	ctx := context.Background()
	rootID := "doc-0"
	doc := domain.Document{DocumentID: "doc-2", CaseFileID: "cf-1"}
	original := domain.Document{DocumentID: "doc-1", CaseFileID: "cf-1", IsDuplicate: true, OriginalDocumentID: &rootID}

	suite.mockDocRepo.On("MarkDocumentDuplicate", ctx, "doc-2", "doc-0").Return(nil).Once()

	err := suite.service.ResolveDuplicate(ctx, doc, original)

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func TestDuplicateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DuplicateServiceTestSuite))
}
