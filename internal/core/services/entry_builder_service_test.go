package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/apperrors"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/domain"
	portssvc "github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/ports/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/core/services"
	"github.com/hamozbolhya/neurocompte.com-backend-sub000/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EntryBuilderServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.EntryBuilderSvcFacade
}

func (suite *EntryBuilderServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewEntryBuilderService(suite.mockAccountRepo, services.NewAccountLockManager())
}

func (suite *EntryBuilderServiceTestSuite) buildInputs() (domain.Document, domain.CaseFile, *dto.ConversionResult) {
	doc := domain.Document{
		DocumentID: "doc-1",
		CaseFileID: "cf-1",
		AuditFields: domain.AuditFields{
			CreatedBy: "user-1",
		},
	}
	caseFile := domain.CaseFile{CaseFileID: "cf-1", CurrencyCode: "MAD"}
	conv := &dto.ConversionResult{
		SourceCurrency: "EUR",
		TargetCurrency: "MAD",
		Rate:           decimal.RequireFromString("10"),
		SourceUSDRate:  decimal.RequireFromString("1.1"),
		EffectiveDate:  day(2024, time.June, 10),
	}
	return doc, caseFile, conv
}

func balancedRows() []dto.ExtractedRow {
	date := day(2024, time.June, 10)
	return []dto.ExtractedRow{
		{
			Date: date, JournalCode: "AC", JournalLabel: "Achats",
			AccountNumber: "401100", AccountLabel: "Fournisseurs",
			EntryLabel: "Facture fournisseur", Currency: "EUR",
			Debit: decimal.RequireFromString("120.50"), Credit: decimal.Zero,
		},
		{
			Date: date, JournalCode: "AC", JournalLabel: "Achats",
			AccountNumber: "512000", AccountLabel: "Banque",
			EntryLabel: "Facture fournisseur", Currency: "EUR",
			Debit: decimal.Zero, Credit: decimal.RequireFromString("120.50"),
		},
	}
}

func (suite *EntryBuilderServiceTestSuite) TestBuildEntries_BalancedRowsProduceOneEntry() {
	ctx := context.Background()
	doc, caseFile, conv := suite.buildInputs()

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", "401100").
		Return(&domain.Account{AccountID: "acc-1", CaseFileID: "cf-1", Number: "401100"}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", "512000").
		Return(&domain.Account{AccountID: "acc-2", CaseFileID: "cf-1", Number: "512000"}, nil).Once()

	entries, summary, err := suite.service.BuildEntries(ctx, doc, caseFile, &dto.ExtractedDocument{Rows: balancedRows()}, conv)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Nil(summary)

	entry := entries[0]
	suite.Equal("doc-1", entry.DocumentID)
	suite.Equal("AC", entry.JournalCode)
	suite.Contains(entry.EntryNumber, "AC-202406-")
	suite.Require().Len(entry.Lines, 2)

	line := entry.Lines[0]
	suite.Equal("acc-1", line.AccountID)
	suite.Equal("EUR", line.CurrencyCode)
	suite.Equal("MAD", line.ConvertedCurrencyCode)
	suite.True(line.ConvertedDebit.Equal(decimal.RequireFromString("1205.00")), "got %s", line.ConvertedDebit.String())
	suite.True(line.USDDebit.Equal(decimal.RequireFromString("109.55")), "got %s", line.USDDebit.String())
	suite.True(entry.RepresentativeAmount().Equal(decimal.RequireFromString("120.50")))
}

func (suite *EntryBuilderServiceTestSuite) TestBuildEntries_MissingAccountIsCreated() {
	ctx := context.Background()
	doc, caseFile, conv := suite.buildInputs()
	rows := balancedRows()[:1]
	rows[0].Credit = rows[0].Debit // single self-balancing row keeps the check green

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", "401100").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("CreateAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.CaseFileID == "cf-1" && account.Number == "401100" && account.Label == "Fournisseurs"
	})).Return(nil).Once()

	entries, _, err := suite.service.BuildEntries(ctx, doc, caseFile, &dto.ExtractedDocument{Rows: rows}, conv)

	suite.Require().NoError(err)
	suite.NotEmpty(entries[0].Lines[0].AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *EntryBuilderServiceTestSuite) TestBuildEntries_LostCreationRaceRetriesLookup() {
	ctx := context.Background()
	doc, caseFile, conv := suite.buildInputs()
	rows := balancedRows()[:1]
	rows[0].Credit = rows[0].Debit
	winner := &domain.Account{AccountID: "acc-raced", CaseFileID: "cf-1", Number: "401100"}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", "401100").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("CreateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", "401100").
		Return(winner, nil).Once()

	entries, _, err := suite.service.BuildEntries(ctx, doc, caseFile, &dto.ExtractedDocument{Rows: rows}, conv)

	suite.Require().NoError(err)
	suite.Equal("acc-raced", entries[0].Lines[0].AccountID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *EntryBuilderServiceTestSuite) TestBuildEntries_PersistentRaceGivesUp() {
	ctx := context.Background()
	doc, caseFile, conv := suite.buildInputs()
	rows := balancedRows()[:1]
	rows[0].Credit = rows[0].Debit

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", "401100").
		Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("CreateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate)

	_, _, err := suite.service.BuildEntries(ctx, doc, caseFile, &dto.ExtractedDocument{Rows: rows}, conv)

	suite.Require().ErrorIs(err, apperrors.ErrInternal)
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "CreateAccount", 3)
}

func (suite *EntryBuilderServiceTestSuite) TestBuildEntries_UnbalancedLinesRejected() {
	ctx := context.Background()
	doc, caseFile, conv := suite.buildInputs()
	rows := balancedRows()
	rows[1].Credit = decimal.RequireFromString("100.00")

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", mock.Anything).
		Return(&domain.Account{AccountID: "acc-1", CaseFileID: "cf-1"}, nil)

	_, _, err := suite.service.BuildEntries(ctx, doc, caseFile, &dto.ExtractedDocument{Rows: rows}, conv)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryBuilderServiceTestSuite) TestBuildEntries_NoRowsRejected() {
	doc, caseFile, conv := suite.buildInputs()

	_, _, err := suite.service.BuildEntries(context.Background(), doc, caseFile, &dto.ExtractedDocument{}, conv)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryBuilderServiceTestSuite) TestBuildEntries_SummaryDerivesMissingTotals() {
	ctx := context.Background()
	doc, caseFile, conv := suite.buildInputs()
	extracted := &dto.ExtractedDocument{
		Rows: balancedRows(),
		Invoice: &dto.ExtractedInvoice{
			InvoiceNumber: "F-2024-001",
			InvoiceDate:   day(2024, time.June, 10),
			TaxRate:       decimal.RequireFromString("20"),
			TotalTTC:      decimal.RequireFromString("120"),
		},
	}

	suite.mockAccountRepo.On("FindAccountByNumber", ctx, "cf-1", mock.Anything).
		Return(&domain.Account{AccountID: "acc-1", CaseFileID: "cf-1"}, nil)

	_, summary, err := suite.service.BuildEntries(ctx, doc, caseFile, extracted, conv)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal("doc-1", summary.DocumentID)
	suite.True(summary.TotalHT.Equal(decimal.RequireFromString("100.00")), "got %s", summary.TotalHT.String())
	suite.True(summary.TotalTVA.Equal(decimal.RequireFromString("20.00")), "got %s", summary.TotalTVA.String())
	suite.True(summary.ConvertedTTC.Equal(decimal.RequireFromString("1200.00")), "got %s", summary.ConvertedTTC.String())
	suite.True(summary.USDTTC.Equal(decimal.RequireFromString("109.09")), "got %s", summary.USDTTC.String())
}

func TestEntryBuilderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryBuilderServiceTestSuite))
}
