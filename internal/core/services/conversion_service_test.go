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

type ConversionServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ConversionSvcFacade
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewConversionService(suite.mockRateRepo)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// --- Effective date clamp ---

func (suite *ConversionServiceTestSuite) TestEffectiveDate_BeforeFloorClampsToFloor() {
	today := day(2025, time.June, 15)
	effective := suite.service.EffectiveDate(day(2023, time.May, 1), today)
	suite.Equal(day(2024, time.January, 1), effective)
}

func (suite *ConversionServiceTestSuite) TestEffectiveDate_TodayClampsToYesterday() {
	today := day(2025, time.June, 15)
	effective := suite.service.EffectiveDate(today, today)
	suite.Equal(day(2025, time.June, 14), effective)
}

func (suite *ConversionServiceTestSuite) TestEffectiveDate_FutureClampsToYesterday() {
	today := day(2025, time.June, 15)
	effective := suite.service.EffectiveDate(day(2026, time.March, 3), today)
	suite.Equal(day(2025, time.June, 14), effective)
}

func (suite *ConversionServiceTestSuite) TestEffectiveDate_InRangeUnchanged() {
	today := day(2025, time.June, 15)
	effective := suite.service.EffectiveDate(day(2024, time.November, 20), today)
	suite.Equal(day(2024, time.November, 20), effective)
}

// --- Rate resolution ---

func (suite *ConversionServiceTestSuite) TestRateToBase_StoredRateWins() {
	ctx := context.Background()
	date := day(2024, time.November, 20)
	stored := &domain.ExchangeRate{CurrencyCode: "EUR", RateDate: date, Rate: decimal.RequireFromString("0.92")}
	suite.mockRateRepo.On("FindRate", ctx, "EUR", date).Return(stored, nil).Once()

	rate, err := suite.service.RateToBase(ctx, "eur", date)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("0.92")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestRateToBase_MissFallsBackToTable() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRate", ctx, "EUR", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.RateToBase(ctx, "EUR", day(2024, time.November, 20))

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1.1")))
}

func (suite *ConversionServiceTestSuite) TestRateToBase_UnknownCurrencyDefaultsToOne() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRate", ctx, "XYZ", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.RateToBase(ctx, "XYZ", day(2024, time.November, 20))

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
}

func (suite *ConversionServiceTestSuite) TestRateToBase_BaseCurrencyNeverHitsStore() {
	rate, err := suite.service.RateToBase(context.Background(), "USD", day(2024, time.November, 20))

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestCrossRate_IdentityPairIsExactlyOne() {
	rate, err := suite.service.CrossRate(context.Background(), "MAD", "MAD", day(2024, time.November, 20))

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestCrossRate_TriangulatesThroughBase() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRate", ctx, mock.Anything, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)

	rate, err := suite.service.CrossRate(ctx, "EUR", "MAD", day(2024, time.November, 20))

	suite.Require().NoError(err)
	// 10.0 MAD per USD over 1.1 EUR per USD
	suite.True(rate.Round(4).Equal(decimal.RequireFromString("9.0909")), "got %s", rate.String())
}

func (suite *ConversionServiceTestSuite) TestResolve_OldInvoiceDateUsesClampedFloor() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRate", ctx, mock.Anything, day(2024, time.January, 1)).
		Return(nil, apperrors.ErrNotFound)

	conv, err := suite.service.Resolve(ctx, "EUR", "MAD", day(2023, time.May, 1))

	suite.Require().NoError(err)
	suite.Equal(day(2024, time.January, 1), conv.EffectiveDate)
	suite.True(conv.Rate.Round(4).Equal(decimal.RequireFromString("9.0909")))
	suite.True(conv.SourceUSDRate.Equal(decimal.RequireFromString("1.1")))
	suite.Equal("EUR", conv.SourceCurrency)
	suite.Equal("MAD", conv.TargetCurrency)
}

func (suite *ConversionServiceTestSuite) TestResolve_IdentityPairKeepsRateOne() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRate", ctx, "MAD", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound)

	conv, err := suite.service.Resolve(ctx, "MAD", "MAD", day(2024, time.November, 20))

	suite.Require().NoError(err)
	suite.True(conv.Rate.Equal(decimal.NewFromInt(1)))
}

// --- Amount helpers ---

func (suite *ConversionServiceTestSuite) TestConvertAmount_RoundsToTwoDecimals() {
	converted := services.ConvertAmount(decimal.RequireFromString("123.456"), decimal.RequireFromString("1.1"))
	suite.True(converted.Equal(decimal.RequireFromString("135.80")), "got %s", converted.String())
}

func (suite *ConversionServiceTestSuite) TestConvertAmount_IdentityRateLeavesAmountUntouched() {
	amount := decimal.RequireFromString("123.456")
	suite.True(services.ConvertAmount(amount, decimal.NewFromInt(1)).Equal(amount))
}

func (suite *ConversionServiceTestSuite) TestUSDAmount_DividesBySourceRate() {
	usd := services.USDAmount(decimal.RequireFromString("110"), decimal.RequireFromString("1.1"))
	suite.True(usd.Equal(decimal.RequireFromString("100")), "got %s", usd.String())
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
