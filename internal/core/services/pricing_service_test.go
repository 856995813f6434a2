package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portsrepo "github.com/sarrafix/pricing_backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository (shared across service suites) ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock PricingRepository ---
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) FindPriceTypeByID(ctx context.Context, priceTypeID string) (*domain.PriceType, error) {
	args := m.Called(ctx, priceTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceType), args.Error(1)
}

func (m *MockPricingRepository) FindCurrentPrice(ctx context.Context, priceTypeID string) (*domain.Price, error) {
	args := m.Called(ctx, priceTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

func (m *MockPricingRepository) ListPriceTypesWithCurrentPrice(ctx context.Context) ([]domain.PriceTypeListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceTypeListing), args.Error(1)
}

func (m *MockPricingRepository) ListPriceHistory(ctx context.Context, priceTypeID string, limit int) ([]domain.PriceHistory, error) {
	args := m.Called(ctx, priceTypeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceHistory), args.Error(1)
}

func (m *MockPricingRepository) SetCurrentPrice(ctx context.Context, priceTypeID string, newPrice decimal.Decimal, actorUserID, actorName string, now time.Time) (*domain.Price, *domain.PriceHistory, error) {
	args := m.Called(ctx, priceTypeID, newPrice, actorUserID, actorName, now)
	var price *domain.Price
	if args.Get(0) != nil {
		price = args.Get(0).(*domain.Price)
	}
	var history *domain.PriceHistory
	if args.Get(1) != nil {
		history = args.Get(1).(*domain.PriceHistory)
	}
	return price, history, args.Error(2)
}

func (m *MockPricingRepository) SetCurrentPrices(ctx context.Context, updates []portsrepo.PriceUpdate, actorUserID, actorName string, now time.Time) ([]domain.PriceHistory, error) {
	args := m.Called(ctx, updates, actorUserID, actorName, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceHistory), args.Error(1)
}

// --- Test Suite ---
type PricingServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockPricingRepository
	mockUserRepo *MockUserRepository
	service      portssvc.PricingSvcFacade

	actorID string
	actor   *domain.User
}

func (suite *PricingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPricingRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewPricingService(suite.mockRepo, suite.mockUserRepo)

	suite.actorID = uuid.NewString()
	suite.actor = &domain.User{
		UserID:   suite.actorID,
		Username: "manager",
		Name:     "Test Manager",
		Role:     domain.RoleExchangeManager,
		IsActive: true,
	}
}

func (suite *PricingServiceTestSuite) expectActiveActor() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.actorID).Return(suite.actor, nil).Once()
}

func (suite *PricingServiceTestSuite) usdIrrBuy(priceTypeID string) *domain.PriceType {
	return &domain.PriceType{
		PriceTypeID:    priceTypeID,
		CategoryID:     uuid.NewString(),
		Name:           "Cash USD",
		Action:         domain.ActionBuy,
		BaseCurrency:   "USD",
		TargetCurrency: "IRR",
		IsActive:       true,
	}
}

// --- SetPrice ---

func (suite *PricingServiceTestSuite) TestSetPrice_FirstPrice_NoHistory() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()
	value := decimal.RequireFromString("61500")
	savedPrice := &domain.Price{PriceID: uuid.NewString(), PriceTypeID: priceTypeID, Price: value, IsCurrent: true}

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(suite.usdIrrBuy(priceTypeID), nil).Once()
	suite.mockRepo.On("SetCurrentPrice", ctx, priceTypeID, value, suite.actorID, suite.actor.Name, mock.AnythingOfType("time.Time")).
		Return(savedPrice, nil, nil).Once()

	price, err := suite.service.SetPrice(ctx, priceTypeID, "61500", suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(price)
	suite.True(price.Price.Equal(value))
	suite.True(price.IsCurrent)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestSetPrice_ChangedValue_ReturnsHistory() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()
	oldValue := decimal.RequireFromString("61500")
	newValue := decimal.RequireFromString("63000")
	savedPrice := &domain.Price{PriceID: uuid.NewString(), PriceTypeID: priceTypeID, Price: newValue, IsCurrent: true}
	history := &domain.PriceHistory{
		PriceHistoryID:   uuid.NewString(),
		PriceTypeID:      priceTypeID,
		OldPrice:         &oldValue,
		NewPrice:         newValue,
		ChangePercentage: domain.ComputeChangePercentage(&oldValue, newValue),
	}

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(suite.usdIrrBuy(priceTypeID), nil).Once()
	suite.mockRepo.On("SetCurrentPrice", ctx, priceTypeID, newValue, suite.actorID, suite.actor.Name, mock.AnythingOfType("time.Time")).
		Return(savedPrice, history, nil).Once()

	price, err := suite.service.SetPrice(ctx, priceTypeID, "63000", suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(price)
	suite.True(price.Price.Equal(newValue))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestSetPrice_InvalidNumber() {
	ctx := context.Background()
	suite.expectActiveActor()

	price, err := suite.service.SetPrice(ctx, uuid.NewString(), "not-a-number", suite.actorID)

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetCurrentPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestSetPrice_NonPositive() {
	ctx := context.Background()

	for _, raw := range []string{"0", "-5", "-0.0001"} {
		suite.expectActiveActor()
		price, err := suite.service.SetPrice(ctx, uuid.NewString(), raw, suite.actorID)
		suite.Require().Error(err, "raw=%s", raw)
		suite.Nil(price)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
}

func (suite *PricingServiceTestSuite) TestSetPrice_TooManyDecimalPlaces() {
	ctx := context.Background()
	suite.expectActiveActor()

	price, err := suite.service.SetPrice(ctx, uuid.NewString(), "1.23456", suite.actorID)

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PricingServiceTestSuite) TestSetPrice_SameBaseAndTargetCurrency() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()
	priceType := suite.usdIrrBuy(priceTypeID)
	priceType.TargetCurrency = "USD"

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(priceType, nil).Once()

	price, err := suite.service.SetPrice(ctx, priceTypeID, "1.05", suite.actorID)

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetCurrentPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestSetPrice_PriceTypeNotFound() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(nil, apperrors.ErrNotFound).Once()

	price, err := suite.service.SetPrice(ctx, priceTypeID, "100", suite.actorID)

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PricingServiceTestSuite) TestSetPrice_UnknownActor() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.actorID).Return(nil, apperrors.ErrNotFound).Once()

	price, err := suite.service.SetPrice(ctx, uuid.NewString(), "100", suite.actorID)

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *PricingServiceTestSuite) TestSetPrice_DeactivatedActor() {
	ctx := context.Background()
	suite.actor.IsActive = false

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.actorID).Return(suite.actor, nil).Once()

	price, err := suite.service.SetPrice(ctx, uuid.NewString(), "100", suite.actorID)

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PricingServiceTestSuite) TestSetPrice_MissingActor() {
	ctx := context.Background()

	price, err := suite.service.SetPrice(ctx, uuid.NewString(), "100", "")

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

// --- SetCategoryPrices ---

func (suite *PricingServiceTestSuite) TestSetCategoryPrices_Success() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	buyID := "a-" + uuid.NewString()
	sellID := "b-" + uuid.NewString()

	buyType := suite.usdIrrBuy(buyID)
	buyType.CategoryID = categoryID
	sellType := suite.usdIrrBuy(sellID)
	sellType.CategoryID = categoryID
	sellType.Action = domain.ActionSell

	oldValue := decimal.RequireFromString("61500")
	expectedHistory := []domain.PriceHistory{{
		PriceHistoryID: uuid.NewString(),
		PriceTypeID:    buyID,
		OldPrice:       &oldValue,
		NewPrice:       decimal.RequireFromString("62000"),
	}}

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, buyID).Return(buyType, nil).Once()
	suite.mockRepo.On("FindPriceTypeByID", ctx, sellID).Return(sellType, nil).Once()
	suite.mockRepo.On("SetCurrentPrices", ctx, mock.MatchedBy(func(updates []portsrepo.PriceUpdate) bool {
		// Entries arrive sorted by price type ID.
		return len(updates) == 2 && updates[0].PriceTypeID == buyID && updates[1].PriceTypeID == sellID
	}), suite.actorID, suite.actor.Name, mock.AnythingOfType("time.Time")).Return(expectedHistory, nil).Once()

	history, err := suite.service.SetCategoryPrices(ctx, categoryID, map[string]string{
		buyID:  "62000",
		sellID: "61000",
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(history, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestSetCategoryPrices_Empty() {
	ctx := context.Background()
	suite.expectActiveActor()

	history, err := suite.service.SetCategoryPrices(ctx, uuid.NewString(), map[string]string{}, suite.actorID)

	suite.Require().NoError(err)
	suite.Empty(history)
	suite.NotNil(history)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetCurrentPrices", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestSetCategoryPrices_ForeignPriceType() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	priceTypeID := uuid.NewString()
	foreignType := suite.usdIrrBuy(priceTypeID) // belongs to another category

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(foreignType, nil).Once()

	history, err := suite.service.SetCategoryPrices(ctx, categoryID, map[string]string{priceTypeID: "100"}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(history)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetCurrentPrices", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestSetCategoryPrices_OneInvalidEntryRejectsAll() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.expectActiveActor()

	history, err := suite.service.SetCategoryPrices(ctx, categoryID, map[string]string{
		uuid.NewString(): "abc",
	}, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(history)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetCurrentPrices", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *PricingServiceTestSuite) TestGetCurrentPrice_Success() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()
	expected := &domain.Price{PriceID: uuid.NewString(), PriceTypeID: priceTypeID, Price: decimal.RequireFromString("61500"), IsCurrent: true}

	suite.expectActiveActor()
	suite.mockRepo.On("FindCurrentPrice", ctx, priceTypeID).Return(expected, nil).Once()

	price, err := suite.service.GetCurrentPrice(ctx, priceTypeID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(expected, price)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestGetCurrentPrice_NotSet() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()

	suite.expectActiveActor()
	suite.mockRepo.On("FindCurrentPrice", ctx, priceTypeID).Return(nil, apperrors.ErrNotFound).Once()

	price, err := suite.service.GetCurrentPrice(ctx, priceTypeID, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PricingServiceTestSuite) TestListPriceTypes_Empty() {
	ctx := context.Background()
	var none []domain.PriceTypeListing

	suite.expectActiveActor()
	suite.mockRepo.On("ListPriceTypesWithCurrentPrice", ctx).Return(none, nil).Once()

	listings, err := suite.service.ListPriceTypes(ctx, suite.actorID)

	suite.Require().NoError(err)
	suite.Empty(listings)
	suite.NotNil(listings)
}

func (suite *PricingServiceTestSuite) TestListPriceHistory_DefaultLimit() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()
	expected := []domain.PriceHistory{{PriceHistoryID: uuid.NewString(), PriceTypeID: priceTypeID}}

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(suite.usdIrrBuy(priceTypeID), nil).Once()
	suite.mockRepo.On("ListPriceHistory", ctx, priceTypeID, 50).Return(expected, nil).Once()

	history, err := suite.service.ListPriceHistory(ctx, priceTypeID, 0, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(expected, history)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PricingServiceTestSuite) TestListPriceHistory_UnknownPriceType() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(nil, apperrors.ErrNotFound).Once()

	history, err := suite.service.ListPriceHistory(ctx, priceTypeID, 10, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(history)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPriceHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PricingServiceTestSuite) TestListPriceHistory_RepoError() {
	ctx := context.Background()
	priceTypeID := uuid.NewString()
	expectedErr := assert.AnError

	suite.expectActiveActor()
	suite.mockRepo.On("FindPriceTypeByID", ctx, priceTypeID).Return(suite.usdIrrBuy(priceTypeID), nil).Once()
	suite.mockRepo.On("ListPriceHistory", ctx, priceTypeID, 10).Return(nil, expectedErr).Once()

	history, err := suite.service.ListPriceHistory(ctx, priceTypeID, 10, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(history)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
