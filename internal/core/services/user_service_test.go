package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sarrafix/pricing_backend/internal/apperrors"
	"github.com/sarrafix/pricing_backend/internal/core/domain"
	portssvc "github.com/sarrafix/pricing_backend/internal/core/ports/services"
	"github.com/sarrafix/pricing_backend/internal/core/services"
	"github.com/sarrafix/pricing_backend/internal/dto"
	"github.com/sarrafix/pricing_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Password: "a-strong-password",
		Name:     "J. Doe",
		Role:     "exchange_admin",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == req.Username &&
			u.Role == domain.RoleExchangeAdmin &&
			u.IsActive &&
			u.CreatedBy == creatorUserID &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(req.Username, user.Username)
	suite.Equal(domain.RoleExchangeAdmin, user.Role)
	suite.True(user.IsActive)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Password: "a-strong-password",
		Name:     "J. Doe",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleExchangeManager
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.RoleExchangeManager, user.Role)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_InvalidRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Password: "a-strong-password",
		Name:     "J. Doe",
		Role:     "wizard",
	}

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Password: "a-strong-password",
		Name:     "J. Doe",
	}
	dupErr := apperrors.NewConflictError("username jdoe already exists")

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(dupErr).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	actor := &domain.User{UserID: actorID, IsActive: true}
	expected := &domain.User{UserID: uuid.NewString(), Username: "jdoe"}

	suite.mockRepo.On("FindUserByID", mock.Anything, actorID).Return(actor, nil).Once()
	suite.mockRepo.On("FindUserByID", ctx, expected.UserID).Return(expected, nil).Once()

	user, err := suite.service.GetUserByID(ctx, expected.UserID, actorID)

	suite.Require().NoError(err)
	suite.Equal(expected, user)
}

func (suite *UserServiceTestSuite) TestGetUserByID_DeactivatedActor() {
	ctx := context.Background()
	actorID := uuid.NewString()
	actor := &domain.User{UserID: actorID, IsActive: false}

	suite.mockRepo.On("FindUserByID", mock.Anything, actorID).Return(actor, nil).Once()

	user, err := suite.service.GetUserByID(ctx, uuid.NewString(), actorID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "FindUserByID", 1)
}

func (suite *UserServiceTestSuite) TestGetUserByUsername_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByUsername(ctx, "ghost")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	actor := &domain.User{UserID: actorID, IsActive: true}
	expected := []domain.User{{UserID: uuid.NewString()}, {UserID: uuid.NewString()}}

	suite.mockRepo.On("FindUserByID", mock.Anything, actorID).Return(actor, nil).Once()
	suite.mockRepo.On("ListUsers", ctx).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(ctx, actorID)

	suite.Require().NoError(err)
	suite.Equal(expected, users)
}

func (suite *UserServiceTestSuite) TestListUsers_RepoError() {
	ctx := context.Background()
	actorID := uuid.NewString()
	actor := &domain.User{UserID: actorID, IsActive: true}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindUserByID", mock.Anything, actorID).Return(actor, nil).Once()
	suite.mockRepo.On("ListUsers", ctx).Return(nil, expectedErr).Once()

	users, err := suite.service.ListUsers(ctx, actorID)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
