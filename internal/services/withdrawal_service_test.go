package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
	"github.com/ulugbek-dev/taskearn-api/internal/utils"
	"gorm.io/gorm"
)

// WithdrawalServiceTestSuite defines the test suite for WithdrawalService
type WithdrawalServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	withdrawals *WithdrawalService
}

func (suite *WithdrawalServiceTestSuite) SetupTest() {
	suite.db = newTestDB(&suite.Suite)
	suite.withdrawals = NewWithdrawalService(repository.NewWithdrawalRepository(suite.db))
}

func (suite *WithdrawalServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *WithdrawalServiceTestSuite) createUser(balance int64) *models.User {
	user := &models.User{Phone: "+998900000001", Balance: balance}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *WithdrawalServiceTestSuite) userBalance(id uint64) int64 {
	var user models.User
	suite.Require().NoError(suite.db.First(&user, id).Error)
	return user.Balance
}

func (suite *WithdrawalServiceTestSuite) TestRequest_Success() {
	user := suite.createUser(500)

	req, err := suite.withdrawals.Request(user.ID, 200, "+998900000001", "card")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.WithdrawalStatusPending, req.Status)
	assert.NotEmpty(suite.T(), req.Reference)
	assert.Equal(suite.T(), int64(300), suite.userBalance(user.ID))

	var count int64
	suite.db.Model(&models.WithdrawalRequest{}).
		Where("user_id = ? AND status = ?", user.ID, models.WithdrawalStatusPending).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *WithdrawalServiceTestSuite) TestRequest_InsufficientBalance() {
	user := suite.createUser(100)

	_, err := suite.withdrawals.Request(user.ID, 150, "+998900000001", "card")
	assert.ErrorIs(suite.T(), err, ErrInsufficientBalance)

	assert.Equal(suite.T(), int64(100), suite.userBalance(user.ID))

	var count int64
	suite.db.Model(&models.WithdrawalRequest{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *WithdrawalServiceTestSuite) TestRequest_ExactBalanceDrainsToZero() {
	user := suite.createUser(100)

	_, err := suite.withdrawals.Request(user.ID, 100, "+998900000001", "card")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), suite.userBalance(user.ID))
}

func (suite *WithdrawalServiceTestSuite) TestRequest_NonPositiveAmount() {
	user := suite.createUser(500)

	_, err := suite.withdrawals.Request(user.ID, 0, "+998900000001", "card")
	assert.ErrorIs(suite.T(), err, ErrInvalidAmount)

	_, err = suite.withdrawals.Request(user.ID, -50, "+998900000001", "card")
	assert.ErrorIs(suite.T(), err, ErrInvalidAmount)

	assert.Equal(suite.T(), int64(500), suite.userBalance(user.ID))
}

func (suite *WithdrawalServiceTestSuite) TestMarkPaid_Transition() {
	user := suite.createUser(500)
	req, err := suite.withdrawals.Request(user.ID, 200, "+998900000001", "card")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.withdrawals.MarkPaid(req.ID, "receipt-778"))

	var reloaded models.WithdrawalRequest
	suite.Require().NoError(suite.db.First(&reloaded, req.ID).Error)
	assert.Equal(suite.T(), models.WithdrawalStatusPaid, reloaded.Status)
	assert.Equal(suite.T(), "receipt-778", reloaded.ReceiptRef)
	suite.Require().NotNil(reloaded.PaidAt)

	// Status never reverses and never advances twice.
	err = suite.withdrawals.MarkPaid(req.ID, "receipt-999")
	assert.ErrorIs(suite.T(), err, ErrWithdrawalNotPending)

	suite.Require().NoError(suite.db.First(&reloaded, req.ID).Error)
	assert.Equal(suite.T(), "receipt-778", reloaded.ReceiptRef)
}

func (suite *WithdrawalServiceTestSuite) TestMarkPaid_NotFound() {
	err := suite.withdrawals.MarkPaid(12345, "receipt-1")
	assert.ErrorIs(suite.T(), err, ErrWithdrawalNotFound)
}

func (suite *WithdrawalServiceTestSuite) TestList_MostRecentFirst() {
	user := suite.createUser(1000)

	first, err := suite.withdrawals.Request(user.ID, 100, "+998900000001", "card")
	suite.Require().NoError(err)
	second, err := suite.withdrawals.Request(user.ID, 200, "+998900000001", "wallet")
	suite.Require().NoError(err)

	requests, total, err := suite.withdrawals.List(user.ID, utils.PaginationParams{Page: 1, Limit: 20})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), int64(2), total)
	suite.Require().Len(requests, 2)
	assert.Equal(suite.T(), second.ID, requests[0].ID)
	assert.Equal(suite.T(), first.ID, requests[1].ID)
}

func TestWithdrawalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalServiceTestSuite))
}
