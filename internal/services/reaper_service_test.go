package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
	"gorm.io/gorm"
)

// ReaperServiceTestSuite defines the test suite for the deletion lifecycle
type ReaperServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	reaper   *ReaperService
	accounts *AccountService
}

func (suite *ReaperServiceTestSuite) SetupTest() {
	suite.db = newTestDB(&suite.Suite)
	userRepo := repository.NewUserRepository(suite.db)
	suite.reaper = NewReaperService(userRepo, time.Hour)
	suite.accounts = NewAccountService(userRepo, 7*24*time.Hour)
}

func (suite *ReaperServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *ReaperServiceTestSuite) createUser(phone string) *models.User {
	user := &models.User{Phone: phone}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

// seedOwnedRows creates one row of every owned kind for the user, plus
// grant rows on both sides of the user.
func (suite *ReaperServiceTestSuite) seedOwnedRows(user, other *models.User) {
	task := &models.TaskDefinition{Title: "t", Category: "c", Reward: 10, Active: true}
	suite.Require().NoError(suite.db.Create(task).Error)

	suite.Require().NoError(suite.db.Create(&models.DailyAssignment{
		UserID: user.ID, DayKey: "2026-03-14", TaskID: task.ID, Category: task.Category, AssignedAt: time.Now(),
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.CompletionRecord{
		UserID: user.ID, TaskID: task.ID, DayKey: "2026-03-14", Category: task.Category, Reward: 10,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.WithdrawalRequest{
		UserID: user.ID, Amount: 10, Phone: user.Phone, Method: "card",
		Status: models.WithdrawalStatusPending, Reference: "ref-" + user.Phone,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.ReferralBonusGrant{
		ReferrerID: user.ID, ReferredID: other.ID, Amount: 100,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.ReferralBonusGrant{
		ReferrerID: other.ID, ReferredID: user.ID, Amount: 100,
	}).Error)
}

func (suite *ReaperServiceTestSuite) markPurgeable(user *models.User) {
	past := time.Now().Add(-time.Minute)
	requested := past.Add(-7 * 24 * time.Hour)
	suite.Require().NoError(suite.db.Model(user).Updates(map[string]interface{}{
		"delete_requested_at": requested,
		"delete_effective_at": past,
	}).Error)
}

func (suite *ReaperServiceTestSuite) count(model interface{}, query string, args ...interface{}) int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func (suite *ReaperServiceTestSuite) TestSweep_PurgesElapsedUser() {
	user := suite.createUser("+998900000001")
	other := suite.createUser("+998900000002")
	referred := &models.User{Phone: "+998900000003", ReferredByID: &user.ID}
	suite.Require().NoError(suite.db.Create(referred).Error)
	suite.seedOwnedRows(user, other)
	suite.markPurgeable(user)

	suite.reaper.Sweep()

	assert.Equal(suite.T(), int64(0), suite.count(&models.User{}, "id = ?", user.ID))
	assert.Equal(suite.T(), int64(0), suite.count(&models.DailyAssignment{}, "user_id = ?", user.ID))
	assert.Equal(suite.T(), int64(0), suite.count(&models.CompletionRecord{}, "user_id = ?", user.ID))
	assert.Equal(suite.T(), int64(0), suite.count(&models.WithdrawalRequest{}, "user_id = ?", user.ID))
	assert.Equal(suite.T(), int64(0),
		suite.count(&models.ReferralBonusGrant{}, "referrer_id = ? OR referred_id = ?", user.ID, user.ID))

	// No row may keep referencing the purged id.
	assert.Equal(suite.T(), int64(0), suite.count(&models.User{}, "referred_by_id = ?", user.ID))
	assert.Equal(suite.T(), int64(1), suite.count(&models.User{}, "id = ?", referred.ID))
}

func (suite *ReaperServiceTestSuite) TestSweep_LeavesOtherUsersAlone() {
	user := suite.createUser("+998900000001")
	other := suite.createUser("+998900000002")
	suite.seedOwnedRows(user, other)
	suite.seedOwnedRowsReversed(other, user)
	suite.markPurgeable(user)

	suite.reaper.Sweep()

	assert.Equal(suite.T(), int64(1), suite.count(&models.User{}, "id = ?", other.ID))
	assert.Equal(suite.T(), int64(1), suite.count(&models.DailyAssignment{}, "user_id = ?", other.ID))
	assert.Equal(suite.T(), int64(1), suite.count(&models.CompletionRecord{}, "user_id = ?", other.ID))
	assert.Equal(suite.T(), int64(1), suite.count(&models.WithdrawalRequest{}, "user_id = ?", other.ID))
}

// seedOwnedRowsReversed seeds owned rows for the second user without grant
// rows, which seedOwnedRows already created for the pair.
func (suite *ReaperServiceTestSuite) seedOwnedRowsReversed(user, _ *models.User) {
	task := &models.TaskDefinition{Title: "t2", Category: "c2", Reward: 10, Active: true}
	suite.Require().NoError(suite.db.Create(task).Error)

	suite.Require().NoError(suite.db.Create(&models.DailyAssignment{
		UserID: user.ID, DayKey: "2026-03-14", TaskID: task.ID, Category: task.Category, AssignedAt: time.Now(),
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.CompletionRecord{
		UserID: user.ID, TaskID: task.ID, DayKey: "2026-03-14", Category: task.Category, Reward: 10,
	}).Error)
	suite.Require().NoError(suite.db.Create(&models.WithdrawalRequest{
		UserID: user.ID, Amount: 10, Phone: user.Phone, Method: "card",
		Status: models.WithdrawalStatusPending, Reference: "ref2-" + user.Phone,
	}).Error)
}

func (suite *ReaperServiceTestSuite) TestSweep_IgnoresFutureEffectiveDates() {
	user := suite.createUser("+998900000001")

	_, err := suite.accounts.RequestDeletion(user.ID)
	suite.Require().NoError(err)

	suite.reaper.Sweep()

	assert.Equal(suite.T(), int64(1), suite.count(&models.User{}, "id = ?", user.ID))
}

func (suite *ReaperServiceTestSuite) TestRequestDeletion_SetsBothTimestamps() {
	user := suite.createUser("+998900000001")

	effectiveAt, err := suite.accounts.RequestDeletion(user.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), effectiveAt.After(time.Now()))

	var reloaded models.User
	suite.Require().NoError(suite.db.First(&reloaded, user.ID).Error)
	suite.Require().NotNil(reloaded.DeleteRequestedAt)
	suite.Require().NotNil(reloaded.DeleteEffectiveAt)

	// A second request while one is pending conflicts.
	_, err = suite.accounts.RequestDeletion(user.ID)
	assert.ErrorIs(suite.T(), err, ErrDeletionAlreadyRequested)
}

func (suite *ReaperServiceTestSuite) TestCancelDeletion_StopsTheSweep() {
	user := suite.createUser("+998900000001")

	_, err := suite.accounts.RequestDeletion(user.ID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.accounts.CancelDeletion(user.ID))

	var reloaded models.User
	suite.Require().NoError(suite.db.First(&reloaded, user.ID).Error)
	assert.Nil(suite.T(), reloaded.DeleteRequestedAt)
	assert.Nil(suite.T(), reloaded.DeleteEffectiveAt)

	suite.reaper.Sweep()
	assert.Equal(suite.T(), int64(1), suite.count(&models.User{}, "id = ?", user.ID))
}

func (suite *ReaperServiceTestSuite) TestCancelDeletion_WithoutRequestConflicts() {
	user := suite.createUser("+998900000001")
	err := suite.accounts.CancelDeletion(user.ID)
	assert.ErrorIs(suite.T(), err, ErrNoDeletionRequest)
}

func TestReaperServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReaperServiceTestSuite))
}
