package services

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(s *suite.Suite) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.AutoMigrate(
		&models.User{},
		&models.TaskDefinition{},
		&models.DailyAssignment{},
		&models.CompletionRecord{},
		&models.ReferralBonusGrant{},
		&models.WithdrawalRequest{},
	)
	s.Require().NoError(err)
	return db
}

func closeTestDB(s *suite.Suite, db *gorm.DB) {
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

// AllocatorServiceTestSuite defines the test suite for AllocatorService
type AllocatorServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	allocator *AllocatorService
}

func (suite *AllocatorServiceTestSuite) SetupTest() {
	suite.db = newTestDB(&suite.Suite)
	suite.allocator = NewAllocatorService(
		repository.NewCatalogRepository(suite.db),
		repository.NewAssignmentRepository(suite.db),
	)
}

func (suite *AllocatorServiceTestSuite) TearDownTest() {
	closeTestDB(&suite.Suite, suite.db)
}

func (suite *AllocatorServiceTestSuite) seedCatalog(categories int, perCategory int) {
	for c := 0; c < categories; c++ {
		for i := 0; i < perCategory; i++ {
			task := models.TaskDefinition{
				Title:    fmt.Sprintf("task-%d-%d", c, i),
				Category: fmt.Sprintf("category-%d", c),
				Reward:   50,
				Active:   true,
			}
			suite.Require().NoError(suite.db.Create(&task).Error)
		}
	}
}

func (suite *AllocatorServiceTestSuite) seedUser() *models.User {
	user := &models.User{Phone: "+998900000001"}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *AllocatorServiceTestSuite) TestLimitAndDistinctCategories() {
	suite.seedCatalog(8, 3)
	user := suite.seedUser()

	assignments, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	assert.Len(suite.T(), assignments, 5)
	seen := make(map[string]bool)
	for _, a := range assignments {
		assert.False(suite.T(), seen[a.Category], "duplicate category %s", a.Category)
		seen[a.Category] = true
	}
}

func (suite *AllocatorServiceTestSuite) TestIdempotent() {
	suite.seedCatalog(8, 2)
	user := suite.seedUser()

	first, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)
	second, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	suite.Require().Len(second, len(first))
	for i := range first {
		assert.Equal(suite.T(), first[i].ID, second[i].ID)
		assert.Equal(suite.T(), first[i].TaskID, second[i].TaskID)
	}
}

func (suite *AllocatorServiceTestSuite) TestFrozenAfterCatalogChange() {
	suite.seedCatalog(8, 1)
	user := suite.seedUser()

	first, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	// Deactivate the whole catalog; a full allocation must stay frozen.
	suite.Require().NoError(
		suite.db.Model(&models.TaskDefinition{}).Where("1 = 1").Update("active", false).Error)

	second, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	suite.Require().Len(second, len(first))
	for i := range first {
		assert.Equal(suite.T(), first[i].TaskID, second[i].TaskID)
	}
}

func (suite *AllocatorServiceTestSuite) TestFewerWhenCategoriesExhausted() {
	suite.seedCatalog(3, 4)
	user := suite.seedUser()

	assignments, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	// Never a duplicate category, never an error: just fewer tasks.
	assert.Len(suite.T(), assignments, 3)
}

func (suite *AllocatorServiceTestSuite) TestSkipsInactiveTasks() {
	suite.seedCatalog(6, 1)
	suite.Require().NoError(
		suite.db.Model(&models.TaskDefinition{}).
			Where("category IN ?", []string{"category-0", "category-1"}).
			Update("active", false).Error)
	user := suite.seedUser()

	assignments, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	assert.Len(suite.T(), assignments, 4)
	for _, a := range assignments {
		assert.NotContains(suite.T(), []string{"category-0", "category-1"}, a.Category)
	}
}

func (suite *AllocatorServiceTestSuite) TestDeterministicDraw() {
	suite.seedCatalog(10, 2)
	user := suite.seedUser()

	suite.allocator.newRand = func(uint64, string) *rand.Rand {
		return rand.New(rand.NewSource(42))
	}

	first, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	// Wipe the day and re-draw with the same seed: the picks must repeat.
	suite.Require().NoError(
		suite.db.Where("user_id = ?", user.ID).Delete(&models.DailyAssignment{}).Error)

	second, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)

	suite.Require().Len(second, len(first))
	for i := range first {
		assert.Equal(suite.T(), first[i].TaskID, second[i].TaskID)
	}
}

func (suite *AllocatorServiceTestSuite) TestDifferentDaysAllocateIndependently() {
	suite.seedCatalog(8, 1)
	user := suite.seedUser()

	day1, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-14")
	suite.Require().NoError(err)
	day2, err := suite.allocator.EnsureAssignments(user.ID, "2026-03-15")
	suite.Require().NoError(err)

	assert.Len(suite.T(), day1, 5)
	assert.Len(suite.T(), day2, 5)
	for _, a := range day2 {
		assert.Equal(suite.T(), "2026-03-15", a.DayKey)
	}
}

func TestAllocatorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocatorServiceTestSuite))
}
