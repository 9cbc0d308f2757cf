package repository

import (
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// ListForDay returns a user's assignments for one day key, oldest first
func (r *GormAssignmentRepository) ListForDay(userID uint64, dayKey string) ([]models.DailyAssignment, error) {
	var assignments []models.DailyAssignment
	err := r.db.
		Preload("Task").
		Where("user_id = ? AND day_key = ?", userID, dayKey).
		Order("id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindForDay finds a single (user, dayKey, task) assignment
func (r *GormAssignmentRepository) FindForDay(userID, taskID uint64, dayKey string) (*models.DailyAssignment, error) {
	var assignment models.DailyAssignment
	err := r.db.
		Where("user_id = ? AND day_key = ? AND task_id = ?", userID, dayKey, taskID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CreateIgnoringConflicts inserts assignments with idempotent semantics:
// rows colliding with either unique index are dropped, not errors.
func (r *GormAssignmentRepository) CreateIgnoringConflicts(assignments []models.DailyAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}
