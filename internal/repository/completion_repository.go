package repository

import (
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"gorm.io/gorm"
)

// GormCompletionRepository is a GORM implementation of CompletionRepository
type GormCompletionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new CompletionRepository
func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &GormCompletionRepository{db: db}
}

// Complete commits one task completion as a single transaction: the guarded
// update of the completed flag, the audit record insert and the balance
// credit all succeed or all roll back. The completed-at guard lives in the
// UPDATE's WHERE clause, so the check and the mutation are one statement and
// a racing duplicate loses cleanly with zero rows affected.
func (r *GormCompletionRepository) Complete(assignment *models.DailyAssignment, reward int64, answer string, now time.Time) (int64, error) {
	var balance int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DailyAssignment{}).
			Where("id = ? AND completed_at IS NULL", assignment.ID).
			Updates(map[string]interface{}{
				"completed_at": now,
				"answer":       answer,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCompleted
		}

		record := models.CompletionRecord{
			UserID:   assignment.UserID,
			TaskID:   assignment.TaskID,
			DayKey:   assignment.DayKey,
			Category: assignment.Category,
			Reward:   reward,
			Answer:   answer,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", assignment.UserID).
			Update("balance", gorm.Expr("balance + ?", reward)).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Select("balance").
			Where("id = ?", assignment.UserID).
			Scan(&balance).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// List returns a user's completion records, most recent first
func (r *GormCompletionRepository) List(userID uint64, limit int) ([]models.CompletionRecord, error) {
	var records []models.CompletionRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns a user's total number of completions
func (r *GormCompletionRepository) Count(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.CompletionRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
