package repository

import (
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestDeletion stamps both deletion timestamps if no request is pending
func (r *GormUserRepository) RequestDeletion(userID uint64, requestedAt, effectiveAt time.Time) error {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND delete_requested_at IS NULL", userID).
		Updates(map[string]interface{}{
			"delete_requested_at": requestedAt,
			"delete_effective_at": effectiveAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDeletionRequested
	}
	return nil
}

// CancelDeletion clears a deletion request that has not become effective yet
func (r *GormUserRepository) CancelDeletion(userID uint64, now time.Time) error {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND delete_requested_at IS NOT NULL AND delete_effective_at > ?", userID, now).
		Updates(map[string]interface{}{
			"delete_requested_at": nil,
			"delete_effective_at": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoDeletionRequest
	}
	return nil
}

// ListPurgeable returns users whose deletion grace period has elapsed
func (r *GormUserRepository) ListPurgeable(now time.Time) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("delete_effective_at IS NOT NULL AND delete_effective_at <= ?", now).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Purge removes every row the user owns, then the user row itself. Grant
// rows have two owning foreign keys, so both sides are swept explicitly
// instead of relying on a cascade.
func (r *GormUserRepository) Purge(userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DailyAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CompletionRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WithdrawalRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("referrer_id = ? OR referred_id = ?", userID, userID).
			Delete(&models.ReferralBonusGrant{}).Error; err != nil {
			return err
		}
		// Detach users this account referred so no row keeps pointing at
		// the purged id.
		if err := tx.Model(&models.User{}).
			Where("referred_by_id = ?", userID).
			Update("referred_by_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
