package repository

import (
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReferralRepository is a GORM implementation of ReferralRepository
type GormReferralRepository struct {
	db *gorm.DB
}

// NewReferralRepository creates a new ReferralRepository
func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &GormReferralRepository{db: db}
}

// GrantOnce pays the referral bonus at most once per (referrer, referred)
// pair. The grant row is inserted under the pair's unique index; when the
// insert is absorbed by a pre-existing row the credit is skipped, making the
// row itself the single source of truth for "has this referral been paid".
func (r *GormReferralRepository) GrantOnce(referrerID, referredID uint64, amount int64) (bool, error) {
	granted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		grant := models.ReferralBonusGrant{
			ReferrerID: referrerID,
			ReferredID: referredID,
			Amount:     amount,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already granted, absorb silently.
			return nil
		}
		granted = true
		return tx.Model(&models.User{}).
			Where("id = ?", referrerID).
			Update("bonus_balance", gorm.Expr("bonus_balance + ?", amount)).Error
	})
	if err != nil {
		return false, err
	}
	return granted, nil
}

// CountReferred counts users referred by the given user
func (r *GormReferralRepository) CountReferred(referrerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("referred_by_id = ?", referrerID).
		Count(&count).Error
	return count, err
}

// RedeemBlock moves one redemption block from bonus balance to spendable
// balance. The threshold check rides in the WHERE clause of the same UPDATE
// that performs the move.
func (r *GormReferralRepository) RedeemBlock(userID uint64, block int64) error {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND bonus_balance >= ?", userID, block).
		Updates(map[string]interface{}{
			"bonus_balance": gorm.Expr("bonus_balance - ?", block),
			"balance":       gorm.Expr("balance + ?", block),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBonusBelowThreshold
	}
	return nil
}
