package repository

import (
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/database"
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/utils"
	"gorm.io/gorm"
)

// GormWithdrawalRepository is a GORM implementation of WithdrawalRepository
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new WithdrawalRepository
func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// CreateWithDebit debits the balance and records the pending request as one
// transaction. The sufficiency check is the WHERE clause of the debit, so an
// overlapping request for the same user can never push the balance negative.
func (r *GormWithdrawalRepository) CreateWithDebit(req *models.WithdrawalRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND balance >= ?", req.UserID, req.Amount).
			Update("balance", gorm.Expr("balance - ?", req.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}
		return tx.Create(req).Error
	})
}

// FindByID finds a withdrawal request by ID
func (r *GormWithdrawalRepository) FindByID(id uint64) (*models.WithdrawalRequest, error) {
	var req models.WithdrawalRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns a user's withdrawal requests, most recent first
func (r *GormWithdrawalRepository) List(userID uint64, params utils.PaginationParams) ([]models.WithdrawalRequest, int64, error) {
	query := r.db.Model(&models.WithdrawalRequest{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.WithdrawalRequest
	err := query.
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// MarkPaid is the only allowed status transition: pending -> paid
func (r *GormWithdrawalRepository) MarkPaid(id uint64, receiptRef string, now time.Time) error {
	res := r.db.Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", id, models.WithdrawalStatusPending).
		Updates(map[string]interface{}{
			"status":      models.WithdrawalStatusPaid,
			"receipt_ref": receiptRef,
			"paid_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}
