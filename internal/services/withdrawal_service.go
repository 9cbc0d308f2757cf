package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
	"github.com/ulugbek-dev/taskearn-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount        = errors.New("withdrawal amount must be positive")
	ErrInsufficientBalance  = errors.New("balance does not cover the requested amount")
	ErrWithdrawalNotFound   = errors.New("withdrawal request not found")
	ErrWithdrawalNotPending = errors.New("withdrawal request is not pending")
)

// WithdrawalService validates and records withdrawal requests
type WithdrawalService struct {
	withdrawalRepo repository.WithdrawalRepository
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(withdrawalRepo repository.WithdrawalRepository) *WithdrawalService {
	return &WithdrawalService{withdrawalRepo: withdrawalRepo}
}

// Request debits the amount and records a pending withdrawal atomically
func (s *WithdrawalService) Request(userID uint64, amount int64, phone, method string) (*models.WithdrawalRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	req := &models.WithdrawalRequest{
		UserID:    userID,
		Amount:    amount,
		Phone:     phone,
		Method:    method,
		Status:    models.WithdrawalStatusPending,
		Reference: uuid.NewString(),
	}

	if err := s.withdrawalRepo.CreateWithDebit(req); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return req, nil
}

// List returns the user's withdrawal requests, most recent first
func (s *WithdrawalService) List(userID uint64, params utils.PaginationParams) ([]models.WithdrawalRequest, int64, error) {
	requests, total, err := s.withdrawalRepo.List(userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return requests, total, nil
}

// MarkPaid advances a pending request to paid. Not reachable from
// user-facing routes; the payout operator calls it through the internal
// group after the transfer clears.
func (s *WithdrawalService) MarkPaid(id uint64, receiptRef string) error {
	if _, err := s.withdrawalRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWithdrawalNotFound
		}
		return fmt.Errorf("failed to find withdrawal: %w", err)
	}

	if err := s.withdrawalRepo.MarkPaid(id, receiptRef, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return ErrWithdrawalNotPending
		}
		return fmt.Errorf("failed to mark withdrawal paid: %w", err)
	}
	return nil
}
