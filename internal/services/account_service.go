package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/repository"
)

var (
	ErrDeletionAlreadyRequested = errors.New("account deletion already requested")
	ErrNoDeletionRequest        = errors.New("no pending deletion request")
)

// AccountService manages the time-delayed account deletion lifecycle
type AccountService struct {
	userRepo repository.UserRepository
	grace    time.Duration
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo repository.UserRepository, grace time.Duration) *AccountService {
	return &AccountService{userRepo: userRepo, grace: grace}
}

// RequestDeletion stamps the request and returns when deletion becomes
// effective. The account stays fully usable until the reaper's sweep.
func (s *AccountService) RequestDeletion(userID uint64) (time.Time, error) {
	now := time.Now()
	effectiveAt := now.Add(s.grace)
	if err := s.userRepo.RequestDeletion(userID, now, effectiveAt); err != nil {
		if errors.Is(err, repository.ErrDeletionRequested) {
			return time.Time{}, ErrDeletionAlreadyRequested
		}
		return time.Time{}, fmt.Errorf("failed to request deletion: %w", err)
	}
	return effectiveAt, nil
}

// CancelDeletion withdraws a deletion request that has not become effective
func (s *AccountService) CancelDeletion(userID uint64) error {
	if err := s.userRepo.CancelDeletion(userID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNoDeletionRequest) {
			return ErrNoDeletionRequest
		}
		return fmt.Errorf("failed to cancel deletion: %w", err)
	}
	return nil
}
