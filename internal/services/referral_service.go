package services

import (
	"errors"
	"fmt"

	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
)

var ErrBonusThresholdNotMet = errors.New("bonus balance is below the redemption block")

// ReferralService pays the one-time referral bonus and handles bonus
// redemption. The bonus amount and the redemption block size are
// configuration, not invariants.
type ReferralService struct {
	userRepo       repository.UserRepository
	completionRepo repository.CompletionRepository
	referralRepo   repository.ReferralRepository
	bonusAmount    int64
	redeemBlock    int64
}

// NewReferralService creates a new ReferralService
func NewReferralService(
	userRepo repository.UserRepository,
	completionRepo repository.CompletionRepository,
	referralRepo repository.ReferralRepository,
	bonusAmount, redeemBlock int64,
) *ReferralService {
	return &ReferralService{
		userRepo:       userRepo,
		completionRepo: completionRepo,
		referralRepo:   referralRepo,
		bonusAmount:    bonusAmount,
		redeemBlock:    redeemBlock,
	}
}

// OnFirstCompletion credits the referrer's bonus balance when this user's
// first-ever completion lands. Later completions and retried requests are
// no-ops: the count gate skips them and the grant-pair unique index absorbs
// any that slip through.
func (s *ReferralService) OnFirstCompletion(userID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.ReferredByID == nil {
		return nil
	}

	count, err := s.completionRepo.Count(userID)
	if err != nil {
		return fmt.Errorf("failed to count completions: %w", err)
	}
	if count != 1 {
		return nil
	}

	if _, err := s.referralRepo.GrantOnce(*user.ReferredByID, userID, s.bonusAmount); err != nil {
		return fmt.Errorf("failed to grant referral bonus: %w", err)
	}
	return nil
}

// ReferralStatus summarizes a user's referral standing
type ReferralStatus struct {
	ReferralCount int64 `json:"referral_count"`
	BonusBalance  int64 `json:"bonus_balance"`
}

// Status returns the user's referral count and bonus balance
func (s *ReferralService) Status(userID uint64) (*ReferralStatus, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	count, err := s.referralRepo.CountReferred(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}
	return &ReferralStatus{
		ReferralCount: count,
		BonusBalance:  user.BonusBalance,
	}, nil
}

// Redeem moves one redemption block from bonus balance to spendable balance
// and returns the updated user
func (s *ReferralService) Redeem(userID uint64) (*models.User, error) {
	if err := s.referralRepo.RedeemBlock(userID, s.redeemBlock); err != nil {
		if errors.Is(err, repository.ErrBonusBelowThreshold) {
			return nil, ErrBonusThresholdNotMet
		}
		return nil, fmt.Errorf("failed to redeem bonus: %w", err)
	}
	return s.userRepo.FindByID(userID)
}
