package repository

import (
	"errors"
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/utils"
)

// Guard failures surfaced by transactional repository methods. Services
// translate these into their own sentinel errors.
var (
	ErrAlreadyCompleted    = errors.New("assignment is already completed")
	ErrInsufficientBalance = errors.New("balance is insufficient")
	ErrBonusBelowThreshold = errors.New("bonus balance is below the redemption block")
	ErrNotPending          = errors.New("withdrawal is not pending")
	ErrDeletionRequested   = errors.New("deletion already requested")
	ErrNoDeletionRequest   = errors.New("no pending deletion request")
)

// CatalogRepository reads task definitions. The catalog is reference data
// owned by an external collaborator; this engine never writes it.
type CatalogRepository interface {
	// ListActive returns all active task definitions
	ListActive() ([]models.TaskDefinition, error)

	// FindByID finds a task definition by ID
	FindByID(id uint64) (*models.TaskDefinition, error)
}

// AssignmentRepository defines the interface for daily assignment data access
type AssignmentRepository interface {
	// ListForDay returns a user's assignments for one day key, oldest first
	ListForDay(userID uint64, dayKey string) ([]models.DailyAssignment, error)

	// FindForDay finds a single (user, dayKey, task) assignment
	FindForDay(userID, taskID uint64, dayKey string) (*models.DailyAssignment, error)

	// CreateIgnoringConflicts inserts assignments, silently absorbing rows
	// that collide with the (user, day, task) or (user, day, category)
	// unique indexes. Racing allocation calls converge instead of failing.
	CreateIgnoringConflicts(assignments []models.DailyAssignment) error
}

// CompletionRepository defines the interface for the completion ledger
type CompletionRepository interface {
	// Complete marks the assignment completed, appends the audit record and
	// credits the reward to the user's balance as one transaction. Returns
	// the post-commit balance. Returns ErrAlreadyCompleted when the
	// assignment's completed flag was already set.
	Complete(assignment *models.DailyAssignment, reward int64, answer string, now time.Time) (int64, error)

	// List returns a user's completion records, most recent first
	List(userID uint64, limit int) ([]models.CompletionRecord, error)

	// Count returns a user's total number of completions
	Count(userID uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// RequestDeletion stamps the deletion-request and deletion-effective
	// timestamps. Returns ErrDeletionRequested when a request is pending.
	RequestDeletion(userID uint64, requestedAt, effectiveAt time.Time) error

	// CancelDeletion clears a pending deletion request. Returns
	// ErrNoDeletionRequest when none is pending as of now.
	CancelDeletion(userID uint64, now time.Time) error

	// ListPurgeable returns users whose deletion grace period has elapsed
	ListPurgeable(now time.Time) ([]models.User, error)

	// Purge deletes all rows owned by the user, then the user row, in one
	// transaction
	Purge(userID uint64) error
}

// ReferralRepository defines the interface for referral bonus data access
type ReferralRepository interface {
	// GrantOnce inserts the (referrer, referred) grant and credits the
	// referrer's bonus balance in one transaction. A pre-existing grant is
	// absorbed: no credit, no error, granted=false.
	GrantOnce(referrerID, referredID uint64, amount int64) (granted bool, err error)

	// CountReferred counts users referred by the given user
	CountReferred(referrerID uint64) (int64, error)

	// RedeemBlock atomically moves one redemption block from the user's
	// bonus balance to the spendable balance. Returns
	// ErrBonusBelowThreshold when the bonus balance does not cover it.
	RedeemBlock(userID uint64, block int64) error
}

// WithdrawalRepository defines the interface for withdrawal data access
type WithdrawalRepository interface {
	// CreateWithDebit debits the user's balance and inserts the pending
	// request as one transaction. Returns ErrInsufficientBalance when the
	// balance does not cover the amount.
	CreateWithDebit(req *models.WithdrawalRequest) error

	// FindByID finds a withdrawal request by ID
	FindByID(id uint64) (*models.WithdrawalRequest, error)

	// List returns a user's withdrawal requests, most recent first
	List(userID uint64, params utils.PaginationParams) ([]models.WithdrawalRequest, int64, error)

	// MarkPaid advances a pending request to paid and records the receipt
	// reference. Returns ErrNotPending when the request is already paid.
	MarkPaid(id uint64, receiptRef string, now time.Time) error
}
