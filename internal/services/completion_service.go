package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/constants"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
	"github.com/ulugbek-dev/taskearn-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAnswerTooShort   = errors.New("answer is too short")
	ErrNotAssignedToday = errors.New("task is not assigned to the user today")
	ErrAlreadyCompleted = errors.New("task is already completed today")
	ErrTaskUnavailable  = errors.New("task is no longer available")
)

// CompletionService validates and commits task completions
type CompletionService struct {
	assignRepo     repository.AssignmentRepository
	completionRepo repository.CompletionRepository
	catalogRepo    repository.CatalogRepository
	referrals      *ReferralService
	loc            *time.Location
}

// NewCompletionService creates a new CompletionService
func NewCompletionService(
	assignRepo repository.AssignmentRepository,
	completionRepo repository.CompletionRepository,
	catalogRepo repository.CatalogRepository,
	referrals *ReferralService,
	loc *time.Location,
) *CompletionService {
	return &CompletionService{
		assignRepo:     assignRepo,
		completionRepo: completionRepo,
		catalogRepo:    catalogRepo,
		referrals:      referrals,
		loc:            loc,
	}
}

// Complete commits one task completion and returns the new balance.
// Rejections, in order: answer too short, not assigned today, already
// completed, task inactive. The commit itself is a single transaction in
// the completion repository, so a crash can never leave a credited balance
// without its audit record.
func (s *CompletionService) Complete(userID, taskID uint64, answer string) (int64, error) {
	if len(strings.TrimSpace(answer)) < constants.MinAnswerLength {
		return 0, ErrAnswerTooShort
	}

	now := time.Now()
	dayKey := utils.DayKey(now, s.loc)

	assignment, err := s.assignRepo.FindForDay(userID, taskID, dayKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotAssignedToday
		}
		return 0, fmt.Errorf("failed to find assignment: %w", err)
	}
	if assignment.CompletedAt != nil {
		return 0, ErrAlreadyCompleted
	}

	task, err := s.catalogRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTaskUnavailable
		}
		return 0, fmt.Errorf("failed to find task: %w", err)
	}
	if !task.Active {
		return 0, ErrTaskUnavailable
	}

	balance, err := s.completionRepo.Complete(assignment, task.Reward, answer, now)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCompleted) {
			return 0, ErrAlreadyCompleted
		}
		return 0, fmt.Errorf("failed to commit completion: %w", err)
	}

	// The completion is committed; the grant-pair unique index keeps the
	// bonus exactly-once even if this hook runs again on a retry.
	if err := s.referrals.OnFirstCompletion(userID); err != nil {
		log.Printf("referral bonus hook failed for user %d: %v", userID, err)
	}

	return balance, nil
}

// Remaining counts the user's incomplete assignments for the given day
func (s *CompletionService) Remaining(userID uint64, dayKey string) (int, error) {
	assignments, err := s.assignRepo.ListForDay(userID, dayKey)
	if err != nil {
		return 0, fmt.Errorf("failed to list assignments: %w", err)
	}
	remaining := 0
	for _, a := range assignments {
		if a.CompletedAt == nil {
			remaining++
		}
	}
	return remaining, nil
}

// History returns the user's most recent completion records
func (s *CompletionService) History(userID uint64) ([]CompletionHistoryItem, error) {
	records, err := s.completionRepo.List(userID, constants.HistoryPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	items := make([]CompletionHistoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, CompletionHistoryItem{
			CompletedAt: rec.CreatedAt,
			TaskID:      rec.TaskID,
			Category:    rec.Category,
			Reward:      rec.Reward,
		})
	}
	return items, nil
}

// CompletionHistoryItem is one entry of the completion history
type CompletionHistoryItem struct {
	CompletedAt time.Time `json:"completed_at"`
	TaskID      uint64    `json:"task_id"`
	Category    string    `json:"category"`
	Reward      int64     `json:"reward"`
}
