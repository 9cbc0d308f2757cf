package services

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/ulugbek-dev/taskearn-api/internal/constants"
	"github.com/ulugbek-dev/taskearn-api/internal/models"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
)

// AllocatorService produces each user's daily task set. Allocation is
// idempotent: once a day's set is full it is frozen and returned unchanged,
// even if the catalog changes later.
type AllocatorService struct {
	catalogRepo repository.CatalogRepository
	assignRepo  repository.AssignmentRepository
	limit       int

	// newRand supplies the draw's random source. The default seeds from
	// (userID, dayKey) so concurrent calls for the same user and day draw
	// the same candidate sequence and collapse onto the same rows through
	// the unique indexes. Tests inject their own source.
	newRand func(userID uint64, dayKey string) *rand.Rand
}

// NewAllocatorService creates a new AllocatorService
func NewAllocatorService(catalogRepo repository.CatalogRepository, assignRepo repository.AssignmentRepository) *AllocatorService {
	return &AllocatorService{
		catalogRepo: catalogRepo,
		assignRepo:  assignRepo,
		limit:       constants.DailyTaskLimit,
		newRand:     dayRand,
	}
}

func dayRand(userID uint64, dayKey string) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", userID, dayKey)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// EnsureAssignments returns the user's assignments for the day, creating
// them on first sight. At most the daily limit, never two of the same
// category; fewer when the catalog cannot supply enough distinct categories.
// Safe to call repeatedly and concurrently.
func (s *AllocatorService) EnsureAssignments(userID uint64, dayKey string) ([]models.DailyAssignment, error) {
	existing, err := s.assignRepo.ListForDay(userID, dayKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	if len(existing) >= s.limit {
		return existing, nil
	}

	usedCategories := make(map[string]bool, len(existing))
	for _, a := range existing {
		usedCategories[a.Category] = true
	}

	catalog, err := s.catalogRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to read task catalog: %w", err)
	}

	rng := s.newRand(userID, dayKey)
	rng.Shuffle(len(catalog), func(i, j int) {
		catalog[i], catalog[j] = catalog[j], catalog[i]
	})

	now := time.Now()
	var picks []models.DailyAssignment
	for _, task := range catalog {
		if len(existing)+len(picks) >= s.limit {
			break
		}
		if usedCategories[task.Category] {
			continue
		}
		usedCategories[task.Category] = true
		picks = append(picks, models.DailyAssignment{
			UserID:     userID,
			DayKey:     dayKey,
			TaskID:     task.ID,
			Category:   task.Category,
			AssignedAt: now,
		})
	}

	if len(picks) > 0 {
		if err := s.assignRepo.CreateIgnoringConflicts(picks); err != nil {
			return nil, fmt.Errorf("failed to create assignments: %w", err)
		}
	}

	// Re-read so racing calls all observe the committed set.
	assignments, err := s.assignRepo.ListForDay(userID, dayKey)
	if err != nil {
		return nil, fmt.Errorf("failed to reload assignments: %w", err)
	}
	return assignments, nil
}
