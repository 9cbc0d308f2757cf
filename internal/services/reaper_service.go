package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
)

// ReaperService purges accounts whose deletion grace period has elapsed.
// Runs as a periodic background job, independent of request traffic.
type ReaperService struct {
	userRepo  repository.UserRepository
	interval  time.Duration
	scheduler gocron.Scheduler
}

// NewReaperService creates a new ReaperService
func NewReaperService(userRepo repository.UserRepository, interval time.Duration) *ReaperService {
	return &ReaperService{userRepo: userRepo, interval: interval}
}

// Start schedules the periodic sweep
func (s *ReaperService) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.Sweep),
	); err != nil {
		return err
	}
	sched.Start()
	s.scheduler = sched
	log.Printf("[Reaper] Sweeping every %s", s.interval)
	return nil
}

// Stop shuts the scheduler down
func (s *ReaperService) Stop() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}

// Sweep purges every user past their deletion-effective timestamp. Each
// purge is its own transaction so one failing account does not block the
// rest.
func (s *ReaperService) Sweep() {
	users, err := s.userRepo.ListPurgeable(time.Now())
	if err != nil {
		log.Printf("[Reaper] DB error: %v", err)
		return
	}

	for _, user := range users {
		if err := s.userRepo.Purge(user.ID); err != nil {
			log.Printf("[Reaper] Failed to purge user %d: %v", user.ID, err)
			continue
		}
		log.Printf("[Reaper] Purged user %d", user.ID)
	}
}
