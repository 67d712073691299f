package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"taskforge/pkg/logger"
)

// Scheduler wraps gocron for the background jobs this service runs. Jobs
// are singleton per id: a run that overlaps its next slot suppresses it.
type Scheduler struct {
	scheduler *gocron.Scheduler
}

func New() *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{scheduler: s}
}

// Daily registers a job at the given "HH:MM" UTC wall-clock time.
func (s *Scheduler) Daily(id, at string, job func()) error {
	_, err := s.scheduler.Every(1).Day().At(at).Tag(id).Do(func() {
		logger.Info("Scheduled job started", "job", id)
		job()
	})
	if err != nil {
		return err
	}
	logger.Info("Scheduled job registered", "job", id, "at", at)
	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
	logger.Info("Scheduler started")
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	logger.Info("Scheduler stopped")
}
