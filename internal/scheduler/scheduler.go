package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/BenjiCoder24/climate-anlysis/internal/analysis"
)

// Scheduler periodically reruns the analysis pipeline so the served tables
// track upstream data updates.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *analysis.Service
	interval  time.Duration
}

// New creates a Scheduler that runs the service every interval.
func New(interval time.Duration, service *analysis.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables the refresh.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		log.Println("scheduler: running analysis refresh")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := s.service.Run(ctx); err != nil {
			log.Printf("scheduler: analysis refresh failed: %v", err)
			return
		}
		log.Println("scheduler: completed analysis refresh")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
