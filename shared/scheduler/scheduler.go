package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of periodic maintenance work, such as pruning the
// thumbnail cache.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs jobs on cron schedules without overlapping runs of
// the same job.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		// Prevent overlapping runs
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Add registers a job under the given cron expression. The job receives
// ctx on each run so it stops early during shutdown.
func (s *Scheduler) Add(ctx context.Context, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		startTime := time.Now()
		if err := job.Run(ctx); err != nil {
			log.Printf("Error running scheduled job %s: %v", job.Name(), err)
			return
		}
		log.Printf("Scheduled job %s completed (took %v)", job.Name(), time.Since(startTime))
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", job.Name(), err)
	}

	log.Printf("Scheduled job %s with schedule: %s", job.Name(), schedule)
	return nil
}

// Start begins executing registered jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
