package thumbnail

import (
	"context"
	"log"
	"time"
)

// PruneJob periodically evicts stale entries from the thumbnail cache.
// It satisfies the scheduler's Job interface.
type PruneJob struct {
	generator *Generator
	maxAge    time.Duration
}

func NewPruneJob(generator *Generator, maxAge time.Duration) *PruneJob {
	return &PruneJob{generator: generator, maxAge: maxAge}
}

func (j *PruneJob) Name() string { return "thumbnail-prune" }

func (j *PruneJob) Run(ctx context.Context) error {
	removed, err := j.generator.Prune(j.maxAge)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("Pruned %d cached thumbnails older than %v", removed, j.maxAge)
	}
	return nil
}
