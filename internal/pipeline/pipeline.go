package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/media"
	"github.com/snarg/lingo-engine/internal/metrics"
	"github.com/snarg/lingo-engine/internal/task"
)

// Registry is the task-side surface the pipeline drives.
type Registry interface {
	Register(t task.Task)
	ReportChunkDone(taskID string)
	ReportFailure(taskID, msg string)
}

// Pipeline turns a submitted URL into a background transcript job: resolve
// media, split the duration into chunk windows, and run the windows through a
// bounded worker pool.
type Pipeline struct {
	resolver  media.Resolver
	processor *Processor
	registry  Registry
	span      float64
	workers   int
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// New creates a pipeline. span is the chunk window size in seconds, workers
// the per-task concurrency bound.
func New(resolver media.Resolver, processor *Processor, registry Registry, span float64, workers int, log zerolog.Logger) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		resolver:  resolver,
		processor: processor,
		registry:  registry,
		span:      span,
		workers:   workers,
		log:       log,
	}
}

// Submit starts processing the URL in the background and returns the new task
// id immediately. The call is fire-and-forget: scheduling-time failures are
// only observable through subsequent status polls, never synchronously.
func (pl *Pipeline) Submit(url string) string {
	taskID := uuid.NewString()
	pl.wg.Add(1)
	go pl.run(taskID, url)
	return taskID
}

// Wait blocks until all in-flight tasks have drained. Used on shutdown and
// in tests; it does not cancel anything.
func (pl *Pipeline) Wait() {
	pl.wg.Wait()
}

func (pl *Pipeline) run(taskID, url string) {
	defer pl.wg.Done()

	// Chunks are not cancellable once dispatched; the background job owns
	// its own lifetime.
	ctx := context.Background()
	log := pl.log.With().Str("task_id", taskID).Logger()

	m, err := pl.resolver.Resolve(ctx, url)
	if err != nil {
		// Register the task directly in failed state: the record must exist
		// before anything reads it, and nothing was scheduled yet.
		pl.registry.Register(task.Task{
			ID:        taskID,
			Status:    task.StatusFailed,
			Error:     err.Error(),
			CreatedAt: time.Now().UTC(),
		})
		log.Warn().Err(err).Str("url", url).Msg("media resolution failed")
		return
	}

	windows := SplitWindows(m.Duration, pl.span)

	// Registration happens-before any chunk dispatch, so no completion
	// report can race ahead of the task record.
	pl.registry.Register(task.Task{
		ID:          taskID,
		MediaID:     m.ID,
		Title:       m.Title,
		TotalChunks: len(windows),
		CreatedAt:   time.Now().UTC(),
	})
	metrics.TasksStartedTotal.Inc()

	if len(windows) == 0 {
		return
	}

	log.Info().
		Str("media_id", m.ID).
		Float64("duration", m.Duration).
		Int("chunks", len(windows)).
		Int("workers", pl.workers).
		Msg("dispatching chunks")

	jobs := make(chan Window)
	var wg sync.WaitGroup
	for i := 0; i < pl.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range jobs {
				pl.processor.Process(ctx, taskID, m, w)
			}
		}()
	}
	for _, w := range windows {
		jobs <- w
	}
	close(jobs)
	wg.Wait()
}
