package task

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/metrics"
)

// Registry owns task state and serializes concurrent progress updates.
//
// The registry map is guarded by an RWMutex; each task carries its own mutex
// so the increment-then-compare in ReportChunkDone is a single serialized
// operation per task. Two workers can never read the same stale counter.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*taskState
	log   zerolog.Logger
}

type taskState struct {
	mu sync.Mutex
	t  Task
}

// NewRegistry creates an empty task registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		tasks: make(map[string]*taskState),
		log:   log,
	}
}

// Register creates the task record. It must be called before any chunk is
// dispatched so a completion report can never race ahead of the record's
// existence. Zero-value fields are defaulted: status to processing,
// created_at to now. A task with zero total chunks has nothing left to do
// and is completed on the spot.
func (r *Registry) Register(t Task) {
	if t.Status == "" {
		t.Status = StatusProcessing
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.ProcessedChunks = 0

	if t.Status == StatusProcessing && t.TotalChunks == 0 {
		t.Status = StatusCompleted
		metrics.TasksCompletedTotal.Inc()
	}
	if t.Status == StatusFailed {
		metrics.TasksFailedTotal.Inc()
	}

	r.mu.Lock()
	r.tasks[t.ID] = &taskState{t: t}
	r.mu.Unlock()

	r.log.Info().
		Str("task_id", t.ID).
		Str("media_id", t.MediaID).
		Int("total_chunks", t.TotalChunks).
		Str("status", string(t.Status)).
		Msg("task registered")
}

// ReportChunkDone records one chunk completion. The increment and the
// completion check happen under the task's lock. Reports against a failed
// task are counted but never resurrect a completed status: failed is sticky.
// Reports for unknown tasks are ignored.
func (r *Registry) ReportChunkDone(id string) {
	st := r.get(id)
	if st == nil {
		r.log.Warn().Str("task_id", id).Msg("chunk completion for unknown task ignored")
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.t.ProcessedChunks < st.t.TotalChunks {
		st.t.ProcessedChunks++
	}
	if st.t.Status == StatusProcessing && st.t.ProcessedChunks == st.t.TotalChunks {
		st.t.Status = StatusCompleted
		metrics.TasksCompletedTotal.Inc()
		r.log.Info().
			Str("task_id", id).
			Int("chunks", st.t.TotalChunks).
			Msg("task completed")
	}
}

// ReportFailure marks the task failed with the given message. Failure is
// terminal: a second failure report or any later chunk completion leaves the
// status untouched. Calling it for a task that already completed is a no-op.
func (r *Registry) ReportFailure(id, msg string) {
	st := r.get(id)
	if st == nil {
		r.log.Warn().Str("task_id", id).Str("error", msg).Msg("failure report for unknown task ignored")
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.t.Status != StatusProcessing {
		return
	}
	st.t.Status = StatusFailed
	st.t.Error = msg
	metrics.TasksFailedTotal.Inc()
	r.log.Warn().Str("task_id", id).Str("error", msg).Msg("task failed")
}

// Get returns a consistent snapshot of the task: the counter and status are
// read under the same lock, so no torn counter-and-status pair is observable.
func (r *Registry) Get(id string) (Task, bool) {
	st := r.get(id)
	if st == nil {
		return Task{}, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.t, true
}

// ActiveTasks reports how many tasks are currently processing.
func (r *Registry) ActiveTasks() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, st := range r.tasks {
		st.mu.Lock()
		if st.t.Status == StatusProcessing {
			n++
		}
		st.mu.Unlock()
	}
	return n
}

func (r *Registry) get(id string) *taskState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tasks[id]
}
