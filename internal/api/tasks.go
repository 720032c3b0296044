package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/task"
)

// Submitter starts background processing for a media URL and returns the new
// task id without waiting for anything.
type Submitter interface {
	Submit(url string) string
}

// TaskSource exposes task snapshots for status polling.
type TaskSource interface {
	Get(id string) (task.Task, bool)
}

type TaskHandler struct {
	submitter Submitter
	tasks     TaskSource
	log       zerolog.Logger
}

func NewTaskHandler(submitter Submitter, tasks TaskSource, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{submitter: submitter, tasks: tasks, log: log}
}

type startRequest struct {
	URL string `json:"url"`
}

// Start accepts a media URL and schedules it. The response carries only the
// task id; progress and failures surface through the status endpoint.
func (h *TaskHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		WriteError(w, http.StatusBadRequest, "url is required")
		return
	}

	taskID := h.submitter.Submit(req.URL)
	h.log.Info().Str("task_id", taskID).Str("url", req.URL).Msg("processing started")
	WriteJSON(w, http.StatusOK, map[string]string{"task_id": taskID})
}

// Status returns the current task snapshot.
func (h *TaskHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "task_id")
	t, ok := h.tasks.Get(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "task not found")
		return
	}
	WriteJSON(w, http.StatusOK, t)
}
