package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/task"
)

type fakeSubmitter struct {
	lastURL string
	id      string
}

func (f *fakeSubmitter) Submit(url string) string {
	f.lastURL = url
	return f.id
}

type fakeTaskSource struct {
	tasks map[string]task.Task
}

func (f *fakeTaskSource) Get(id string) (task.Task, bool) {
	t, ok := f.tasks[id]
	return t, ok
}

func newTaskRouter(h *TaskHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/start_processing", h.Start)
	r.Get("/api/task_status/{task_id}", h.Status)
	return r
}

func TestStartProcessing(t *testing.T) {
	sub := &fakeSubmitter{id: "abc-123"}
	h := NewTaskHandler(sub, &fakeTaskSource{}, zerolog.Nop())
	router := newTaskRouter(h)

	req := httptest.NewRequest("POST", "/api/start_processing",
		strings.NewReader(`{"url":"https://example.com/watch?v=xyz"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["task_id"] != "abc-123" {
		t.Errorf("task_id = %q", resp["task_id"])
	}
	if sub.lastURL != "https://example.com/watch?v=xyz" {
		t.Errorf("submitted url = %q", sub.lastURL)
	}
}

func TestStartProcessing_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty_body", ``},
		{"not_json", `not json`},
		{"missing_url", `{}`},
		{"blank_url", `{"url":"   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTaskHandler(&fakeSubmitter{id: "x"}, &fakeTaskSource{}, zerolog.Nop())
			req := httptest.NewRequest("POST", "/api/start_processing", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newTaskRouter(h).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestTaskStatus(t *testing.T) {
	source := &fakeTaskSource{tasks: map[string]task.Task{
		"t1": {
			ID:              "t1",
			MediaID:         "vid",
			Status:          task.StatusProcessing,
			ProcessedChunks: 2,
			TotalChunks:     5,
		},
	}}
	h := NewTaskHandler(&fakeSubmitter{}, source, zerolog.Nop())

	req := httptest.NewRequest("GET", "/api/task_status/t1", nil)
	rec := httptest.NewRecorder()
	newTaskRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got task.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "t1" || got.Status != task.StatusProcessing {
		t.Errorf("got %+v", got)
	}
	if got.ProcessedChunks != 2 || got.TotalChunks != 5 {
		t.Errorf("progress = %d/%d", got.ProcessedChunks, got.TotalChunks)
	}
}

func TestTaskStatus_NotFound(t *testing.T) {
	h := NewTaskHandler(&fakeSubmitter{}, &fakeTaskSource{}, zerolog.Nop())

	req := httptest.NewRequest("GET", "/api/task_status/nope", nil)
	rec := httptest.NewRecorder()
	newTaskRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error message in body")
	}
}
