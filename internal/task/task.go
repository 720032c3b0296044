package task

import "time"

// Status is the lifecycle state of a transcript task. There is no pending
// state: a task is created already processing.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Task is a snapshot of one transcript-generation job for a single media source.
type Task struct {
	ID              string    `json:"task_id"`
	MediaID         string    `json:"media_id"`
	Title           string    `json:"title,omitempty"`
	Status          Status    `json:"status"`
	ProcessedChunks int       `json:"processed_chunks"`
	TotalChunks     int       `json:"total_chunks"`
	CreatedAt       time.Time `json:"created_at"`
	Error           string    `json:"error,omitempty"`
}
