package database

import (
	"context"
	"fmt"
	"time"
)

// SentenceRow is the input for inserting one transcript sentence.
type SentenceRow struct {
	ID                 string
	TaskID             string
	English            string
	TranslationHindi   string
	PronunciationHindi string
	StartTime          string // formatted HH:MM:SS
	EndTime            string
	StartTimeFloat     float64 // raw seconds, used for ordering
	EndTimeFloat       float64
}

// SentenceAPI is the sentence representation for API responses.
type SentenceAPI struct {
	ID                 string    `json:"key"`
	TaskID             string    `json:"task_id"`
	English            string    `json:"english"`
	TranslationHindi   string    `json:"translation_hindi"`
	PronunciationHindi string    `json:"pronunciation_hindi"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	StartTimeFloat     float64   `json:"start_time_float"`
	CreatedAt          time.Time `json:"created_at"`
}

// InsertSentence writes one sentence record. Each write is independent; a
// failed insert affects only that sentence.
func (db *DB) InsertSentence(ctx context.Context, row *SentenceRow) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO sentences (
			id, task_id, english, translation_hindi, pronunciation_hindi,
			start_time, end_time, start_time_float, end_time_float
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		row.ID, row.TaskID, row.English, row.TranslationHindi, row.PronunciationHindi,
		row.StartTime, row.EndTime, row.StartTimeFloat, row.EndTimeFloat,
	)
	if err != nil {
		return fmt.Errorf("insert sentence: %w", err)
	}
	return nil
}

// ListSentences returns up to limit sentences for a task, ordered by numeric
// start time (id breaks ties), strictly after the record identified by
// afterKey when one is given. The returned cursor is empty once the
// currently-available results are exhausted; more may appear later while the
// task is still processing.
func (db *DB) ListSentences(ctx context.Context, taskID, afterKey string, limit int) ([]SentenceAPI, string, error) {
	query := `
		SELECT id, task_id, english, translation_hindi, pronunciation_hindi,
			start_time, end_time, start_time_float, created_at
		FROM sentences
		WHERE task_id = $1
	`
	args := []any{taskID}

	if afterKey != "" {
		cur, err := DecodeCursor(afterKey)
		if err != nil {
			return nil, "", err
		}
		query += ` AND (start_time_float, id) > ($2, $3::uuid)`
		args = append(args, cur.StartTime, cur.ID)
	}

	query += fmt.Sprintf(` ORDER BY start_time_float, id LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("list sentences: %w", err)
	}
	defer rows.Close()

	var result []SentenceAPI
	for rows.Next() {
		var s SentenceAPI
		if err := rows.Scan(
			&s.ID, &s.TaskID, &s.English, &s.TranslationHindi, &s.PronunciationHindi,
			&s.StartTime, &s.EndTime, &s.StartTimeFloat, &s.CreatedAt,
		); err != nil {
			return nil, "", err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	if result == nil {
		result = []SentenceAPI{}
	}

	next := ""
	if len(result) == limit {
		last := result[len(result)-1]
		next = EncodeCursor(last.StartTimeFloat, last.ID)
	}
	return result, next, nil
}
