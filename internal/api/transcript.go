package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/database"
)

// SentenceSource serves one keyset page of transcript sentences.
type SentenceSource interface {
	ListSentences(ctx context.Context, taskID, afterKey string, limit int) ([]database.SentenceAPI, string, error)
}

type TranscriptHandler struct {
	sentences SentenceSource
	pageSize  int
	log       zerolog.Logger
}

func NewTranscriptHandler(sentences SentenceSource, pageSize int, log zerolog.Logger) *TranscriptHandler {
	return &TranscriptHandler{sentences: sentences, pageSize: pageSize, log: log}
}

type transcriptResponse struct {
	Sentences []database.SentenceAPI `json:"sentences"`
	LastKey   *string                `json:"last_key"`
}

// Page returns one fixed-size page of sentences ordered by start time. The
// client resumes with last_key; a null last_key means the currently available
// results are exhausted, which for a still-processing task is not final.
func (h *TranscriptHandler) Page(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "task_id")
	afterKey := r.URL.Query().Get("last_key")

	sentences, next, err := h.sentences.ListSentences(r.Context(), taskID, afterKey, h.pageSize)
	if err != nil {
		if database.IsBadCursor(err) {
			WriteError(w, http.StatusBadRequest, "invalid last_key")
			return
		}
		h.log.Error().Err(err).Str("task_id", taskID).Msg("transcript page query failed")
		WriteError(w, http.StatusInternalServerError, "failed to load transcript")
		return
	}

	resp := transcriptResponse{Sentences: sentences}
	if next != "" {
		resp.LastKey = &next
	}
	WriteJSON(w, http.StatusOK, resp)
}
