package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/database"
	"github.com/snarg/lingo-engine/internal/media"
	"github.com/snarg/lingo-engine/internal/metrics"
	"github.com/snarg/lingo-engine/internal/segment"
	"github.com/snarg/lingo-engine/internal/transcribe"
)

// Transcriber converts an audio file into utterances with word timestamps.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]transcribe.Utterance, error)
}

// Segmenter splits utterance text into time-aligned sentence spans.
type Segmenter interface {
	Sentences(ctx context.Context, text string, words []transcribe.Word) []segment.Span
}

// TextTransformer produces the two target-language renderings of a sentence.
// Both calls degrade internally and never fail.
type TextTransformer interface {
	Translate(ctx context.Context, text string) string
	Pronounce(ctx context.Context, text string) string
}

// SentenceStore persists sentence records.
type SentenceStore interface {
	InsertSentence(ctx context.Context, row *database.SentenceRow) error
}

// Progress receives task lifecycle updates.
type Progress interface {
	ReportChunkDone(taskID string)
}

// Processor handles one chunk window end to end: extract audio, transcribe,
// segment, transform, persist.
type Processor struct {
	extractor media.Extractor
	stt       Transcriber
	segmenter Segmenter
	chain     TextTransformer
	store     SentenceStore
	progress  Progress
	log       zerolog.Logger
}

// NewProcessor wires a chunk processor from its collaborators.
func NewProcessor(extractor media.Extractor, stt Transcriber, segmenter Segmenter, chain TextTransformer, store SentenceStore, progress Progress, log zerolog.Logger) *Processor {
	return &Processor{
		extractor: extractor,
		stt:       stt,
		segmenter: segmenter,
		chain:     chain,
		store:     store,
		progress:  progress,
		log:       log,
	}
}

// Process transcribes one window and persists its sentences. Completion is
// reported unconditionally: chunk accounting is count-based, not
// content-based, so a chunk that degraded to zero sentences still counts.
//
// Sentence writes are independent store calls. A late write failure leaves
// the earlier sentences of the chunk in place; nothing is rolled back.
func (p *Processor) Process(ctx context.Context, taskID string, m *media.Media, w Window) {
	defer func() {
		p.progress.ReportChunkDone(taskID)
		metrics.ChunksProcessedTotal.Inc()
	}()

	log := p.log.With().Str("task_id", taskID).Float64("start", w.Start).Float64("end", w.End).Logger()

	utterances, err := p.transcribeWindow(ctx, m, w)
	if err != nil {
		metrics.TranscriptionFailuresTotal.Inc()
		log.Warn().Err(err).Msg("chunk transcription failed, producing zero sentences")
		return
	}

	persisted := 0
	for _, u := range utterances {
		// Whisper timestamps are relative to the extracted chunk; shift them
		// onto the media timeline so ordering holds across chunks.
		words := offsetWords(u.Words, w.Start)
		text := joinWords(words)
		if text == "" {
			continue
		}

		for _, span := range p.segmenter.Sentences(ctx, text, words) {
			translation := p.chain.Translate(ctx, span.Text)
			pronunciation := p.chain.Pronounce(ctx, span.Text)

			row := &database.SentenceRow{
				ID:                 uuid.NewString(),
				TaskID:             taskID,
				English:            span.Text,
				TranslationHindi:   translation,
				PronunciationHindi: pronunciation,
				StartTime:          formatClock(span.Start),
				EndTime:            formatClock(span.End),
				StartTimeFloat:     span.Start,
				EndTimeFloat:       span.End,
			}
			if err := p.store.InsertSentence(ctx, row); err != nil {
				metrics.SentenceWriteErrorsTotal.Inc()
				log.Warn().Err(err).Str("sentence_id", row.ID).Msg("sentence write failed, dropping record")
				continue
			}
			metrics.SentencesPersistedTotal.Inc()
			persisted++
		}
	}

	log.Debug().Int("sentences", persisted).Msg("chunk processed")
}

func (p *Processor) transcribeWindow(ctx context.Context, m *media.Media, w Window) ([]transcribe.Utterance, error) {
	audioPath, cleanup, err := p.extractor.Extract(ctx, m.AudioURL, w.Start, w.End-w.Start)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer cleanup()

	utterances, err := p.stt.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	return utterances, nil
}

func offsetWords(words []transcribe.Word, offset float64) []transcribe.Word {
	out := make([]transcribe.Word, len(words))
	for i, w := range words {
		out[i] = transcribe.Word{Text: w.Text, Start: w.Start + offset, End: w.End + offset}
	}
	return out
}

func joinWords(words []transcribe.Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if w.Text != "" {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}

// formatClock renders seconds as HH:MM:SS for display alongside the raw value.
func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
