package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WhisperClient calls an OpenAI-compatible /v1/audio/transcriptions endpoint
// and converts the verbose_json response into utterances with word timestamps.
type WhisperClient struct {
	url     string
	model   string
	timeout time.Duration
	client  *http.Client
}

// whisperResponse is the parsed verbose_json response body.
type whisperResponse struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
	Segments []whisperSegment `json:"segments"`
	Words    []whisperWord    `json:"words"`
}

type whisperSegment struct {
	Text  string        `json:"text"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []whisperWord `json:"words"`
}

type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewWhisperClient creates a new Whisper HTTP client.
func NewWhisperClient(url, model string, timeout time.Duration) *WhisperClient {
	return &WhisperClient{
		url:     url,
		model:   model,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Transcribe sends an audio file to the Whisper API and returns its utterances.
// Uses multipart/form-data; only non-default parameters are sent, so this works
// with speaches, faster-whisper-server, or any OpenAI-compatible endpoint.
func (wc *WhisperClient) Transcribe(ctx context.Context, audioPath string) ([]Utterance, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy audio data: %w", err)
	}

	if wc.model != "" {
		w.WriteField("model", wc.model)
	}
	w.WriteField("language", "en")
	w.WriteField("response_format", "verbose_json")
	w.WriteField("timestamp_granularities[]", "word")
	w.WriteField("vad_filter", "true")
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wc.url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := wc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result whisperResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return utterancesFromResponse(&result), nil
}

// utterancesFromResponse maps the verbose_json shape onto utterances. Segments
// missing word-level timestamps get words synthesized by even interpolation
// across the segment's time range.
func utterancesFromResponse(resp *whisperResponse) []Utterance {
	if len(resp.Segments) == 0 {
		// Some servers return a flat word list without segments; treat the
		// whole response as one utterance.
		words := convertWords(resp.Words)
		if len(words) == 0 {
			return nil
		}
		return []Utterance{{
			Text:  strings.TrimSpace(resp.Text),
			Start: words[0].Start,
			End:   words[len(words)-1].End,
			Words: words,
		}}
	}

	var utterances []Utterance
	for _, seg := range resp.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		var words []Word
		if len(seg.Words) > 0 {
			words = convertWords(seg.Words)
		} else {
			words = interpolateWords(text, seg.Start, seg.End)
		}
		if len(words) == 0 {
			continue
		}
		utterances = append(utterances, Utterance{
			Text:  text,
			Start: seg.Start,
			End:   seg.End,
			Words: words,
		})
	}
	return utterances
}

func convertWords(ws []whisperWord) []Word {
	words := make([]Word, 0, len(ws))
	for _, w := range ws {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		words = append(words, Word{Text: text, Start: w.Start, End: w.End})
	}
	return words
}

// interpolateWords splits text into words and spreads timestamps evenly across
// [start, end). Approximate timing, used only when the server omits word-level
// granularity.
func interpolateWords(text string, start, end float64) []Word {
	tokens := strings.Fields(text)
	n := len(tokens)
	if n == 0 {
		return nil
	}
	wordDur := (end - start) / float64(n)
	words := make([]Word, n)
	for i, tok := range tokens {
		words[i] = Word{
			Text:  tok,
			Start: start + float64(i)*wordDur,
			End:   start + float64(i+1)*wordDur,
		}
	}
	return words
}
