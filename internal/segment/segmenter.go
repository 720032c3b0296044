package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SentenceSplitter produces candidate sentence strings from free text.
type SentenceSplitter interface {
	Split(ctx context.Context, text string) ([]string, error)
}

// HTTPSplitter calls an external sentence-boundary service
// (POST {"text": ...} -> {"sentences": [...]}).
type HTTPSplitter struct {
	url    string
	client *http.Client
}

// NewHTTPSplitter creates a splitter client for the given endpoint.
func NewHTTPSplitter(url string, timeout time.Duration) *HTTPSplitter {
	return &HTTPSplitter{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSplitter) Split(ctx context.Context, text string) ([]string, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("segmenter request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("segmenter error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Sentences []string `json:"sentences"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Sentences, nil
}
