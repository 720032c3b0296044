package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Translator is the dedicated translation backend tried before the LLM chain.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// LibreTranslator calls a LibreTranslate-compatible /translate endpoint.
type LibreTranslator struct {
	url    string
	client *http.Client
}

// NewLibreTranslator creates a translator client for the given endpoint.
func NewLibreTranslator(url string, timeout time.Duration) *LibreTranslator {
	return &LibreTranslator{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (t *LibreTranslator) Translate(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "en",
		"target": "hi",
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	out := strings.TrimSpace(result.TranslatedText)
	if out == "" {
		return "", fmt.Errorf("empty translation")
	}
	return out, nil
}
