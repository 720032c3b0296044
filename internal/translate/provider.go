package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Role selects which prompt template a provider formats for a transform call.
type Role string

const (
	RoleTranslation   Role = "translation"
	RolePronunciation Role = "pronunciation"
)

// Prompts holds a provider's role-specific templates. Each template contains
// one %s verb for the input text.
type Prompts struct {
	Translation   string
	Pronunciation string
}

// Template returns the template for the given role.
func (p Prompts) Template(role Role) string {
	if role == RolePronunciation {
		return p.Pronunciation
	}
	return p.Translation
}

// Provider is one LLM text-transform backend in the fallback chain. Response
// decoding is fixed per concrete type: the chain never guesses a shape from
// the endpoint URL.
type Provider interface {
	Name() string
	Prompts() Prompts
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatProvider calls an OpenAI-compatible chat completions endpoint
// (deepseek family). Response shape: choices[0].message.content.
type ChatProvider struct {
	name    string
	url     string
	apiKey  string
	model   string
	prompts Prompts
	client  *http.Client
}

// NewChatProvider creates a chat-completions provider.
func NewChatProvider(name, url, apiKey, model string, prompts Prompts, client *http.Client) *ChatProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &ChatProvider{name: name, url: url, apiKey: apiKey, model: model, prompts: prompts, client: client}
}

func (p *ChatProvider) Name() string     { return p.name }
func (p *ChatProvider) Prompts() Prompts { return p.prompts }

func (p *ChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": 200,
	})
	if err != nil {
		return "", err
	}

	body, err := postJSON(ctx, p.client, p.url, p.apiKey, payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", p.name, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", p.name)
	}
	return requireText(p.name, result.Choices[0].Message.Content)
}

// InferenceProvider calls a HuggingFace-style text-generation inference
// endpoint (zephyr family). Response shape: [0].generated_text.
type InferenceProvider struct {
	name    string
	url     string
	apiKey  string
	prompts Prompts
	client  *http.Client
}

// NewInferenceProvider creates an inference-API provider.
func NewInferenceProvider(name, url, apiKey string, prompts Prompts, client *http.Client) *InferenceProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &InferenceProvider{name: name, url: url, apiKey: apiKey, prompts: prompts, client: client}
}

func (p *InferenceProvider) Name() string     { return p.name }
func (p *InferenceProvider) Prompts() Prompts { return p.prompts }

func (p *InferenceProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return "", err
	}

	body, err := postJSON(ctx, p.client, p.url, p.apiKey, payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}

	var result []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", p.name, err)
	}
	if len(result) == 0 {
		return "", fmt.Errorf("%s: empty response array", p.name)
	}
	return requireText(p.name, result[0].GeneratedText)
}

func postJSON(ctx context.Context, client *http.Client, url, apiKey string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// requireText rejects blank completions so the chain can fall through to the
// next provider.
func requireText(name, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%s: empty completion", name)
	}
	return s, nil
}
