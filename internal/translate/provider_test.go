package translate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatProvider_Complete(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.Write([]byte(`{"choices":[{"message":{"content":" अनुवाद "}}]}`))
	}))
	defer srv.Close()

	p := NewChatProvider("deepseek", srv.URL, "secret", "deepseek-chat", testPrompts, nil)
	out, err := p.Complete(context.Background(), "Translate to accurate Hindi: hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "अनुवाद" {
		t.Errorf("out = %q, want trimmed content", out)
	}
	if gotBody["model"] != "deepseek-chat" {
		t.Errorf("model = %v", gotBody["model"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
}

func TestChatProvider_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewChatProvider("deepseek", srv.URL, "k", "m", testPrompts, nil)
	if _, err := p.Complete(context.Background(), "x"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestChatProvider_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	}))
	defer srv.Close()

	p := NewChatProvider("deepseek", srv.URL, "k", "m", testPrompts, nil)
	if _, err := p.Complete(context.Background(), "x"); err == nil {
		t.Error("expected error for blank completion")
	}
}

func TestInferenceProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(raw), `"inputs"`) {
			t.Errorf("expected inputs field in body: %s", raw)
		}
		w.Write([]byte(`[{"generated_text":"उत्तर"}]`))
	}))
	defer srv.Close()

	p := NewInferenceProvider("huggingface", srv.URL, "k", testPrompts, nil)
	out, err := p.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "उत्तर" {
		t.Errorf("out = %q", out)
	}
}

func TestInferenceProvider_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewInferenceProvider("huggingface", srv.URL, "k", testPrompts, nil)
	if _, err := p.Complete(context.Background(), "x"); err == nil {
		t.Error("expected error for empty response array")
	}
}

// Each provider family decodes its own wire shape; feeding one family's
// response to the other must fail rather than mis-parse.
func TestProviders_ShapeMismatch(t *testing.T) {
	chatShaped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"text"}}]}`))
	}))
	defer chatShaped.Close()

	p := NewInferenceProvider("huggingface", chatShaped.URL, "k", testPrompts, nil)
	if _, err := p.Complete(context.Background(), "x"); err == nil {
		t.Error("inference provider should reject chat-shaped response")
	}
}

func TestPrompts_Template(t *testing.T) {
	if got := testPrompts.Template(RoleTranslation); got != testPrompts.Translation {
		t.Errorf("Template(translation) = %q", got)
	}
	if got := testPrompts.Template(RolePronunciation); got != testPrompts.Pronunciation {
		t.Errorf("Template(pronunciation) = %q", got)
	}
}
