package segment

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/transcribe"
)

type fakeSplitter struct {
	sentences []string
	err       error
}

func (f *fakeSplitter) Split(ctx context.Context, text string) ([]string, error) {
	return f.sentences, f.err
}

func words(specs ...[3]any) []transcribe.Word {
	var ws []transcribe.Word
	for _, s := range specs {
		ws = append(ws, transcribe.Word{
			Text:  s[0].(string),
			Start: s[1].(float64),
			End:   s[2].(float64),
		})
	}
	return ws
}

func TestAdapter_MultiSentence(t *testing.T) {
	a := NewAdapter(&fakeSplitter{sentences: []string{"Hello there.", "Goodbye now."}}, zerolog.Nop())

	ws := words(
		[3]any{"Hello", 0.0, 0.5},
		[3]any{"there.", 0.6, 1.0},
		[3]any{"Goodbye", 2.0, 2.5},
		[3]any{"now.", 2.6, 3.0},
	)
	spans := a.Sentences(context.Background(), "Hello there. Goodbye now.", ws)

	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Text != "Hello there." || spans[0].Start != 0.0 || spans[0].End != 1.0 {
		t.Errorf("spans[0] = %+v", spans[0])
	}
	if spans[1].Text != "Goodbye now." || spans[1].Start != 2.0 || spans[1].End != 3.0 {
		t.Errorf("spans[1] = %+v", spans[1])
	}
}

func TestAdapter_SplitterErrorFallsBack(t *testing.T) {
	a := NewAdapter(&fakeSplitter{err: errors.New("service down")}, zerolog.Nop())

	ws := words([3]any{"no", 1.0, 1.2}, [3]any{"boundaries", 1.3, 2.0})
	spans := a.Sentences(context.Background(), "no boundaries", ws)

	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Start != 1.0 || spans[0].End != 2.0 {
		t.Errorf("fallback span = [%v,%v], want [firstWord.start, lastWord.end]", spans[0].Start, spans[0].End)
	}
	if spans[0].Text != "no boundaries" {
		t.Errorf("fallback text = %q", spans[0].Text)
	}
}

func TestAdapter_SingleSentenceFallsBack(t *testing.T) {
	a := NewAdapter(&fakeSplitter{sentences: []string{"just one sentence"}}, zerolog.Nop())

	ws := words([3]any{"just", 0.0, 0.3}, [3]any{"one", 0.4, 0.6}, [3]any{"sentence", 0.7, 1.4})
	spans := a.Sentences(context.Background(), "just one sentence", ws)

	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Start != 0.0 || spans[0].End != 1.4 {
		t.Errorf("span = [%v,%v], want [0,1.4]", spans[0].Start, spans[0].End)
	}
}

func TestAdapter_NilSplitter(t *testing.T) {
	a := NewAdapter(nil, zerolog.Nop())

	ws := words([3]any{"a", 0.0, 0.1}, [3]any{"b", 0.2, 0.3})
	spans := a.Sentences(context.Background(), "a b", ws)
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
}

func TestAdapter_NoWords(t *testing.T) {
	a := NewAdapter(nil, zerolog.Nop())
	if spans := a.Sentences(context.Background(), "text", nil); spans != nil {
		t.Errorf("expected nil spans for empty word list, got %v", spans)
	}
}

func TestAdapter_UnmatchedSentenceSkipped(t *testing.T) {
	// Second "sentence" shares no surface text with the words; only the
	// first produces a span.
	a := NewAdapter(&fakeSplitter{sentences: []string{"alpha beta.", "zzz qqq."}}, zerolog.Nop())

	ws := words([3]any{"alpha", 0.0, 0.4}, [3]any{"beta.", 0.5, 1.0})
	spans := a.Sentences(context.Background(), "alpha beta. zzz qqq.", ws)

	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Text != "alpha beta." {
		t.Errorf("span text = %q", spans[0].Text)
	}
}

func TestAdapter_AllSentencesUnmatchedFallsBack(t *testing.T) {
	a := NewAdapter(&fakeSplitter{sentences: []string{"xxx.", "yyy."}}, zerolog.Nop())

	ws := words([3]any{"alpha", 0.0, 0.4}, [3]any{"beta", 0.5, 1.0})
	spans := a.Sentences(context.Background(), "alpha beta", ws)

	if len(spans) != 1 {
		t.Fatalf("got %d spans, want single fallback span", len(spans))
	}
	if spans[0].Text != "alpha beta" {
		t.Errorf("span text = %q", spans[0].Text)
	}
}
