package segment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/transcribe"
)

// Span is one sentence with the time range of its constituent words.
type Span struct {
	Text  string
	Start float64
	End   float64
}

// Adapter wraps a SentenceSplitter and degrades to a whole-utterance span
// whenever splitting fails or yields nothing useful.
type Adapter struct {
	splitter SentenceSplitter
	log      zerolog.Logger
}

// NewAdapter creates an adapter. splitter may be nil, in which case every
// utterance becomes a single sentence.
func NewAdapter(splitter SentenceSplitter, log zerolog.Logger) *Adapter {
	return &Adapter{splitter: splitter, log: log}
}

// Sentences splits text into sentence spans. Each span starts at the minimum
// start and ends at the maximum end among its words. If the splitter errors or
// returns at most one sentence, the whole input is one span from the first
// word's start to the last word's end.
//
// Words are associated to sentences by surface-text containment. Repeated
// surface forms can land in the wrong sentence; this is an accepted precision
// limitation of the matching, not something callers should rely on.
func (a *Adapter) Sentences(ctx context.Context, text string, words []transcribe.Word) []Span {
	if len(words) == 0 {
		return nil
	}

	fallback := []Span{{
		Text:  text,
		Start: words[0].Start,
		End:   words[len(words)-1].End,
	}}

	if a.splitter == nil {
		return fallback
	}

	sentences, err := a.splitter.Split(ctx, text)
	if err != nil {
		a.log.Debug().Err(err).Msg("sentence split failed, using single-span fallback")
		return fallback
	}
	if len(sentences) <= 1 {
		return fallback
	}

	var spans []Span
	for _, sent := range sentences {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}

		first := true
		var start, end float64
		for _, w := range words {
			surface := strings.TrimSpace(w.Text)
			if surface == "" || !strings.Contains(sent, surface) {
				continue
			}
			if first || w.Start < start {
				start = w.Start
			}
			if first || w.End > end {
				end = w.End
			}
			first = false
		}
		if first {
			// No word matched this sentence's text; skip it.
			continue
		}
		spans = append(spans, Span{Text: sent, Start: start, End: end})
	}

	if len(spans) == 0 {
		return fallback
	}
	return spans
}
