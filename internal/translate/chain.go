package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/metrics"
)

// TranslationUnavailable is returned when every translation backend fails.
const TranslationUnavailable = "Translation unavailable"

// Chain runs text transforms through an ordered list of providers with
// per-call timeouts and graceful degradation. List order defines fallback
// priority. Neither Translate nor Pronounce ever fails: the terminal fallback
// for translation is a sentinel string, for pronunciation a local
// transliteration.
type Chain struct {
	translator Translator // optional dedicated backend, translation role only
	providers  []Provider
	timeout    time.Duration
	log        zerolog.Logger
}

// NewChain creates a provider chain. translator may be nil.
func NewChain(translator Translator, providers []Provider, timeout time.Duration, log zerolog.Logger) *Chain {
	return &Chain{
		translator: translator,
		providers:  providers,
		timeout:    timeout,
		log:        log,
	}
}

// Translate returns the Hindi translation of text. The dedicated translator is
// tried first, then each provider in order; if everything fails the sentinel
// is returned.
func (c *Chain) Translate(ctx context.Context, text string) string {
	if c.translator != nil {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		out, err := c.translator.Translate(callCtx, text)
		cancel()
		if err == nil {
			return out
		}
		c.log.Debug().Err(err).Msg("dedicated translator failed, trying providers")
	}

	if out, err := c.transform(ctx, text, RoleTranslation); err == nil {
		return out
	}

	metrics.TranslationSentinelTotal.Inc()
	return TranslationUnavailable
}

// Pronounce returns a Devanagari rendering of text. Providers are tried in
// order; the local transliteration is the terminal fallback and never fails.
func (c *Chain) Pronounce(ctx context.Context, text string) string {
	if out, err := c.transform(ctx, text, RolePronunciation); err == nil {
		return out
	}

	metrics.TransliterationFallbackTotal.Inc()
	return Transliterate(text)
}

func (c *Chain) transform(ctx context.Context, text string, role Role) (string, error) {
	for _, p := range c.providers {
		prompt := fmt.Sprintf(p.Prompts().Template(role), text)

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		out, err := p.Complete(callCtx, prompt)
		cancel()

		if err != nil {
			metrics.ProviderCallsTotal.WithLabelValues(p.Name(), string(role), "error").Inc()
			c.log.Debug().Err(err).Str("provider", p.Name()).Str("role", string(role)).Msg("provider call failed")
			continue
		}
		metrics.ProviderCallsTotal.WithLabelValues(p.Name(), string(role), "ok").Inc()
		return out, nil
	}
	return "", fmt.Errorf("all %d providers failed for role %s", len(c.providers), role)
}
