package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/snarg/lingo-engine/internal/api"
	"github.com/snarg/lingo-engine/internal/config"
	"github.com/snarg/lingo-engine/internal/database"
	"github.com/snarg/lingo-engine/internal/media"
	"github.com/snarg/lingo-engine/internal/metrics"
	"github.com/snarg/lingo-engine/internal/pipeline"
	"github.com/snarg/lingo-engine/internal/segment"
	"github.com/snarg/lingo-engine/internal/task"
	"github.com/snarg/lingo-engine/internal/transcribe"
	"github.com/snarg/lingo-engine/internal/translate"
)

var version = "dev"

func main() {
	startTime := time.Now()

	var overrides config.Overrides
	flag.StringVar(&overrides.EnvFile, "env", "", "path to .env file")
	flag.StringVar(&overrides.HTTPAddr, "addr", "", "http listen address")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (trace..error)")
	flag.StringVar(&overrides.DatabaseURL, "db", "", "postgres connection url")
	flag.StringVar(&overrides.WhisperURL, "whisper-url", "", "whisper transcription endpoint")
	flag.Parse()

	cfg, err := config.Load(overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Msg("lingo-engine starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	dbLog := log.With().Str("component", "database").Logger()
	db, err := database.Connect(ctx, cfg.DatabaseURL, dbLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	// Task registry and gauges
	registry := task.NewRegistry(log.With().Str("component", "tasks").Logger())
	prometheus.MustRegister(metrics.NewCollector(db.Pool, registry))

	// Transcription chain
	resolver := media.NewYtDlpResolver(cfg.YtDlpPath, log.With().Str("component", "resolver").Logger())
	extractor := media.NewFFmpegExtractor(cfg.FFmpegPath)
	whisper := transcribe.NewWhisperClient(cfg.WhisperURL, cfg.WhisperModel, cfg.WhisperTimeout)

	var splitter segment.SentenceSplitter
	if cfg.SegmenterURL != "" {
		splitter = segment.NewHTTPSplitter(cfg.SegmenterURL, cfg.ProviderTimeout)
	}
	segmenter := segment.NewAdapter(splitter, log.With().Str("component", "segmenter").Logger())

	// Translation fallback chain. The inference provider feeds a raw text
	// completion model, so its prompts carry the zephyr chat template inline.
	chatPrompts := translate.Prompts{
		Translation:   "Translate to accurate Hindi: %s",
		Pronunciation: "Convert to Hindi phonetic (Devanagari): %s",
	}
	zephyrPrompts := translate.Prompts{
		Translation:   "<|system|>Translate English to Hindi</s><|user|>%s</s>",
		Pronunciation: "<|system|>Convert to Hindi pronunciation</s><|user|>%s</s>",
	}
	providerClient := &http.Client{Timeout: cfg.ProviderTimeout}
	var providers []translate.Provider
	if cfg.DeepSeekAPIKey != "" {
		providers = append(providers, translate.NewChatProvider(
			"deepseek",
			"https://api.deepseek.com/v1/chat/completions",
			cfg.DeepSeekAPIKey, cfg.DeepSeekModel, chatPrompts, providerClient,
		))
	}
	if cfg.HFAPIKey != "" {
		providers = append(providers, translate.NewInferenceProvider(
			"huggingface",
			"https://api-inference.huggingface.co/models/HuggingFaceH4/zephyr-7b-beta",
			cfg.HFAPIKey, zephyrPrompts, providerClient,
		))
	}
	var translator translate.Translator
	if cfg.TranslateURL != "" {
		translator = translate.NewLibreTranslator(cfg.TranslateURL, cfg.ProviderTimeout)
	}
	chain := translate.NewChain(translator, providers, cfg.ProviderTimeout,
		log.With().Str("component", "translate").Logger())

	// Pipeline
	pipeLog := log.With().Str("component", "pipeline").Logger()
	processor := pipeline.NewProcessor(extractor, whisper, segmenter, chain, db, registry, pipeLog)
	pl := pipeline.New(resolver, processor, registry, cfg.ChunkSeconds, cfg.ChunkWorkers, pipeLog)

	// HTTP server
	httpLog := log.With().Str("component", "http").Logger()
	tasks := api.NewTaskHandler(pl, registry, httpLog)
	transcript := api.NewTranscriptHandler(db, cfg.PageSize, httpLog)
	health := api.NewHealthHandler(db, version, startTime)
	srv := api.NewServer(cfg, tasks, transcript, health, httpLog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	// In-flight tasks run to completion; chunks are not cancellable.
	done := make(chan struct{})
	go func() {
		pl.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn().Msg("shutdown timeout reached with tasks still in flight")
	}

	log.Info().Msg("lingo-engine stopped")
}
