package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`

	HTTPAddr     string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`

	WhisperURL     string        `env:"WHISPER_URL" envDefault:"http://localhost:8000/v1/audio/transcriptions"`
	WhisperModel   string        `env:"WHISPER_MODEL" envDefault:"base"`
	WhisperTimeout time.Duration `env:"WHISPER_TIMEOUT" envDefault:"120s"`

	SegmenterURL string `env:"SEGMENTER_URL"`
	TranslateURL string `env:"TRANSLATE_URL"`

	DeepSeekAPIKey  string        `env:"DEEPSEEK_API_KEY"`
	DeepSeekModel   string        `env:"DEEPSEEK_MODEL" envDefault:"deepseek-chat"`
	HFAPIKey        string        `env:"HF_API_KEY"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"15s"`

	ChunkSeconds float64 `env:"CHUNK_SECONDS" envDefault:"30"`
	ChunkWorkers int     `env:"CHUNK_WORKERS" envDefault:"3"`
	PageSize     int     `env:"TRANSCRIPT_PAGE_SIZE" envDefault:"20"`

	YtDlpPath  string `env:"YTDLP_PATH" envDefault:"yt-dlp"`
	FFmpegPath string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`

	AuthToken string `env:"AUTH_TOKEN"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	EnvFile     string
	HTTPAddr    string
	LogLevel    string
	DatabaseURL string
	WhisperURL  string
}

// Load reads configuration from .env file, environment variables, and CLI overrides.
// Priority: CLI flags > environment variables > .env file > struct defaults.
func Load(overrides Overrides) (*Config, error) {
	// Load .env file (silent if missing)
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	// Parse environment variables into config struct
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Apply CLI overrides (non-empty values win)
	if overrides.HTTPAddr != "" {
		cfg.HTTPAddr = overrides.HTTPAddr
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if overrides.DatabaseURL != "" {
		cfg.DatabaseURL = overrides.DatabaseURL
	}
	if overrides.WhisperURL != "" {
		cfg.WhisperURL = overrides.WhisperURL
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.ChunkSeconds <= 0 {
		return fmt.Errorf("CHUNK_SECONDS must be > 0, got %v", c.ChunkSeconds)
	}
	if c.ChunkWorkers < 1 {
		return fmt.Errorf("CHUNK_WORKERS must be >= 1, got %d", c.ChunkWorkers)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("TRANSCRIPT_PAGE_SIZE must be >= 1, got %d", c.PageSize)
	}
	return nil
}
