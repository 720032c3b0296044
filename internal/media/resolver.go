package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"
)

// Media is the resolved description of a processable media source.
type Media struct {
	ID       string
	Title    string
	Duration float64 // total duration in seconds
	AudioURL string  // streamable audio-only URL
}

// Resolver turns a media locator into a streamable audio reference.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*Media, error)
}

// YtDlpResolver resolves media metadata by shelling out to yt-dlp.
type YtDlpResolver struct {
	path string
	log  zerolog.Logger
}

// NewYtDlpResolver creates a resolver using the given yt-dlp binary path.
func NewYtDlpResolver(path string, log zerolog.Logger) *YtDlpResolver {
	if path == "" {
		path = "yt-dlp"
	}
	return &YtDlpResolver{path: path, log: log}
}

// ytdlpInfo is the subset of `yt-dlp -J` output we need.
type ytdlpInfo struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Duration float64       `json:"duration"`
	Formats  []ytdlpFormat `json:"formats"`
}

type ytdlpFormat struct {
	URL    string  `json:"url"`
	ACodec string  `json:"acodec"`
	VCodec string  `json:"vcodec"`
	ABR    float64 `json:"abr"`
}

// Resolve runs `yt-dlp -J --no-download` and extracts id, title, duration and
// the best audio stream URL.
func (r *YtDlpResolver) Resolve(ctx context.Context, url string) (*Media, error) {
	cmd := exec.CommandContext(ctx, r.path, "-J", "--no-download", "--no-playlist", url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.log.Warn().Err(err).Str("url", url).Str("stderr", stderr.String()).Msg("yt-dlp failed")
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}

	var info ytdlpInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("decode yt-dlp output: %w", err)
	}

	audioURL, err := pickAudioURL(info.Formats)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}
	if info.Duration <= 0 {
		return nil, fmt.Errorf("resolve %s: no duration reported", url)
	}

	r.log.Debug().
		Str("media_id", info.ID).
		Str("title", info.Title).
		Float64("duration", info.Duration).
		Msg("media resolved")

	return &Media{
		ID:       info.ID,
		Title:    info.Title,
		Duration: info.Duration,
		AudioURL: audioURL,
	}, nil
}

// pickAudioURL prefers the highest-bitrate audio-only format, falling back to
// any format that carries an audio track.
func pickAudioURL(formats []ytdlpFormat) (string, error) {
	best := ""
	bestABR := -1.0
	for _, f := range formats {
		if f.URL == "" || f.ACodec == "" || f.ACodec == "none" {
			continue
		}
		if f.VCodec != "" && f.VCodec != "none" {
			continue
		}
		if f.ABR > bestABR {
			best = f.URL
			bestABR = f.ABR
		}
	}
	if best != "" {
		return best, nil
	}

	// No audio-only format; take the first one with any audio track.
	for _, f := range formats {
		if f.URL != "" && f.ACodec != "" && f.ACodec != "none" {
			return f.URL, nil
		}
	}
	return "", fmt.Errorf("no audio stream in %d formats", len(formats))
}
