package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Extractor pulls one time window of audio out of a stream as a local WAV file.
type Extractor interface {
	// Extract returns the path to a mono 16 kHz WAV covering
	// [start, start+length) seconds, plus a cleanup func removing it.
	Extract(ctx context.Context, audioURL string, start, length float64) (string, func(), error)
}

// FFmpegExtractor extracts audio windows by shelling out to ffmpeg.
type FFmpegExtractor struct {
	path string
}

// NewFFmpegExtractor creates an extractor using the given ffmpeg binary path.
func NewFFmpegExtractor(path string) *FFmpegExtractor {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpegExtractor{path: path}
}

// Extract runs ffmpeg with an input seek so only the requested window is
// downloaded and decoded. Output is mono 16 kHz PCM WAV, the format whisper
// expects.
func (e *FFmpegExtractor) Extract(ctx context.Context, audioURL string, start, length float64) (string, func(), error) {
	out, err := os.CreateTemp("", "lingo-chunk-*.wav")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	out.Close()
	cleanup := func() { os.Remove(out.Name()) }

	cmd := exec.CommandContext(ctx, e.path,
		"-y",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(length),
		"-i", audioURL,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		out.Name(),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}
	return out.Name(), cleanup, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
