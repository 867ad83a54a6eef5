// Package transcode converts downloaded audio containers to mp3 using ffmpeg.
package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// FFmpeg constants for audio extraction
const (
	// Audio codec settings
	AudioCodec   = "libmp3lame"
	AudioQuality = "2" // VBR ~190kbps

	// Executable
	FFmpegCommand = "ffmpeg"
)

// Service runs ffmpeg to convert a source media file to mp3
type Service struct {
	ffmpegPath string
	log        zerolog.Logger
}

// NewService creates a transcode service. An empty ffmpegPath uses the
// ffmpeg binary found on PATH.
func NewService(ffmpegPath string, log zerolog.Logger) *Service {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegCommand
	}
	return &Service{
		ffmpegPath: ffmpegPath,
		log:        log,
	}
}

// Transcode converts inputPath to an mp3 file at outputPath. The input file
// is never touched; a partial output file is removed on failure.
func (s *Service) Transcode(ctx context.Context, inputPath, outputPath string) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not accessible: %w", err)
	}

	args := s.BuildFFmpegArgs(inputPath, outputPath)
	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	s.log.Debug().Str("input", inputPath).Str("output", outputPath).Msg("starting ffmpeg")

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(stderr.Bytes()))
	}
	return nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func (s *Service) BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-vn",                // Drop any video track
		"-codec:a", AudioCodec, // Audio codec
		"-qscale:a", AudioQuality, // VBR quality
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// lastLine extracts the final non-empty stderr line, which is where ffmpeg
// reports its actual failure reason.
func lastLine(output []byte) string {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}
	return string(bytes.TrimSpace(lines[len(lines)-1]))
}
