package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/maneth909/tubedl/internal/model"
	"github.com/maneth909/tubedl/internal/platform"
)

// Service orchestrates downloads. It is synchronous: every method runs its
// request to completion (or failure) before returning. Progress is delivered
// through the caller-supplied callback; the caller decides rendering cadence.
type Service struct {
	fetcher    Fetcher
	transcoder Transcoder
	history    History
	log        zerolog.Logger
}

// NewService creates a download orchestrator
func NewService(fetcher Fetcher, transcoder Transcoder, history History, log zerolog.Logger) *Service {
	return &Service{
		fetcher:    fetcher,
		transcoder: transcoder,
		history:    history,
		log:        log,
	}
}

// DownloadVideo downloads a single video at the requested resolution to
// `<dest>/<sanitized title>.mp4` and appends a history record. A missing
// exact resolution match is an error, not a silent fallback.
func (s *Service) DownloadVideo(ctx context.Context, req model.DownloadRequest, progress model.ProgressFunc) (string, error) {
	media, err := s.fetcher.Resolve(ctx, req.URL)
	if err != nil {
		return "", resolveError(err)
	}

	stream := SelectVideoStream(media.Streams, req.Resolution, false)
	if stream == nil {
		return "", selectionError(fmt.Errorf("%w: resolution %s", ErrNoMatchingStream, req.Resolution))
	}

	outputPath := filepath.Join(req.DownloadPath, platform.SanitizeFilename(media.Title)+model.ExtensionMP4)
	if err := s.fetcher.Download(ctx, media, *stream, outputPath, chunkPercent(progress)); err != nil {
		return "", ioError(err)
	}

	if _, err := s.history.Append(media.Title, req.URL, model.KindVideo.FileType(), outputPath); err != nil {
		return "", ioError(err)
	}

	reportDone(progress)
	s.log.Info().Str("title", media.Title).Str("output", outputPath).Msg("video downloaded")
	return outputPath, nil
}

// DownloadAudio downloads the best audio-only stream, transcodes it to
// `<dest>/<sanitized title>.mp3`, removes the intermediate container on
// success, and appends a history record. If the transcode fails the
// intermediate file is left in place.
func (s *Service) DownloadAudio(ctx context.Context, req model.DownloadRequest, progress model.ProgressFunc) (string, error) {
	media, err := s.fetcher.Resolve(ctx, req.URL)
	if err != nil {
		return "", resolveError(err)
	}

	outputPath, err := s.saveAudio(ctx, media, req.DownloadPath, chunkPercent(progress))
	if err != nil {
		return "", err
	}

	if _, err := s.history.Append(media.Title, req.URL, model.KindAudio.FileType(), outputPath); err != nil {
		return "", ioError(err)
	}

	reportDone(progress)
	s.log.Info().Str("title", media.Title).Str("output", outputPath).Msg("audio downloaded")
	return outputPath, nil
}

// DownloadPlaylist enumerates the playlist eagerly and downloads every item
// strictly sequentially, collecting a per-item result either way. The default
// policy aborts on the first failed item; ContinueOnError processes the rest
// and reports failures in the result slice. Progress advances once per item,
// 100*i/N after item i.
func (s *Service) DownloadPlaylist(ctx context.Context, req model.DownloadRequest, progress model.ProgressFunc) ([]model.ItemResult, error) {
	playlist, err := s.fetcher.Playlist(ctx, req.URL)
	if err != nil {
		return nil, resolveError(err)
	}

	total := len(playlist.Entries)
	results := make([]model.ItemResult, 0, total)
	for i, entry := range playlist.Entries {
		outputPath, err := s.downloadItem(ctx, entry, req)
		item := model.ItemResult{
			Index:      i + 1,
			Title:      entry.Title,
			URL:        entry.URL,
			OutputPath: outputPath,
		}
		if err != nil {
			item.Error = err.Error()
			results = append(results, item)
			s.log.Warn().Int("index", i+1).Str("url", entry.URL).Err(err).Msg("playlist item failed")
			if !req.ContinueOnError {
				return results, err
			}
			if progress != nil {
				progress(float64(i+1) / float64(total) * 100)
			}
			continue
		}

		results = append(results, item)
		if progress != nil {
			progress(float64(i+1) / float64(total) * 100)
		}
	}

	s.log.Info().Str("playlist", playlist.Title).Int("items", total).Msg("playlist processed")
	return results, nil
}

// downloadItem handles one playlist member according to the playlist-wide
// media kind. The video path falls back to the highest-available mp4
// resolution when the requested one is missing.
func (s *Service) downloadItem(ctx context.Context, entry model.PlaylistEntry, req model.DownloadRequest) (string, error) {
	media, err := s.fetcher.Resolve(ctx, entry.URL)
	if err != nil {
		return "", resolveError(err)
	}

	if req.Kind == model.KindAudio {
		outputPath, err := s.saveAudio(ctx, media, req.DownloadPath, nil)
		if err != nil {
			return "", err
		}
		if _, err := s.history.Append(media.Title, entry.URL, model.KindAudio.FileType(), outputPath); err != nil {
			return "", ioError(err)
		}
		return outputPath, nil
	}

	stream := SelectVideoStream(media.Streams, req.Resolution, true)
	if stream == nil {
		return "", selectionError(fmt.Errorf("%w: no %s streams available", ErrNoMatchingStream, videoContainer))
	}

	outputPath := filepath.Join(req.DownloadPath, platform.SanitizeFilename(media.Title)+model.ExtensionMP4)
	if err := s.fetcher.Download(ctx, media, *stream, outputPath, nil); err != nil {
		return "", ioError(err)
	}
	if _, err := s.history.Append(media.Title, entry.URL, model.KindVideo.FileType(), outputPath); err != nil {
		return "", ioError(err)
	}
	return outputPath, nil
}

// saveAudio downloads the best audio stream to an intermediate container
// file, transcodes it to mp3, and removes the intermediate. No history write;
// callers append their own record.
func (s *Service) saveAudio(ctx context.Context, media *model.Media, destDir string, chunk model.ChunkFunc) (string, error) {
	stream := SelectAudioStream(media.Streams)
	if stream == nil {
		return "", selectionError(fmt.Errorf("%w: no audio-only streams available", ErrNoMatchingStream))
	}

	sanitized := platform.SanitizeFilename(media.Title)
	rawPath := filepath.Join(destDir, sanitized+"."+stream.Container)
	if err := s.fetcher.Download(ctx, media, *stream, rawPath, chunk); err != nil {
		return "", ioError(err)
	}

	outputPath := filepath.Join(destDir, sanitized+model.ExtensionMP3)
	if err := s.transcoder.Transcode(ctx, rawPath, outputPath); err != nil {
		// The intermediate stays in place on failure; only a successful
		// transcode earns the cleanup.
		return "", transcodeError(err)
	}

	if err := os.Remove(rawPath); err != nil {
		s.log.Warn().Str("path", rawPath).Err(err).Msg("could not remove intermediate file")
	}
	return outputPath, nil
}

// chunkPercent adapts byte-level chunk deliveries to the percentage callback:
// (total - remaining) / total * 100, recomputed on every chunk.
func chunkPercent(progress model.ProgressFunc) model.ChunkFunc {
	if progress == nil {
		return nil
	}
	return func(stream model.Stream, _ int, bytesRemaining int64) {
		if stream.Size <= 0 {
			return
		}
		downloaded := stream.Size - bytesRemaining
		progress(float64(downloaded) / float64(stream.Size) * 100)
	}
}

func reportDone(progress model.ProgressFunc) {
	if progress != nil {
		progress(100)
	}
}
